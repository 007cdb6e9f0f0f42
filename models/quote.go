package models

import "time"

// QuoteSheet is a priced request ready to be rendered for a customer
type QuoteSheet struct {
	Number    string        `json:"number"`
	IssuedAt  time.Time     `json:"issuedAt"`
	ProductID string        `json:"productId"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Sides     int           `json:"sides"`
	Lines     []PriceResult `json:"lines"`
}
