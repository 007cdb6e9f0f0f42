package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"printshop-core/models"
)

// flexNumber accepts a JSON number or a numeric string
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = flexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = flexNumber(v)
	return nil
}

// flexString accepts a JSON string or number
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(data)
	return nil
}

// calculatePriceBody is the wire shape of a price request. Both singular
// (quantity, material_id) and plural (quantities, material_ids) forms are accepted.
type calculatePriceBody struct {
	ProductID   string       `json:"productId"`
	Quantity    *flexNumber  `json:"quantity"`
	Quantities  []flexNumber `json:"quantities"`
	MaterialID  string       `json:"material_id"`
	MaterialIDs []string     `json:"material_ids"`
	Width       flexNumber   `json:"width"`
	Height      flexNumber   `json:"height"`
	Sides       flexString   `json:"sides"`
	FinishIDs   []string     `json:"finish_ids"`
	Coverage    *flexNumber  `json:"coverage"`
	BleedMm     *flexNumber  `json:"bleed_mm"`
	GapMm       *flexNumber  `json:"gap_mm"`
}

// requestDefaults fills fields a request omits
type requestDefaults struct {
	Coverage float64
	Color    string
}

// normalize maps the wire body onto the engine's canonical request.
// The request is a batch when either plural field is present.
func (b calculatePriceBody) normalize(defaults requestDefaults) (models.PricingRequest, error) {
	req := models.PricingRequest{
		ProductID: strings.TrimSpace(b.ProductID),
		Width:     float64(b.Width),
		Height:    float64(b.Height),
		FinishIDs: b.FinishIDs,
		Coverage:  defaults.Coverage,
		Batch:     b.Quantities != nil || b.MaterialIDs != nil,
	}

	if b.Quantities != nil {
		for _, q := range b.Quantities {
			qty, err := wholeQuantity(float64(q))
			if err != nil {
				return req, err
			}
			req.Quantities = append(req.Quantities, qty)
		}
	} else if b.Quantity != nil {
		qty, err := wholeQuantity(float64(*b.Quantity))
		if err != nil {
			return req, err
		}
		req.Quantities = []int{qty}
	}

	if b.MaterialIDs != nil {
		req.MaterialIDs = b.MaterialIDs
	} else if b.MaterialID != "" {
		req.MaterialIDs = []string{b.MaterialID}
	}

	color := string(b.Sides)
	if strings.TrimSpace(color) == "" {
		color = defaults.Color
	}
	sides, err := parseSides(color)
	if err != nil {
		return req, err
	}
	req.Sides = sides

	if b.Coverage != nil {
		req.Coverage = float64(*b.Coverage)
	}
	if b.BleedMm != nil {
		v := float64(*b.BleedMm)
		req.BleedMm = &v
	}
	if b.GapMm != nil {
		v := float64(*b.GapMm)
		req.GapMm = &v
	}
	return req, nil
}

func wholeQuantity(v float64) (int, error) {
	if v != float64(int(v)) {
		return 0, fmt.Errorf("quantity must be a whole number (got %v)", v)
	}
	return int(v), nil
}

// parseSides maps colour notation onto printed sides: "4+4" is duplex, "1"/"4+0" simplex
func parseSides(s string) (int, error) {
	switch strings.ReplaceAll(strings.TrimSpace(s), " ", "") {
	case "", "1", "4+0", "1+0":
		return 1, nil
	case "2", "4+4", "1+1":
		return 2, nil
	default:
		return 0, fmt.Errorf("unsupported sides value %q (use \"1\" or \"4+4\")", s)
	}
}
