package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"printshop-core/models"
	"printshop-core/pricing"
)

const maxPricingBody = 1 << 20

// PricingController handles HTTP requests for machine pricing
type PricingController struct {
	engine   pricing.Calculator
	defaults requestDefaults
}

// NewPricingController creates a new PricingController. defaultCoverage and
// defaultColor apply when a request omits coverage or sides.
func NewPricingController(engine pricing.Calculator, defaultCoverage float64, defaultColor string) *PricingController {
	return &PricingController{
		engine:   engine,
		defaults: requestDefaults{Coverage: defaultCoverage, Color: defaultColor},
	}
}

// CalculateMachinePrice handles POST /functions/calculate-machine-price
// Responds with a single PriceResult for singular requests or {"results": [...]} for batch requests.
func (c *PricingController) CalculateMachinePrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := c.decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := c.engine.Calculate(r.Context(), req)
	if err != nil {
		log.Printf("❌ CalculateMachinePrice: product=%s: %v", req.ProductID, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Batch {
		writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
		return
	}
	writeJSON(w, http.StatusOK, results[0])
}

// decodeRequest reads and normalises a price request body
func (c *PricingController) decodeRequest(w http.ResponseWriter, r *http.Request) (models.PricingRequest, error) {
	var body calculatePriceBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPricingBody)).Decode(&body); err != nil {
		return models.PricingRequest{}, fmt.Errorf("invalid request body: %v", err)
	}
	return body.normalize(c.defaults)
}
