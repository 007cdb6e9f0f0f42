package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"printshop-core/models"
	"printshop-core/service"

	"github.com/google/uuid"
)

// QuoteController renders priced requests as customer quote sheets
type QuoteController struct {
	pricing   *PricingController
	documents service.QuoteDocumentServiceInterface
	now       func() time.Time
}

// NewQuoteController creates a new QuoteController sharing request handling with pc
func NewQuoteController(pc *PricingController, documents service.QuoteDocumentServiceInterface) *QuoteController {
	return &QuoteController{
		pricing:   pc,
		documents: documents,
		now:       time.Now,
	}
}

// QuoteSheet handles POST /pricing/quote-sheet?format=html|pdf
// Accepts the same body as /functions/calculate-machine-price.
func (c *QuoteController) QuoteSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "pdf" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q (use html or pdf)", format))
		return
	}

	req, err := c.pricing.decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	results, err := c.pricing.engine.Calculate(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote := models.QuoteSheet{
		Number:    "Q-" + strings.ToUpper(uuid.NewString()[:8]),
		IssuedAt:  c.now(),
		ProductID: req.ProductID,
		Width:     req.Width,
		Height:    req.Height,
		Sides:     req.Sides,
		Lines:     results,
	}

	if format == "pdf" {
		pdf, err := c.documents.GeneratePDF(r.Context(), quote)
		if err != nil {
			log.Printf("❌ QuoteSheet: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to generate PDF")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, quote.Number))
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
		return
	}

	html, err := c.documents.RenderHTML(quote)
	if err != nil {
		log.Printf("❌ QuoteSheet: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to render quote")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
