package router

import (
	"net/http"

	"printshop-core/app/controller"
)

type Controllers struct {
	Pricing      *controller.PricingController
	Quote        *controller.QuoteController
	Proofing     *controller.ProofingController
	ColorProfile *controller.ColorProfileController
	// AllowedOrigins is the CORS allow-list for browser-facing endpoints
	AllowedOrigins []string
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	cors := func(h http.HandlerFunc) http.HandlerFunc {
		return controller.WithCORS(controllers.AllowedOrigins, h)
	}

	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Machine pricing, called directly from the storefront
	mux.HandleFunc("/functions/calculate-machine-price", cors(controllers.Pricing.CalculateMachinePrice))

	// Printable quote sheet (?format=html|pdf)
	mux.HandleFunc("/pricing/quote-sheet", cors(controllers.Quote.QuoteSheet))

	// Soft proofing (disabled when no colour engine is configured)
	if controllers.Proofing != nil {
		mux.HandleFunc("/proofing/preview", cors(controllers.Proofing.Preview))
		mux.HandleFunc("/proofing/export", cors(controllers.Proofing.Export))
	}

	// Color profile administration
	if controllers.ColorProfile != nil {
		mux.HandleFunc("/admin/color-profiles", controllers.ColorProfile.ListProfiles)
		mux.HandleFunc("/admin/color-profiles/sync", controllers.ColorProfile.SyncProfiles)
		mux.HandleFunc("/admin/color-profiles/upload", controllers.ColorProfile.UploadProfile)
	}
}
