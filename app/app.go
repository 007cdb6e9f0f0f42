package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"printshop-core/app/controller"
	"printshop-core/app/router"
	"printshop-core/config"
	"printshop-core/db"
	"printshop-core/pricing"
	"printshop-core/proofing"
	"printshop-core/proofing/lcms"
	"printshop-core/repository"
	"printshop-core/service"
)

// Initialize wires repositories, services and controllers onto mux.
// The returned cleanup stops the proofing worker and closes the database.
func Initialize(ctx context.Context, cfg *config.Config, mux *http.ServeMux) (func(), error) {
	// Initialize database connection
	if err := db.InitDB(cfg.Database.URL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if cfg.Database.RunMigrations {
		if err := db.RunMigrations(); err != nil {
			db.CloseDB()
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	cleanup := func() {
		cancel()
		if err := db.CloseDB(); err != nil {
			log.Printf("⚠️  Failed to close database: %v", err)
		}
	}

	// Initialize repositories
	pricingRepo := repository.NewPricingRepository()
	colorProfileRepo := repository.NewColorProfileRepository()

	// Pricing
	engine := pricing.NewEngine(pricingRepo)
	pricingController := controller.NewPricingController(engine, cfg.Pricing.DefaultCoverage, cfg.Pricing.DefaultColor)

	documents, err := service.NewQuoteDocumentService(cfg.Quote.ShopName, cfg.Quote.Currency, cfg.Quote.ChromePath,
		time.Duration(cfg.Quote.PDFTimeoutSecs)*time.Second)
	if err != nil {
		cleanup()
		return nil, err
	}

	controllers := &router.Controllers{
		Pricing:        pricingController,
		Quote:          controller.NewQuoteController(pricingController, documents),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	if cfg.Proofing.Enabled {
		proofingService, err := newProofingService(ctx, cfg, colorProfileRepo)
		if err != nil {
			cleanup()
			return nil, err
		}

		// Drive import is optional
		var syncService service.ProfileSyncServiceInterface
		if cfg.Drive.CredentialsFile != "" {
			driveService, err := service.NewDriveService(ctx, cfg.Drive.CredentialsFile)
			if err != nil {
				cleanup()
				return nil, err
			}
			syncService = service.NewProfileSyncService(driveService, colorProfileRepo)
		} else {
			log.Printf("⚠️  Drive credentials not set, profile sync disabled")
		}

		controllers.Proofing = controller.NewProofingController(proofingService,
			cfg.Proofing.MaxUploadBytes, cfg.Proofing.MaxImageDimension)
		controllers.ColorProfile = controller.NewColorProfileController(proofingService, syncService,
			colorProfileRepo, cfg.Drive.ProfilesFolder)
	} else {
		log.Printf("⚠️  Proofing disabled by configuration")
	}

	// Setup routes using standard http router
	router.SetupRoutes(mux, controllers)

	return cleanup, nil
}

// newProofingService starts the proofing worker backed by LittleCMS
func newProofingService(ctx context.Context, cfg *config.Config, repo repository.ColorProfileRepositoryInterface) (*service.ProofingService, error) {
	srgb, err := lcms.SRGBProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to build sRGB profile: %w", err)
	}
	builtins := map[string][]byte{
		service.BuiltinProfilePrefix + "srgb": srgb,
	}

	runtime := proofing.NewRuntime(lcms.Load)
	worker := proofing.NewWorker(proofing.NewProofer(runtime))
	go worker.Run(ctx)

	log.Printf("🎨 Proofing worker started (LittleCMS %d)", lcms.Version())
	return service.NewProofingService(worker, repo, builtins,
		cfg.Proofing.InputProfileID, cfg.Proofing.GamutWarningColor), nil
}
