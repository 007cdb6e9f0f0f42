package controller

import (
	"context"
	"errors"
	"image"

	"printshop-core/models"
	"printshop-core/pricing"
	"printshop-core/proofing"
	"printshop-core/service"
)

// recordingCalculator captures the normalised request and answers one line per pair
type recordingCalculator struct {
	got models.PricingRequest
	err error
}

var _ pricing.Calculator = (*recordingCalculator)(nil)

func (c *recordingCalculator) Calculate(ctx context.Context, req models.PricingRequest) ([]models.PriceResult, error) {
	c.got = req
	if c.err != nil {
		return nil, c.err
	}
	var results []models.PriceResult
	for _, m := range req.MaterialIDs {
		for _, q := range req.Quantities {
			results = append(results, models.PriceResult{MaterialID: m, Quantity: q, TotalPrice: float64(q), UnitPrice: 1})
		}
	}
	return results, nil
}

// stubProofingService returns canned results
type stubProofingService struct {
	got      service.ProofRequest
	err      error
	profiles []models.ColorProfile
}

var _ service.ProofingServiceInterface = (*stubProofingService)(nil)

func (s *stubProofingService) Preview(ctx context.Context, req service.ProofRequest) (*proofing.TransformResult, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	res := &proofing.TransformResult{Proofed: req.Image}
	if req.ShowGamutWarning {
		res.GamutMask = image.NewNRGBA(req.Image.Rect)
	}
	return res, nil
}

func (s *stubProofingService) Export(ctx context.Context, req service.ProofRequest) (*proofing.ExportResult, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	w, h := req.Image.Rect.Dx(), req.Image.Rect.Dy()
	return &proofing.ExportResult{CMYK: make([]byte, w*h*4), Proofed: req.Image, Width: w, Height: h}, nil
}

func (s *stubProofingService) ListProfiles(ctx context.Context) ([]models.ColorProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profiles, nil
}

// stubDocuments renders a fixed document
type stubDocuments struct {
	got    models.QuoteSheet
	pdfErr error
}

var _ service.QuoteDocumentServiceInterface = (*stubDocuments)(nil)

func (d *stubDocuments) RenderHTML(quote models.QuoteSheet) (string, error) {
	d.got = quote
	return "<html>" + quote.Number + "</html>", nil
}

func (d *stubDocuments) GeneratePDF(ctx context.Context, quote models.QuoteSheet) ([]byte, error) {
	d.got = quote
	if d.pdfErr != nil {
		return nil, d.pdfErr
	}
	return []byte("%PDF-1.4"), nil
}

// stubSync records the folder it was asked to sync
type stubSync struct {
	folder string
}

func (s *stubSync) SyncProfiles(ctx context.Context, folderID string) (*models.ProfileSyncResult, error) {
	s.folder = folderID
	if folderID == "broken" {
		return nil, errors.New("drive unavailable")
	}
	return &models.ProfileSyncResult{FolderID: folderID, Total: 2, Inserted: 1, Skipped: 1}, nil
}

// memProfiles stores inserted profiles
type memProfiles struct {
	inserted []models.ColorProfile
}

func (m *memProfiles) List(ctx context.Context) ([]models.ColorProfile, error) { return m.inserted, nil }

func (m *memProfiles) GetByID(ctx context.Context, id string) (*models.ColorProfile, error) {
	return nil, errors.New("not implemented")
}

func (m *memProfiles) ExistsByDriveFileID(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (m *memProfiles) Insert(ctx context.Context, p *models.ColorProfile) error {
	p.ID = "new-id"
	m.inserted = append(m.inserted, *p)
	return nil
}
