package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sort"
	"strings"
	"sync"

	"printshop-core/models"
	"printshop-core/proofing"
	"printshop-core/repository"
)

// BuiltinProfilePrefix marks profile ids served from memory instead of the database
const BuiltinProfilePrefix = "builtin:"

// ErrProfileNotFound is returned when a profile id resolves to nothing
var ErrProfileNotFound = errors.New("color profile not found")

// ProofingServiceInterface defines the contract for soft-proofing operations
type ProofingServiceInterface interface {
	Preview(ctx context.Context, req ProofRequest) (*proofing.TransformResult, error)
	Export(ctx context.Context, req ProofRequest) (*proofing.ExportResult, error)
	ListProfiles(ctx context.Context) ([]models.ColorProfile, error)
}

// ProofRequest selects an image and the profile pair to proof it with
type ProofRequest struct {
	Image             *image.NRGBA
	InputProfileID    string // empty uses the configured default working space
	OutputProfileID   string
	ShowGamutWarning  bool
	GamutWarningColor string
}

// ProofingService resolves profile ids to ICC bytes and drives the proofing worker.
// It keeps the worker's live transform for the last profile pair and only rebuilds
// it when a request asks for a different pair.
type ProofingService struct {
	worker         *proofing.Worker
	repository     repository.ColorProfileRepositoryInterface
	builtins       map[string][]byte
	defaultInput   string
	defaultWarning string

	mu        sync.Mutex // serialises init + transform against the single live transform
	activeKey string
}

// Ensure ProofingService implements ProofingServiceInterface
var _ ProofingServiceInterface = (*ProofingService)(nil)

// NewProofingService creates a new ProofingService. builtins maps ids such as
// "builtin:srgb" to profile bytes.
func NewProofingService(worker *proofing.Worker, repo repository.ColorProfileRepositoryInterface, builtins map[string][]byte, defaultInput, defaultWarning string) *ProofingService {
	return &ProofingService{
		worker:         worker,
		repository:     repo,
		builtins:       builtins,
		defaultInput:   defaultInput,
		defaultWarning: defaultWarning,
	}
}

// Preview soft-proofs an image, rebuilding the live transform when the profile pair changed
func (s *ProofingService) Preview(ctx context.Context, req ProofRequest) (*proofing.TransformResult, error) {
	inputID := s.inputID(req)
	input, output, err := s.resolvePair(ctx, inputID, req.OutputProfileID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := inputID + "|" + req.OutputProfileID
	if key != s.activeKey {
		log.Printf("🎨 Preview: building transform for %s → %s", inputID, req.OutputProfileID)
		s.activeKey = ""
		resp, err := s.worker.Post(ctx, proofing.Request{
			Type:              proofing.MsgInit,
			InputProfileData:  input,
			OutputProfileData: output,
		})
		if err != nil {
			return nil, err
		}
		if err := resp.Err(); err != nil {
			return nil, fmt.Errorf("failed to build proofing transform: %w", err)
		}
		s.activeKey = key
	}

	warning := req.GamutWarningColor
	if warning == "" {
		warning = s.defaultWarning
	}
	resp, err := s.worker.Post(ctx, proofing.Request{
		Type:              proofing.MsgTransform,
		ImageData:         req.Image,
		ShowGamutWarning:  req.ShowGamutWarning,
		GamutWarningColor: warning,
	})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("failed to proof image: %w", err)
	}
	return &proofing.TransformResult{Proofed: resp.ImageData, GamutMask: resp.GamutMask}, nil
}

// Export converts an image to CMYK for the output profile
func (s *ProofingService) Export(ctx context.Context, req ProofRequest) (*proofing.ExportResult, error) {
	input, output, err := s.resolvePair(ctx, s.inputID(req), req.OutputProfileID)
	if err != nil {
		return nil, err
	}

	resp, err := s.worker.Post(ctx, proofing.Request{
		Type:              proofing.MsgTransformToCMYK,
		ImageData:         req.Image,
		InputProfileData:  input,
		OutputProfileData: output,
	})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("failed to export image: %w", err)
	}
	return &proofing.ExportResult{
		CMYK:    resp.CMYKData,
		Proofed: resp.ProofedImageData,
		Width:   resp.Width,
		Height:  resp.Height,
	}, nil
}

// ListProfiles returns the built-in profiles followed by the stored ones
func (s *ProofingService) ListProfiles(ctx context.Context) ([]models.ColorProfile, error) {
	ids := make([]string, 0, len(s.builtins))
	for id := range s.builtins {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	profiles := make([]models.ColorProfile, 0, len(ids))
	for _, id := range ids {
		p := models.ColorProfile{
			ID:     id,
			Name:   strings.TrimPrefix(id, BuiltinProfilePrefix),
			Kind:   models.ColorProfileKindBuiltin,
			Source: models.ColorProfileSourceBuiltin,
		}
		if info, err := proofing.ParseProfileInfo(s.builtins[id]); err == nil {
			p.ColorSpace = proofing.ColorSpaceName(info.ColorSpace)
			p.DeviceClass = proofing.ProfileClassName(info.Class)
			p.Version = info.Version
		}
		profiles = append(profiles, p)
	}

	if s.repository == nil {
		return profiles, nil
	}
	stored, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	return append(profiles, stored...), nil
}

func (s *ProofingService) inputID(req ProofRequest) string {
	if req.InputProfileID != "" {
		return req.InputProfileID
	}
	return s.defaultInput
}

func (s *ProofingService) resolvePair(ctx context.Context, inputID, outputID string) ([]byte, []byte, error) {
	input, err := s.resolve(ctx, inputID)
	if err != nil {
		return nil, nil, fmt.Errorf("input profile: %w", err)
	}
	output, err := s.resolve(ctx, outputID)
	if err != nil {
		return nil, nil, fmt.Errorf("output profile: %w", err)
	}
	return input, output, nil
}

func (s *ProofingService) resolve(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: no profile id given", ErrProfileNotFound)
	}
	if strings.HasPrefix(id, BuiltinProfilePrefix) {
		data, ok := s.builtins[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		return data, nil
	}
	if s.repository == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	profile, err := s.repository.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return profile.Data, nil
}
