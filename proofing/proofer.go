package proofing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
)

const (
	// BatchPixels is the number of pixels handed to the CMM per call
	BatchPixels = 4096
	// GamutThreshold is the summed per-channel RGB difference above which a pixel is flagged
	GamutThreshold = 35
	// GamutMaskAlpha is the opacity of flagged pixels in the gamut mask
	GamutMaskAlpha = 150
	// DefaultGamutWarningColor is used when no warning colour is given
	DefaultGamutWarningColor = "#FF00FF"
)

var (
	// ErrEmptyProfile is returned when either profile buffer has no bytes
	ErrEmptyProfile = errors.New("empty profile data")
	// ErrTransformNotInitialized is returned by Transform before CreateTransform succeeded
	ErrTransformNotInitialized = errors.New("transform not initialized")
	// ErrInvalidImage is returned for nil or zero-sized images
	ErrInvalidImage = errors.New("invalid image")
)

// TransformResult is the output of a soft-proof preview
type TransformResult struct {
	Proofed   *image.NRGBA
	GamutMask *image.NRGBA // nil unless a gamut warning was requested
}

// ExportResult is the output of a CMYK export
type ExportResult struct {
	CMYK    []byte // Width*Height*4 bytes, C M Y K per pixel
	Proofed *image.NRGBA
	Width   int
	Height  int
}

// Proofer owns at most one live proofing transform (plus the profiles it was
// built from). It is not safe for concurrent use; the Worker serialises access.
type Proofer struct {
	runtime *Runtime
	current *ownedTransform
}

// NewProofer creates a proofer backed by rt
func NewProofer(rt *Runtime) *Proofer {
	return &Proofer{runtime: rt}
}

// Ready reports whether a live transform exists
func (p *Proofer) Ready() bool {
	return p.current != nil && p.current.transform != nil
}

// CreateTransform replaces the live transform with one that soft-proofs RGB
// images described by inputICC as they would render on the outputICC device.
// The previous transform is released before the new one is built.
func (p *Proofer) CreateTransform(ctx context.Context, inputICC, outputICC []byte) error {
	cmm, err := p.cmm(ctx)
	if err != nil {
		return err
	}

	p.Dispose()

	if err := checkProfiles(inputICC, outputICC); err != nil {
		return err
	}

	owned, err := acquireProofing(cmm, inputICC, outputICC)
	if err != nil {
		log.Printf("❌ CreateTransform: %v", err)
		return err
	}
	p.current = owned
	log.Printf("🎨 CreateTransform: proofing transform ready (input=%d bytes, output=%d bytes)", len(inputICC), len(outputICC))
	return nil
}

// Transform soft-proofs img with the live transform. When showGamut is set a
// mask is returned whose pixels are painted warningColor wherever the proofed
// colour drifted more than GamutThreshold from the source.
func (p *Proofer) Transform(img *image.NRGBA, showGamut bool, warningColor string) (*TransformResult, error) {
	if !p.Ready() {
		return nil, ErrTransformNotInitialized
	}
	src, err := normalizeImage(img)
	if err != nil {
		return nil, err
	}

	var warn [3]uint8
	if showGamut {
		if warn, err = ParseHexColor(warningColor); err != nil {
			return nil, err
		}
	}

	proofed := image.NewNRGBA(src.Rect)
	if err := applyRGB(p.current.transform, src.Pix, proofed.Pix); err != nil {
		return nil, err
	}

	result := &TransformResult{Proofed: proofed}
	if showGamut {
		result.GamutMask = gamutMask(src, proofed, warn)
	}
	return result, nil
}

// TransformForExport converts img to CMYK for outputICC and also returns the
// soft-proofed RGB preview. It builds its own short-lived transforms and leaves
// the live transform untouched.
func (p *Proofer) TransformForExport(ctx context.Context, img *image.NRGBA, inputICC, outputICC []byte) (*ExportResult, error) {
	cmm, err := p.cmm(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkProfiles(inputICC, outputICC); err != nil {
		return nil, err
	}
	src, err := normalizeImage(img)
	if err != nil {
		return nil, err
	}

	toCMYK, err := acquire(cmm, inputICC, outputICC, func(input, output Profile) (Transform, error) {
		return cmm.NewCMYKTransform(input, output, IntentRelativeColorimetric)
	})
	if err != nil {
		return nil, err
	}
	defer toCMYK.release()

	preview, err := acquireProofing(cmm, inputICC, outputICC)
	if err != nil {
		return nil, err
	}
	defer preview.release()

	w, h := src.Rect.Dx(), src.Rect.Dy()
	cmyk := make([]byte, w*h*4)
	if err := applyCMYK(toCMYK.transform, src.Pix, cmyk); err != nil {
		return nil, err
	}
	proofed := image.NewNRGBA(src.Rect)
	if err := applyRGB(preview.transform, src.Pix, proofed.Pix); err != nil {
		return nil, err
	}

	log.Printf("💾 TransformForExport: %dx%d image converted to CMYK (%d bytes)", w, h, len(cmyk))
	return &ExportResult{CMYK: cmyk, Proofed: proofed, Width: w, Height: h}, nil
}

// Dispose releases the live transform and its profiles. It is idempotent.
func (p *Proofer) Dispose() {
	if p.current == nil {
		return
	}
	p.current.release()
	p.current = nil
}

func (p *Proofer) cmm(ctx context.Context) (CMM, error) {
	if err := p.runtime.Init(ctx); err != nil {
		return nil, err
	}
	return p.runtime.CMM()
}

func checkProfiles(inputICC, outputICC []byte) error {
	if len(inputICC) == 0 || len(outputICC) == 0 {
		return fmt.Errorf("%w (input=%d bytes, output=%d bytes)", ErrEmptyProfile, len(inputICC), len(outputICC))
	}
	return nil
}

// acquireProofing builds input → output soft-proof transform, simulating the
// output device while rendering back to the input RGB space
func acquireProofing(cmm CMM, inputICC, outputICC []byte) (*ownedTransform, error) {
	return acquire(cmm, inputICC, outputICC, func(input, output Profile) (Transform, error) {
		return cmm.NewProofingTransform(input, input, output, IntentRelativeColorimetric, IntentRelativeColorimetric)
	})
}

// normalizeImage returns img with origin (0,0) and tightly packed rows
func normalizeImage(img *image.NRGBA) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImage, w, h)
	}
	if img.Rect.Min == (image.Point{}) && img.Stride == 4*w {
		return img, nil
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], row[:4*w])
	}
	return out, nil
}

// applyRGB runs an RGB→RGB transform over RGBA pixels in batches,
// carrying alpha through unchanged
func applyRGB(t Transform, src, dst []byte) error {
	pixels := len(src) / 4
	in := make([]byte, BatchPixels*3)
	out := make([]byte, BatchPixels*3)
	for start := 0; start < pixels; start += BatchPixels {
		n := min(BatchPixels, pixels-start)
		packRGB(src[start*4:], in, n)
		if err := t.Apply(in[:n*3], out[:n*3], n); err != nil {
			return fmt.Errorf("transform failed at pixel %d: %w", start, err)
		}
		for i := 0; i < n; i++ {
			d := (start + i) * 4
			dst[d] = out[i*3]
			dst[d+1] = out[i*3+1]
			dst[d+2] = out[i*3+2]
			dst[d+3] = src[d+3]
		}
	}
	return nil
}

// applyCMYK runs an RGB→CMYK transform over RGBA pixels in batches
func applyCMYK(t Transform, src, dst []byte) error {
	pixels := len(src) / 4
	in := make([]byte, BatchPixels*3)
	for start := 0; start < pixels; start += BatchPixels {
		n := min(BatchPixels, pixels-start)
		packRGB(src[start*4:], in, n)
		if err := t.Apply(in[:n*3], dst[start*4:(start+n)*4], n); err != nil {
			return fmt.Errorf("CMYK transform failed at pixel %d: %w", start, err)
		}
	}
	return nil
}

func packRGB(rgba, rgb []byte, n int) {
	for i := 0; i < n; i++ {
		rgb[i*3] = rgba[i*4]
		rgb[i*3+1] = rgba[i*4+1]
		rgb[i*3+2] = rgba[i*4+2]
	}
}
