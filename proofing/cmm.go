// Package proofing implements ICC soft proofing: a lazily loaded colour
// management runtime, a single live proofing transform, batch image
// transforms with a gamut warning overlay, and a CMYK export path.
package proofing

import (
	"context"
	"fmt"
	"io"
)

// Intent is an ICC rendering intent
type Intent int

// Rendering intents, numbered as in lcms2
const (
	IntentPerceptual Intent = iota
	IntentRelativeColorimetric
	IntentSaturation
	IntentAbsoluteColorimetric
)

// Profile is an opened ICC profile handle owned by the caller
type Profile interface {
	io.Closer
}

// Transform is a native colour transform handle owned by the caller
type Transform interface {
	io.Closer
	// Apply transforms n pixels from src into dst. Channel counts are fixed
	// when the transform is created (RGB in, RGB or CMYK out).
	Apply(src, dst []byte, n int) error
}

// CMM is a colour management module able to open profiles and build transforms.
// All handles it returns hold native memory and must be closed explicitly.
type CMM interface {
	OpenProfile(data []byte) (Profile, error)
	// NewProofingTransform builds an RGB→RGB transform from input to output
	// that simulates rendering through the proofing profile.
	NewProofingTransform(input, output, proofing Profile, intent, proofingIntent Intent) (Transform, error)
	// NewCMYKTransform builds an RGB→CMYK transform.
	NewCMYKTransform(input, output Profile, intent Intent) (Transform, error)
}

// Loader loads a CMM. It is called at most once per successful Runtime.Init.
type Loader func(ctx context.Context) (CMM, error)

// ParseIntent converts a rendering intent name to an Intent
func ParseIntent(s string) (Intent, error) {
	switch s {
	case "perceptual":
		return IntentPerceptual, nil
	case "relative", "":
		return IntentRelativeColorimetric, nil
	case "saturation":
		return IntentSaturation, nil
	case "absolute":
		return IntentAbsoluteColorimetric, nil
	default:
		return 0, fmt.Errorf("unknown rendering intent: %q", s)
	}
}
