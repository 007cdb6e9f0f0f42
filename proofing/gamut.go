package proofing

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ParseHexColor parses "#RRGGBB" (or "RRGGBB"). An empty string yields DefaultGamutWarningColor.
func ParseHexColor(s string) ([3]uint8, error) {
	var c [3]uint8
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultGamutWarningColor
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return c, fmt.Errorf("invalid gamut warning color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid gamut warning color %q: %w", s, err)
	}
	c[0], c[1], c[2] = uint8(v>>16), uint8(v>>8), uint8(v)
	return c, nil
}

// gamutMask flags pixels whose summed |ΔR|+|ΔG|+|ΔB| exceeds GamutThreshold.
// Flagged pixels get the warning colour at GamutMaskAlpha, all others stay transparent.
func gamutMask(src, proofed *image.NRGBA, warn [3]uint8) *image.NRGBA {
	mask := image.NewNRGBA(src.Rect)
	for i := 0; i+3 < len(src.Pix); i += 4 {
		diff := absDiff(src.Pix[i], proofed.Pix[i]) +
			absDiff(src.Pix[i+1], proofed.Pix[i+1]) +
			absDiff(src.Pix[i+2], proofed.Pix[i+2])
		if diff > GamutThreshold {
			mask.Pix[i] = warn[0]
			mask.Pix[i+1] = warn[1]
			mask.Pix[i+2] = warn[2]
			mask.Pix[i+3] = GamutMaskAlpha
		}
	}
	return mask
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
