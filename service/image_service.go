package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
)

// DecodeForProofing decodes an uploaded image (PNG, JPEG, GIF, TIFF, BMP) into
// packed NRGBA pixels, honouring EXIF orientation. Images larger than maxDim on
// either side are downscaled preserving aspect ratio; maxDim <= 0 disables resizing.
func DecodeForProofing(data []byte, maxDim int) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	log.Printf("📸 Image decoded: bounds=%v", bounds)

	if maxDim > 0 && (width > maxDim || height > maxDim) {
		resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, resized.Bounds().Dx(), resized.Bounds().Dy())
		return resized, nil
	}
	return imaging.Clone(img), nil
}

// EncodePNG encodes img as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGDataURI encodes img as a base64 PNG data URI. A nil image yields "".
func PNGDataURI(img *image.NRGBA) (string, error) {
	if img == nil {
		return "", nil
	}
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
