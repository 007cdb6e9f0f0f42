package controller

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop-core/proofing"
	"printshop-core/service"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, path, fileField, fileName string, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestPreview(t *testing.T) {
	svc := &stubProofingService{}
	c := NewProofingController(svc, 1<<20, 8)

	req := multipartRequest(t, "/proofing/preview", "image", "art.png", pngBytes(t, 16, 4), map[string]string{
		"output_profile_id":   "fogra39",
		"show_gamut_warning":  "true",
		"gamut_warning_color": "#00FF00",
	})
	rec := httptest.NewRecorder()
	c.Preview(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.Width)
	assert.Equal(t, 2, resp.Height)
	assert.Contains(t, resp.ProofedImage, "data:image/png;base64,")
	require.NotNil(t, resp.GamutMask)

	assert.Equal(t, "fogra39", svc.got.OutputProfileID)
	assert.Empty(t, svc.got.InputProfileID)
	assert.True(t, svc.got.ShowGamutWarning)
	assert.Equal(t, "#00FF00", svc.got.GamutWarningColor)
}

func TestPreviewWithoutGamutMask(t *testing.T) {
	c := NewProofingController(&stubProofingService{}, 1<<20, 0)

	rec := httptest.NewRecorder()
	c.Preview(rec, multipartRequest(t, "/proofing/preview", "image", "a.png", pngBytes(t, 3, 3),
		map[string]string{"output_profile_id": "x"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gamutMask":null`)
}

func TestExport(t *testing.T) {
	c := NewProofingController(&stubProofingService{}, 1<<20, 0)

	rec := httptest.NewRecorder()
	c.Export(rec, multipartRequest(t, "/proofing/export", "image", "a.png", pngBytes(t, 5, 2),
		map[string]string{"output_profile_id": "x", "input_profile_id": "builtin:srgb"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp exportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	cmyk, err := base64.StdEncoding.DecodeString(resp.CMYKData)
	require.NoError(t, err)
	assert.Len(t, cmyk, 5*2*4)
	assert.Equal(t, 5, resp.Width)
	assert.Equal(t, 2, resp.Height)
}

func TestProofRequestValidation(t *testing.T) {
	c := NewProofingController(&stubProofingService{}, 1<<20, 0)
	img := pngBytes(t, 2, 2)

	cases := []struct {
		name   string
		file   []byte
		fields map[string]string
	}{
		{"missing image", nil, map[string]string{"output_profile_id": "x"}},
		{"undecodable image", []byte("not an image"), map[string]string{"output_profile_id": "x"}},
		{"missing output profile", img, nil},
		{"bad gamut flag", img, map[string]string{"output_profile_id": "x", "show_gamut_warning": "maybe"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.Preview(rec, multipartRequest(t, "/proofing/preview", "image", "a.png", tc.file, tc.fields))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestProofingErrorStatus(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("output: %w", service.ErrProfileNotFound): http.StatusNotFound,
		proofing.ErrWorkerStopped:                            http.StatusServiceUnavailable,
		context.DeadlineExceeded:                             http.StatusServiceUnavailable,
		proofing.ErrInvalidProfile:                           http.StatusUnprocessableEntity,
		errors.New("transform failed"):                       http.StatusUnprocessableEntity,
	}
	for err, status := range cases {
		c := NewProofingController(&stubProofingService{err: err}, 1<<20, 0)
		rec := httptest.NewRecorder()
		c.Export(rec, multipartRequest(t, "/proofing/export", "image", "a.png", pngBytes(t, 2, 2),
			map[string]string{"output_profile_id": "x"}))
		assert.Equal(t, status, rec.Code, err.Error())
	}
}
