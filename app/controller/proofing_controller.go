package controller

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"printshop-core/proofing"
	"printshop-core/service"
)

// ProofingController handles HTTP requests for ICC soft proofing
type ProofingController struct {
	service        service.ProofingServiceInterface
	maxUploadBytes int64
	maxImageDim    int
}

// NewProofingController creates a new ProofingController
func NewProofingController(svc service.ProofingServiceInterface, maxUploadBytes int64, maxImageDim int) *ProofingController {
	return &ProofingController{
		service:        svc,
		maxUploadBytes: maxUploadBytes,
		maxImageDim:    maxImageDim,
	}
}

type previewResponse struct {
	ProofedImage string  `json:"proofedImage"`
	GamutMask    *string `json:"gamutMask"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

type exportResponse struct {
	CMYKData     string `json:"cmykData"` // base64, 4 bytes per pixel
	ProofedImage string `json:"proofedImage"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// Preview handles POST /proofing/preview
// Multipart fields: image, input_profile_id, output_profile_id, show_gamut_warning, gamut_warning_color
func (c *ProofingController) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := c.parseProofRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := c.service.Preview(r.Context(), req)
	if err != nil {
		log.Printf("❌ Preview: %v", err)
		writeError(w, proofingStatus(err), err.Error())
		return
	}

	proofed, err := service.PNGDataURI(res.Proofed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := previewResponse{
		ProofedImage: proofed,
		Width:        res.Proofed.Rect.Dx(),
		Height:       res.Proofed.Rect.Dy(),
	}
	if res.GamutMask != nil {
		mask, err := service.PNGDataURI(res.GamutMask)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.GamutMask = &mask
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles POST /proofing/export
// Multipart fields: image, input_profile_id, output_profile_id
func (c *ProofingController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := c.parseProofRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := c.service.Export(r.Context(), req)
	if err != nil {
		log.Printf("❌ Export: %v", err)
		writeError(w, proofingStatus(err), err.Error())
		return
	}

	proofed, err := service.PNGDataURI(res.Proofed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{
		CMYKData:     base64.StdEncoding.EncodeToString(res.CMYK),
		ProofedImage: proofed,
		Width:        res.Width,
		Height:       res.Height,
	})
}

func (c *ProofingController) parseProofRequest(w http.ResponseWriter, r *http.Request) (service.ProofRequest, error) {
	var req service.ProofRequest
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes)
	if err := r.ParseMultipartForm(c.maxUploadBytes); err != nil {
		return req, fmt.Errorf("invalid multipart form: %v", err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return req, fmt.Errorf("image file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("failed to read image: %v", err)
	}
	img, err := service.DecodeForProofing(data, c.maxImageDim)
	if err != nil {
		return req, err
	}

	req.Image = img
	req.InputProfileID = r.FormValue("input_profile_id")
	req.OutputProfileID = r.FormValue("output_profile_id")
	req.GamutWarningColor = r.FormValue("gamut_warning_color")
	if v := r.FormValue("show_gamut_warning"); v != "" {
		if req.ShowGamutWarning, err = strconv.ParseBool(v); err != nil {
			return req, fmt.Errorf("show_gamut_warning must be a boolean")
		}
	}
	if req.OutputProfileID == "" {
		return req, fmt.Errorf("output_profile_id is required")
	}
	return req, nil
}

func proofingStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, proofing.ErrWorkerStopped),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}
