package controller

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"printshop-core/repository"
	"printshop-core/service"
)

// ColorProfileController handles HTTP requests for ICC profile management
type ColorProfileController struct {
	proofing      service.ProofingServiceInterface
	syncService   service.ProfileSyncServiceInterface
	repository    repository.ColorProfileRepositoryInterface
	defaultFolder string
}

// NewColorProfileController creates a new ColorProfileController. syncService may
// be nil when Drive is not configured.
func NewColorProfileController(
	proofingService service.ProofingServiceInterface,
	syncService service.ProfileSyncServiceInterface,
	repo repository.ColorProfileRepositoryInterface,
	defaultFolder string,
) *ColorProfileController {
	return &ColorProfileController{
		proofing:      proofingService,
		syncService:   syncService,
		repository:    repo,
		defaultFolder: defaultFolder,
	}
}

// ListProfiles handles GET /admin/color-profiles
func (c *ColorProfileController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	profiles, err := c.proofing.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list color profiles: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// SyncProfiles handles POST /admin/color-profiles/sync?folderId=...
func (c *ColorProfileController) SyncProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if c.syncService == nil {
		writeError(w, http.StatusServiceUnavailable, "Google Drive is not configured")
		return
	}

	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		folderID = c.defaultFolder
	}
	if folderID == "" {
		writeError(w, http.StatusBadRequest, "folderId parameter is required")
		return
	}

	result, err := c.syncService.SyncProfiles(r.Context(), folderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to sync color profiles: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UploadProfile handles POST /admin/color-profiles/upload
// Multipart fields: file (ICC bytes), name (optional, defaults to the file name)
func (c *ColorProfileController) UploadProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 16<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read file: %v", err))
		return
	}

	name := header.Filename
	if v := strings.TrimSpace(r.FormValue("name")); v != "" {
		name = v
	}
	profile, err := service.ProfileFromICC(name, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.repository.Insert(r.Context(), profile); err != nil {
		log.Printf("❌ UploadProfile: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store color profile")
		return
	}
	log.Printf("✅ UploadProfile: stored %s (%s, %s)", profile.Name, profile.Kind, profile.ColorSpace)
	writeJSON(w, http.StatusCreated, profile)
}
