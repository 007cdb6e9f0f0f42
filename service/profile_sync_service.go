package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"printshop-core/models"
	"printshop-core/proofing"
	"printshop-core/repository"
)

// ProfileSyncService handles synchronization of ICC profiles between Google Drive and PostgreSQL
// Implements ProfileSyncServiceInterface
type ProfileSyncService struct {
	driveService DriveServiceInterface
	repository   repository.ColorProfileRepositoryInterface
}

// NewProfileSyncService creates a new ProfileSyncService
func NewProfileSyncService(driveService DriveServiceInterface, repo repository.ColorProfileRepositoryInterface) *ProfileSyncService {
	return &ProfileSyncService{
		driveService: driveService,
		repository:   repo,
	}
}

// Ensure ProfileSyncService implements ProfileSyncServiceInterface
var _ ProfileSyncServiceInterface = (*ProfileSyncService)(nil)

// SyncProfiles imports the ICC profiles of a Drive folder
func (s *ProfileSyncService) SyncProfiles(ctx context.Context, folderID string) (*models.ProfileSyncResult, error) {
	if folderID == "" {
		return nil, errors.New("folderId is required")
	}
	log.Printf("🔄 Starting ICC profile synchronization for folder: %s", folderID)

	files, err := s.driveService.ListProfiles(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles from Drive: %w", err)
	}

	result := &models.ProfileSyncResult{FolderID: folderID, Total: len(files)}
	log.Printf("📦 Processing %d ICC profile(s) from Google Drive", len(files))

	for _, file := range files {
		exists, err := s.repository.ExistsByDriveFileID(ctx, file.ID)
		if err != nil {
			s.fail(result, file, fmt.Errorf("existence check: %w", err))
			continue
		}
		if exists {
			log.Printf("⏭️  Skipping drive_file_id: %s (already exists in database)", file.ID)
			result.Skipped++
			continue
		}

		data, err := s.driveService.DownloadFile(ctx, file.ID)
		if err != nil {
			s.fail(result, file, err)
			continue
		}

		profile, err := ProfileFromICC(file.Name, data)
		if err != nil {
			s.fail(result, file, err)
			continue
		}
		profile.Source = models.ColorProfileSourceDrive
		profile.DriveFileID = file.ID

		log.Printf("💾 Inserting profile %s (%s, %s)", profile.Name, profile.Kind, profile.ColorSpace)
		if err := s.repository.Insert(ctx, profile); err != nil {
			s.fail(result, file, err)
			continue
		}
		result.Inserted++
	}

	log.Printf("🎉 Profile synchronization completed: %d inserted, %d skipped, %d failed, %d total",
		result.Inserted, result.Skipped, result.Failed, result.Total)
	return result, nil
}

func (s *ProfileSyncService) fail(result *models.ProfileSyncResult, file models.DriveFile, err error) {
	msg := fmt.Sprintf("%s (%s): %v", file.Name, file.ID, err)
	log.Printf("❌ %s", msg)
	result.Failed++
	result.Errors = append(result.Errors, msg)
}

// ProfileFromICC validates ICC bytes and builds a profile record named after fileName.
// CMYK and printer-class profiles are classified as output profiles, everything else as working spaces.
func ProfileFromICC(fileName string, data []byte) (*models.ColorProfile, error) {
	info, err := proofing.ParseProfileInfo(data)
	if err != nil {
		return nil, err
	}

	kind := models.ColorProfileKindWorking
	if info.IsCMYK() || info.Class == "prtr" {
		kind = models.ColorProfileKindOutput
	}

	return &models.ColorProfile{
		Name:        profileName(fileName),
		Kind:        kind,
		Source:      models.ColorProfileSourceUpload,
		ColorSpace:  proofing.ColorSpaceName(info.ColorSpace),
		DeviceClass: proofing.ProfileClassName(info.Class),
		Version:     info.Version,
		Data:        data,
	}, nil
}

// profileName strips an .icc / .icm extension from a file name
func profileName(fileName string) string {
	ext := filepath.Ext(fileName)
	switch strings.ToLower(ext) {
	case ".icc", ".icm":
		return strings.TrimSuffix(fileName, ext)
	}
	return fileName
}
