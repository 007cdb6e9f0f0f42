package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"printshop-core/models"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// maxProfileDownload bounds a single ICC download
const maxProfileDownload = 16 << 20

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// ListProfiles lists all ICC profiles (.icc / .icm) in a Google Drive folder
func (ds *DriveService) ListProfiles(ctx context.Context, folderID string) ([]models.DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))

	var profiles []models.DriveFile
	scanned := 0
	err := ds.client.Files.List().
		Q(query).
		Fields("nextPageToken, files(id, name, mimeType, size)").
		Pages(ctx, func(page *drive.FileList) error {
			scanned += len(page.Files)
			for _, file := range page.Files {
				if !IsProfileFile(file.Name, file.MimeType) {
					continue
				}
				profiles = append(profiles, models.DriveFile{
					ID:       file.Id,
					Name:     file.Name,
					MimeType: file.MimeType,
					Size:     file.Size,
				})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in folder %s: %w", folderID, err)
	}

	log.Printf("🔍 ListProfiles: %d of %d file(s) in folder %s are ICC profiles", len(profiles), scanned, folderID)
	return profiles, nil
}

// DownloadFile downloads the content of a Drive file
func (ds *DriveService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileDownload+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	if len(data) > maxProfileDownload {
		return nil, fmt.Errorf("file %s exceeds %d bytes", fileID, maxProfileDownload)
	}
	return data, nil
}

// IsProfileFile reports whether a Drive file looks like an ICC profile
func IsProfileFile(name, mimeType string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".icc", ".icm":
		return true
	}
	return strings.EqualFold(mimeType, "application/vnd.iccprofile")
}
