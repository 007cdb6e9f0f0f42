package service

import (
	"context"

	"printshop-core/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListProfiles(ctx context.Context, folderID string) ([]models.DriveFile, error)
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}
