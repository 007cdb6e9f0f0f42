package service

import (
	"context"

	"printshop-core/models"
)

// ProfileSyncServiceInterface defines the contract for importing ICC profiles
type ProfileSyncServiceInterface interface {
	// SyncProfiles imports every ICC profile in a Drive folder that is not yet stored.
	// Files already present (by drive_file_id) are skipped; unreadable files are counted as failed.
	SyncProfiles(ctx context.Context, folderID string) (*models.ProfileSyncResult, error)
}
