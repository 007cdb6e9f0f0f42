package models

import "time"

// Color profile kinds
const (
	ColorProfileKindWorking = "WORKING"
	ColorProfileKindOutput  = "OUTPUT"
	ColorProfileKindBuiltin = "BUILTIN"
)

// Color profile sources
const (
	ColorProfileSourceUpload         = "UPLOAD"
	ColorProfileSourceProductDefault = "PRODUCT_DEFAULT"
	ColorProfileSourceBuiltin        = "BUILTIN"
	ColorProfileSourceDrive          = "DRIVE"
)

// ColorProfile is an ICC profile with its parsed header metadata
type ColorProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Source      string    `json:"source"`
	ColorSpace  string    `json:"colorSpace"`
	DeviceClass string    `json:"deviceClass"`
	Version     string    `json:"version"`
	DriveFileID string    `json:"driveFileId,omitempty"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DriveFile is a file listed from a Google Drive folder
type DriveFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// ProfileSyncResult summarises a Drive → database profile import
type ProfileSyncResult struct {
	FolderID string   `json:"folderId"`
	Total    int      `json:"total"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
