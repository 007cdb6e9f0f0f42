package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"printshop-core/db"
	"printshop-core/models"
)

// ColorProfileRepository handles database operations for ICC profiles
// Implements ColorProfileRepositoryInterface
type ColorProfileRepository struct{}

// NewColorProfileRepository creates a new ColorProfileRepository
func NewColorProfileRepository() *ColorProfileRepository {
	return &ColorProfileRepository{}
}

// Ensure ColorProfileRepository implements ColorProfileRepositoryInterface
var _ ColorProfileRepositoryInterface = (*ColorProfileRepository)(nil)

// List returns profile metadata without the raw bytes
func (r *ColorProfileRepository) List(ctx context.Context) ([]models.ColorProfile, error) {
	query := `
		SELECT id, name, kind, source,
		       COALESCE(color_space, '') as color_space,
		       COALESCE(device_class, '') as device_class,
		       COALESCE(version, '') as version,
		       COALESCE(drive_file_id, '') as drive_file_id,
		       created_at
		FROM color_profiles
		ORDER BY kind ASC, name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list color profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.ColorProfile{}
	for rows.Next() {
		var p models.ColorProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.Source, &p.ColorSpace, &p.DeviceClass, &p.Version, &p.DriveFileID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan color profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetByID returns a profile including its ICC bytes
func (r *ColorProfileRepository) GetByID(ctx context.Context, id string) (*models.ColorProfile, error) {
	query := `
		SELECT id, name, kind, source,
		       COALESCE(color_space, ''), COALESCE(device_class, ''), COALESCE(version, ''),
		       COALESCE(drive_file_id, ''), data, created_at
		FROM color_profiles
		WHERE id::text = $1
	`

	var p models.ColorProfile
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Kind, &p.Source,
		&p.ColorSpace, &p.DeviceClass, &p.Version,
		&p.DriveFileID, &p.Data, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("color profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get color profile: %w", err)
	}
	log.Printf("🎨 GetByID: loaded profile %s (%s, %d bytes)", p.Name, p.ColorSpace, len(p.Data))
	return &p, nil
}

// ExistsByDriveFileID checks if a profile was already imported from Drive
func (r *ColorProfileRepository) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM color_profiles WHERE drive_file_id = $1)`
	if err := db.DB.QueryRowContext(ctx, query, driveFileID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// Insert stores a new profile and fills its generated ID and CreatedAt
func (r *ColorProfileRepository) Insert(ctx context.Context, p *models.ColorProfile) error {
	query := `
		INSERT INTO color_profiles (name, kind, source, color_space, device_class, version, drive_file_id, data)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
		RETURNING id, created_at
	`

	err := db.DB.QueryRowContext(ctx, query,
		p.Name, p.Kind, p.Source, p.ColorSpace, p.DeviceClass, p.Version, p.DriveFileID, p.Data,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		log.Printf("❌ Database INSERT error for color profile %s: %v", p.Name, err)
		return fmt.Errorf("failed to insert color profile: %w", err)
	}

	log.Printf("💾 Database: Successfully inserted color profile %s (id: %s)", p.Name, p.ID)
	return nil
}
