package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"printshop-core/models"
	"printshop-core/proofing"
	"printshop-core/repository"
)

// iccProfile builds a minimal valid ICC header for the given class and colour space
func iccProfile(class, space string) []byte {
	data := make([]byte, 128)
	binary.BigEndian.PutUint32(data[0:4], 128)
	data[8], data[9] = 2, 0x10
	copy(data[12:16], class)
	copy(data[16:20], space)
	copy(data[20:24], "XYZ ")
	copy(data[36:40], "acsp")
	return data
}

// halfCMM proofs by halving every channel, which puts bright colours out of gamut
type halfCMM struct {
	mu     sync.Mutex
	builds int
}

type nopProfile struct{}

func (nopProfile) Close() error { return nil }

type halfTransform struct{ cmyk bool }

func (halfTransform) Close() error { return nil }

func (t halfTransform) Apply(src, dst []byte, n int) error {
	for i := 0; i < n; i++ {
		if t.cmyk {
			copy(dst[i*4:i*4+4], []byte{255 - src[i*3], 255 - src[i*3+1], 255 - src[i*3+2], 0})
			continue
		}
		dst[i*3], dst[i*3+1], dst[i*3+2] = src[i*3]/2, src[i*3+1]/2, src[i*3+2]/2
	}
	return nil
}

func (c *halfCMM) OpenProfile(data []byte) (proofing.Profile, error) {
	if _, err := proofing.ParseProfileInfo(data); err != nil {
		return nil, err
	}
	return nopProfile{}, nil
}

func (c *halfCMM) NewProofingTransform(input, output, proof proofing.Profile, intent, proofingIntent proofing.Intent) (proofing.Transform, error) {
	c.mu.Lock()
	c.builds++
	c.mu.Unlock()
	return halfTransform{}, nil
}

func (c *halfCMM) NewCMYKTransform(input, output proofing.Profile, intent proofing.Intent) (proofing.Transform, error) {
	return halfTransform{cmyk: true}, nil
}

func (c *halfCMM) buildCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}

// memColorProfileRepo is an in-memory ColorProfileRepositoryInterface
type memColorProfileRepo struct {
	mu       sync.Mutex
	profiles []models.ColorProfile
	failList bool
}

var _ repository.ColorProfileRepositoryInterface = (*memColorProfileRepo)(nil)

func (r *memColorProfileRepo) List(ctx context.Context) ([]models.ColorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errors.New("db down")
	}
	out := make([]models.ColorProfile, len(r.profiles))
	copy(out, r.profiles)
	return out, nil
}

func (r *memColorProfileRepo) GetByID(ctx context.Context, id string) (*models.ColorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("color profile %s: %w", id, repository.ErrNotFound)
}

func (r *memColorProfileRepo) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.DriveFileID == driveFileID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memColorProfileRepo) Insert(ctx context.Context, profile *models.ColorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.ID = fmt.Sprintf("p%d", len(r.profiles)+1)
	r.profiles = append(r.profiles, *profile)
	return nil
}

// fakeDrive serves files from memory
type fakeDrive struct {
	files    []models.DriveFile
	contents map[string][]byte
	listErr  error
}

var _ DriveServiceInterface = (*fakeDrive)(nil)

func (d *fakeDrive) ListProfiles(ctx context.Context, folderID string) ([]models.DriveFile, error) {
	return d.files, d.listErr
}

func (d *fakeDrive) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	data, ok := d.contents[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s: not found", fileID)
	}
	return data, nil
}
