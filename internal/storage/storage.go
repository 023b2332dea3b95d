// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/config"
)

var (
	ErrUpload  = errors.New("asset upload failed")
	ErrDestroy = errors.New("asset destroy failed")
)

// UploadResult identifies an asset accepted by the remote host.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	AssetID   string `json:"asset_id"`
	Size      int64  `json:"size,omitempty"`
}

// AssetStore uploads and destroys binary assets on a remote host.
// Each call is a single attempt.
type AssetStore interface {
	Upload(ctx context.Context, content io.Reader, filename string) (*UploadResult, error)
	Destroy(ctx context.Context, assetID string) error
}

// New builds the asset store selected by cfg.Storage.Driver.
func New(cfg *config.Config) (AssetStore, error) {
	var (
		store AssetStore
		err   error
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverCloudinary:
		store, err = NewCloudinaryStore(cfg.Cloudinary, cfg.Storage.Folder)
	case config.StorageDriverS3:
		store, err = NewS3Store(cfg.AWS, cfg.Storage.Folder)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	return WithMetrics(store, cfg.Storage.Driver), nil
}
