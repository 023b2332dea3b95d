// internal/storage/cloudinary.go
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/config"
)

const (
	cloudinaryResourceType = "raw"
	cloudinaryFormat       = "pdf"
)

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg config.CloudinaryConfig, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, content io.Reader, filename string) (*UploadResult, error) {
	res, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: cloudinaryResourceType,
		Format:       cloudinaryFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpload, filename, err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrUpload, filename, res.Error.Message)
	}

	return &UploadResult{
		SecureURL: res.SecureURL,
		AssetID:   res.PublicID,
		Size:      int64(res.Bytes),
	}, nil
}

func (s *CloudinaryStore) Destroy(ctx context.Context, assetID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     assetID,
		ResourceType: cloudinaryResourceType,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestroy, assetID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("%w: %s: %s", ErrDestroy, assetID, res.Error.Message)
	}

	// "not found" means the asset is already gone.
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("%w: %s: unexpected result %q", ErrDestroy, assetID, res.Result)
	}

	return nil
}
