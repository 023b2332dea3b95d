// internal/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/config"
)

const pdfContentType = "application/pdf"

type S3Store struct {
	client s3iface.S3API
	config config.AWSConfig
	folder string
}

func NewS3Store(cfg config.AWSConfig, folder string) (*S3Store, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}

	// Without static keys the default credential chain applies.
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return newS3Store(s3.New(sess), cfg, folder), nil
}

func newS3Store(client s3iface.S3API, cfg config.AWSConfig, folder string) *S3Store {
	return &S3Store{
		client: client,
		config: cfg,
		folder: folder,
	}
}

func (s *S3Store) Upload(ctx context.Context, content io.Reader, filename string) (*UploadResult, error) {
	fileBytes, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file: %v", ErrUpload, err)
	}

	key := s.generateKey(filename)

	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(pdfContentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to upload to S3: %v", ErrUpload, err)
	}

	return &UploadResult{
		SecureURL: s.objectURL(key),
		AssetID:   key,
		Size:      int64(len(fileBytes)),
	}, nil
}

func (s *S3Store) Destroy(ctx context.Context, assetID string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete file from S3: %v", ErrDestroy, err)
	}

	return nil
}

func (s *S3Store) generateKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".pdf"
	}

	timestamp := time.Now().UTC().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if s.folder != "" {
		return fmt.Sprintf("%s/%s", s.folder, filename)
	}

	return filename
}

func (s *S3Store) objectURL(key string) string {
	if s.config.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.S3Bucket, s.config.Region, key)
}
