// internal/storage/instrumented.go
package storage

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/monitoring"
)

type instrumentedStore struct {
	next   AssetStore
	driver string
}

// WithMetrics records the outcome and latency of every call made through next.
func WithMetrics(next AssetStore, driver string) AssetStore {
	return &instrumentedStore{next: next, driver: driver}
}

func (s *instrumentedStore) Upload(ctx context.Context, content io.Reader, filename string) (*UploadResult, error) {
	start := time.Now()
	res, err := s.next.Upload(ctx, content, filename)
	s.observe("upload", start, err)
	return res, err
}

func (s *instrumentedStore) Destroy(ctx context.Context, assetID string) error {
	start := time.Now()
	err := s.next.Destroy(ctx, assetID)
	s.observe("destroy", start, err)
	return err
}

func (s *instrumentedStore) observe(operation string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
		logrus.WithFields(logrus.Fields{
			"driver":    s.driver,
			"operation": operation,
		}).WithError(err).Warn("Asset store call failed")
	}

	monitoring.AssetStoreOperations.WithLabelValues(s.driver, operation, result).Inc()
	monitoring.AssetStoreDuration.WithLabelValues(s.driver, operation).Observe(time.Since(start).Seconds())
}
