// internal/tests/fakes.go
package tests

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/repository"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/storage"
)

// MemoryStore is an in-memory repository.Store. Every Create advances a
// private clock by one millisecond so creation order is always observable.
type MemoryStore[T any] struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]T
	base   func(*T) *models.BaseModel
	column func(*T, string) interface{}
	clock  time.Time

	CreateErr error
	SaveErr   error
	DeleteErr error
}

func NewMemoryStore[T any](base func(*T) *models.BaseModel, column func(*T, string) interface{}) *MemoryStore[T] {
	return &MemoryStore[T]{
		rows:   make(map[uuid.UUID]T),
		base:   base,
		column: column,
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func NewPDFStore() *MemoryStore[models.PDF] {
	return NewMemoryStore(
		func(p *models.PDF) *models.BaseModel { return &p.BaseModel },
		func(p *models.PDF, column string) interface{} {
			switch column {
			case "cloudinary_id":
				return p.CloudinaryID
			}
			return nil
		},
	)
}

func NewReservationStore() *MemoryStore[models.Reservation] {
	return NewMemoryStore(
		func(r *models.Reservation) *models.BaseModel { return &r.BaseModel },
		func(r *models.Reservation, column string) interface{} {
			switch column {
			case "status":
				return r.Status
			case "user_id":
				return r.UserID
			case "nft_id":
				return r.NFTID
			}
			return nil
		},
	)
}

func NewReferralLogStore() *MemoryStore[models.ReferralProfitLog] {
	return NewMemoryStore(
		func(l *models.ReferralProfitLog) *models.BaseModel { return &l.BaseModel },
		func(l *models.ReferralProfitLog, column string) interface{} {
			switch column {
			case "upline_user_id":
				return l.UplineUser
			case "downline_user_id":
				return l.DownlineUser
			case "reservation_id":
				return l.ReservationID
			case "team_type":
				return l.TeamType
			case "date":
				return l.Date
			}
			return nil
		},
	)
}

func (s *MemoryStore[T]) Create(_ context.Context, record *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return s.CreateErr
	}

	s.clock = s.clock.Add(time.Millisecond)
	b := s.base(record)
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = s.clock
	b.UpdatedAt = s.clock

	s.rows[b.ID] = *record
	return nil
}

func (s *MemoryStore[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (s *MemoryStore[T]) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.FindByID(ctx, id)
}

func (s *MemoryStore[T]) List(_ context.Context, q repository.Query) ([]T, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []T
	for _, row := range s.rows {
		row := row
		if s.matches(&row, q.Filters) {
			out = append(out, row)
		}
	}

	field, desc := parseOrder(q.OrderBy)
	sort.Slice(out, func(i, j int) bool {
		a, b := s.sortKey(&out[i], field), s.sortKey(&out[j], field)
		if desc {
			return a.After(b)
		}
		return a.Before(b)
	})

	total := int64(len(out))
	if q.Limit > 0 {
		if q.Offset >= len(out) {
			return []T{}, total, nil
		}
		end := q.Offset + q.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[q.Offset:end]
	}

	return out, total, nil
}

func (s *MemoryStore[T]) Save(_ context.Context, record *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	b := s.base(record)
	b.UpdatedAt = s.clock.Add(time.Millisecond)
	s.rows[b.ID] = *record
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Len returns the number of stored rows.
func (s *MemoryStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *MemoryStore[T]) matches(row *T, filters map[string]interface{}) bool {
	for column, want := range filters {
		if s.column(row, column) != want {
			return false
		}
	}
	return true
}

func (s *MemoryStore[T]) sortKey(row *T, field string) time.Time {
	if field != "created_at" {
		if t, ok := s.column(row, field).(time.Time); ok {
			return t
		}
	}
	return s.base(row).CreatedAt
}

func parseOrder(orderBy string) (string, bool) {
	parts := strings.Fields(orderBy)
	if len(parts) == 0 {
		return "created_at", true
	}
	desc := len(parts) < 2 || strings.EqualFold(parts[1], "desc")
	return parts[0], desc
}

// Transactor runs fn inline and counts calls.
type Transactor struct {
	mu    sync.Mutex
	Calls int
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}

// FakeAssetStore records calls instead of talking to a remote host.
type FakeAssetStore struct {
	mu        sync.Mutex
	seq       int
	assets    map[string][]byte
	Uploads   int
	Destroys  int
	Destroyed []string

	UploadErr  error
	DestroyErr error
}

var _ storage.AssetStore = (*FakeAssetStore)(nil)

func NewFakeAssetStore() *FakeAssetStore {
	return &FakeAssetStore{assets: make(map[string][]byte)}
}

func (f *FakeAssetStore) Upload(_ context.Context, content io.Reader, filename string) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Uploads++
	if f.UploadErr != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUpload, f.UploadErr)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return nil, err
	}

	f.seq++
	id := fmt.Sprintf("pdfs/asset_%d", f.seq)
	f.assets[id] = buf.Bytes()

	return &storage.UploadResult{
		SecureURL: "https://assets.example.test/raw/upload/" + id + ".pdf",
		AssetID:   id,
		Size:      int64(buf.Len()),
	}, nil
}

func (f *FakeAssetStore) Destroy(_ context.Context, assetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Destroys++
	if f.DestroyErr != nil {
		return fmt.Errorf("%w: %v", storage.ErrDestroy, f.DestroyErr)
	}

	f.Destroyed = append(f.Destroyed, assetID)
	delete(f.assets, assetID)
	return nil
}

// Has reports whether assetID is currently hosted.
func (f *FakeAssetStore) Has(assetID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.assets[assetID]
	return ok
}
