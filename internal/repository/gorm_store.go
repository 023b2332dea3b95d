// internal/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/database"
)

type txKey struct{}

// GormStore implements Store for one model type over a gorm connection.
type GormStore[T any] struct {
	db *gorm.DB
}

func NewGormStore[T any](db *gorm.DB) *GormStore[T] {
	return &GormStore[T]{db: db}
}

func (s *GormStore[T]) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

func (s *GormStore[T]) Create(ctx context.Context, record *T) error {
	if err := s.conn(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

func (s *GormStore[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.first(s.conn(ctx), id)
}

func (s *GormStore[T]) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.first(s.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (s *GormStore[T]) first(db *gorm.DB, id uuid.UUID) (*T, error) {
	var record T
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &record, nil
}

func (s *GormStore[T]) List(ctx context.Context, q Query) ([]T, int64, error) {
	var (
		records []T
		total   int64
	)

	query := s.conn(ctx).Model(new(T))
	for column, value := range q.Filters {
		query = query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}

	if q.Limit > 0 {
		if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to count records: %w", err)
		}
	}

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	find := query.Session(&gorm.Session{}).Order(orderBy)
	if q.Limit > 0 {
		find = find.Offset(q.Offset).Limit(q.Limit)
	}

	if err := find.Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}

	if q.Limit <= 0 {
		total = int64(len(records))
	}

	return records, total, nil
}

func (s *GormStore[T]) Save(ctx context.Context, record *T) error {
	if err := s.conn(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *GormStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.conn(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormTransactor implements Transactor. Nested calls reuse the outer transaction.
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

func (t *GormTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return database.WithTransaction(t.db.WithContext(ctx), func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
