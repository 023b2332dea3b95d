// internal/repository/store.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record has the requested identifier.
var ErrNotFound = errors.New("record not found")

// Query narrows a List call. Filters are column/value equality conditions.
type Query struct {
	Filters map[string]interface{}
	OrderBy string
	Offset  int
	Limit   int
}

// Store is the generic document store contract shared by every record kind.
type Store[T any] interface {
	Create(ctx context.Context, record *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, q Query) ([]T, int64, error)
	Save(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Transactor runs fn inside one transaction. Stores called with the ctx passed
// to fn join that transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
