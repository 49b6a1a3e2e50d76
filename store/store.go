package store

import (
	"context"
	"errors"

	"github.com/raushankrgupta/price-watcher/models"
)

// ErrNotFound is returned when a product id (or setting) has no record.
var ErrNotFound = errors.New("not found")

// ProductStore is the persistence boundary for tracked products and the
// notification language preference. Records are keyed individually, so
// writing one product never rewrites the rest.
type ProductStore interface {
	Get(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	// Put inserts or replaces the record keyed by its ID.
	Put(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error

	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
}
