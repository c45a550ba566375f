package products

import (
	"context"

	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// Repository persists product records in insertion order.
type Repository interface {
	// Insert stores p in front of every existing record.
	Insert(ctx context.Context, p warranty.Product) error
	// DeleteByID removes the record; an unknown id is not an error.
	DeleteByID(ctx context.Context, id string) error
	// GetAll returns every record, newest first.
	GetAll(ctx context.Context) ([]warranty.Product, error)
	// GetByID returns common.ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*warranty.Product, error)
	// ReplaceAll swaps the whole list in one transaction. GetAll afterwards
	// returns the records in the order given.
	ReplaceAll(ctx context.Context, products []warranty.Product) error
}
