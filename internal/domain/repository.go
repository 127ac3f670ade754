package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	// Create stores a new product and assigns its ID
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	// Update applies the patch to the stored product and returns the result.
	// ErrProductNotFound is returned when no product has the given ID.
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	// Delete removes the product. ErrProductNotFound is returned when nothing was removed.
	Delete(ctx context.Context, id string) error
}
