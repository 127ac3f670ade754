package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mrops-br/products-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRepository() *ProductRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProductRepository(noop.NewTracerProvider().Tracer("test"), logger)
}

func TestProductRepositoryCreateAssignsID(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	product := domain.NewProduct(domain.ProductPatch{Title: domain.Some("Widget")})
	require.NoError(t, repo.Create(ctx, product))
	assert.NotEmpty(t, product.ID)

	other := domain.NewProduct(domain.ProductPatch{})
	require.NoError(t, repo.Create(ctx, other))
	assert.NotEqual(t, product.ID, other.ID)
}

func TestProductRepositoryFindAll(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	first := domain.NewProduct(domain.ProductPatch{Title: domain.Some("first")})
	second := domain.NewProduct(domain.ProductPatch{Title: domain.Some("second")})
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	products, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first, products[0])
	assert.Equal(t, second, products[1])
}

func TestProductRepositoryUpdate(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	product := domain.NewProduct(domain.ProductPatch{
		Title: domain.Some("Widget"),
		Price: domain.Some(9.99),
	})
	require.NoError(t, repo.Create(ctx, product))

	updated, err := repo.Update(ctx, product.ID, domain.ProductPatch{Price: domain.Some(12.50)})
	require.NoError(t, err)
	assert.Equal(t, 12.50, *updated.Price)
	assert.Equal(t, "Widget", *updated.Title)

	stored, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestProductRepositoryUpdateMissing(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, "missing", domain.ProductPatch{Price: domain.Some(1.0)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepositoryDelete(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	product := domain.NewProduct(domain.ProductPatch{Title: domain.Some("Widget")})
	require.NoError(t, repo.Create(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.ErrorIs(t, repo.Delete(ctx, product.ID), domain.ErrProductNotFound)

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepositoryReturnsCopies(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	product := domain.NewProduct(domain.ProductPatch{Title: domain.Some("Widget")})
	require.NoError(t, repo.Create(ctx, product))

	*product.Title = "changed by caller"

	stored, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", *stored.Title)
}
