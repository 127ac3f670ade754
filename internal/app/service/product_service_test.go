package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mrops-br/products-api/internal/app/dto"
	"github.com/mrops-br/products-api/internal/domain"
	"github.com/mrops-br/products-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

var errStoreDown = errors.New("store unavailable")

// failingRepository fails every call with errStoreDown
type failingRepository struct{}

func (failingRepository) Create(context.Context, *domain.Product) error { return errStoreDown }
func (failingRepository) FindByID(context.Context, string) (*domain.Product, error) {
	return nil, errStoreDown
}
func (failingRepository) FindAll(context.Context) ([]*domain.Product, error) {
	return nil, errStoreDown
}
func (failingRepository) Update(context.Context, string, domain.ProductPatch) (*domain.Product, error) {
	return nil, errStoreDown
}
func (failingRepository) Delete(context.Context, string) error { return errStoreDown }

func newTestService(repo domain.ProductRepository) *ProductService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	if repo == nil {
		repo = memory.NewProductRepository(tracer, logger)
	}
	return NewProductService(repo, tracer, metricnoop.NewMeterProvider().Meter("test"), logger)
}

func widgetRequest() *dto.ProductRequest {
	return &dto.ProductRequest{
		Title: domain.Some("Widget"),
		Price: domain.Some(9.99),
		Brand: domain.Some("Acme"),
	}
}

func TestListProductsEmpty(t *testing.T) {
	svc := newTestService(nil)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCreateProduct(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, widgetRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Widget", *created.Title)
	assert.Equal(t, 9.99, *created.Price)
	assert.Equal(t, "Acme", *created.Brand)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created, products[0])
}

func TestUpdateProductChangesOnlySuppliedFields(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, widgetRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID, &dto.ProductRequest{Price: domain.Some(12.50)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 12.50, *updated.Price)
	assert.Equal(t, "Widget", *updated.Title)
	assert.Equal(t, "Acme", *updated.Brand)
}

func TestUpdateProductEmptyRequestLeavesRecordUnchanged(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, widgetRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID, &dto.ProductRequest{})
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestUpdateProductMissingReturnsNil(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	updated, err := svc.UpdateProduct(ctx, "missing", &dto.ProductRequest{Price: domain.Some(12.50)})
	require.NoError(t, err)
	assert.Nil(t, updated)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDeleteProduct(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, widgetRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGetProductByIDNotFound(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.GetProductByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStoreFailuresPropagate(t *testing.T) {
	svc := newTestService(failingRepository{})
	ctx := context.Background()

	_, err := svc.ListProducts(ctx)
	assert.ErrorIs(t, err, errStoreDown)

	_, err = svc.CreateProduct(ctx, widgetRequest())
	assert.ErrorIs(t, err, errStoreDown)

	_, err = svc.GetProductByID(ctx, "id")
	assert.ErrorIs(t, err, errStoreDown)

	_, err = svc.UpdateProduct(ctx, "id", widgetRequest())
	assert.ErrorIs(t, err, errStoreDown)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, "id"), errStoreDown)
}
