package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product := NewProduct(ProductPatch{
		Title: Some("Widget"),
		Price: Some(9.99),
	})

	assert.Empty(t, product.ID)
	require.NotNil(t, product.Title)
	assert.Equal(t, "Widget", *product.Title)
	require.NotNil(t, product.Price)
	assert.Equal(t, 9.99, *product.Price)
	assert.Nil(t, product.Brand)
}

func TestProductApply(t *testing.T) {
	product := NewProduct(ProductPatch{
		Title: Some("Widget"),
		Price: Some(9.99),
		Brand: Some("Acme"),
	})

	product.Apply(ProductPatch{Price: Some(12.50)})
	assert.Equal(t, "Widget", *product.Title)
	assert.Equal(t, 12.50, *product.Price)
	assert.Equal(t, "Acme", *product.Brand)

	product.Apply(ProductPatch{Brand: Null[string]()})
	assert.Nil(t, product.Brand)
	assert.Equal(t, "Widget", *product.Title)
}

func TestProductApplyEmptyPatch(t *testing.T) {
	product := NewProduct(ProductPatch{Title: Some("Widget")})
	before := product.Clone()

	patch := ProductPatch{}
	assert.True(t, patch.IsEmpty())
	product.Apply(patch)

	assert.Equal(t, before, product)
}

func TestProductClone(t *testing.T) {
	product := NewProduct(ProductPatch{Title: Some("Widget"), Price: Some(1.0)})
	product.ID = "abc"

	clone := product.Clone()
	*clone.Title = "Gadget"

	assert.Equal(t, "Widget", *product.Title)
	assert.Equal(t, "abc", clone.ID)
}
