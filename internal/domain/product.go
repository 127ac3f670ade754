package domain

// Product represents the product entity.
// Every field except ID is optional; a nil pointer means the field is absent.
type Product struct {
	ID    string
	Title *string
	Price *float64
	Brand *string
}

// ProductPatch carries the fields supplied by a create or update request
type ProductPatch struct {
	Title Optional[string]
	Price Optional[float64]
	Brand Optional[string]
}

// IsEmpty reports whether the patch touches no field
func (p ProductPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Price.Set && !p.Brand.Set
}

// NewProduct builds a product from a patch. The ID is left for the repository to assign.
func NewProduct(patch ProductPatch) *Product {
	product := &Product{}
	product.Apply(patch)
	return product
}

// Apply writes the supplied fields of the patch onto the product
func (p *Product) Apply(patch ProductPatch) {
	p.Title = applyField(p.Title, patch.Title)
	p.Price = applyField(p.Price, patch.Price)
	p.Brand = applyField(p.Brand, patch.Brand)
}

// Clone returns a deep copy of the product
func (p *Product) Clone() *Product {
	return &Product{
		ID:    p.ID,
		Title: clonePtr(p.Title),
		Price: clonePtr(p.Price),
		Brand: clonePtr(p.Brand),
	}
}

func applyField[T any](current *T, field Optional[T]) *T {
	switch {
	case !field.Set:
		return current
	case field.Null:
		return nil
	default:
		v := field.Value
		return &v
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
