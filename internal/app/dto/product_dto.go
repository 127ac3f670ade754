package dto

import (
	"github.com/mrops-br/products-api/internal/domain"
)

// ProductRequest represents the body of a create or update request.
// Only the fields present in the body are applied.
type ProductRequest struct {
	Title domain.Optional[string]  `json:"title" form:"title"`
	Price domain.Optional[float64] `json:"price" form:"price"`
	Brand domain.Optional[string]  `json:"brand" form:"brand"`
}

// ToPatch converts the request to a domain patch
func (r *ProductRequest) ToPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Title: r.Title,
		Price: r.Price,
		Brand: r.Brand,
	}
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID    string   `json:"id"`
	Title *string  `json:"title,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Brand *string  `json:"brand,omitempty"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
		Brand: p.Brand,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
