package httphandler

import (
	"github.com/niksmo/product-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	// Numeric columns are rendered as JSON strings, or null.
	Product struct {
		ID       int64               `json:"id"`
		Name     string              `json:"name"`
		Quantity decimal.NullDecimal `json:"quantity"`
		Price    decimal.NullDecimal `json:"price"`
		Photo    *string             `json:"photo"`
	}

	ProductInput struct {
		Name     string              `json:"name"`
		Quantity decimal.NullDecimal `json:"quantity"`
		Price    decimal.NullDecimal `json:"price"`
	}

	ProductsResponse struct {
		Products []Product `json:"products"`
	}

	ProductID struct {
		ID int64 `json:"id"`
	}

	CreateProductResponse struct {
		Data ProductID `json:"data"`
	}

	EditProductResponse struct {
		Message        string    `json:"message"`
		UpdatedProduct ProductID `json:"updatedProduct"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)

func fromDomain(ps []domain.Product) []Product {
	res := make([]Product, len(ps))
	for i, p := range ps {
		res[i] = Product{
			ID:       p.ID,
			Name:     p.Name,
			Quantity: p.Quantity,
			Price:    p.Price,
			Photo:    p.Photo,
		}
	}
	return res
}
