package port

import (
	"context"
	"io"

	"github.com/niksmo/product-service/internal/core/domain"
)

type ProductsLister interface {
	ListProducts(context.Context) ([]domain.Product, error)
}

type ProductCreator interface {
	CreateProduct(context.Context, domain.ProductInput, *domain.Photo) (int64, error)
}

type ProductUpdater interface {
	UpdateProduct(
		ctx context.Context, id int64, in domain.ProductInput, photo *domain.Photo,
	) (int64, error)
}

type ProductDeleter interface {
	DeleteProduct(ctx context.Context, id int64) error
}

type ProductsService interface {
	ProductsLister
	ProductCreator
	ProductUpdater
	ProductDeleter
}

// A ProductsStorage keeps product rows.
//
// UpdateProduct keeps the stored photo when p.Photo is nil.
type ProductsStorage interface {
	ReadProducts(context.Context) ([]domain.Product, error)
	InsertProduct(ctx context.Context, p domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type PhotoStorage interface {
	StorePhoto(ctx context.Context, name string, r io.Reader) error
}

type ProductEventsProducer interface {
	ProduceEvent(context.Context, domain.ProductEvent) error
}

type HealthChecker interface {
	Ping(context.Context) error
}
