package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/product-service/internal/core/domain"
	"github.com/niksmo/product-service/internal/core/port"
)

var _ port.ProductsService = (*Service)(nil)

const produceTimeout = 10 * time.Second

type Service struct {
	productsStorage port.ProductsStorage
	photoStorage    port.PhotoStorage
	eventsProducer  port.ProductEventsProducer
	now             func() time.Time
}

// New returns the product service.
//
// eventsProducer may be nil, then no change events are produced.
func New(
	productsStorage port.ProductsStorage,
	photoStorage port.PhotoStorage,
	eventsProducer port.ProductEventsProducer,
) *Service {
	return &Service{
		productsStorage: productsStorage,
		photoStorage:    photoStorage,
		eventsProducer:  eventsProducer,
		now:             time.Now,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.productsStorage.ReadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// CreateProduct writes the photo, if any, before inserting the row.
// A written photo is not removed when the insert fails.
func (s *Service) CreateProduct(
	ctx context.Context, in domain.ProductInput, photo *domain.Photo,
) (int64, error) {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	photoName, err := s.storePhoto(ctx, photo)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	p := domain.Product{
		Name:     in.Name,
		Quantity: in.Quantity,
		Price:    in.Price,
		Photo:    photoName,
	}

	id, err := s.productsStorage.InsertProduct(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	p.ID = id

	s.produceEvent(ctx, domain.ProductCreated, p)
	return id, nil
}

// UpdateProduct replaces name, quantity and price of the product.
// The stored photo is replaced only when a new one is given.
func (s *Service) UpdateProduct(
	ctx context.Context, id int64, in domain.ProductInput, photo *domain.Photo,
) (int64, error) {
	const op = "Service.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if in.Name == "" {
		return 0, fmt.Errorf("%s: %w", op, domain.ErrEmptyName)
	}

	photoName, err := s.storePhoto(ctx, photo)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.productsStorage.UpdateProduct(ctx, domain.Product{
		ID:       id,
		Name:     in.Name,
		Quantity: in.Quantity,
		Price:    in.Price,
		Photo:    photoName,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.produceEvent(ctx, domain.ProductUpdated, updated)
	return updated.ID, nil
}

// DeleteProduct removes the row only, the photo file stays on disk.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	const op = "Service.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.productsStorage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.produceEvent(ctx, domain.ProductDeleted, domain.Product{ID: id})
	return nil
}

func (s *Service) storePhoto(
	ctx context.Context, photo *domain.Photo,
) (*string, error) {
	if photo == nil {
		return nil, nil
	}

	name := domain.PhotoFilename(photo.Filename, s.now())
	if err := s.photoStorage.StorePhoto(ctx, name, photo.Content); err != nil {
		return nil, err
	}
	return &name, nil
}

// produceEvent reports the committed mutation. Failures are only logged:
// the row is already changed and the caller gets the store result.
// The event outlives a cancelled request context.
func (s *Service) produceEvent(
	ctx context.Context, t domain.EventType, p domain.Product,
) {
	const op = "Service.produceEvent"

	if s.eventsProducer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), produceTimeout)
	defer cancel()

	evt := domain.ProductEvent{Type: t, Product: p, OccurredAt: s.now()}
	if err := s.eventsProducer.ProduceEvent(ctx, evt); err != nil {
		slog.Error(
			"failed to produce product event",
			"op", op, "type", t, "productID", p.ID, "err", err,
		)
	}
}
