package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/product-service/internal/core/domain"
	"github.com/niksmo/product-service/internal/core/port"
)

var _ port.ProductsStorage = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

// ReadProducts returns every row in the order the database yields them.
func (r ProductsRepository) ReadProducts(
	ctx context.Context,
) (ps []domain.Product, readErr error) {
	const op = "ProductsRepository.ReadProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, name, quantity, price, photo FROM product;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	ps = make([]domain.Product, 0)
	for rows.Next() {
		var (
			v     domain.Product
			photo sql.NullString
		)
		err := rows.Scan(&v.ID, &v.Name, &v.Quantity, &v.Price, &photo)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		v.Photo = fromNullString(photo)
		ps = append(ps, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) InsertProduct(
	ctx context.Context, p domain.Product,
) (int64, error) {
	const op = "ProductsRepository.InsertProduct"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO product (name, quantity, price, photo)
		VALUES ($1, $2, $3, $4)
		RETURNING id;`

	var id int64
	err := r.sqldb.QueryRowContext(
		ctx, query, p.Name, p.Quantity, p.Price, toNullString(p.Photo),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateProduct overwrites name, quantity and price in a single statement.
// A nil p.Photo keeps the stored value, so no prior read is needed.
func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE product
		SET name = $1, price = $2, quantity = $3, photo = COALESCE($4, photo)
		WHERE id = $5
		RETURNING id, photo;`

	var photo sql.NullString
	err := r.sqldb.QueryRowContext(
		ctx, query, p.Name, p.Price, p.Quantity, toNullString(p.Photo), p.ID,
	).Scan(&p.ID, &photo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrProductNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Photo = fromNullString(photo)
	return p, nil
}

func (r ProductsRepository) DeleteProduct(ctx context.Context, id int64) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM product WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
