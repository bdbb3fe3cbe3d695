package domain

import (
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("product name is empty")
)

type (
	// A Product is a row of the product table.
	//
	// Photo is nil until an image has been uploaded at least once.
	Product struct {
		ID       int64
		Name     string
		Quantity decimal.NullDecimal
		Price    decimal.NullDecimal
		Photo    *string
	}

	// A ProductInput carries the client supplied fields of create and update.
	ProductInput struct {
		Name     string
		Quantity decimal.NullDecimal
		Price    decimal.NullDecimal
	}

	// A Photo is an uploaded image before it is written to disk.
	Photo struct {
		Filename string
		Content  io.Reader
	}
)

type EventType string

const (
	ProductCreated EventType = "created"
	ProductUpdated EventType = "updated"
	ProductDeleted EventType = "deleted"
)

// A ProductEvent describes a committed product mutation.
//
// Only Product.ID is set for [ProductDeleted].
type ProductEvent struct {
	Type       EventType
	Product    Product
	OccurredAt time.Time
}
