package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const ProductEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "products",
	"name": "product_event",
	"fields" : [
		{"name": "type", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "name", "type": "string"},
		{"name": "quantity", "type": ["null", "string"], "default": null},
		{"name": "price", "type": ["null", "string"], "default": null},
		{"name": "photo", "type": ["null", "string"], "default": null},
		{
			"name": "occurred_at",
			"type": {"type": "long", "logicalType": "timestamp-millis"}
		}
	]
}`

// A ProductEventV1 carries numeric columns in their decimal text form,
// nil when the column is NULL.
type ProductEventV1 struct {
	Type       string    `avro:"type"`
	ProductID  int64     `avro:"product_id"`
	Name       string    `avro:"name"`
	Quantity   *string   `avro:"quantity"`
	Price      *string   `avro:"price"`
	Photo      *string   `avro:"photo"`
	OccurredAt time.Time `avro:"occurred_at"`
}

// productEventV1Avro panics if the schema text is broken.
func productEventV1Avro() avro.Schema {
	return avro.MustParse(ProductEventSchemaTextV1)
}
