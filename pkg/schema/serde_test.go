package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/niksmo/product-service/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeProductEventV1(t *testing.T) {
	subject := "product-events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("RegistryError", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		registryErr := errors.New("registry unavailable")
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductEventSchemaTextV1,
		).Return(0, registryErr)

		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		assert.ErrorIs(t, err, registryErr)
	})

	t.Run("Encode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductEventSchemaTextV1,
		).Return(3, nil)

		serde, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		price := "12"
		eventValue1 := schema.ProductEventV1{
			Type:       "updated",
			ProductID:  7,
			Name:       "Widget2",
			Price:      &price,
			OccurredAt: time.UnixMilli(1700000000000).UTC(),
		}

		encodedData, err := serde.Encode(eventValue1)
		require.NoError(t, err)

		// magic byte and big endian schema id
		require.Greater(t, len(encodedData), 5)
		assert.Equal(t, []byte{0, 0, 0, 0, 3}, encodedData[:5])

		eventSchema, err := avro.Parse(schema.ProductEventSchemaTextV1)
		require.NoError(t, err)

		var eventValue2 schema.ProductEventV1
		err = avro.Unmarshal(eventSchema, encodedData[5:], &eventValue2)
		require.NoError(t, err)

		assert.Equal(t, eventValue1.Type, eventValue2.Type)
		assert.Equal(t, eventValue1.ProductID, eventValue2.ProductID)
		assert.Equal(t, eventValue1.Name, eventValue2.Name)
		assert.Equal(t, eventValue1.Price, eventValue2.Price)
		assert.Nil(t, eventValue2.Photo)
		assert.True(t, eventValue1.OccurredAt.Equal(eventValue2.OccurredAt))
	})
}
