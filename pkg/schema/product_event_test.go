package schema

import (
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductEventV1(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("Regular", func(t *testing.T) {
		vMarshal := ProductEventV1{
			Type:       "updated",
			ProductID:  42,
			Name:       "Widget",
			Quantity:   strPtr("5"),
			Price:      strPtr("9.99"),
			Photo:      strPtr("1700000000000-widget.png"),
			OccurredAt: time.UnixMilli(1700000000000).UTC(),
		}

		var eventSchema avro.Schema
		require.NotPanics(t, func() {
			eventSchema = productEventV1Avro()
		})

		data, err := avro.Marshal(eventSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductEventV1
		err = avro.Unmarshal(eventSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.Type, vUnmarshal.Type)
		assert.Equal(t, vMarshal.ProductID, vUnmarshal.ProductID)
		assert.Equal(t, vMarshal.Name, vUnmarshal.Name)
		assert.Equal(t, vMarshal.Quantity, vUnmarshal.Quantity)
		assert.Equal(t, vMarshal.Price, vUnmarshal.Price)
		assert.Equal(t, vMarshal.Photo, vUnmarshal.Photo)
		assert.True(t, vMarshal.OccurredAt.Equal(vUnmarshal.OccurredAt))
	})

	t.Run("NullFields", func(t *testing.T) {
		vMarshal := ProductEventV1{
			Type:       "deleted",
			ProductID:  42,
			OccurredAt: time.UnixMilli(1700000000000).UTC(),
		}

		eventSchema := productEventV1Avro()
		data, err := avro.Marshal(eventSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductEventV1
		err = avro.Unmarshal(eventSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, "deleted", vUnmarshal.Type)
		assert.Empty(t, vUnmarshal.Name)
		assert.Nil(t, vUnmarshal.Quantity)
		assert.Nil(t, vUnmarshal.Price)
		assert.Nil(t, vUnmarshal.Photo)
	})
}
