package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/niksmo/product-service/internal/core/domain"
	"github.com/niksmo/product-service/pkg/retry"
	"github.com/niksmo/product-service/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

var pingRetryConfig = retry.RetryConfig{
	MaxAttempts: 3,
	Backoff:     retry.LinearBackoff(500 * time.Millisecond),
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		)
		if err != nil {
			return err
		}

		err = retry.Do(ctx, pingRetryConfig, func() error {
			return cl.Ping(ctx)
		})
		if err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// producerWithClientOpt sets an already built client.
func producerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func productEventToSchemaV1(v domain.ProductEvent) (s schema.ProductEventV1) {
	s.Type = string(v.Type)
	s.ProductID = v.Product.ID
	s.Name = v.Product.Name
	if v.Product.Quantity.Valid {
		q := v.Product.Quantity.Decimal.String()
		s.Quantity = &q
	}
	if v.Product.Price.Valid {
		p := v.Product.Price.Decimal.String()
		s.Price = &p
	}
	s.Photo = v.Product.Photo
	s.OccurredAt = v.OccurredAt
	return
}
