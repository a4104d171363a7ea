package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/baechuer/peoplehub/internal/application/auth"
)

// Consumer drains the mail queues into a notifier, typically the SMTP one.
// Permanent failures and malformed payloads are dead-lettered; anything
// else is requeued once and dead-lettered on redelivery.
type Consumer struct {
	url      string
	exchange string
	prefetch int
	workers  int

	sink      auth.Notifier
	permanent func(error) bool
	lg        zerolog.Logger
}

type ConsumerOption func(*Consumer)

func WithPrefetch(n int) ConsumerOption {
	return func(c *Consumer) {
		if n > 0 {
			c.prefetch = n
		}
	}
}

func WithWorkers(n int) ConsumerOption {
	return func(c *Consumer) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithExchange(name string) ConsumerOption {
	return func(c *Consumer) {
		if name != "" {
			c.exchange = name
		}
	}
}

// WithPermanent sets the classifier for errors that must not be retried.
func WithPermanent(fn func(error) bool) ConsumerOption {
	return func(c *Consumer) { c.permanent = fn }
}

func NewConsumer(url string, sink auth.Notifier, lg zerolog.Logger, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		url:       url,
		exchange:  DefaultExchange,
		prefetch:  10,
		workers:   4,
		sink:      sink,
		permanent: func(error) bool { return false },
		lg:        lg.With().Str("component", "mail_consumer").Logger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run blocks until ctx is cancelled or the broker closes the connection.
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if err := declareTopology(ch, c.exchange); err != nil {
		return err
	}
	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries := make(chan amqp.Delivery)
	var feeders sync.WaitGroup
	for _, queue := range Queues() {
		msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", queue, err)
		}
		feeders.Add(1)
		go func() {
			defer feeders.Done()
			for d := range msgs {
				select {
				case deliveries <- d:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		feeders.Wait()
		close(deliveries)
	}()

	var workers sync.WaitGroup
	for range c.workers {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for d := range deliveries {
				c.handle(ctx, d)
			}
		}()
	}

	c.lg.Info().Int("workers", c.workers).Msg("mail consumer started")

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-ctx.Done():
		_ = ch.Close()
		workers.Wait()
		c.lg.Info().Msg("mail consumer stopped")
		return nil
	case amqpErr := <-closed:
		workers.Wait()
		if amqpErr != nil {
			return fmt.Errorf("rabbitmq connection closed: %w", amqpErr)
		}
		return errors.New("rabbitmq connection closed")
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var msg auth.Message
	if err := json.Unmarshal(d.Body, &msg); err != nil || msg.To == "" || msg.Code == "" {
		c.lg.Error().Err(err).Str("routing_key", d.RoutingKey).Msg("malformed mail message")
		_ = d.Reject(false)
		return
	}

	err := c.sink.Send(ctx, msg)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case c.permanent(err):
		c.lg.Error().Err(err).Str("kind", string(msg.Kind)).Msg("mail delivery failed permanently")
		_ = d.Reject(false)
	case d.Redelivered:
		c.lg.Error().Err(err).Str("kind", string(msg.Kind)).Msg("mail delivery failed after retry")
		_ = d.Reject(false)
	default:
		c.lg.Warn().Err(err).Str("kind", string(msg.Kind)).Msg("mail delivery failed, requeueing")
		_ = d.Nack(false, true)
	}
}
