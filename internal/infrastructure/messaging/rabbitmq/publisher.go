package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/domain"
)

const (
	DefaultExchange = "peoplehub.mail"
	appID           = "peoplehub"

	// confirmWait bounds the wait for a broker ack when the caller has no deadline.
	confirmWait = 5 * time.Second
)

// RoutingKey maps a message kind to the key its queue is bound with.
func RoutingKey(kind domain.CodeKind) string {
	switch kind {
	case domain.CodePasswordReset:
		return "mail.password_reset"
	default:
		return "mail.verification"
	}
}

// Publisher is an auth.Notifier that queues mail for the mailer process.
// Send returns only after the broker confirmed the message as routed and persisted.
type Publisher struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	returns <-chan amqp.Return
}

// NewPublisher dials eagerly so a bad RABBIT_URL fails at startup.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &Publisher{url: url, exchange: exchange}
	if err := p.open(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) Send(ctx context.Context, msg auth.Message) error {
	if msg.To == "" || msg.Code == "" {
		return errors.New("rabbitmq: message needs a recipient and a code")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}
	key := RoutingKey(msg.Kind)

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, confirmWait)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		if err := p.open(); err != nil {
			return err
		}
	}
	p.drainReturns()

	dc, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, key, true, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		AppId:        appID,
		Type:         string(msg.Kind),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.close()
		return fmt.Errorf("rabbitmq publish %s: %w", key, err)
	}

	acked, err := dc.WaitContext(ctx)
	if err != nil {
		// the channel state is unknown after an abandoned confirm
		p.close()
		return fmt.Errorf("rabbitmq confirm %s: %w", key, err)
	}

	// basic.return precedes the ack for an unroutable mandatory message.
	select {
	case ret, ok := <-p.returns:
		if ok {
			return fmt.Errorf("rabbitmq unroutable %s: %d %s", key, ret.ReplyCode, ret.ReplyText)
		}
	default:
	}
	if !acked {
		return fmt.Errorf("rabbitmq nack %s", key)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.close()
	return nil
}

// open must be called with mu held (or before the publisher is shared).
func (p *Publisher) open() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := declareTopology(ch, p.exchange); err != nil {
		_ = conn.Close()
		return err
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq confirm mode: %w", err)
	}

	p.conn, p.ch = conn, ch
	p.returns = ch.NotifyReturn(make(chan amqp.Return, 1))
	return nil
}

func (p *Publisher) drainReturns() {
	for {
		select {
		case _, ok := <-p.returns:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (p *Publisher) close() {
	if p.conn != nil {
		// closing the connection closes its channels
		_ = p.conn.Close()
	}
	p.conn, p.ch, p.returns = nil, nil, nil
}
