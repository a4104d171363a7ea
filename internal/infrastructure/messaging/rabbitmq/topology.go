package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/baechuer/peoplehub/internal/domain"
)

const (
	QueueVerification  = "mail.verification.queue"
	QueuePasswordReset = "mail.password_reset.queue"
	deadLetterKey      = "mail.dlq"
	QueueDeadLetter    = "mail.dlq.queue"
)

// Queues returns queue name by routing key.
func Queues() map[string]string {
	return map[string]string{
		RoutingKey(domain.CodeVerification):  QueueVerification,
		RoutingKey(domain.CodePasswordReset): QueuePasswordReset,
	}
}

// declareTopology is idempotent.
func declareTopology(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueDeadLetter, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", QueueDeadLetter, err)
	}
	if err := ch.QueueBind(QueueDeadLetter, deadLetterKey, exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", QueueDeadLetter, err)
	}

	for key, queue := range Queues() {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, amqp.Table{
			"x-dead-letter-exchange":    exchange,
			"x-dead-letter-routing-key": deadLetterKey,
		}); err != nil {
			return fmt.Errorf("declare %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, key, exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", queue, err)
		}
	}
	return nil
}
