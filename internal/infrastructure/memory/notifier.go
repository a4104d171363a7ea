package memory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/baechuer/peoplehub/internal/application/auth"
)

// LogNotifier writes outgoing messages to the log instead of delivering them.
// It backs development setups without SMTP or RabbitMQ; config rejects it elsewhere.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(lg zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: lg.With().Str("component", "log_notifier").Logger()}
}

// Send never delivers. The code itself is only written at debug level.
func (n *LogNotifier) Send(ctx context.Context, msg auth.Message) error {
	n.log.Info().
		Str("to", msg.To).
		Str("kind", string(msg.Kind)).
		Msg("[noop-notify] message not delivered")
	n.log.Debug().
		Str("to", msg.To).
		Str("kind", string(msg.Kind)).
		Str("code", msg.Code).
		Msg("[noop-notify] one-time code")
	return nil
}
