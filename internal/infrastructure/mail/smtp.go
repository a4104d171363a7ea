package mail

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/baechuer/peoplehub/internal/application/auth"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
	Insecure bool
}

// SMTPNotifier delivers one-time codes directly over SMTP.
type SMTPNotifier struct {
	cfg      SMTPConfig
	renderer *Renderer
	lg       zerolog.Logger

	// dial is swapped in tests
	dial func(ctx context.Context, m *gomail.Msg) error
}

func NewSMTPNotifier(cfg SMTPConfig, renderer *Renderer, lg zerolog.Logger) *SMTPNotifier {
	if cfg.FromName == "" {
		cfg.FromName = "PeopleHub Team"
	}
	n := &SMTPNotifier{
		cfg:      cfg,
		renderer: renderer,
		lg:       lg.With().Str("component", "smtp_notifier").Logger(),
	}
	n.dial = n.dialAndSend
	return n
}

func (n *SMTPNotifier) Send(ctx context.Context, msg auth.Message) error {
	r, err := n.renderer.Render(msg)
	if err != nil {
		return err
	}
	m, err := n.build(msg.To, r)
	if err != nil {
		return err
	}

	if n.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.Timeout)
		defer cancel()
	}

	if err := n.dial(ctx, m); err != nil {
		n.lg.Error().Err(err).Str("kind", string(msg.Kind)).Msg("smtp send failed")
		text := err.Error()
		if containsAny(text, "535", "5.7.8", "authentication", "Username and Password not accepted") {
			return PermanentError{msg: "smtp auth failed: " + text}
		}
		return TemporaryError{msg: "smtp transient failure: " + text}
	}
	n.lg.Info().Str("kind", string(msg.Kind)).Msg("smtp send ok")
	return nil
}

func (n *SMTPNotifier) build(to string, r Rendered) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(n.cfg.FromName, n.cfg.From); err != nil {
		return nil, PermanentError{msg: "invalid from address: " + err.Error()}
	}
	if err := m.To(to); err != nil {
		return nil, PermanentError{msg: "invalid to address: " + err.Error()}
	}
	m.Subject(r.Subject)
	m.SetBodyString(gomail.TypeTextPlain, r.Text)
	m.AddAlternativeString(gomail.TypeTextHTML, r.HTML)
	return m, nil
}

func (n *SMTPNotifier) dialAndSend(ctx context.Context, m *gomail.Msg) error {
	tlsPolicy := gomail.TLSMandatory
	if n.cfg.Insecure {
		tlsPolicy = gomail.TLSOpportunistic
	}
	opts := []gomail.Option{
		gomail.WithPort(n.cfg.Port),
		gomail.WithTLSPolicy(tlsPolicy),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(n.cfg.Username),
			gomail.WithPassword(n.cfg.Password),
		)
	}

	c, err := gomail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return PermanentError{msg: "smtp client init failed: " + err.Error()}
	}
	return c.DialAndSendWithContext(ctx, m)
}

func containsAny(s string, subs ...string) bool {
	for _, x := range subs {
		if x != "" && strings.Contains(s, x) {
			return true
		}
	}
	return false
}
