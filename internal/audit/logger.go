package audit

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Logger writes business events (signups, role changes, deletions) as
// structured log lines tagged audit=true.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Record logs one event. Destructive actions and failures log at warn.
// Fields whose key contains "email" are masked.
// Its signature matches the audit hooks of the application services.
func (l *Logger) Record(action string, fields map[string]string) {
	ev := l.log.Info()
	if strings.HasSuffix(action, ".delete") || strings.HasSuffix(action, ".set_role") || fields["result"] == "error" {
		ev = l.log.Warn()
	}
	ev = ev.Str("action", action)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fields[k]
		if strings.Contains(k, "email") {
			v = maskEmail(v)
		}
		ev = ev.Str(k, v)
	}
	ev.Msg("audit")
}

// maskEmail partially masks email for privacy in logs
func maskEmail(email string) string {
	if len(email) < 5 {
		return "***"
	}
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return "***"
	}
	if at < 2 {
		return email[:1] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}
