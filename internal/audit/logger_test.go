package audit

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MasksEmailAndTagsAudit(t *testing.T) {
	var buf bytes.Buffer
	l := New(zerolog.New(&buf))

	l.Record("auth.signup", map[string]string{"user_id": "u1", "email": "alice@example.com"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, true, line["audit"])
	assert.Equal(t, "auth.signup", line["action"])
	assert.Equal(t, "u1", line["user_id"])
	assert.Equal(t, "al***@example.com", line["email"])
	assert.Equal(t, "info", line["level"])
}

func TestRecord_DeletesLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(zerolog.New(&buf))

	l.Record("employee.delete", map[string]string{"employee_id": "e1"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
}

func TestRecord_FailuresLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(zerolog.New(&buf))

	l.Record("auth.login", map[string]string{"result": "error", "error_code": "invalid_credentials"})
	l.Record("auth.login", map[string]string{"result": "success"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var failed, ok map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &failed))
	require.NoError(t, json.Unmarshal(lines[1], &ok))
	assert.Equal(t, "warn", failed["level"])
	assert.Equal(t, "info", ok["level"])
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":                "***",
		"a@b":             "***",
		"a@example.com":   "a***@example.com",
		"bob@example.com": "bo***@example.com",
		"not-an-email":    "***",
	}
	for in, want := range cases {
		assert.Equal(t, want, maskEmail(in), in)
	}
}
