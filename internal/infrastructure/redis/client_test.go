package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Ping(t *testing.T) {
	t.Run("refused", func(t *testing.T) {
		c := New("127.0.0.1:1", "", 0)
		t.Cleanup(func() { _ = c.Close() })

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := c.Ping(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "127.0.0.1:1")
	})

	t.Run("miniredis", func(t *testing.T) {
		mr, c := newMini(t)
		assert.Equal(t, mr.Addr(), c.Addr())
		assert.NoError(t, c.Ping(context.Background()))
	})
}
