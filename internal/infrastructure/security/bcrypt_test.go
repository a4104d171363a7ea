package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baechuer/peoplehub/internal/domain"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Str0ng!pw")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!pw", hash)

	assert.NoError(t, h.Compare(hash, "Str0ng!pw"))

	err = h.Compare(hash, "wrong")
	assert.True(t, domain.Is(err, "invalid_credentials"), "got %v", err)

	err = h.Compare("not-a-bcrypt-hash", "Str0ng!pw")
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	assert.True(t, domain.Is(err, "weak_password"), "got %v", err)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).cost)
}
