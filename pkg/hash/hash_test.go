package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", h)

	assert.True(t, CheckPassword(h, "pw123"))
	assert.False(t, CheckPassword(h, "wrong"))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-hash", "pw"))
}

func TestHashPassword_Empty(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
	assert.False(t, CheckPassword("", "x"))
}

func TestNeedsRehash(t *testing.T) {
	t.Parallel()

	weak, err := HashPasswordCost("pw", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, NeedsRehash(weak))
	assert.True(t, NeedsRehash("not-a-hash"))

	strong, err := HashPassword("pw")
	require.NoError(t, err)
	assert.False(t, NeedsRehash(strong))
}

func TestHashPasswordCost_TooLong(t *testing.T) {
	t.Parallel()

	_, err := HashPasswordCost(strings.Repeat("a", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}
