package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewBcryptWithCost(bcrypt.MinCost)

	hashed, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)

	assert.NoError(t, h.Verify(hashed, "s3cret"))
	assert.ErrorIs(t, h.Verify(hashed, "wrong"), ErrMismatch)
}

func TestHashSaltsPerCredential(t *testing.T) {
	h := NewBcryptWithCost(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashRejectsOverlongCredential(t *testing.T) {
	h := NewBcryptWithCost(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewBcrypt()

	err := h.Verify("not-a-bcrypt-hash", "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
