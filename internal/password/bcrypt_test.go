package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/panorama-auth/internal/model"
)

func newTestHasher(t *testing.T) *Bcrypt {
	t.Helper()
	h, err := NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcrypt_CostRange(t *testing.T) {
	t.Parallel()

	_, err := NewBcrypt(bcrypt.MinCost - 1)
	require.Error(t, err)
	_, err = NewBcrypt(bcrypt.MaxCost + 1)
	require.Error(t, err)

	h, err := NewBcrypt(12)
	require.NoError(t, err)
	assert.Equal(t, 12, h.Cost())
}

func TestBcrypt_HashVerify(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	for _, pw := range []string{"secret1", "", "pässwörd", strings.Repeat("x", 72)} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)

		ok, err := h.Verify(pw, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password %q", pw)

		ok, err = h.Verify(pw+"x", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestBcrypt_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcrypt_StoresConfiguredCost(t *testing.T) {
	t.Parallel()

	h, err := NewBcrypt(12)
	require.NoError(t, err)
	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)
}

func TestBcrypt_MalformedHash(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ok, err := h.Verify("secret1", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.ErrorIs(t, err, model.ErrIntegrityViolation)
}

func TestBcrypt_Verify_RejectsLongerPasswordWithStoredPrefix(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	stored := strings.Repeat("x", 72)
	hash, err := h.Hash(stored)
	require.NoError(t, err)

	for _, pw := range []string{stored + "-attacker-suffix", stored + "x", strings.Repeat("x", 200)} {
		ok, err := h.Verify(pw, hash)
		require.NoError(t, err)
		assert.False(t, ok, "password of %d bytes", len(pw))
	}

	ok, err := h.Verify(stored, hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcrypt_Verify_LongPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ok, err := h.Verify(strings.Repeat("x", 80), "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.ErrorIs(t, err, model.ErrIntegrityViolation)
}

func TestBcrypt_TooLong(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	_, err := h.Hash(strings.Repeat("x", 73))
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestBcrypt_VerifyAbsent(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	require.NotEmpty(t, h.absentHash)
	prepared := h.absentHash

	h.VerifyAbsent("secret1")
	h.VerifyAbsent(strings.Repeat("y", 100))
	assert.Equal(t, prepared, h.absentHash)

	cost, err := bcrypt.Cost(h.absentHash)
	require.NoError(t, err)
	assert.Equal(t, h.Cost(), cost)
}
