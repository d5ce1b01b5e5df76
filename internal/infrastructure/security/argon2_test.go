package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small params keep the tests fast; production uses DefaultArgon2Params.
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestHashAndCompare(t *testing.T) {
	t.Parallel()

	h := testHasher()
	salt, err := h.NewSalt()
	require.NoError(t, err)

	encoded, err := h.Hash("correct horse", salt)
	require.NoError(t, err)
	assert.True(t, h.Compare(encoded, "correct horse", salt))
	assert.False(t, h.Compare(encoded, "wrong horse", salt))
}

func TestHashIsDeterministicPerSalt(t *testing.T) {
	t.Parallel()

	h := testHasher()
	salt, err := h.NewSalt()
	require.NoError(t, err)

	a, err := h.Hash("pw", salt)
	require.NoError(t, err)
	b, err := h.Hash("pw", salt)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := h.NewSalt()
	require.NoError(t, err)
	c, err := h.Hash("pw", other)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestCompareRejectsWrongSalt(t *testing.T) {
	t.Parallel()

	h := testHasher()
	salt, err := h.NewSalt()
	require.NoError(t, err)
	encoded, err := h.Hash("pw", salt)
	require.NoError(t, err)

	other, err := h.NewSalt()
	require.NoError(t, err)
	assert.False(t, h.Compare(encoded, "pw", other))
}

func TestCompareRejectsGarbage(t *testing.T) {
	t.Parallel()

	h := testHasher()
	salt, err := h.NewSalt()
	require.NoError(t, err)
	assert.False(t, h.Compare("not-a-hash", "pw", salt))
	assert.False(t, h.Compare("$argon2id$v=19$m=8192,t=1,p=1$!!!", "pw", salt))

	encoded, err := h.Hash("pw", salt)
	require.NoError(t, err)
	assert.False(t, h.Compare(encoded, "pw", "not base64 ???"))
}

func TestHashRejectsBadSalt(t *testing.T) {
	t.Parallel()

	_, err := testHasher().Hash("pw", "not base64 ???")
	assert.Error(t, err)
}
