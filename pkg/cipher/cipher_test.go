package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	c, err := NewSymmetric(key)
	require.NoError(t, err)

	aad := []byte("asset:deadbeef")
	plaintext := []byte("board pack contents")

	sealed, err := c.Seal(aad, plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := c.Open(aad, sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	key, _ := GenerateKey()
	c, err := NewSymmetric(key)
	require.NoError(t, err)

	sealed, err := c.Seal([]byte("asset:one"), []byte("value"))
	require.NoError(t, err)

	_, err = c.Open([]byte("asset:two"), sealed)
	assert.Error(t, err)
}

func TestOpenRejectsTruncatedData(t *testing.T) {
	key, _ := GenerateKey()
	c, err := NewSymmetric(key)
	require.NoError(t, err)

	_, err = c.Open([]byte("aad"), []byte{versionMagic, 1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNewSymmetricRejectsShortKey(t *testing.T) {
	_, err := NewSymmetric([]byte("short"))
	assert.Error(t, err)
}

func TestSealIsNonDeterministic(t *testing.T) {
	key, _ := GenerateKey()
	c, err := NewSymmetric(key)
	require.NoError(t, err)

	a, err := c.Seal([]byte("aad"), []byte("value"))
	require.NoError(t, err)
	b, err := c.Seal([]byte("aad"), []byte("value"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
