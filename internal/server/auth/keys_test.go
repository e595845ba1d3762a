package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	a, err := DeriveKey([]byte("secret"), CookieKeyInfo)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	again, err := DeriveKey([]byte("secret"), CookieKeyInfo)
	require.NoError(t, err)
	assert.Equal(t, a, again)

	b, err := DeriveKey([]byte("secret"), TokenKeyInfo)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = DeriveKey(nil, CookieKeyInfo)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	key := []byte("k")

	h := HashToken("abc", key)
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("abc", key))
	assert.NotEqual(t, h, HashToken("abd", key))
	assert.NotEqual(t, h, HashToken("abc", []byte("other")))
}
