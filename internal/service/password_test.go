package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse battery staple")

	assert.True(t, verifyPassword("correct horse battery staple", hash))
	assert.False(t, verifyPassword("wrong password", hash))
	assert.False(t, verifyPassword("", hash))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := hashPassword("secret123")
	require.NoError(t, err)
	second, err := hashPassword("secret123")
	require.NoError(t, err)

	// Same password, fresh salt each time.
	assert.NotEqual(t, first, second)
	assert.True(t, verifyPassword("secret123", first))
	assert.True(t, verifyPassword("secret123", second))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	assert.False(t, verifyPassword("secret123", "not-a-digest"))
	assert.False(t, verifyPassword("secret123", "only-one-part:"))
	assert.False(t, verifyPassword("secret123", ""))
}
