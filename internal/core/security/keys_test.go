package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkeyboad/minipay/internal/core/security"
)

func TestGenerateAPIKey(t *testing.T) {
	realKey, hash, err := security.GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(realKey, "mp_live_"))
	assert.Len(t, hash, 64) // hex-encoded SHA256

	// The stored hash must match the real key and nothing else.
	assert.Equal(t, hash, security.HashKey(realKey))
	assert.True(t, security.ValidateKey(realKey, hash))
	assert.False(t, security.ValidateKey(realKey+"x", hash))
	assert.False(t, security.ValidateKey("", hash))
}

func TestGenerateAPIKeyUnique(t *testing.T) {
	a, _, err := security.GenerateAPIKey()
	require.NoError(t, err)
	b, _, err := security.GenerateAPIKey()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
