package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKey(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		key, err := PublicKey()
		require.NoError(t, err)

		assert.Len(t, key, 16)
		assert.False(t, seen[key], "keys should not repeat")
		seen[key] = true

		for _, r := range key {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			assert.True(t, ok, "unexpected rune %q in key %q", r, key)
		}
	}
}
