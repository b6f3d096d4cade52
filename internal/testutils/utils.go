package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/referendum/internal/crypto"
)

func RandomHash(t *testing.T) crypto.Hash {
	var hash crypto.Hash
	_, err := rand.Read(hash[:])
	require.NoError(t, err)
	return hash
}

// RandomSalt returns n random bytes
func RandomSalt(t *testing.T, n int) []byte {
	salt := make([]byte, n)
	_, err := rand.Read(salt)
	require.NoError(t, err)
	return salt
}
