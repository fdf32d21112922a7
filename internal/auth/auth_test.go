package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("Hash And Verify", func(t *testing.T) {
		hash, err := HashPassword("hunter22")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter22", hash)

		assert.NoError(t, VerifyPassword(hash, "hunter22"))
		assert.Error(t, VerifyPassword(hash, "wrong-password"))
	})

	t.Run("Hashes Are Salted", func(t *testing.T) {
		a, err := HashPassword("hunter22")
		require.NoError(t, err)
		b, err := HashPassword("hunter22")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestTokens(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		token, err := GenerateToken(7, "alice@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("Garbage Rejected", func(t *testing.T) {
		_, err := ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("Tampered Signature Rejected", func(t *testing.T) {
		token, err := GenerateToken(7, "alice@example.com")
		require.NoError(t, err)

		_, err = ValidateToken(token + "x")
		assert.Error(t, err)
	})
}
