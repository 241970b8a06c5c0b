package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	t.Run("Round Trip", func(t *testing.T) {
		token, err := service.GenerateToken("emp-1", "kasun")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "emp-1", claims.EmployeeID)
		assert.Equal(t, "kasun", claims.Username)
		assert.Equal(t, "emp-1", claims.Subject)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := service.GenerateToken("emp-1", "kasun")
		require.NoError(t, err)

		other := NewService("other-secret", time.Hour)
		claims, err := other.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Expired Token", func(t *testing.T) {
		shortLived := NewService("test-secret", -time.Minute)
		token, err := shortLived.GenerateToken("emp-1", "kasun")
		require.NoError(t, err)

		claims, err := shortLived.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		claims, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
