package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository/memory"
)

const testSecret = "test-secret"

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("register then login round trip", func(t *testing.T) {
		svc := NewAuthService(memory.NewStore().Users(), testSecret, zap.NewNop())

		id, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret", "user")
		require.NoError(t, err)
		require.NotZero(t, id)

		token, user, err := svc.Login(ctx, "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.NotEqual(t, "s3cret", user.PasswordHash, "password must not be stored in plain text")

		parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, float64(id), claims["id"])
		assert.Equal(t, "user", claims["role"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewAuthService(memory.NewStore().Users(), testSecret, zap.NewNop())

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret", "user")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Imposter", "alice@example.com", "other", "user")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		svc := NewAuthService(memory.NewStore().Users(), testSecret, zap.NewNop())

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret", "user")
		require.NoError(t, err)

		_, _, badPass := svc.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, badPass, ErrInvalidCredentials)

		_, _, noUser := svc.Login(ctx, "nobody@example.com", "s3cret")
		require.ErrorIs(t, noUser, ErrInvalidCredentials)

		assert.Equal(t, badPass.Error(), noUser.Error())
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewAuthService(memory.NewStore().Users(), testSecret, zap.NewNop())

		_, err := svc.Register(ctx, "", "alice@example.com", "s3cret", "user")
		require.ErrorIs(t, err, ErrInvalidInput)

		_, _, err = svc.Login(ctx, "", "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
