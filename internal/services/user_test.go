package services

import (
	"context"
	"testing"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryStore(), testSecret, time.Hour)

	reg, err := svc.Register(ctx, "  Alice@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.NotEmpty(t, reg.User.PasswordHash)
	assert.NotEqual(t, "correct horse", reg.User.PasswordHash)

	userID, err := svc.ValidateJWT(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)

	login, err := svc.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryStore(), testSecret, time.Hour)

	_, err := svc.Register(ctx, "not-an-email", "long enough")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "bob@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "bob@example.com", "long enough")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "BOB@example.com", "long enough")
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestValidateJWT(t *testing.T) {
	svc := NewUserService(repository.NewMemoryStore(), testSecret, time.Hour)

	_, err := svc.ValidateJWT("garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	other := NewUserService(repository.NewMemoryStore(), "other-secret", time.Hour)
	foreign, err := other.GenerateJWT("u1")
	require.NoError(t, err)
	_, err = svc.ValidateJWT(foreign)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.ValidateJWT(signed)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err = noUser.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.ValidateJWT(signed)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
