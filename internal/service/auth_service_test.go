package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"one-editor-be/internal/entity"
	"one-editor-be/internal/pkg/serverutils"
)

func TestAccessTokenVerifiesWithSharedSecret(t *testing.T) {
	// Signing and verification must agree on the key even when
	// JWT_SECRET is unset and both sides fall back.
	t.Setenv("JWT_SECRET", "")

	user := &entity.User{
		Id:    uuid.New(),
		Email: "alex@example.com",
		Role:  entity.UserRoleUser,
	}

	tokenStr, err := signAccessToken(user, time.Hour)
	assert.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (interface{}, error) {
		return serverutils.JWTSecret(), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.Id.String(), claims["user_id"])
	assert.Equal(t, "alex@example.com", claims["user_email"])
}

func TestAccessTokenUsesConfiguredSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "configured-secret")

	user := &entity.User{Id: uuid.New(), Email: "alex@example.com", Role: entity.UserRoleUser}

	tokenStr, err := signAccessToken(user, time.Hour)
	assert.NoError(t, err)

	assert.Equal(t, []byte("configured-secret"), serverutils.JWTSecret())

	token, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (interface{}, error) {
		return serverutils.JWTSecret(), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)
}
