package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret is the one signing key for access tokens. Signing and every
// verification site must use it; without the shared fallback an unset
// JWT_SECRET would sign with one key and verify with another.
func JWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("default_secret")
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return JWTSecret(), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	ctx.Locals("user_id", claims["user_id"])
	if email, ok := claims["user_email"]; ok {
		ctx.Locals("user_email", email)
	}
	return ctx.Next()
}

// DeviceMiddleware resolves the device id carried by the client. Device-local
// state (preferences, offline notes, the game high score) is keyed by it, so
// the routes that touch the local store require the header.
func DeviceMiddleware(ctx *fiber.Ctx) error {
	deviceID := ctx.Get("X-Device-Id")
	if deviceID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing X-Device-Id header"})
	}
	ctx.Locals("device_id", deviceID)
	return ctx.Next()
}
