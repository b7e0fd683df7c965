package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkeyboad/minipay/internal/adapter/storage"
	"github.com/ibrahimkeyboad/minipay/internal/core/security"
)

// Protected authenticates requests with a Bearer API key and stores the
// resolved username in c.Locals("username").
func Protected(keys *storage.KeyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get Token from Header
		authHeader := c.Get("Authorization") // "Bearer mp_live_..."
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing API Key"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Header Format"})
		}
		apiKey := parts[1]

		// 2. Hash the key (We never compare plain text!)
		hashedKey := security.HashKey(apiKey)

		// 3. Check the store
		username, ok := keys.Lookup(hashedKey)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API Key"})
		}

		// 4. Save the username to Context (So handler knows who is calling)
		c.Locals("username", username)

		return c.Next()
	}
}
