package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkeyboad/minipay/internal/adapter/storage"
)

// Idempotency replays the cached response when the same Idempotency-Key is
// seen again, so a retried payment request never moves money twice.
func Idempotency(store *storage.IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get Key from Header
		key := c.Get("Idempotency-Key")

		// If no key, skip (silently, or you can log at Debug level)
		if key == "" {
			return c.Next()
		}

		// 2. Check if key exists
		if cached, ok := store.Get(key); ok {
			slog.Info("🛑 Idempotency Hit! Returning cached response", "key", key)
			c.Set("X-Idempotency-Hit", "true")
			c.Set("Content-Type", "application/json")
			return c.Status(cached.Status).Send(cached.Body)
		}

		// 3. Run the Handler
		if err := c.Next(); err != nil {
			return err
		}

		// 4. Save the Result
		store.Save(key, c.Response().StatusCode(), c.Response().Body())
		slog.Info("💾 Idempotency Key Saved", "key", key)

		return nil
	}
}
