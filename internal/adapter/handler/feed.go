package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkeyboad/minipay/internal/core/registry"
)

type FeedHandler struct {
	Registry *registry.Registry
}

// RenderFeed returns every user's activity: users in registration order,
// each user's entries oldest first.
func (h *FeedHandler) RenderFeed(c *fiber.Ctx) error {
	feed := h.Registry.RenderFeed()
	if feed == nil {
		feed = []string{}
	}
	return c.JSON(fiber.Map{"feed": feed})
}
