package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkeyboad/minipay/internal/core/registry"
	"github.com/ibrahimkeyboad/minipay/internal/core/worker"
)

type FriendHandler struct {
	Registry *registry.Registry
	Notifier *worker.Notifier
}

type AddFriendRequest struct {
	Friend string `json:"friend"`
}

// AddFriend adds a friend to the caller's account. One-directional: the
// friend's own list is untouched.
func (h *FriendHandler) AddFriend(c *fiber.Ctx) error {
	var req AddFriendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	actor, _ := c.Locals("username").(string)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing caller identity"})
	}

	user, ok := h.Registry.Lookup(actor)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	friend, ok := h.Registry.Lookup(req.Friend)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Friend not found"})
	}

	user.AddFriend(friend)
	slog.Info("🤝 Friend added", "user", user.Username, "friend", friend.Username)

	h.Notifier.Enqueue("friend.added", map[string]interface{}{
		"user":   user.Username,
		"friend": friend.Username,
	})

	return c.JSON(fiber.Map{"status": "success"})
}
