package handler

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkeyboad/minipay/internal/adapter/storage"
	"github.com/ibrahimkeyboad/minipay/internal/core/domain"
	"github.com/ibrahimkeyboad/minipay/internal/core/registry"
	"github.com/ibrahimkeyboad/minipay/internal/core/security"
)

type UserHandler struct {
	Registry *registry.Registry
	Keys     *storage.KeyStore
}

// CreateUserRequest defines what the user sends us
type CreateUserRequest struct {
	Username         string `json:"username"`
	Balance          string `json:"balance"` // decimal string, e.g. "5.00"
	CreditCardNumber string `json:"credit_card_number"`
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest

	// 1. Parse JSON
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Invalid user body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// 2. Parse the opening balance
	balanceCents, err := domain.ParseAmount(req.Balance)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// 3. Call the registry (it validates username and card)
	user, err := h.Registry.CreateUser(req.Username, balanceCents, req.CreditCardNumber)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// 4. Generate an API key so the new user can call the protected routes
	realKey, keyHash, err := security.GenerateAPIKey()
	if err != nil {
		slog.Error("Crypto error generating key", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Crypto error"})
	}
	h.Keys.Save(keyHash, user.Username)

	slog.Info("✅ User Created", "username", user.Username, "balance", user.Balance())

	// 5. Return Success (the key is shown ONCE ONLY)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"username": user.Username,
		"balance":  domain.FormatAmount(user.Balance()),
		"api_key":  realKey,
		"warning":  "Save this key now! We won't show it again.",
	})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	username := c.Params("username")

	user, ok := h.Registry.Lookup(username)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	friends := user.Friends()
	friendNames := make([]string, 0, len(friends))
	for _, f := range friends {
		friendNames = append(friendNames, f.Username)
	}

	_, hasCard := user.CardNumber()

	return c.JSON(fiber.Map{
		"username": user.Username,
		"balance":  domain.FormatAmount(user.Balance()),
		"has_card": hasCard,
		"friends":  friendNames,
	})
}

// GetFeed returns one user's activity, oldest first.
func (h *UserHandler) GetFeed(c *fiber.Ctx) error {
	username := c.Params("username")

	user, ok := h.Registry.Lookup(username)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"feed": user.RetrieveFeed()})
}
