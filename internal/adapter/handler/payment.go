package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkeyboad/minipay/internal/core/domain"
	"github.com/ibrahimkeyboad/minipay/internal/core/registry"
	"github.com/ibrahimkeyboad/minipay/internal/core/worker"
)

type PaymentHandler struct {
	Registry *registry.Registry
	Notifier *worker.Notifier
}

type PayRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"` // decimal string, e.g. "15.00"
	Note   string `json:"note"`
}

func (h *PaymentHandler) MakePayment(c *fiber.Ctx) error {
	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	// The auth middleware resolved the caller from their API key.
	actor, _ := c.Locals("username").(string)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing caller identity"})
	}

	amountCents, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payment, err := h.Registry.Pay(c.Context(), actor, req.To, amountCents, req.Note)
	if err != nil {
		slog.Warn("Payment rejected", "actor", actor, "target", req.To, "error", err)
		return c.Status(paymentErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	slog.Info("💸 Payment complete",
		"payment_id", payment.ID,
		"actor", actor,
		"target", req.To,
		"amount", payment.AmountCents,
	)

	// Queue the webhook for the background notifier.
	h.Notifier.Enqueue("payment.created", map[string]interface{}{
		"payment_id": payment.ID,
		"actor":      actor,
		"target":     req.To,
		"amount":     payment.AmountCents,
		"note":       req.Note,
		"timestamp":  time.Now(),
	})

	return c.JSON(fiber.Map{
		"status":     "success",
		"payment_id": payment.ID,
		"amount":     domain.FormatAmount(payment.AmountCents),
	})
}

// paymentErrorStatus maps ledger failures to HTTP statuses. Everything the
// caller can fix is a 400; a processor decline is a 402.
func paymentErrorStatus(err error) int {
	if errors.Is(err, domain.ErrCardChargeFailed) {
		return fiber.StatusPaymentRequired
	}
	return fiber.StatusBadRequest
}
