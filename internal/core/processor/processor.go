// Package processor simulates the external card processor. The ledger only
// depends on its pass/fail contract (domain.CardCharger); this package is
// what stands in for the real bank.
package processor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ibrahimkeyboad/minipay/internal/core/domain"
)

// Simulator approves any Luhn-valid Visa or Mastercard. A failure can be
// injected through FailWith to exercise decline handling.
type Simulator struct {
	// FailWith, when non-nil, is returned for every charge attempt.
	FailWith error
}

func NewSimulator() *Simulator {
	return &Simulator{}
}

// Charge "processes" the payment. Since we are the bank, approval is just a
// card check plus a log line.
func (s *Simulator) Charge(ctx context.Context, cardNumber string, amountCents int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.FailWith != nil {
		return s.FailWith
	}

	brand, ok := domain.CardBrand(cardNumber)
	if !ok {
		return fmt.Errorf("card declined: not a valid Visa or Mastercard number")
	}

	slog.Info("💳 Card charged", "brand", brand, "amount", amountCents)
	return nil
}
