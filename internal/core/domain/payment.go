package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment represents a completed movement of money between two users.
// It is immutable once constructed: the pay call that created it never
// touches it again.
type Payment struct {
	ID          string
	Actor       *User
	Target      *User
	AmountCents int64
	Note        string
	CreatedAt   time.Time
}

func newPayment(actor, target *User, amountCents int64, note string) *Payment {
	return &Payment{
		ID:          uuid.NewString(),
		Actor:       actor,
		Target:      target,
		AmountCents: amountCents,
		Note:        note,
		CreatedAt:   time.Now(),
	}
}
