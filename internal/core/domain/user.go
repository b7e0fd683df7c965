package domain

import (
	"context"
	"fmt"
	"regexp"
	"sync"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{4,15}$`)

// CardCharger is the external card processor as the ledger sees it:
// charge a card for an amount, succeed or fail. Retries, fraud checks and
// settlement all live on the other side of this interface.
type CardCharger interface {
	Charge(ctx context.Context, cardNumber string, amountCents int64) error
}

// User is a ledger account: a balance in cents, an optional linked credit
// card, a friend set and an append-only activity feed.
//
// All mutating operations take the account mutex. Pay locks both accounts
// involved (in username order, so two crossing payments can't deadlock)
// and either moves the money completely or not at all.
type User struct {
	Username string // immutable after NewUser

	mu               sync.Mutex
	balance          int64 // cents
	creditCardNumber string
	friends          map[*User]struct{}
	feed             []string
}

// NewUser validates the username and returns a fresh account with zero
// balance and no card.
func NewUser(username string) (*User, error) {
	if !usernameRegex.MatchString(username) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return &User{
		Username: username,
		friends:  make(map[*User]struct{}),
	}, nil
}

// SetBalance overwrites the balance. Used for initial funding; the sign is
// deliberately not checked.
func (u *User) SetBalance(cents int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.balance = cents
}

func (u *User) Balance() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.balance
}

// AddCreditCard links a card to the account. A card can be linked at most
// once and must be on the accepted list.
func (u *User) AddCreditCard(number string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.creditCardNumber != "" {
		return ErrCreditCardAlreadySet
	}
	if !ValidCardNumber(number) {
		return fmt.Errorf("%w: %q", ErrInvalidCreditCard, number)
	}

	u.creditCardNumber = cleanCardNumber(number)
	return nil
}

// CardNumber returns the linked card number, if any.
func (u *User) CardNumber() (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.creditCardNumber, u.creditCardNumber != ""
}

// AddFriend adds other to this user's friend set and records a feed entry.
// The set add is idempotent, but every call appends a feed line. Friendship
// is one-directional: nothing on other changes.
func (u *User) AddFriend(other *User) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.friends[other] = struct{}{}
	u.feed = append(u.feed, fmt.Sprintf("%s added %s as a friend", u.Username, other.Username))
}

func (u *User) HasFriend(other *User) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.friends[other]
	return ok
}

func (u *User) Friends() []*User {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]*User, 0, len(u.friends))
	for f := range u.friends {
		out = append(out, f)
	}
	return out
}

// Pay moves amountCents from this user to target.
//
// If the balance covers the full amount it is paid from balance: debit here,
// credit there, card untouched. Otherwise the linked card is charged for the
// FULL amount and the balance is left alone; only the target's balance moves.
// Exactly one feed line is appended, to the payer.
//
// Any failure (bad amount, self payment, no card, charge declined) returns
// before any mutation: both balances either move together or not at all.
func (u *User) Pay(ctx context.Context, target *User, amountCents int64, note string, charger CardCharger) (*Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, FormatAmount(amountCents))
	}
	if target == u || u.Username == target.Username {
		return nil, ErrSelfPayment
	}

	// Lock both accounts in username order so concurrent A->B and B->A
	// payments cannot deadlock.
	first, second := u, target
	if second.Username < first.Username {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if u.balance >= amountCents {
		// Balance path
		u.balance -= amountCents
		target.balance += amountCents
	} else {
		// Card path: charge the whole amount, not the shortfall.
		if u.creditCardNumber == "" {
			return nil, ErrNoCreditCard
		}
		if err := charger.Charge(ctx, u.creditCardNumber, amountCents); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCardChargeFailed, err)
		}
		target.balance += amountCents
	}

	payment := newPayment(u, target, amountCents, note)
	u.feed = append(u.feed, fmt.Sprintf("%s paid %s %s for %s",
		u.Username, target.Username, FormatAmount(amountCents), note))

	return payment, nil
}

// RetrieveFeed returns a copy of the user's feed, oldest first.
func (u *User) RetrieveFeed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]string, len(u.feed))
	copy(out, u.feed)
	return out
}
