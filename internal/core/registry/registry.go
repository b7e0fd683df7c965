// Package registry owns the set of created users and renders the combined
// activity feed. It is an explicit object handed to its callers: no
// package-level user list, so separate registries never share state.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/ibrahimkeyboad/minipay/internal/core/domain"
)

type Registry struct {
	charger domain.CardCharger

	mu    sync.Mutex
	users []*domain.User // insertion order
}

func New(charger domain.CardCharger) *Registry {
	return &Registry{charger: charger}
}

// CreateUser builds a user, funds it and links the card. Any validation
// failure propagates and the user is not registered. Duplicate usernames are
// not checked; the first match wins on lookup.
func (r *Registry) CreateUser(username string, balanceCents int64, cardNumber string) (*domain.User, error) {
	user, err := domain.NewUser(username)
	if err != nil {
		return nil, err
	}

	user.SetBalance(balanceCents)

	if err := user.AddCreditCard(cardNumber); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.users = append(r.users, user)
	r.mu.Unlock()

	return user, nil
}

// Lookup finds a user by username, in insertion order.
func (r *Registry) Lookup(username string) (*domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, true
		}
	}
	return nil, false
}

// Users returns the registered users in insertion order.
func (r *Registry) Users() []*domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.User, len(r.users))
	copy(out, r.users)
	return out
}

// Pay resolves both usernames and delegates to the actor's account.
func (r *Registry) Pay(ctx context.Context, actor, target string, amountCents int64, note string) (*domain.Payment, error) {
	from, ok := r.Lookup(actor)
	if !ok {
		return nil, fmt.Errorf("unknown user %q", actor)
	}
	to, ok := r.Lookup(target)
	if !ok {
		return nil, fmt.Errorf("unknown user %q", target)
	}

	return from.Pay(ctx, to, amountCents, note, r.charger)
}

// RenderFeed concatenates every user's feed: users in registration order,
// entries within a user in chronological order. This is not a global
// timestamp merge across users.
func (r *Registry) RenderFeed() []string {
	var feed []string
	for _, u := range r.Users() {
		feed = append(feed, u.RetrieveFeed()...)
	}
	return feed
}
