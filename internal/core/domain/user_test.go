package domain_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkeyboad/minipay/internal/core/domain"
)

// stubCharger stands in for the card processor and records every charge.
type stubCharger struct {
	err     error
	charges []struct {
		card   string
		amount int64
	}
}

func (s *stubCharger) Charge(_ context.Context, card string, amount int64) error {
	if s.err != nil {
		return s.err
	}
	s.charges = append(s.charges, struct {
		card   string
		amount int64
	}{card, amount})
	return nil
}

func newUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(username)
	require.NoError(t, err)
	return u
}

func TestNewUsernameValidation(t *testing.T) {
	valid := []string{"Asl1-0", "Bobby", "user_name", "A-b_1", "abcdefghijklmno"}
	for _, name := range valid {
		_, err := domain.NewUser(name)
		assert.NoError(t, err, "username %q", name)
	}

	invalid := []string{"", "abc", "abcdefghijklmnop", "has space", "bad!char", "émile", "a.b.c"}
	for _, name := range invalid {
		_, err := domain.NewUser(name)
		assert.ErrorIs(t, err, domain.ErrInvalidUsername, "username %q", name)
	}
}

func TestSetBalance(t *testing.T) {
	u := newUser(t, "Asl1-0")
	u.SetBalance(1000)
	assert.Equal(t, int64(1000), u.Balance())

	// The sign is not checked on direct funding.
	u.SetBalance(-500)
	assert.Equal(t, int64(-500), u.Balance())
}

func TestAddCreditCard(t *testing.T) {
	t.Run("valid card binds once", func(t *testing.T) {
		u := newUser(t, "Asl1-0")
		require.NoError(t, u.AddCreditCard("4111111111111111"))

		number, ok := u.CardNumber()
		assert.True(t, ok)
		assert.Equal(t, "4111111111111111", number)
	})

	t.Run("invalid card rejected", func(t *testing.T) {
		u := newUser(t, "Asl1-0")
		err := u.AddCreditCard("1234-1234-1234-1234")
		assert.ErrorIs(t, err, domain.ErrInvalidCreditCard)

		_, ok := u.CardNumber()
		assert.False(t, ok)
	})

	t.Run("second card always fails", func(t *testing.T) {
		u := newUser(t, "Asl1-0")
		require.NoError(t, u.AddCreditCard("4111111111111111"))

		// Even a valid second card is refused.
		err := u.AddCreditCard("4242424242424242")
		assert.ErrorIs(t, err, domain.ErrCreditCardAlreadySet)

		// The first card is still the bound one.
		number, _ := u.CardNumber()
		assert.Equal(t, "4111111111111111", number)
	})
}

func TestAddFriend(t *testing.T) {
	a := newUser(t, "Asl1-0")
	b := newUser(t, "Asl1-1")

	a.AddFriend(b)

	assert.True(t, a.HasFriend(b))
	assert.Equal(t, []string{"Asl1-0 added Asl1-1 as a friend"}, a.RetrieveFeed())

	// Friendship is one-directional.
	assert.False(t, b.HasFriend(a))
	assert.Empty(t, b.Friends())
	assert.Empty(t, b.RetrieveFeed())

	// Adding again leaves the set unchanged but records another feed line.
	a.AddFriend(b)
	assert.Len(t, a.Friends(), 1)
	assert.Len(t, a.RetrieveFeed(), 2)
}

func TestPayWithBalance(t *testing.T) {
	ctx := context.Background()
	charger := &stubCharger{}

	a := newUser(t, "Bobby")
	b := newUser(t, "Carol")
	a.SetBalance(1000)

	payment, err := a.Pay(ctx, b, 900, "coffee", charger)
	require.NoError(t, err)

	assert.Equal(t, int64(100), a.Balance())
	assert.Equal(t, int64(900), b.Balance())
	assert.Empty(t, charger.charges, "balance path must never touch the card")

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, a, payment.Actor)
	assert.Equal(t, b, payment.Target)
	assert.Equal(t, int64(900), payment.AmountCents)
	assert.Equal(t, "coffee", payment.Note)

	assert.Equal(t, []string{"Bobby paid Carol 9.0 for coffee"}, a.RetrieveFeed())
	assert.Empty(t, b.RetrieveFeed(), "only the payer gets a feed line")
}

func TestPayExactBalanceUsesBalancePath(t *testing.T) {
	charger := &stubCharger{}
	a := newUser(t, "Bobby")
	b := newUser(t, "Carol")
	a.SetBalance(500)

	_, err := a.Pay(context.Background(), b, 500, "Coffee", charger)
	require.NoError(t, err)

	assert.Equal(t, int64(0), a.Balance())
	assert.Equal(t, int64(500), b.Balance())
	assert.Empty(t, charger.charges)
}

func TestPayWithCard(t *testing.T) {
	charger := &stubCharger{}
	a := newUser(t, "Bobby")
	b := newUser(t, "Carol")
	a.SetBalance(1000)
	require.NoError(t, a.AddCreditCard("4111111111111111"))

	_, err := a.Pay(context.Background(), b, 1100, "coffee", charger)
	require.NoError(t, err)

	// The card is charged for the FULL amount; the balance is untouched.
	assert.Equal(t, int64(1000), a.Balance())
	assert.Equal(t, int64(1100), b.Balance())
	require.Len(t, charger.charges, 1)
	assert.Equal(t, "4111111111111111", charger.charges[0].card)
	assert.Equal(t, int64(1100), charger.charges[0].amount)

	assert.Equal(t, []string{"Bobby paid Carol 11.0 for coffee"}, a.RetrieveFeed())
}

func TestPayFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("self payment", func(t *testing.T) {
		charger := &stubCharger{}
		a := newUser(t, "Bobby")
		a.SetBalance(1000)

		_, err := a.Pay(ctx, a, 500, "oops", charger)
		assert.ErrorIs(t, err, domain.ErrSelfPayment)
		assert.Equal(t, int64(1000), a.Balance())
		assert.Empty(t, a.RetrieveFeed())
	})

	t.Run("same username counts as self", func(t *testing.T) {
		charger := &stubCharger{}
		a := newUser(t, "Bobby")
		clone := newUser(t, "Bobby")
		a.SetBalance(1000)

		_, err := a.Pay(ctx, clone, 500, "oops", charger)
		assert.ErrorIs(t, err, domain.ErrSelfPayment)
	})

	t.Run("zero amount", func(t *testing.T) {
		charger := &stubCharger{}
		a := newUser(t, "Bobby")
		b := newUser(t, "Carol")
		a.SetBalance(1000)

		_, err := a.Pay(ctx, b, 0, "nothing", charger)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Equal(t, int64(1000), a.Balance())
		assert.Equal(t, int64(0), b.Balance())
	})

	t.Run("negative amount", func(t *testing.T) {
		charger := &stubCharger{}
		a := newUser(t, "Bobby")
		b := newUser(t, "Carol")

		_, err := a.Pay(ctx, b, -500, "refund", charger)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("insufficient balance and no card", func(t *testing.T) {
		charger := &stubCharger{}
		a := newUser(t, "Bobby")
		b := newUser(t, "Carol")
		a.SetBalance(100)

		_, err := a.Pay(ctx, b, 500, "coffee", charger)
		assert.ErrorIs(t, err, domain.ErrNoCreditCard)
		assert.Equal(t, int64(100), a.Balance())
		assert.Equal(t, int64(0), b.Balance())
		assert.Empty(t, a.RetrieveFeed())
	})

	t.Run("charge declined", func(t *testing.T) {
		charger := &stubCharger{err: fmt.Errorf("card declined")}
		a := newUser(t, "Bobby")
		b := newUser(t, "Carol")
		a.SetBalance(100)
		require.NoError(t, a.AddCreditCard("4111111111111111"))

		_, err := a.Pay(ctx, b, 500, "coffee", charger)
		assert.ErrorIs(t, err, domain.ErrCardChargeFailed)

		// No mutation is observable after the failure.
		assert.Equal(t, int64(100), a.Balance())
		assert.Equal(t, int64(0), b.Balance())
		assert.Empty(t, a.RetrieveFeed())
	})
}

func TestFeedOrderingAndStability(t *testing.T) {
	ctx := context.Background()
	charger := &stubCharger{}

	a := newUser(t, "Bobby")
	b := newUser(t, "Carol")
	a.SetBalance(2000)

	_, err := a.Pay(ctx, b, 500, "Coffee", charger)
	require.NoError(t, err)
	a.AddFriend(b)
	_, err = a.Pay(ctx, b, 250, "Snack", charger)
	require.NoError(t, err)

	want := []string{
		"Bobby paid Carol 5.0 for Coffee",
		"Bobby added Carol as a friend",
		"Bobby paid Carol 2.5 for Snack",
	}
	assert.Equal(t, want, a.RetrieveFeed())

	// Retrieving twice without mutation returns identical sequences.
	assert.Equal(t, a.RetrieveFeed(), a.RetrieveFeed())

	// The returned slice is a copy; mutating it must not corrupt the feed.
	feed := a.RetrieveFeed()
	feed[0] = "tampered"
	assert.Equal(t, want, a.RetrieveFeed())
}

func TestConcurrentPaymentsPreserveTotal(t *testing.T) {
	ctx := context.Background()
	charger := &stubCharger{}

	a := newUser(t, "Bobby")
	b := newUser(t, "Carol")
	a.SetBalance(10000)
	b.SetBalance(10000)

	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(2)

	// Crossing payments in both directions must not deadlock and must not
	// create or destroy money.
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, _ = a.Pay(ctx, b, 7, "ping", charger)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, _ = b.Pay(ctx, a, 3, "pong", charger)
		}
	}()
	wg.Wait()

	assert.Equal(t, int64(20000), a.Balance()+b.Balance())
	assert.GreaterOrEqual(t, a.Balance(), int64(0))
	assert.GreaterOrEqual(t, b.Balance(), int64(0))
}
