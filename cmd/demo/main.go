// The demo runs the canonical scenario end to end: two users, a balance-path
// payment, a card-path payment, a friendship, then the rendered feed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ibrahimkeyboad/minipay/internal/core/processor"
	"github.com/ibrahimkeyboad/minipay/internal/core/registry"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	sim := processor.NewSimulator()
	users := registry.New(sim)

	bobby, err := users.CreateUser("Bobby", 500, "4111111111111111")
	if err != nil {
		slog.Error("Could not create user", "error", err)
		os.Exit(1)
	}
	carol, err := users.CreateUser("Carol", 1000, "4242424242424242")
	if err != nil {
		slog.Error("Could not create user", "error", err)
		os.Exit(1)
	}

	// Bobby has exactly 5.00, so this completes from balance.
	if _, err := bobby.Pay(ctx, carol, 500, "Coffee", sim); err != nil {
		slog.Warn("Payment failed", "error", err)
	}

	// Carol now has 15.00, which still covers 15.00 from balance.
	if _, err := carol.Pay(ctx, bobby, 1500, "Lunch", sim); err != nil {
		slog.Warn("Payment failed", "error", err)
	}

	// Bobby only has 15.00 left, so this one goes to his card.
	if _, err := bobby.Pay(ctx, carol, 2000, "Dinner", sim); err != nil {
		slog.Warn("Payment failed", "error", err)
	}

	bobby.AddFriend(carol)

	for _, line := range users.RenderFeed() {
		fmt.Println(line)
	}
}
