package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ibrahimkeyboad/minipay/internal/adapter/handler"
	"github.com/ibrahimkeyboad/minipay/internal/adapter/middleware"
	"github.com/ibrahimkeyboad/minipay/internal/adapter/storage"
	"github.com/ibrahimkeyboad/minipay/internal/core/config"
	"github.com/ibrahimkeyboad/minipay/internal/core/processor"
	"github.com/ibrahimkeyboad/minipay/internal/core/registry"
	"github.com/ibrahimkeyboad/minipay/internal/core/worker"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()

	// 2. Setup Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Build the core: card processor, registry, in-memory stores
	cardProcessor := processor.NewSimulator()
	users := registry.New(cardProcessor)
	keys := storage.NewKeyStore()
	idempotency := storage.NewIdempotencyStore()

	// 4. Webhook notifier (disabled unless WEBHOOK_URL is set)
	notifier := worker.NewNotifier(cfg.WebhookURL, cfg.WebhookSecret)
	notifier.Start()

	// 5. Handlers
	userHandler := &handler.UserHandler{Registry: users, Keys: keys}
	paymentHandler := &handler.PaymentHandler{Registry: users, Notifier: notifier}
	friendHandler := &handler.FriendHandler{Registry: users, Notifier: notifier}
	feedHandler := &handler.FeedHandler{Registry: users}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Use(requestid.New())

	// 7. Routes
	api := app.Group("/v1")

	// Public
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users/:username", userHandler.GetUser)
	api.Get("/users/:username/feed", userHandler.GetFeed)
	api.Get("/feed", feedHandler.RenderFeed)

	// Protected
	private := api.Use(middleware.Protected(keys))
	private.Post("/payments", middleware.Idempotency(idempotency), paymentHandler.MakePayment)
	private.Post("/friends", friendHandler.AddFriend)

	// Listen for OS signals (Ctrl+C, Docker Stop)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Run Server in a separate Goroutine so it doesn't block
	go func() {
		slog.Info("🚀 Server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}()

	// Block here until we receive a stop signal
	<-stop
	slog.Info("🛑 Shutting down server...")

	// Drain the webhook queue before exiting
	notifier.Stop()
	slog.Info("✅ Webhook notifier stopped")

	// Tell Fiber to stop accepting new requests and finish active ones
	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	slog.Info("👋 Server exited successfully")
}
