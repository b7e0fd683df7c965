// Package worker delivers webhook events in the background so the payment
// path never waits on a subscriber's server.
package worker

import (
	"log/slog"
	"time"

	"github.com/ibrahimkeyboad/minipay/internal/core/notifications"
)

const maxAttempts = 5

// Event is one queued webhook delivery.
type Event struct {
	Name string                 `json:"event"`
	Data map[string]interface{} `json:"data"`
}

// Notifier owns the delivery queue. Events are processed one at a time;
// a failed delivery is retried with a growing delay and dropped after
// maxAttempts.
type Notifier struct {
	url    string
	secret string

	jobs chan Event
	quit chan struct{}
	done chan struct{}

	// send and backoff are swapped out in tests.
	send    func(url string, payload interface{}, secret string) error
	backoff func(attempt int) time.Duration
}

func NewNotifier(url, secret string) *Notifier {
	return &Notifier{
		url:    url,
		secret: secret,
		jobs:   make(chan Event, 64),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		send:   notifications.SendWebhook,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt*10+10) * time.Second
		},
	}
}

// Start launches the delivery loop. No-op when no URL is configured.
func (n *Notifier) Start() {
	if n.url == "" {
		slog.Info("Webhook notifier disabled (no WEBHOOK_URL)")
		close(n.done)
		return
	}

	go func() {
		defer close(n.done)
		slog.Info("👷 Webhook notifier started", "url", n.url)
		for {
			select {
			case ev := <-n.jobs:
				n.deliver(ev)
			case <-n.quit:
				// Drain whatever is still queued before exiting.
				for {
					select {
					case ev := <-n.jobs:
						n.deliver(ev)
					default:
						return
					}
				}
			}
		}
	}()
}

// Enqueue queues an event for delivery. Never blocks: if the queue is full
// the event is dropped with a warning rather than stalling a payment.
func (n *Notifier) Enqueue(name string, data map[string]interface{}) {
	if n.url == "" {
		return
	}
	select {
	case n.jobs <- Event{Name: name, Data: data}:
	default:
		slog.Warn("⚠️ Webhook queue full, dropping event", "event", name)
	}
}

// Stop shuts the delivery loop down, draining queued events first.
func (n *Notifier) Stop() {
	if n.url == "" {
		return
	}
	close(n.quit)
	<-n.done
}

func (n *Notifier) deliver(ev Event) {
	for attempt := 0; ; attempt++ {
		err := n.send(n.url, ev, n.secret)
		if err == nil {
			slog.Info("✅ Webhook delivered", "event", ev.Name)
			return
		}

		slog.Error("Webhook delivery failed", "event", ev.Name, "error", err, "attempts", attempt+1)

		if attempt+1 >= maxAttempts {
			slog.Error("Webhook dropped (max attempts reached)", "event", ev.Name)
			return
		}
		time.Sleep(n.backoff(attempt))
	}
}
