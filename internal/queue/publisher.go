package queue

import (
	"context"
	"sync"
	"time"

	"audit-backend/internal/notify"
	"audit-backend/internal/shared/metrics"
	"audit-backend/internal/shared/server/middleware"
	"audit-backend/internal/shared/telemetry"
)

const sendTimeout = 10 * time.Second

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Publisher enqueues events for the worker instead of delivering them inline.
type Publisher struct {
	client Client
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewPublisher(client Client) *Publisher {
	return &Publisher{client: client, now: time.Now}
}

// Publish sends the event in the background. Send failures are logged and counted.
func (p *Publisher) Publish(ctx context.Context, ev notify.Event) {
	metrics.IncEventsPublished()
	msg := Message{
		Version:    MessageVersion,
		Kind:       ev.Kind,
		RequestID:  middleware.RequestIDFrom(ctx),
		EnqueuedAt: p.now().UTC().Format(time.RFC3339),
		Event:      ev,
	}

	bg := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		sendCtx, cancel := context.WithTimeout(bg, sendTimeout)
		defer cancel()
		if err := p.client.Send(sendCtx, msg); err != nil {
			metrics.IncEventsEnqueueFailed()
			telemetry.Error("queue.enqueue_failed", map[string]any{
				"event_id":   ev.ID,
				"event_kind": string(ev.Kind),
				"request_id": msg.RequestID,
				"error":      err.Error(),
			})
		}
	}()
}

// Wait blocks until pending sends finish or ctx is done.
func (p *Publisher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ notify.Publisher = (*Publisher)(nil)
