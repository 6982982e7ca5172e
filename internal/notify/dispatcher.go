package notify

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"audit-backend/internal/shared/metrics"
	"audit-backend/internal/shared/telemetry"
)

// Sink delivers events to one external system.
type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Filter is implemented by sinks that only take some kinds of event.
type Filter interface {
	Accepts(kind Kind) bool
}

// Publisher hands events off without blocking the caller. Delivery failures
// are never reported back.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// SinkError ties a delivery failure to its sink.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string { return fmt.Sprintf("sink %s: %v", e.Sink, e.Err) }
func (e *SinkError) Unwrap() error { return e.Err }

// Dispatcher fans events out to every configured sink.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher builds a dispatcher; timeout bounds each sink call.
func NewDispatcher(timeout time.Duration, sinks ...Sink) *Dispatcher {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Dispatcher{sinks: kept, timeout: timeout}
}

// SinkNames lists the configured sinks in order.
func (d *Dispatcher) SinkNames() []string {
	names := make([]string, len(d.sinks))
	for i, s := range d.sinks {
		names[i] = s.Name()
	}
	return names
}

// Deliver sends ev to all accepting sinks concurrently and waits for them.
// The returned error joins one *SinkError per failed sink.
func (d *Dispatcher) Deliver(ctx context.Context, ev Event) error {
	return d.DeliverTo(ctx, ev, nil)
}

// DeliverTo is Deliver restricted to the named sinks. An empty list means all
// sinks; names that are not configured are skipped.
func (d *Dispatcher) DeliverTo(ctx context.Context, ev Event, only []string) error {
	errs := make([]error, len(d.sinks))
	var wg sync.WaitGroup
	for i, sink := range d.sinks {
		if f, ok := sink.(Filter); ok && !f.Accepts(ev.Kind) {
			continue
		}
		if len(only) > 0 && !slices.Contains(only, sink.Name()) {
			continue
		}
		wg.Add(1)
		go func(i int, sink Sink) {
			defer wg.Done()
			errs[i] = d.send(ctx, sink, ev)
		}(i, sink)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (d *Dispatcher) send(ctx context.Context, sink Sink, ev Event) (err error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
		metrics.ObserveSinkDelivery(sink.Name(), float64(time.Since(start).Milliseconds()), err)
		if err != nil {
			err = &SinkError{Sink: sink.Name(), Err: err}
		}
	}()
	return sink.Send(ctx, ev)
}

// Publish delivers ev in the background. Failures are logged and counted.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) {
	metrics.IncEventsPublished()
	if len(d.sinks) == 0 {
		return
	}
	bg := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.Deliver(bg, ev); err != nil {
			LogFailures(ev, err)
		}
	}()
}

// Wait blocks until background publishes finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogFailures writes one log line per failed sink in err.
func LogFailures(ev Event, err error) {
	for _, e := range unjoin(err) {
		fields := map[string]any{
			"event_id":   ev.ID,
			"event_kind": string(ev.Kind),
			"error":      e.Error(),
		}
		var se *SinkError
		if errors.As(e, &se) {
			fields["sink"] = se.Sink
			fields["error"] = se.Err.Error()
		}
		telemetry.Warn("notify.sink.failed", fields)
	}
}

// FailedSinks returns the names of the sinks that failed in a Deliver error.
func FailedSinks(err error) []string {
	if err == nil {
		return nil
	}
	var names []string
	for _, e := range unjoin(err) {
		var se *SinkError
		if errors.As(e, &se) && !slices.Contains(names, se.Sink) {
			names = append(names, se.Sink)
		}
	}
	return names
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

var _ Publisher = (*Dispatcher)(nil)
