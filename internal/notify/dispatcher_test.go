package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"audit-backend/internal/shared/metrics"
)

type recordingSink struct {
	name  string
	err   error
	delay time.Duration
	kinds []Kind

	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(ctx context.Context, ev Event) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	return s.err
}

func (s *recordingSink) Accepts(kind Kind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	for _, k := range s.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type panicSink struct{}

func (panicSink) Name() string { return "panicky" }

func (panicSink) Send(context.Context, Event) error { panic("boom") }

func TestDeliverFansOutToAllSinks(t *testing.T) {
	a := &recordingSink{name: "a"}
	b := &recordingSink{name: "b"}
	d := NewDispatcher(time.Second, a, nil, b)

	if got := d.SinkNames(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected sink names %v", got)
	}
	if err := d.Deliver(context.Background(), Event{Kind: KindAudit, ID: "1"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if a.count() != 1 || b.count() != 1 {
		t.Fatalf("expected one event per sink, got a=%d b=%d", a.count(), b.count())
	}
}

func TestDeliverJoinsSinkErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &recordingSink{name: "ok"}
	bad := &recordingSink{name: "dispatcher-test-bad", err: boom}
	before := metrics.SinkFailures("dispatcher-test-bad")

	err := NewDispatcher(time.Second, ok, bad).Deliver(context.Background(), Event{Kind: KindAudit})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to wrap boom, got %v", err)
	}
	var se *SinkError
	if !errors.As(err, &se) || se.Sink != "dispatcher-test-bad" {
		t.Fatalf("expected sink error for bad sink, got %v", err)
	}
	if ok.count() != 1 {
		t.Fatalf("healthy sink should still receive the event")
	}
	if got := metrics.SinkFailures("dispatcher-test-bad"); got != before+1 {
		t.Fatalf("expected failure counter to increase, got %d want %d", got, before+1)
	}
}

func TestDeliverToOnlyNamedSinks(t *testing.T) {
	webhook := &recordingSink{name: "webhook"}
	sheets := &recordingSink{name: "sheets", err: errors.New("quota")}
	kafka := &recordingSink{name: "kafka"}
	d := NewDispatcher(time.Second, webhook, sheets, kafka)

	err := d.DeliverTo(context.Background(), Event{Kind: KindAudit}, []string{"sheets", "gone"})
	if got := FailedSinks(err); len(got) != 1 || got[0] != "sheets" {
		t.Fatalf("unexpected failed sinks %v", got)
	}
	if webhook.count() != 0 || kafka.count() != 0 || sheets.count() != 1 {
		t.Fatalf("expected only sheets to be called, got webhook=%d sheets=%d kafka=%d",
			webhook.count(), sheets.count(), kafka.count())
	}
}

func TestFailedSinks(t *testing.T) {
	if got := FailedSinks(nil); got != nil {
		t.Fatalf("expected nil for nil error, got %v", got)
	}
	err := errors.Join(
		&SinkError{Sink: "webhook", Err: errors.New("502")},
		errors.New("not a sink error"),
		&SinkError{Sink: "kafka", Err: errors.New("leader")},
	)
	got := FailedSinks(err)
	if len(got) != 2 || got[0] != "webhook" || got[1] != "kafka" {
		t.Fatalf("unexpected failed sinks %v", got)
	}
}

func TestDeliverRespectsKindFilter(t *testing.T) {
	auditOnly := &recordingSink{name: "audit-only", kinds: []Kind{KindAudit}}
	d := NewDispatcher(time.Second, auditOnly)

	if err := d.Deliver(context.Background(), Event{Kind: KindContact}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if auditOnly.count() != 0 {
		t.Fatalf("contact event should be skipped")
	}
}

func TestDeliverAppliesPerSinkTimeout(t *testing.T) {
	slow := &recordingSink{name: "slow", delay: time.Second}
	err := NewDispatcher(20*time.Millisecond, slow).Deliver(context.Background(), Event{Kind: KindAudit})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDeliverRecoversSinkPanic(t *testing.T) {
	err := NewDispatcher(time.Second, panicSink{}).Deliver(context.Background(), Event{Kind: KindAudit})
	if err == nil {
		t.Fatalf("expected error from panicking sink")
	}
}

func TestPublishIsAsyncAndIgnoresCallerCancel(t *testing.T) {
	sink := &recordingSink{name: "async", delay: 20 * time.Millisecond, err: errors.New("ignored")}
	d := NewDispatcher(time.Second, sink)

	ctx, cancel := context.WithCancel(context.Background())
	d.Publish(ctx, Event{Kind: KindAudit, ID: "x"})
	cancel()

	waitCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	if err := d.Wait(waitCtx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if sink.count() != 1 {
		t.Fatalf("expected the event to be delivered despite caller cancel")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	sink := &recordingSink{name: "blocked", delay: time.Second}
	d := NewDispatcher(0, sink)
	d.Publish(context.Background(), Event{Kind: KindAudit})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := d.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wait to time out, got %v", err)
	}
}

func TestPublishWithoutSinksIsNoop(t *testing.T) {
	d := NewDispatcher(time.Second)
	d.Publish(context.Background(), Event{Kind: KindContact})
	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
}
