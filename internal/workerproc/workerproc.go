package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"audit-backend/internal/notify"
	"audit-backend/internal/queue"
	"audit-backend/internal/shared/server/middleware"
)

// MaxRequeues bounds how many times a partially delivered message is narrowed
// and re-enqueued before it is left to ordinary queue redelivery.
const MaxRequeues = 5

// Deliverer sends an event to the named sinks, or to all of them when sinks
// is empty.
type Deliverer interface {
	DeliverTo(ctx context.Context, ev notify.Event, sinks []string) error
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingEventID indicates a message whose event has no id.
type ErrMissingEventID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingEventID) Error() string { return "missing event id" }

// ErrUnsupportedKind indicates a message with an unknown event kind.
type ErrUnsupportedKind struct {
	Meta      MessageMeta
	Kind      notify.Kind
	RequestID string
}

func (e ErrUnsupportedKind) Error() string { return "unsupported event kind: " + string(e.Kind) }

// ErrProcess indicates delivery failed after successful parsing.
type ErrProcess struct {
	EventID   string
	Kind      notify.Kind
	RequestID string
	Message   queue.Message
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "deliver event"
	}
	return "deliver event: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// Unrecoverable reports whether err means the message can never succeed and
// should be removed from the queue.
func Unrecoverable(err error) bool {
	switch err.(type) {
	case ErrEmptyBody, ErrDecode, ErrMissingEventID, ErrUnsupportedKind:
		return true
	default:
		return false
	}
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.Event.ID) == "" {
		return msg, meta, ErrMissingEventID{Meta: meta, RequestID: msg.RequestID}
	}
	if msg.Event.Kind == "" {
		msg.Event.Kind = msg.Kind
	}
	switch msg.Event.Kind {
	case notify.KindAudit, notify.KindContact:
	default:
		return msg, meta, ErrUnsupportedKind{Meta: meta, Kind: msg.Event.Kind, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage parses, validates, and delivers a message payload.
func HandleMessage(ctx context.Context, d Deliverer, body string) error {
	if d == nil {
		return errors.New("event dispatcher not configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}

	if strings.TrimSpace(msg.Event.ID) == "" {
		return ErrMissingEventID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	ctxWithRequest := middleware.WithRequestID(ctx, msg.RequestID)
	if err := d.DeliverTo(ctxWithRequest, msg.Event, msg.Sinks); err != nil {
		return ErrProcess{EventID: msg.Event.ID, Kind: msg.Event.Kind, RequestID: msg.RequestID, Message: msg, Err: err}
	}
	return nil
}

// Requeue returns a copy of the failed message addressed only to the sinks
// that failed, so sinks that already took the event do not get it twice. It
// reports false when err names no failed sink or the message has already been
// requeued MaxRequeues times.
func Requeue(err error) (queue.Message, bool) {
	var procErr ErrProcess
	if !errors.As(err, &procErr) {
		return queue.Message{}, false
	}
	failed := notify.FailedSinks(procErr.Err)
	if len(failed) == 0 || procErr.Message.Attempt >= MaxRequeues {
		return queue.Message{}, false
	}
	msg := procErr.Message
	msg.Sinks = failed
	msg.Attempt++
	return msg, true
}
