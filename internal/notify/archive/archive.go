package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"audit-backend/internal/notify"
	"audit-backend/internal/shared/storage/object"
	"audit-backend/internal/shared/util"
)

// Sink writes each event as a JSON document to an object store.
type Sink struct {
	store object.ObjectStore
	now   func() time.Time
}

func New(store object.ObjectStore) *Sink {
	return &Sink{store: store, now: time.Now}
}

func (s *Sink) Name() string { return "archive" }

func (s *Sink) Send(ctx context.Context, ev notify.Event) error {
	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return fmt.Errorf("encode archived event: %w", err)
	}
	key := Key(ev, s.now())
	if _, err := s.store.SaveWithKey(ctx, key, "application/json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("archive event key=%s: %w", key, err)
	}
	return nil
}

// Key returns leads/<yyyy>/<mm>/<dd>/<contact hash>/<id>.json. The date comes
// from the event timestamp, falling back to now.
func Key(ev notify.Event, now time.Time) string {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = now
	}
	ts = ts.UTC()

	contact := "anonymous"
	if strings.TrimSpace(ev.Contact.Email) != "" {
		contact = util.HashContactKey(ev.Contact.Email)
	}
	id := ev.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d", ev.Kind, ts.UnixNano())
	}
	return path.Join("leads", ts.Format("2006"), ts.Format("01"), ts.Format("02"), contact, id+".json")
}

var _ notify.Sink = (*Sink)(nil)
