package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"audit-backend/internal/notify"
	"audit-backend/internal/scoring"
)

func TestSendAppendsRow(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotBody  appendRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"updates":{"updatedRows":1}}`))
	}))
	defer srv.Close()

	sink := newWithClient(srv.Client(), srv.URL, "sheet-123", "")
	ev := notify.Event{
		Kind:      notify.KindAudit,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Contact:   scoring.ContactInfo{Name: "Ana", Email: "ana@x.io"},
	}
	if err := sink.Send(context.Background(), ev); err != nil {
		t.Fatalf("send: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/sheet-123/values/") || !strings.HasSuffix(gotPath, ":append") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotQuery, "valueInputOption=RAW") || !strings.Contains(gotQuery, "insertDataOption=INSERT_ROWS") {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(gotBody.Values) != 1 {
		t.Fatalf("expected one row, got %d", len(gotBody.Values))
	}
	row := gotBody.Values[0]
	if row[0] != "2026-01-02T03:04:05Z" || row[1] != "Ana" || row[3] != "Not provided" {
		t.Fatalf("unexpected row %v", row)
	}
	if row[len(row)-1] != "audit-survey" {
		t.Fatalf("expected source in last column, got %v", row[len(row)-1])
	}
}

func TestSendReportsFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer srv.Close()

	err := newWithClient(srv.Client(), srv.URL, "id", "Leads!A:K").Send(context.Background(), notify.Event{Kind: notify.KindContact})
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(context.Background(), Config{SpreadsheetID: "id"}); err == nil {
		t.Fatalf("expected error without credentials")
	}
	if _, err := New(context.Background(), Config{ServiceAccountEmail: "a@b", PrivateKey: "k"}); err == nil {
		t.Fatalf("expected error without spreadsheet id")
	}
}
