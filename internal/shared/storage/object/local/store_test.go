package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audit-backend/internal/shared/storage/object"
)

func TestSaveWithKeyAndOpen(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	n, err := store.SaveWithKey(ctx, "leads/2026/01/02/k/id.json", "application/json", strings.NewReader(`{"a":1}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7 bytes, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "leads", "2026", "01", "02", "k", "id.json")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	// Overwrite keeps a single object with the new content.
	if _, err := store.SaveWithKey(ctx, "leads/2026/01/02/k/id.json", "application/json", strings.NewReader(`{}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	rc, err := store.Open(ctx, "/leads/2026/01/02/k/id.json")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != `{}` {
		t.Fatalf("unexpected body %q", body)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "leads", "2026", "01", "02", "k"))
	if len(entries) != 1 {
		t.Fatalf("expected temp files cleaned up, found %d entries", len(entries))
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.SaveWithKey(context.Background(), "../escape.json", "application/json", strings.NewReader("x"))
	if !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected invalid key, got %v", err)
	}
	if _, err := store.Open(context.Background(), "../escape.json"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected invalid key on open, got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(t.TempDir()).SaveWithKey(ctx, "a.json", "", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
