package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session-token")
	st := NewFile(path)
	ctx := context.Background()

	if _, err := st.Load(ctx); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := st.Save(ctx, "abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "abc" {
		t.Fatalf("Load=%q want=%q", got, "abc")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file mode=%o want=600", perm)
	}

	// Save replaces the previous value.
	if err := st.Save(ctx, "def"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := st.Load(ctx); got != "def" {
		t.Fatalf("Load=%q want=%q", got, "def")
	}

	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := st.Load(ctx); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after Clear, got %v", err)
	}
	// Clearing an empty store is not an error.
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty: %v", err)
	}
}

func TestFile_EmptyTokenRejected(t *testing.T) {
	st := NewFile(filepath.Join(t.TempDir(), "tok"))
	if err := st.Save(context.Background(), "  "); err != ErrEmptyToken {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	if _, err := st.Load(ctx); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}
	if err := st.Save(ctx, "abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, err := st.Load(ctx); err != nil || got != "abc" {
		t.Fatalf("Load=%q,%v want=abc,nil", got, err)
	}
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := st.Load(ctx); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after Clear, got %v", err)
	}
}
