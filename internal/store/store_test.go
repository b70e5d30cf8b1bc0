package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Empty store loads a zero session.
	sess, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if sess.IsComplete() {
		t.Fatalf("empty store reported a complete session: %+v", sess)
	}

	if err := s.SaveSession(ctx, "t1", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess, err = s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Token != "t1" || string(sess.User) != `{"id":1}` {
		t.Fatalf("loaded %+v", sess)
	}
	if !sess.IsComplete() {
		t.Fatalf("saved session not complete")
	}
}

func TestSQLiteStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SaveSession(ctx, "t1", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveSession(ctx, "t2", []byte(`{"id":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	sess, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Token != "t2" || string(sess.User) != `{"id":2}` {
		t.Fatalf("expected second write, got %+v", sess)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SaveSession(ctx, "t1", []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.ClearSession(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	sess, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Token != "" || len(sess.User) != 0 {
		t.Fatalf("clear left state behind: %+v", sess)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveSession(ctx, "t1", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Session state survives a process restart.
	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	sess, err := s2.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if sess.Token != "t1" {
		t.Fatalf("expected persisted token, got %+v", sess)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if err := m.SaveSession(ctx, "t1", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess, _ := m.LoadSession(ctx)
	if sess.Token != "t1" || !sess.IsComplete() {
		t.Fatalf("loaded %+v", sess)
	}

	if err := m.ClearSession(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	sess, _ = m.LoadSession(ctx)
	if sess.Token != "" || sess.User != nil {
		t.Fatalf("clear left state behind: %+v", sess)
	}

	// Seed allows a partial pair for restore tests.
	m.Seed("t2", nil)
	sess, _ = m.LoadSession(ctx)
	if sess.Token != "t2" || sess.IsComplete() {
		t.Fatalf("seeded partial session: %+v", sess)
	}
}
