package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sample() *Session {
	return &Session{
		Token:     "signed.jwt.token",
		UserID:    "user_1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      "user",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestContext_PersistentSaveClearsEphemeral(t *testing.T) {
	durable := NewMemStore()
	ephemeral := NewMemStore()

	// Leftover from a previous non-persistent login.
	if err := ephemeral.Save(&Session{Token: "stale", UserID: "user_old"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	ctx := NewContext(durable, ephemeral, true)
	if err := ctx.Save(sample()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := ephemeral.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("ephemeral store must be cleared, got %v", err)
	}
	got, err := durable.Load()
	if err != nil {
		t.Fatalf("durable load failed: %v", err)
	}
	if got.UserID != "user_1" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestContext_EphemeralSaveClearsDurable(t *testing.T) {
	durable := NewMemStore()
	ephemeral := NewMemStore()

	if err := durable.Save(&Session{Token: "stale", UserID: "user_old"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	ctx := NewContext(durable, ephemeral, false)
	if err := ctx.Save(sample()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := durable.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("durable store must be cleared, got %v", err)
	}

	// Load must return the fresh session, never the stale one.
	got, err := ctx.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.UserID != "user_1" {
		t.Fatalf("expected fresh session, got %+v", got)
	}
}

func TestContext_LoadFallsBackToOtherStore(t *testing.T) {
	durable := NewMemStore()
	ephemeral := NewMemStore()
	if err := durable.Save(sample()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// A non-persistent context still finds a session written durably earlier.
	ctx := NewContext(durable, ephemeral, false)
	got, err := ctx.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Token != "signed.jwt.token" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestContext_ClearWipesBoth(t *testing.T) {
	durable := NewMemStore()
	ephemeral := NewMemStore()
	_ = durable.Save(sample())
	_ = ephemeral.Save(sample())

	ctx := NewContext(durable, ephemeral, true)
	if err := ctx.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := ctx.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewFileStore(path)

	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for missing file, got %v", err)
	}

	want := sample()
	if err := store.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file must be private, got %v", info.Mode().Perm())
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Token != want.Token || got.Email != want.Email || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("round-trip mismatch: %+v vs %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
	// Clearing an already-empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("repeated clear failed: %v", err)
	}
}

func TestFileStore_EmptyTokenIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":""}`), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := NewFileStore(path).Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for empty token, got %v", err)
	}
}
