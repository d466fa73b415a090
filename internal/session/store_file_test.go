package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	sess := Session{
		AccessToken:  "tok1",
		RefreshToken: "ref1",
		User:         User{ID: 1, Username: "a", Email: "a@b.com", Role: RoleAdmin},
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	store2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() second error: %v", err)
	}
	got, ok := store2.Load()
	if !ok {
		t.Fatalf("Load() expected session, got absent")
	}
	if got.AccessToken != "tok1" || got.RefreshToken != "ref1" {
		t.Fatalf("unexpected tokens: %+v", got)
	}
	if got.User != sess.User {
		t.Fatalf("expected user %+v, got %+v", sess.User, got.User)
	}
}

func TestFileStoreLoadAbsentWhenMissing(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session for missing file")
	}
}

func TestFileStoreLoadAbsentWithoutToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"user":{"id":1,"username":"a","email":"a@b.com","role":"ADMIN"}}`), 0o600); err != nil {
		t.Fatalf("write state file: %v", err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session when token key is missing")
	}
}

func TestFileStoreCorruptUserSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":"tok1","user":"not-a-user-object"}`), 0o600); err != nil {
		t.Fatalf("write state file: %v", err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session for corrupt user key")
	}
	// The corrupt state must have been wiped so the next load is clean.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected state file removed after corrupt load, stat err: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session after self-heal")
	}
}

func TestFileStoreCorruptJSONSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{{{`), 0o600); err != nil {
		t.Fatalf("write state file: %v", err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session for corrupt state file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected state file removed, stat err: %v", err)
	}
}

func TestFileStoreClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if err := store.Save(Session{AccessToken: "tok", User: User{ID: 1, Username: "a"}}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() error: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session after Clear()")
	}
}

func TestSessionValid(t *testing.T) {
	if (Session{}).Valid() {
		t.Fatalf("zero session must not be valid")
	}
	if (Session{AccessToken: "tok"}).Valid() {
		t.Fatalf("token without user must not be valid")
	}
	if !(Session{AccessToken: "tok", User: User{ID: 1, Username: "a"}}).Valid() {
		t.Fatalf("token with user must be valid")
	}
}
