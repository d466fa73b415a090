package session

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS console_session").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewPostgresStore(db)
	if err != nil {
		t.Fatalf("NewPostgresStore() error: %v", err)
	}
	return store, mock, func() { db.Close() }
}

func TestPostgresStoreSaveAndLoad(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM console_session").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO console_session").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO console_session").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO console_session").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	sess := Session{
		AccessToken:  "tok1",
		RefreshToken: "ref1",
		User:         User{ID: 1, Username: "a", Email: "a@b.com", Role: RoleAdmin},
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("token", "tok1").
		AddRow("refreshToken", "ref1").
		AddRow("user", `{"id":1,"username":"a","email":"a@b.com","role":"ADMIN"}`)
	mock.ExpectQuery("SELECT key, value FROM console_session").WillReturnRows(rows)

	got, ok := store.Load()
	if !ok {
		t.Fatalf("Load() expected session, got absent")
	}
	if got.AccessToken != "tok1" || got.User.Username != "a" || got.User.Role != RoleAdmin {
		t.Fatalf("unexpected session: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresStoreLoadAbsentWithoutToken(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("user", `{"id":1,"username":"a","email":"a@b.com","role":"ADMIN"}`)
	mock.ExpectQuery("SELECT key, value FROM console_session").WillReturnRows(rows)

	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session when token row is missing")
	}
}

func TestPostgresStoreCorruptUserClears(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("token", "tok1").
		AddRow("user", `garbage`)
	mock.ExpectQuery("SELECT key, value FROM console_session").WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM console_session").WillReturnResult(sqlmock.NewResult(0, 2))

	if _, ok := store.Load(); ok {
		t.Fatalf("expected absent session for corrupt user row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
