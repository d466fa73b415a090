package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore keeps the three session keys in a small key-value
// table. Chosen in app wiring when DATABASE_URL is set.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS console_session (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("ensure console_session schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM console_session`); err != nil {
		return fmt.Errorf("clear session rows: %w", err)
	}

	const q = `INSERT INTO console_session (key, value) VALUES ($1, $2)`
	pairs := [][2]string{
		{keyToken, sess.AccessToken},
		{keyRefreshToken, sess.RefreshToken},
		{keyUser, string(userJSON)},
	}
	for _, kv := range pairs {
		if _, err := tx.Exec(q, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert session row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load() (Session, bool) {
	rows, err := s.db.Query(`SELECT key, value FROM console_session`)
	if err != nil {
		return Session{}, false
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Session{}, false
		}
		values[k] = v
	}
	if rows.Err() != nil {
		return Session{}, false
	}

	token := values[keyToken]
	if token == "" {
		return Session{}, false
	}

	var user User
	if json.Unmarshal([]byte(values[keyUser]), &user) != nil || user == (User{}) {
		_ = s.Clear()
		return Session{}, false
	}

	return Session{
		AccessToken:  token,
		RefreshToken: values[keyRefreshToken],
		User:         user,
	}, true
}

func (s *PostgresStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM console_session`); err != nil {
		return fmt.Errorf("clear session rows: %w", err)
	}
	return nil
}
