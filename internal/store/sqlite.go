package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps session state in a small key-value table so it survives
// process restarts. Both session keys are written and cleared inside one
// transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) SaveSession(ctx context.Context, token string, user []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save session: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := tx.ExecContext(ctx, upsert, KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, KeyUser, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadSession(ctx context.Context) (Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session_state WHERE key IN (?, ?)`, KeyToken, KeyUser)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	var sess Session
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return Session{}, fmt.Errorf("scan session row: %w", err)
		}
		switch key {
		case KeyToken:
			sess.Token = string(value)
		case KeyUser:
			sess.User = value
		}
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("read session rows: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE key IN (?, ?)`, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
