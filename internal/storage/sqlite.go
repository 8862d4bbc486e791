package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourname/timebalance/internal"
	_ "modernc.org/sqlite"
)

type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLiteStorage{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS user_documents (
			user_key TEXT PRIMARY KEY,
			document TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) Get(ctx context.Context, userKey string) (*internal.UserDocument, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM user_documents WHERE user_key = ?", userKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Errorf("failed to query user document: %v", err)
		return nil, fmt.Errorf("querying user document: %w", err)
	}
	return decodeDocument([]byte(data))
}

func (s *SQLiteStorage) Set(ctx context.Context, userKey string, doc *internal.UserDocument) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_documents (user_key, document, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		userKey, string(data),
	)
	if err != nil {
		s.logger.Errorf("failed to upsert user document: %v", err)
		return fmt.Errorf("upserting user document: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ DocumentStore = (*SQLiteStorage)(nil)
