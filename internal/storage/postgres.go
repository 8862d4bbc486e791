package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/timebalance/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	p := &PostgresStorage{pool: pool, logger: logger}
	if err := p.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PostgresStorage) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS user_documents (
		user_key TEXT PRIMARY KEY,
		document JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		p.logger.Errorf("failed to create user_documents table: %v", err)
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// --- DocumentStore ---
func (p *PostgresStorage) Get(ctx context.Context, userKey string) (*internal.UserDocument, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT document FROM user_documents WHERE user_key = $1`, userKey).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		p.logger.Errorf("failed to query user document: %v", err)
		return nil, err
	}
	return decodeDocument(data)
}

func (p *PostgresStorage) Set(ctx context.Context, userKey string, doc *internal.UserDocument) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO user_documents (user_key, document, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (user_key) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		userKey, string(data))
	if err != nil {
		p.logger.Errorf("failed to upsert user document: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- Compile-time assertions ---
var _ DocumentStore = (*PostgresStorage)(nil)
