package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const collectionsSchema = `
CREATE TABLE IF NOT EXISTS collections (
    key        TEXT PRIMARY KEY,
    data       TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

// SQLiteBackend guarda as coleções em uma tabela chave/valor de um arquivo SQLite.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend cria a tabela se necessário.
func NewSQLiteBackend(ctx context.Context, db *sql.DB) (*SQLiteBackend, error) {
	if _, err := db.ExecContext(ctx, collectionsSchema); err != nil {
		return nil, fmt.Errorf("falha ao criar tabela collections: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := b.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (b *SQLiteBackend) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
        INSERT INTO collections (key, data, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC(),
	)
	return err
}
