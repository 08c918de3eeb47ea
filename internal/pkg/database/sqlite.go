package database

import (
	"database/sql"
	"fmt"

	// Driver SQLite puro Go, sem cgo.
	_ "modernc.org/sqlite"
)

// NewSQLiteDB abre o arquivo SQLite que guarda as coleções locais.
// Use ":memory:" em testes.
func NewSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir o SQLite em %s: %w", path, err)
	}

	// Um único escritor: o store já serializa as gravações, e ":memory:" só é
	// compartilhado dentro da mesma conexão.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao configurar journal_mode: %w", err)
	}

	return db, nil
}
