package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver PostgreSQL do banco espelho remoto.
	_ "github.com/lib/pq"
)

// NewPostgresDB abre e configura o pool de conexões com o banco espelho.
// Retorna a conexão *sql.DB pronta para uso.
func NewPostgresDB(dataSourceName string, pingTimeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	// Garante que as credenciais e o servidor estão corretos
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// O espelho recebe escritas curtas e esporádicas; um pool pequeno basta.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}
