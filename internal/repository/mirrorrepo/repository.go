// Package mirrorrepo espelha mutações locais em um PostgreSQL remoto.
// O espelho é de melhor esforço: o store local é sempre a fonte da verdade.
package mirrorrepo

import (
	"context"
	"database/sql"
	"time"

	"gotire/internal/domain"
	"gotire/internal/errors"
)

// Repository implementa as escritas e leituras do espelho remoto.
type Repository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewRepository cria e retorna uma nova instância do Repositório do espelho.
func NewRepository(db *sql.DB, dbTimeout time.Duration) *Repository {
	return &Repository{DB: db, DBTimeout: dbTimeout}
}

const insertStockEntrySQL = `INSERT INTO stock_entries
	(id, barcode, model_id, model_name, model_type, container_id, container_name, timestamp, status, session_id, pilot, team, notes)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

const upsertStockEntrySQL = `INSERT INTO stock_entries
	(id, barcode, model_id, model_name, model_type, container_id, container_name, timestamp, status, session_id, pilot, team, notes)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	ON CONFLICT (barcode) DO UPDATE SET
		container_id = EXCLUDED.container_id,
		container_name = EXCLUDED.container_name,
		status = EXCLUDED.status,
		session_id = EXCLUDED.session_id,
		pilot = EXCLUDED.pilot,
		team = EXCLUDED.team,
		notes = EXCLUDED.notes`

// InsertStockEntries grava novas entradas numa única transação.
func (r *Repository) InsertStockEntries(ctx context.Context, entries []domain.StockEntry) error {
	return r.execStockEntries(ctx, insertStockEntrySQL, entries, "failed to insert stock entries")
}

// UpdateStockEntries grava o estado atual das entradas (upsert por código de barras).
func (r *Repository) UpdateStockEntries(ctx context.Context, entries []domain.StockEntry) error {
	return r.execStockEntries(ctx, upsertStockEntrySQL, entries, "failed to upsert stock entries")
}

func (r *Repository) execStockEntries(ctx context.Context, query string, entries []domain.StockEntry, failMsg string) (err error) {
	if len(entries) == 0 {
		return nil
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return errors.NewDBError("failed to start tx", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, e := range entries {
		row := fromStockEntry(e)
		_, err = tx.ExecContext(ctxTimeout, query,
			row.ID,
			row.Barcode,
			row.ModelID,
			row.ModelName,
			row.ModelType,
			row.ContainerID,
			row.ContainerName,
			row.Timestamp,
			row.Status,
			row.SessionID,
			row.Pilot,
			row.Team,
			row.Notes,
		)
		if err != nil {
			return errors.NewDBError(failMsg, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewDBError("failed to commit tx", err)
	}
	return nil
}

// InsertMovements grava registros de movimentação.
func (r *Repository) InsertMovements(ctx context.Context, movements []domain.Movement) (err error) {
	if len(movements) == 0 {
		return nil
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return errors.NewDBError("failed to start tx", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const movementSQL = `INSERT INTO tire_movements
		(id, barcode, model_name, model_type, from_container, to_container, from_status, to_status, timestamp, moved_by, reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	for _, m := range movements {
		_, err = tx.ExecContext(ctxTimeout, movementSQL,
			m.ID,
			m.Barcode,
			m.ModelName,
			string(m.ModelType),
			m.FromContainer,
			m.ToContainer,
			string(m.FromStatus),
			string(m.ToStatus),
			m.Timestamp,
			m.MovedBy,
			m.Reason,
		)
		if err != nil {
			return errors.NewDBError("failed to insert movements", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewDBError("failed to commit tx", err)
	}
	return nil
}

// InsertConsumptions grava registros de consumo.
func (r *Repository) InsertConsumptions(ctx context.Context, consumptions []domain.Consumption) (err error) {
	if len(consumptions) == 0 {
		return nil
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return errors.NewDBError("failed to start tx", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const consumptionSQL = `INSERT INTO tire_consumption
		(id, barcode, pilot, team, notes, timestamp, registered_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`

	for _, c := range consumptions {
		_, err = tx.ExecContext(ctxTimeout, consumptionSQL,
			c.ID,
			c.Barcode,
			c.Pilot,
			c.Team,
			c.Notes,
			c.Timestamp,
			c.RegisteredBy,
		)
		if err != nil {
			return errors.NewDBError("failed to insert consumptions", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewDBError("failed to commit tx", err)
	}
	return nil
}

// ListStockEntries lê todas as entradas do espelho, já no formato local.
func (r *Repository) ListStockEntries(ctx context.Context) ([]domain.StockEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT id, barcode, model_id, model_name, model_type, container_id, container_name,
		timestamp, status, session_id, pilot, team, notes
		FROM stock_entries ORDER BY timestamp`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		return nil, errors.NewDBError("failed to query stock entries", err)
	}
	defer rows.Close()

	var out []domain.StockEntry
	for rows.Next() {
		var row stockEntryRow
		if err := rows.Scan(
			&row.ID,
			&row.Barcode,
			&row.ModelID,
			&row.ModelName,
			&row.ModelType,
			&row.ContainerID,
			&row.ContainerName,
			&row.Timestamp,
			&row.Status,
			&row.SessionID,
			&row.Pilot,
			&row.Team,
			&row.Notes,
		); err != nil {
			return nil, errors.NewDBError("failed to scan stock entry", err)
		}
		out = append(out, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("failed to iterate stock entries", err)
	}
	return out, nil
}
