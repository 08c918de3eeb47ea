package mirrorrepo

import (
	"database/sql"
	"time"

	"gotire/internal/domain"
)

// stockEntryRow é a linha snake_case da tabela stock_entries. Colunas opcionais
// podem vir nulas de registros antigos.
type stockEntryRow struct {
	ID            string
	Barcode       string
	ModelID       sql.NullString
	ModelName     sql.NullString
	ModelType     sql.NullString
	ContainerID   sql.NullString
	ContainerName sql.NullString
	Timestamp     time.Time
	Status        string
	SessionID     sql.NullString
	Pilot         sql.NullString
	Team          sql.NullString
	Notes         sql.NullString
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func fromStockEntry(e domain.StockEntry) stockEntryRow {
	return stockEntryRow{
		ID:            e.ID,
		Barcode:       e.Barcode,
		ModelID:       nullable(e.ModelID),
		ModelName:     nullable(e.ModelName),
		ModelType:     nullable(string(e.ModelType)),
		ContainerID:   nullable(e.ContainerID),
		ContainerName: nullable(e.ContainerName),
		Timestamp:     e.Timestamp,
		Status:        string(e.Status),
		SessionID:     nullable(e.SessionID),
		Pilot:         nullable(e.Pilot),
		Team:          nullable(e.Team),
		Notes:         nullable(e.Notes),
	}
}

// toDomain converte a linha remota para a forma local. O status legado é
// normalizado aqui também, pois o espelho não passa pela migração local.
func (r stockEntryRow) toDomain() domain.StockEntry {
	status := domain.Status(r.Status)
	if status == domain.StatusLegacyAtivo {
		status = domain.StatusPiloto
	}
	return domain.StockEntry{
		ID:            r.ID,
		Barcode:       r.Barcode,
		ModelID:       r.ModelID.String,
		ModelName:     r.ModelName.String,
		ModelType:     domain.TireType(r.ModelType.String),
		ContainerID:   r.ContainerID.String,
		ContainerName: r.ContainerName.String,
		Timestamp:     r.Timestamp.UTC(),
		Status:        status,
		SessionID:     r.SessionID.String,
		Pilot:         r.Pilot.String,
		Team:          r.Team.String,
		Notes:         r.Notes.String,
	}
}
