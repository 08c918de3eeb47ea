package reportservice

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gotire/internal/domain"
)

// DateLayout é o formato de data das exportações (dd/mm/aaaa hh:mm).
const DateLayout = "02/01/2006 15:04"

const discardSheet = "Descartes"

var discardHeaders = []string{"Código", "Modelo", "Tipo", "Status", "Piloto", "Equipe", "Data"}

var consumptionHeaders = []string{"Código", "Piloto", "Equipe", "Observações", "Data", "Registrado por"}

func discardRow(r domain.DiscardRecord) []string {
	return []string{
		r.Barcode,
		r.ModelName,
		string(r.ModelType),
		string(r.Status),
		r.Pilot,
		r.Team,
		r.DiscardedAt.Format(DateLayout),
	}
}

// WriteDiscardsCSV escreve o histórico de descartes em CSV.
func (s *Service) WriteDiscardsCSV(ctx context.Context, w io.Writer) error {
	records, err := s.DiscardHistory(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(discardHeaders); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(discardRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteConsumptionCSV escreve o histórico de transferências para piloto em CSV,
// com todos os campos entre aspas.
func (s *Service) WriteConsumptionCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.GetConsumptions(ctx)
	if err != nil {
		return err
	}

	if err := writeQuoted(w, consumptionHeaders); err != nil {
		return err
	}
	for _, c := range records {
		row := []string{c.Barcode, c.Pilot, c.Team, c.Notes, c.Timestamp.Format(DateLayout), c.RegisteredBy}
		if err := writeQuoted(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeQuoted escreve uma linha CSV com todos os campos entre aspas;
// csv.Writer só cita quando necessário.
func writeQuoted(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}

// DiscardWorkbook gera a planilha do histórico de descartes e o nome sugerido do arquivo.
func (s *Service) DiscardWorkbook(ctx context.Context) (*excelize.File, string, error) {
	records, err := s.DiscardHistory(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", discardSheet); err != nil {
		return nil, "", err
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	textStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 49})

	for i, h := range discardHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(discardSheet, cell, h)
		f.SetCellStyle(discardSheet, cell, cell, boldStyle)
	}

	for i, r := range records {
		row := i + 2
		f.SetCellStyle(discardSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), textStyle)
		for j, v := range discardRow(r) {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellStr(discardSheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	summaryRow := len(records) + 3
	f.SetCellValue(discardSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(discardSheet, fmt.Sprintf("B%d", summaryRow), len(records))
	f.SetCellStyle(discardSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow), summaryStyle)

	f.SetColWidth(discardSheet, "A", "A", 12)
	f.SetColWidth(discardSheet, "B", "B", 32)
	f.SetColWidth(discardSheet, "C", "F", 16)
	f.SetColWidth(discardSheet, "G", "G", 18)

	filename := fmt.Sprintf("descartes_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
