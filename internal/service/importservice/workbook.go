package importservice

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Importação"

var templateHeaders = []string{"Código", "Modelo"}

// ReadWorkbook lê a primeira planilha de um .xlsx e devolve as duas primeiras colunas
// de cada linha unidas por tab, no mesmo formato do texto colado.
func ReadWorkbook(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read excel: %w", err)
	}

	var b strings.Builder
	for _, row := range rows {
		cols := make([]string, 2)
		for i := 0; i < len(row) && i < 2; i++ {
			cols[i] = strings.TrimSpace(row[i])
		}
		b.WriteString(cols[0])
		b.WriteByte('\t')
		b.WriteString(cols[1])
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Template gera a planilha modelo de importação. A coluna de código é texto para
// que o Excel não remova os zeros à esquerda.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, err
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	textStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 49})

	for i, h := range templateHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(templateSheet, cell, h)
		f.SetCellStyle(templateSheet, cell, cell, boldStyle)
	}

	examples := [][]string{
		{"04903715", "Slick 992 Dianteiro 30/65-18 N3"},
		{"04903716", "Slick 992 Traseiro 31/71-18"},
	}
	for i, row := range examples {
		r := i + 2
		f.SetCellStyle(templateSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), textStyle)
		f.SetCellStr(templateSheet, fmt.Sprintf("A%d", r), row[0])
		f.SetCellStr(templateSheet, fmt.Sprintf("B%d", r), row[1])
	}

	f.SetColWidth(templateSheet, "A", "A", 14)
	f.SetColWidth(templateSheet, "B", "B", 40)
	return f, nil
}
