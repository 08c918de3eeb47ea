package importservice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotire/internal/domain"
	"gotire/internal/service/importservice"
)

func newParser(existing ...string) *importservice.Parser {
	set := make(map[string]bool, len(existing))
	for _, b := range existing {
		set[b] = true
	}
	return importservice.NewParser(registry(), set)
}

func TestParse_TwoColumnsWithPadding(t *testing.T) {
	result := newParser().Parse("4903715\tSlick 992 Dianteiro\n903456\tWet 991 Dianteiro")

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "04903715", result.Entries[0].Barcode)
	assert.Equal(t, "m1", result.Entries[0].ModelID)
	assert.Equal(t, "00903456", result.Entries[1].Barcode)
	assert.Equal(t, "m3", result.Entries[1].ModelID)
	assert.Equal(t, domain.TireTypeWet, result.Entries[1].ModelType)

	for _, e := range result.Entries {
		assert.Equal(t, domain.StatusNovo, e.Status)
		assert.Empty(t, e.ContainerID)
		assert.NotEmpty(t, e.ID)
	}
	assert.NotEqual(t, result.Entries[0].ID, result.Entries[1].ID)

	require.Len(t, result.Warnings, 2)
	assert.True(t, strings.HasPrefix(result.Warnings[1], "Linha 2:"))
	assert.Contains(t, result.Warnings[1], "00903456")
}

func TestParse_SingleColumnAborts(t *testing.T) {
	text := "Slick 992 Dianteiro\nWet 991 Dianteiro\n04903715\tSlick 992 Dianteiro\nSlick 992 Traseiro"

	result := newParser().Parse(text)

	assert.Empty(t, result.Entries)
	assert.Equal(t, []string{importservice.ErrSingleColumn}, result.Errors)
}

func TestParse_HeaderSkippedWithWarning(t *testing.T) {
	result := newParser().Parse("Código\tModelo\n04903715\tSlick 992 Dianteiro")

	require.Len(t, result.Entries, 1)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Linha 1:")
}

func TestParse_HeaderOnlyOnFirstLine(t *testing.T) {
	text := "04903715\tSlick 992 Dianteiro\nModelo\tSerial\n04903716\tSlick 992 Traseiro"

	result := newParser().Parse(text)

	assert.Len(t, result.Entries, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Linha 2:")
}

func TestParse_SeparatorHeuristics(t *testing.T) {
	cases := map[string]string{
		"semicolon":   "SN-04903715;Slick 992 Dianteiro",
		"comma":       "#04903715,Slick 992 Dianteiro",
		"multi-space": "#04903715   Slick 992 Dianteiro",
		"first-space": "#04903715 Slick 992 Dianteiro",
		"crlf":        "04903715 ; Slick 992 Dianteiro\r\n",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			result := newParser().Parse(line)
			require.Empty(t, result.Errors)
			require.Len(t, result.Entries, 1)
			assert.Equal(t, "04903715", result.Entries[0].Barcode)
			assert.Equal(t, "m1", result.Entries[0].ModelID)
		})
	}
}

func TestParse_DuplicateAgainstStoreAndWithinPaste(t *testing.T) {
	text := "04903715\tSlick 992 Dianteiro\n04903716\tSlick 992 Dianteiro\n04903716\tSlick 992 Traseiro"

	result := newParser("04903715").Parse(text)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "04903716", result.Entries[0].Barcode)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Linha 1: código 04903715 já cadastrado")
	assert.Contains(t, result.Errors[1], "Linha 3:")
	assert.Contains(t, result.Errors[1], "linha 2")
}

func TestParse_InvalidLengthAndUnknownModel(t *testing.T) {
	text := strings.Join([]string{
		"04903715\tSlick 992 Dianteiro",
		"123456789\tSlick 992 Dianteiro",
		"04903717\tPirelli P Zero",
		"04903718\tWet 991 Dianteiro",
	}, "\n")

	result := newParser().Parse(text)

	assert.Len(t, result.Entries, 2)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Linha 2:")
	assert.Contains(t, result.Errors[0], "8 dígitos")
	assert.Contains(t, result.Errors[1], "Linha 3:")
	assert.Contains(t, result.Errors[1], "Modelos disponíveis")
}

func TestParse_MissingModel(t *testing.T) {
	result := newParser().Parse("04903715\n04903716\tSlick 992 Dianteiro")

	assert.Len(t, result.Entries, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "modelo ausente")
}

func TestParse_EmptyInput(t *testing.T) {
	result := newParser().Parse("\n  \n")

	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestDecodeText(t *testing.T) {
	assert.Equal(t, "Código", importservice.DecodeText([]byte("C\xf3digo")))
	assert.Equal(t, "Código", importservice.DecodeText([]byte("\xef\xbb\xbfCódigo")))
}
