package importservice

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"gotire/internal/domain"
)

// ErrSingleColumn é a mensagem do aborto global: a maioria das linhas não tem código.
const ErrSingleColumn = "A maioria das linhas não contém um código de barras de 7 ou 8 dígitos. " +
	"Parece que apenas uma coluna foi colada: copie as duas colunas (código e modelo)."

var headerKeywords = []string{"serial", "codigo", "barcode", "modelo", "model", "pneu", "tire"}

var (
	barcodeRunRe     = regexp.MustCompile(`(^|\D)\d{7,8}(\D|$)`)
	leadingBarcodeRe = regexp.MustCompile(`^(\d{7,8})(\D|$)`)
	leadingDigitsRe  = regexp.MustCompile(`^(\d+)`)
	multiSpaceRe     = regexp.MustCompile(`\s{2,}`)
	nonDigitRe       = regexp.MustCompile(`\D`)
)

// Parser transforma texto colado (código + modelo por linha) em entradas candidatas.
// Trabalha sobre snapshots: o registro de modelos e os códigos já existentes.
type Parser struct {
	matcher  *Matcher
	existing map[string]bool
	now      func() time.Time
}

// NewParser cria um parser. existing contém todos os códigos do store, inclusive descartados.
func NewParser(models []domain.TireModel, existing map[string]bool) *Parser {
	return &Parser{
		matcher:  NewMatcher(models),
		existing: existing,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type parsedLine struct {
	number int
	text   string
}

// Parse processa o texto inteiro. Erros e avisos são por linha ("Linha N: ...");
// um resultado parcial é válido e cabe ao chamador decidir se grava o subconjunto.
func (p *Parser) Parse(text string) domain.ParseResult {
	result := domain.ParseResult{Entries: []domain.StockEntry{}, Errors: []string{}, Warnings: []string{}}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []parsedLine
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, parsedLine{number: i + 1, text: line})
	}

	if len(lines) > 0 && isHeader(lines[0].text) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Linha %d: cabeçalho detectado e ignorado.", lines[0].number))
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return result
	}

	missing := 0
	for _, l := range lines {
		if !barcodeRunRe.MatchString(l.text) {
			missing++
		}
	}
	if missing*2 > len(lines) {
		result.Errors = append(result.Errors, ErrSingleColumn)
		return result
	}

	seen := make(map[string]int)
	for _, l := range lines {
		p.parseLine(l, seen, &result)
	}
	return result
}

func (p *Parser) parseLine(l parsedLine, seen map[string]int, result *domain.ParseResult) {
	prefix := fmt.Sprintf("Linha %d: ", l.number)

	rawBarcode, modelText := splitColumns(l.text)
	if rawBarcode == "" {
		result.Errors = append(result.Errors, prefix+"código de barras não encontrado.")
		return
	}
	if modelText == "" {
		result.Errors = append(result.Errors, prefix+fmt.Sprintf("modelo ausente para o código %s.", rawBarcode))
		return
	}

	barcode := nonDigitRe.ReplaceAllString(rawBarcode, "")
	switch {
	case len(barcode) == 8:
	case len(barcode) == 6 || len(barcode) == 7:
		padded := strings.Repeat("0", 8-len(barcode)) + barcode
		result.Warnings = append(result.Warnings, prefix+fmt.Sprintf("código %s completado com zeros à esquerda: %s.", barcode, padded))
		barcode = padded
	default:
		result.Errors = append(result.Errors, prefix+fmt.Sprintf("código '%s' deve ter 8 dígitos (encontrados %d).", rawBarcode, len(barcode)))
		return
	}

	if p.existing[barcode] {
		result.Errors = append(result.Errors, prefix+fmt.Sprintf("código %s já cadastrado no estoque.", barcode))
		return
	}
	if first, dup := seen[barcode]; dup {
		result.Errors = append(result.Errors, prefix+fmt.Sprintf("código %s repetido (já informado na linha %d).", barcode, first))
		return
	}

	match, ok := p.matcher.Match(modelText)
	if !ok {
		result.Errors = append(result.Errors, prefix+p.matcher.MatchError(modelText))
		return
	}

	seen[barcode] = l.number
	result.Entries = append(result.Entries, domain.StockEntry{
		ID:        uuid.NewString(),
		Barcode:   barcode,
		ModelID:   match.Model.ID,
		ModelName: match.Model.Name,
		ModelType: match.Model.Type,
		Timestamp: p.now(),
		Status:    domain.StatusNovo,
	})
}

// splitColumns aplica as heurísticas em ordem: 7–8 dígitos iniciais, qualquer
// sequência inicial de dígitos, e por fim a divisão por separador
// (tab > ; > , > 2+ espaços > primeiro espaço).
func splitColumns(line string) (barcode, model string) {
	if m := leadingBarcodeRe.FindStringSubmatch(line); m != nil {
		return m[1], trimSeparators(line[len(m[1]):])
	}
	if m := leadingDigitsRe.FindStringSubmatch(line); m != nil {
		return m[1], trimSeparators(line[len(m[1]):])
	}

	var parts []string
	switch {
	case strings.Contains(line, "\t"):
		parts = strings.Split(line, "\t")
	case strings.Contains(line, ";"):
		parts = strings.Split(line, ";")
	case strings.Contains(line, ","):
		parts = strings.Split(line, ",")
	case multiSpaceRe.MatchString(line):
		parts = multiSpaceRe.Split(line, -1)
	default:
		parts = strings.SplitN(line, " ", 2)
	}
	if len(parts) < 2 {
		return "", ""
	}

	rest := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if part = strings.TrimSpace(part); part != "" {
			rest = append(rest, part)
		}
	}
	return nonDigitRe.ReplaceAllString(parts[0], ""), strings.Join(rest, " ")
}

func trimSeparators(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, " \t;,|-"))
}

// isHeader reconhece a linha de título de uma planilha. Uma linha com código de
// barras é sempre dado, mesmo que o nome do modelo contenha "pneu" ou "tire".
func isHeader(line string) bool {
	if barcodeRunRe.MatchString(line) {
		return false
	}
	normalized := normalize(line)
	for _, kw := range headerKeywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// DecodeText converte o corpo recebido para UTF-8. Planilhas exportadas como texto
// no Windows costumam vir em Windows-1252; o BOM UTF-8 é removido.
func DecodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), "\ufeff")
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "")
	}
	return string(decoded)
}
