package importservice

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"gotire/internal/domain"
)

// Strategy identifica qual estratégia de casamento resolveu a descrição.
type Strategy string

const (
	StrategyExact       Strategy = "exact"
	StrategyContainment Strategy = "containment"
	StrategyTokens      Strategy = "tokens"
)

const (
	// minContainmentLen evita que nomes curtos casem com qualquer descrição.
	minContainmentLen = 5
	// minTokenLen descarta tokens como "de", "n3", "18".
	minTokenLen = 2
	// tokenOverlapRatio é a fração mínima dos tokens do modelo presentes na descrição.
	tokenOverlapRatio = 0.7
)

var (
	sizeSpecRe     = regexp.MustCompile(`\d+/\d+-\d+`)
	compoundSpecRe = regexp.MustCompile(`\d+/\d+`)
	compoundCodeRe = regexp.MustCompile(`\bn\d\b`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// MatchResult é o modelo resolvido e a estratégia que o encontrou.
type MatchResult struct {
	Model    domain.TireModel `json:"model"`
	Strategy Strategy         `json:"strategy"`
}

type candidate struct {
	model  domain.TireModel
	core   string
	tokens []string
}

// Matcher resolve descrições livres ("Slick 992 Dianteiro 30/65-18 N3") para um
// modelo cadastrado. É um snapshot do registro: crie um novo a cada importação.
type Matcher struct {
	candidates []candidate
}

// NewMatcher pré-calcula os nomes normalizados de todos os modelos.
func NewMatcher(models []domain.TireModel) *Matcher {
	m := &Matcher{candidates: make([]candidate, 0, len(models))}
	for _, model := range models {
		normalized := normalize(model.Name)
		m.candidates = append(m.candidates, candidate{
			model:  model,
			core:   coreName(normalized),
			tokens: tokenize(normalized),
		})
	}
	return m
}

// Match aplica as estratégias em ordem (exata, contenção, sobreposição de tokens)
// e devolve o primeiro sucesso. Sem sucesso, devolve false: nunca escolhe um
// modelo arbitrário.
func (m *Matcher) Match(query string) (MatchResult, bool) {
	normalized := normalize(query)
	if normalized == "" {
		return MatchResult{}, false
	}
	core := coreName(normalized)

	if core != "" {
		for _, c := range m.candidates {
			if c.core == core {
				return MatchResult{Model: c.model, Strategy: StrategyExact}, true
			}
		}

		// Entre vários nomes contidos, o mais longo é o mais específico.
		best := -1
		for i, c := range m.candidates {
			if len(c.core) > minContainmentLen && strings.Contains(core, c.core) {
				if best < 0 || len(c.core) > len(m.candidates[best].core) {
					best = i
				}
			}
		}
		if best >= 0 {
			return MatchResult{Model: m.candidates[best].model, Strategy: StrategyContainment}, true
		}
	}

	queryTokens := tokenize(normalized)
	best, bestRatio := -1, 0.0
	for i, c := range m.candidates {
		if len(c.tokens) == 0 {
			continue
		}
		ratio := float64(overlap(c.tokens, queryTokens)) / float64(len(c.tokens))
		if ratio >= tokenOverlapRatio && ratio > bestRatio {
			best, bestRatio = i, ratio
		}
	}
	if best >= 0 {
		return MatchResult{Model: m.candidates[best].model, Strategy: StrategyTokens}, true
	}
	return MatchResult{}, false
}

// MatchError monta a mensagem de falha com os modelos disponíveis para correção.
func (m *Matcher) MatchError(query string) string {
	names := make([]string, 0, len(m.candidates))
	for _, c := range m.candidates {
		names = append(names, c.model.Name)
	}
	if len(names) == 0 {
		return fmt.Sprintf("modelo '%s' não encontrado. Nenhum modelo cadastrado", strings.TrimSpace(query))
	}
	return fmt.Sprintf("modelo '%s' não encontrado. Modelos disponíveis: %s", strings.TrimSpace(query), strings.Join(names, ", "))
}

// overlap conta os tokens do modelo contidos em (ou que contêm) algum token da descrição.
func overlap(modelTokens, queryTokens []string) int {
	n := 0
	for _, mt := range modelTokens {
		for _, qt := range queryTokens {
			if strings.Contains(qt, mt) || strings.Contains(mt, qt) {
				n++
				break
			}
		}
	}
	return n
}

// normalize remove acentos, passa para minúsculas e colapsa espaços.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(folded, " "))
}

// coreName retira medidas (30/65-18, 30/65) e códigos de composto (N1..N9).
// Espera uma string já normalizada.
func coreName(normalized string) string {
	s := sizeSpecRe.ReplaceAllString(normalized, " ")
	s = compoundSpecRe.ReplaceAllString(s, " ")
	s = compoundCodeRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func tokenize(normalized string) []string {
	var out []string
	for _, tok := range strings.Fields(normalized) {
		if len([]rune(tok)) > minTokenLen {
			out = append(out, tok)
		}
	}
	return out
}
