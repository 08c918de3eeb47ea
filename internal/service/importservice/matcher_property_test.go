//go:build property
// +build property

package importservice_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gotire/internal/service/importservice"
)

func sameMatch(a importservice.MatchResult, aok bool, b importservice.MatchResult, bok bool) bool {
	return aok == bok && a.Model.ID == b.Model.ID && a.Strategy == b.Strategy
}

// Property: a resolução depende só da descrição e do cadastro, não de chamadas anteriores,
// de maiúsculas ou de espaços extras.
func TestMatchDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	models := registry()
	matcher := importservice.NewMatcher(models)

	properties.Property("same query resolves to the same model", prop.ForAll(
		func(i int, suffix string) bool {
			query := models[i].Name + " " + suffix

			first, ok1 := matcher.Match(query)
			second, ok2 := matcher.Match(query)
			fresh, ok3 := importservice.NewMatcher(registry()).Match(query)

			return sameMatch(first, ok1, second, ok2) && sameMatch(first, ok1, fresh, ok3)
		},
		gen.IntRange(0, len(models)-1),
		gen.AlphaString(),
	))

	properties.Property("case and whitespace do not change the result", prop.ForAll(
		func(i int, suffix string) bool {
			query := models[i].Name + " " + suffix
			noisy := "  " + strings.ReplaceAll(strings.ToUpper(query), " ", "   ") + "\t"

			want, okWant := matcher.Match(query)
			got, okGot := matcher.Match(noisy)
			return sameMatch(want, okWant, got, okGot)
		},
		gen.IntRange(0, len(models)-1),
		gen.AlphaString(),
	))

	properties.Property("a registered name resolves to itself", prop.ForAll(
		func(i int) bool {
			got, ok := matcher.Match(models[i].Name)
			return ok && got.Model.ID == models[i].ID && got.Strategy == importservice.StrategyExact
		},
		gen.IntRange(0, len(models)-1),
	))

	properties.TestingRun(t)
}
