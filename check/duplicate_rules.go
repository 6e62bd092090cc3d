package check

import (
	"fmt"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// DuplicateRules reports every rule whose name was already used by an
// earlier rule in the grammar.
func DuplicateRules(g *ast.Grammar, s *diagnostics.Session) {
	seen := make(map[string]ast.Location, len(g.Rules))
	for _, r := range g.Rules {
		if first, ok := seen[r.Name]; ok {
			s.Error(
				fmt.Sprintf("Rule %q is already defined", r.Name),
				&r.NameSpan,
				ast.Note{Message: "Original definition", Location: first},
			)
			continue
		}
		seen[r.Name] = r.NameSpan
	}
}
