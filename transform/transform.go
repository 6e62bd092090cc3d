package transform

import (
	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// Pass mutates g, reporting problems into s and reading opts for
// whatever it needs (currently only proxy removal consults
// opts.AllowedStartRules).
type Pass func(g *ast.Grammar, opts Options, s *diagnostics.Session)

// Named pairs a pass with the name used for trace logging.
type Named struct {
	Name string
	Run  Pass
}

// Default returns the two transform passes in the order spec.md §4.5
// runs them: proxy elimination first (it can remove and retarget rule
// references), then match-result inference over the resulting tree.
func Default() []Named {
	return []Named{
		{"remove-proxy-rules", RemoveProxyRules},
		{"infer-match-results", func(g *ast.Grammar, _ Options, s *diagnostics.Session) {
			InferMatchResults(g, s)
		}},
	}
}
