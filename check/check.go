// Package check implements the six semantic validation passes run
// against a parsed grammar before any transformation takes place. No
// pass in this package mutates the AST.
package check

import (
	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// Pass validates g, reporting problems into s. It never mutates g.
type Pass func(g *ast.Grammar, s *diagnostics.Session)

// Named pairs a pass with the name used for trace logging.
type Named struct {
	Name string
	Run  Pass
}

// Default returns the six check passes in the order spec.md §4.4
// enumerates them. All six run during the stage even after one reports
// an error — errors only halt the pipeline at the stage boundary.
func Default() []Named {
	return []Named{
		{"undefined-rules", UndefinedRules},
		{"duplicate-rules", DuplicateRules},
		{"duplicate-labels", DuplicateLabels},
		{"infinite-repetition", InfiniteRepetition},
		{"left-recursion", LeftRecursion},
		{"incorrect-plucking", IncorrectPlucking},
	}
}
