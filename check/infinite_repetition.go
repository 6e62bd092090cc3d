package check

import (
	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// InfiniteRepetition reports every zero_or_more/one_or_more whose
// operand might succeed without consuming input, which would loop
// forever at runtime.
func InfiniteRepetition(g *ast.Grammar, s *diagnostics.Session) {
	v := ast.NewFullVisitor(ast.FullHandlers{
		Suffixed: func(v *ast.FullVisitor, n *ast.Suffixed, aux any) any {
			if n.Operator == ast.ZeroOrMore || n.Operator == ast.OneOrMore {
				if !ast.AlwaysConsumesOnSuccess(g, n.Expression) {
					loc := n.Loc()
					s.Error(
						"Possible infinite loop when parsing (repetition used with an expression that may not consume any input)",
						&loc,
					)
				}
			}
			v.Visit(n.Expression, aux)
			return nil
		},
	})
	v.VisitGrammar(g, nil)
}
