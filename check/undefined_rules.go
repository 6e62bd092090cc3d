package check

import (
	"fmt"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// UndefinedRules reports every RuleReference whose name does not match
// any rule in the grammar.
func UndefinedRules(g *ast.Grammar, s *diagnostics.Session) {
	v := ast.NewFullVisitor(ast.FullHandlers{
		RuleReference: func(v *ast.FullVisitor, n *ast.RuleReference, aux any) any {
			if ast.FindRule(g, n.Name) == nil {
				loc := n.Loc()
				s.Error(fmt.Sprintf("Rule %q is not defined", n.Name), &loc)
			}
			return nil
		},
	})
	v.VisitGrammar(g, nil)
}
