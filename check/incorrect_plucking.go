package check

import (
	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// IncorrectPlucking reports every pluck (`@label:`) that is lexically
// nested inside an Action, since an action already receives the full
// sequence result and cannot also receive an auto-assembled pluck value.
func IncorrectPlucking(g *ast.Grammar, s *diagnostics.Session) {
	v := ast.NewFullVisitor(ast.FullHandlers{
		Action: func(v *ast.FullVisitor, n *ast.Action, aux any) any {
			v.Visit(n.Expression, n)
			return nil
		},
		Labeled: func(v *ast.FullVisitor, n *ast.Labeled, aux any) any {
			if n.Pick {
				if action, ok := aux.(*ast.Action); ok {
					loc := n.Loc()
					code := action.Code.Location
					s.Error(`"@" cannot be used with an action block`, &loc, ast.Note{
						Message:  "Action block",
						Location: code,
					})
				}
			}
			v.Visit(n.Expression, nil)
			return nil
		},
	})
	v.VisitGrammar(g, nil)
}
