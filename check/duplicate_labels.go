package check

import (
	"fmt"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

type labelScope map[string]ast.Location

func (s labelScope) clone() labelScope {
	out := make(labelScope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// DuplicateLabels reports every Labeled node whose label was already
// bound earlier in the same label scope. Scopes nest per spec.md §3.3:
// a Rule starts a fresh scope; each Choice alternative, and the operand
// of an Action/Prefixed/Suffixed/Group, runs against a cloned snapshot
// so bindings introduced there never leak outward or sideways; a
// Sequence's elements share one scope, augmented left-to-right as each
// Labeled is visited.
func DuplicateLabels(g *ast.Grammar, s *diagnostics.Session) {
	v := ast.NewExprVisitor(ast.ExprHandlers{
		RuleReference:     func(*ast.ExprVisitor, *ast.RuleReference, any) any { return nil },
		SemanticPredicate: func(*ast.ExprVisitor, *ast.SemanticPredicate, any) any { return nil },
		Literal:           func(*ast.ExprVisitor, *ast.Literal, any) any { return nil },
		CharacterClass:    func(*ast.ExprVisitor, *ast.CharacterClass, any) any { return nil },
		Any:               func(*ast.ExprVisitor, *ast.Any, any) any { return nil },

		Choice: func(vv *ast.ExprVisitor, n *ast.Choice, aux any) any {
			scope := aux.(labelScope)
			for _, alt := range n.Alternatives {
				vv.Visit(alt, scope.clone())
			}
			return nil
		},
		Sequence: func(vv *ast.ExprVisitor, n *ast.Sequence, aux any) any {
			scope := aux.(labelScope)
			for _, el := range n.Elements {
				vv.Visit(el, scope)
			}
			return nil
		},
		Labeled: func(vv *ast.ExprVisitor, n *ast.Labeled, aux any) any {
			scope := aux.(labelScope)
			if n.Label != "" {
				if first, ok := scope[n.Label]; ok {
					loc := n.Loc()
					s.Error(
						fmt.Sprintf("Label %q is already defined", n.Label),
						&loc,
						ast.Note{Message: "Original definition", Location: first},
					)
				}
			}
			vv.Visit(n.Expression, scope)
			if n.Label != "" {
				scope[n.Label] = n.Loc()
			}
			return nil
		},
		Action: func(vv *ast.ExprVisitor, n *ast.Action, aux any) any {
			vv.Visit(n.Expression, aux.(labelScope).clone())
			return nil
		},
		Prefixed: func(vv *ast.ExprVisitor, n *ast.Prefixed, aux any) any {
			vv.Visit(n.Expression, aux.(labelScope).clone())
			return nil
		},
		Suffixed: func(vv *ast.ExprVisitor, n *ast.Suffixed, aux any) any {
			vv.Visit(n.Expression, aux.(labelScope).clone())
			return nil
		},
		Group: func(vv *ast.ExprVisitor, n *ast.Group, aux any) any {
			vv.Visit(n.Expression, aux.(labelScope).clone())
			return nil
		},
	})

	for _, r := range g.Rules {
		v.Visit(r.Expression, labelScope{})
	}
}
