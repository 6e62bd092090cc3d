package check

import (
	"fmt"
	"strings"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

type lrState struct {
	names []string
	refs  []*ast.RuleReference
}

// LeftRecursion reports rules reachable from themselves via a chain of
// RuleReferences in which every intermediate step can succeed without
// consuming input. Detection walks the call graph starting from each
// rule; as soon as a cycle is found the walk backs out without
// descending further, so the recursion this check performs is itself
// bounded by the number of rules in the grammar.
func LeftRecursion(g *ast.Grammar, s *diagnostics.Session) {
	v := newLeftRecursionVisitor(g, s)
	for _, r := range g.Rules {
		st := &lrState{names: []string{r.Name}}
		v.Visit(r.Expression, st)
	}
}

func newLeftRecursionVisitor(g *ast.Grammar, s *diagnostics.Session) *ast.ExprVisitor {
	var v *ast.ExprVisitor
	v = ast.NewExprVisitor(ast.ExprHandlers{
		SemanticPredicate: func(*ast.ExprVisitor, *ast.SemanticPredicate, any) any { return nil },
		Literal:           func(*ast.ExprVisitor, *ast.Literal, any) any { return nil },
		CharacterClass:    func(*ast.ExprVisitor, *ast.CharacterClass, any) any { return nil },
		Any:               func(*ast.ExprVisitor, *ast.Any, any) any { return nil },

		// Elements of a sequence are visited left to right, but once one
		// of them always consumes input on success, nothing after it can
		// still be part of a left-recursive cycle starting at position 0.
		// The walk also stops after an element in which a cycle was just
		// reported: asking whether that element consumes input would
		// follow the same cycle through AlwaysConsumesOnSuccess forever.
		Sequence: func(vv *ast.ExprVisitor, n *ast.Sequence, aux any) any {
			for _, el := range n.Elements {
				before := s.ErrorCount()
				vv.Visit(el, aux)
				if s.ErrorCount() > before || ast.AlwaysConsumesOnSuccess(g, el) {
					break
				}
			}
			return nil
		},
		// Every alternative is a candidate path at position 0.
		Choice: func(vv *ast.ExprVisitor, n *ast.Choice, aux any) any {
			for _, alt := range n.Alternatives {
				vv.Visit(alt, aux)
			}
			return nil
		},
		RuleReference: func(vv *ast.ExprVisitor, n *ast.RuleReference, aux any) any {
			st := aux.(*lrState)
			st.refs = append(st.refs, n)
			defer func() { st.refs = st.refs[:len(st.refs)-1] }()

			target := ast.FindRule(g, n.Name)
			if target == nil {
				return nil
			}
			for _, name := range st.names {
				if name == target.Name {
					reportLeftRecursion(s, target, st.refs)
					return nil
				}
			}
			st.names = append(st.names, target.Name)
			vv.Visit(target.Expression, aux)
			st.names = st.names[:len(st.names)-1]
			return nil
		},
	})
	return v
}

func reportLeftRecursion(s *diagnostics.Session, target *ast.Rule, refs []*ast.RuleReference) {
	chain := make([]string, 0, len(refs)+1)
	chain = append(chain, target.Name)
	for _, r := range refs {
		chain = append(chain, r.Name)
	}

	notes := make([]ast.Note, len(refs))
	for i, r := range refs {
		loc := r.Loc()
		if i == len(refs)-1 {
			notes[i] = ast.Note{Message: "call itself without input consumption - left recursion", Location: loc}
		} else {
			notes[i] = ast.Note{Message: fmt.Sprintf("Step %d: call of the rule %q without input consumption", i+1, r.Name), Location: loc}
		}
	}

	loc := target.NameSpan
	s.Error(
		fmt.Sprintf("Possible infinite loop when parsing (left recursion: %s)", strings.Join(chain, " -> ")),
		&loc,
		notes...,
	)
}
