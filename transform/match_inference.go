package transform

import (
	"fmt"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

const maxFixedPointIterations = 6

// InferMatchResults computes and memoizes the three-valued match result
// for every expression node in every rule. Rules that participate in a
// reference cycle (legal as long as the cycle isn't left-recursive — the
// check stage already rejected those) are resolved with a small
// per-rule fixed point: a rule's body is re-inferred, reading whatever
// value a currently-in-progress rule it depends on has at the moment,
// until the rule's top-level result stops changing.
func InferMatchResults(g *ast.Grammar, s *diagnostics.Session) {
	fp := &fixedPoint{
		grammar:    g,
		done:       map[string]bool{},
		inProgress: map[string]bool{},
	}
	for _, r := range g.Rules {
		fp.inferRule(r)
	}
}

type fixedPoint struct {
	grammar    *ast.Grammar
	done       map[string]bool
	inProgress map[string]bool
}

func (fp *fixedPoint) inferRule(r *ast.Rule) {
	if fp.done[r.Name] || fp.inProgress[r.Name] {
		return
	}
	fp.inProgress[r.Name] = true
	defer delete(fp.inProgress, r.Name)

	r.Expression.SetMatch(ast.Sometimes)
	for i := 0; i < maxFixedPointIterations; i++ {
		prev := r.Expression.Match()
		next := fp.infer(r.Expression)
		if next == prev {
			fp.done[r.Name] = true
			return
		}
	}
	panic(fmt.Sprintf("transform: match-result fixed point did not converge for rule %q within %d iterations", r.Name, maxFixedPointIterations))
}

func (fp *fixedPoint) infer(n ast.Expression) ast.MatchResult {
	var m ast.MatchResult
	switch x := n.(type) {
	case *ast.Any:
		m = ast.Sometimes
	case *ast.SemanticPredicate:
		m = ast.Sometimes
	case *ast.Literal:
		if x.Value == "" {
			m = ast.Always
		} else {
			m = ast.Sometimes
		}
	case *ast.CharacterClass:
		if len(x.Parts) == 0 {
			m = ast.Never
		} else {
			m = ast.Sometimes
		}
	case *ast.Suffixed:
		child := fp.infer(x.Expression)
		switch x.Operator {
		case ast.Optional, ast.ZeroOrMore:
			m = ast.Always
		default: // OneOrMore
			m = child
		}
	case *ast.Prefixed:
		child := fp.infer(x.Expression)
		if x.Operator == ast.SimpleNot {
			m = negate(child)
		} else {
			m = child
		}
	case *ast.Named:
		m = fp.infer(x.Expression)
	case *ast.Action:
		m = fp.infer(x.Expression)
	case *ast.Labeled:
		m = fp.infer(x.Expression)
	case *ast.Group:
		m = fp.infer(x.Expression)
	case *ast.Choice:
		allAlways, allNever := true, true
		for _, alt := range x.Alternatives {
			v := fp.infer(alt)
			if v != ast.Always {
				allAlways = false
			}
			if v != ast.Never {
				allNever = false
			}
		}
		switch {
		case allAlways:
			m = ast.Always
		case allNever:
			m = ast.Never
		default:
			m = ast.Sometimes
		}
	case *ast.Sequence:
		allAlways, anyNever := true, false
		for _, el := range x.Elements {
			v := fp.infer(el)
			if v != ast.Always {
				allAlways = false
			}
			if v == ast.Never {
				anyNever = true
			}
		}
		switch {
		case allAlways:
			m = ast.Always
		case anyNever:
			m = ast.Never
		default:
			m = ast.Sometimes
		}
	case *ast.RuleReference:
		target := ast.FindRule(fp.grammar, x.Name)
		if target == nil {
			m = ast.Sometimes
			break
		}
		if fp.inProgress[target.Name] {
			m = target.Expression.Match()
			break
		}
		fp.inferRule(target)
		m = target.Expression.Match()
	default:
		panic(fmt.Sprintf("transform: unhandled expression type %T", n))
	}
	n.SetMatch(m)
	return m
}

func negate(m ast.MatchResult) ast.MatchResult {
	switch m {
	case ast.Always:
		return ast.Never
	case ast.Never:
		return ast.Always
	default:
		return ast.Sometimes
	}
}
