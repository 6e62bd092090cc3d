// Package transform implements the two passes that run between check
// and generate: proxy-rule elimination and match-result inference. Both
// mutate the AST in place.
package transform

import (
	"fmt"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// Options configures the transform stage.
type Options struct {
	// AllowedStartRules names the rules that may not be removed even
	// if they are proxies, because a caller can enter the grammar
	// through them directly.
	AllowedStartRules []string
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// RemoveProxyRules rewrites every reference to a proxy rule (a rule
// whose body is exactly a RuleReference) to point at that rule's
// target, then drops the proxy from grammar.Rules unless it is named in
// opts.AllowedStartRules.
func RemoveProxyRules(g *ast.Grammar, opts Options, s *diagnostics.Session) {
	var toRemove []int

	for i, rule := range g.Rules {
		ref, ok := rule.Expression.(*ast.RuleReference)
		if !ok {
			continue
		}
		target := ast.FindRule(g, ref.Name)
		if target == nil {
			// The undefined-rule check already failed this grammar;
			// leave it for the stage boundary to raise.
			continue
		}

		retarget(g, rule.Name, target, s)

		if !contains(opts.AllowedStartRules, rule.Name) {
			toRemove = append(toRemove, i)
		}
	}

	for i := len(toRemove) - 1; i >= 0; i-- {
		idx := toRemove[i]
		g.Rules = append(g.Rules[:idx], g.Rules[idx+1:]...)
	}
}

// retarget rewrites every RuleReference named proxyName anywhere in the
// grammar to point at target instead, emitting an info diagnostic for
// each rewrite.
func retarget(g *ast.Grammar, proxyName string, target *ast.Rule, s *diagnostics.Session) {
	v := ast.NewFullVisitor(ast.FullHandlers{
		RuleReference: func(_ *ast.FullVisitor, n *ast.RuleReference, _ any) any {
			if n.Name == proxyName {
				loc := n.Loc()
				s.Info(
					fmt.Sprintf("Rule %q is a proxy for rule %q; reference will be rewritten", proxyName, target.Name),
					&loc,
					ast.Note{Message: "Proxy target", Location: target.NameSpan},
				)
				n.Name = target.Name
			}
			return nil
		},
	})
	v.VisitGrammar(g, nil)
}
