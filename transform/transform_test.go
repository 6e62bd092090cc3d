package transform

import (
	"testing"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

func newSession() *diagnostics.Session {
	s := diagnostics.NewSession(nil, nil, nil)
	s.SetStage("transform")
	return s
}

func rule(name string, expr ast.Expression) *ast.Rule {
	return &ast.Rule{Name: name, Expression: expr}
}

// A proxy rule's references get rewritten to its target, and the proxy
// itself is dropped from the grammar unless it is an allowed start rule.
// "other" is a proxy too (its body is a bare reference), so it is named
// an allowed start rule to keep it around for the rewrite check.
func TestRemoveProxyRulesRewritesAndDrops(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("start", &ast.RuleReference{Name: "expr"}),
		rule("expr", &ast.Literal{Value: "x"}),
		rule("other", &ast.RuleReference{Name: "start"}),
	}}
	s := newSession()
	RemoveProxyRules(g, Options{AllowedStartRules: []string{"other"}}, s)

	if len(g.Rules) != 2 {
		t.Fatalf("got %d rules, want 2 (start dropped): %v", len(g.Rules), names(g.Rules))
	}
	other := findRule(g, "other")
	if other == nil {
		t.Fatal("other rule missing")
	}
	ref, ok := other.Expression.(*ast.RuleReference)
	if !ok || ref.Name != "expr" {
		t.Errorf("other's reference = %#v, want rewritten to expr", other.Expression)
	}
}

// An allowed start rule that happens to be a proxy is kept, even though
// its internal references get rewritten the same way.
func TestRemoveProxyRulesKeepsAllowedStartRule(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("start", &ast.RuleReference{Name: "expr"}),
		rule("expr", &ast.Literal{Value: "x"}),
	}}
	s := newSession()
	RemoveProxyRules(g, Options{AllowedStartRules: []string{"start"}}, s)

	if len(g.Rules) != 2 {
		t.Fatalf("got %d rules, want 2 (start kept)", len(g.Rules))
	}
	if findRule(g, "start") == nil {
		t.Error("start rule was removed despite being an allowed start rule")
	}
}

func TestInferMatchResultsBasics(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("opt", &ast.Suffixed{Operator: ast.Optional, Expression: &ast.Literal{Value: "x"}}),
		rule("empty", &ast.CharacterClass{}),
		rule("lit", &ast.Literal{Value: "x"}),
	}}
	s := newSession()
	InferMatchResults(g, s)

	if got := findRule(g, "opt").Expression.Match(); got != ast.Always {
		t.Errorf("optional's match = %v, want Always", got)
	}
	if got := findRule(g, "empty").Expression.Match(); got != ast.Never {
		t.Errorf("empty class's match = %v, want Never", got)
	}
	if got := findRule(g, "lit").Expression.Match(); got != ast.Sometimes {
		t.Errorf("literal's match = %v, want Sometimes", got)
	}
}

// Mutually referencing rules (legal as long as not left-recursive)
// resolve through the fixed point instead of infinite-looping.
func TestInferMatchResultsMutualRecursion(t *testing.T) {
	// a = "x" / b
	// b = "y" / a
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("a", &ast.Choice{Alternatives: []ast.Expression{
			&ast.Literal{Value: "x"},
			&ast.RuleReference{Name: "b"},
		}}),
		rule("b", &ast.Choice{Alternatives: []ast.Expression{
			&ast.Literal{Value: "y"},
			&ast.RuleReference{Name: "a"},
		}}),
	}}
	s := newSession()
	InferMatchResults(g, s)

	if got := findRule(g, "a").Expression.Match(); got != ast.Sometimes {
		t.Errorf("a's match = %v, want Sometimes", got)
	}
	if got := findRule(g, "b").Expression.Match(); got != ast.Sometimes {
		t.Errorf("b's match = %v, want Sometimes", got)
	}
}

func TestNegate(t *testing.T) {
	cases := []struct {
		in, want ast.MatchResult
	}{
		{ast.Always, ast.Never},
		{ast.Never, ast.Always},
		{ast.Sometimes, ast.Sometimes},
	}
	for _, c := range cases {
		if got := negate(c.in); got != c.want {
			t.Errorf("negate(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func findRule(g *ast.Grammar, name string) *ast.Rule {
	for _, r := range g.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func names(rs []*ast.Rule) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}
