package check

import (
	"strings"
	"testing"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

func newSession(t *testing.T) *diagnostics.Session {
	t.Helper()
	s := diagnostics.NewSession(nil, nil, nil)
	s.SetStage("check")
	return s
}

func lit(v string) *ast.Literal { return &ast.Literal{Value: v} }

func ref(name string) *ast.RuleReference { return &ast.RuleReference{Name: name} }

func rule(name string, expr ast.Expression) *ast.Rule {
	return &ast.Rule{Name: name, NameSpan: ast.Location{}, Expression: expr}
}

// Scenario 1: undefined rule.
func TestUndefinedRules(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", ref("X"))}}
	s := newSession(t)
	UndefinedRules(g, s)

	if s.ErrorCount() != 1 {
		t.Fatalf("got %d errors, want 1", s.ErrorCount())
	}
	problems := s.Problems()
	if !strings.Contains(problems[0].Message, `Rule "X" is not defined`) {
		t.Errorf("message = %q", problems[0].Message)
	}
}

// Scenario 2: duplicate labels.
func TestDuplicateLabels(t *testing.T) {
	// start = head:"f" head:("*" / "/")*
	factor := lit("f")
	op := &ast.Suffixed{
		Operator: ast.ZeroOrMore,
		Expression: &ast.Group{Expression: &ast.Choice{Alternatives: []ast.Expression{
			lit("*"), lit("/"),
		}}},
	}
	seq := &ast.Sequence{Elements: []ast.Expression{
		&ast.Labeled{Label: "head", Expression: factor},
		&ast.Labeled{Label: "head", Expression: op},
	}}
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", seq)}}
	s := newSession(t)
	DuplicateLabels(g, s)

	if s.ErrorCount() != 1 {
		t.Fatalf("got %d errors, want 1", s.ErrorCount())
	}
	p := s.Problems()[0]
	if !strings.Contains(p.Message, `Label "head" is already defined`) {
		t.Errorf("message = %q", p.Message)
	}
	if len(p.Notes) != 1 || p.Notes[0].Message != "Original definition" {
		t.Errorf("notes = %+v", p.Notes)
	}
}

// Scenario 3: left recursion.
func TestLeftRecursion(t *testing.T) {
	// start = "a"? start
	self := &ast.Sequence{Elements: []ast.Expression{
		&ast.Suffixed{Operator: ast.Optional, Expression: lit("a")},
		ref("start"),
	}}
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", self)}}
	s := newSession(t)
	LeftRecursion(g, s)

	if s.ErrorCount() != 1 {
		t.Fatalf("got %d errors, want 1", s.ErrorCount())
	}
	p := s.Problems()[0]
	want := `Possible infinite loop when parsing (left recursion: start -> start)`
	if p.Message != want {
		t.Errorf("message = %q, want %q", p.Message, want)
	}
}

// Scenario 4: infinite repetition.
func TestInfiniteRepetition(t *testing.T) {
	// start = ("a"?)*
	inner := &ast.Suffixed{Operator: ast.Optional, Expression: lit("a")}
	outer := &ast.Suffixed{Operator: ast.ZeroOrMore, Expression: &ast.Group{Expression: inner}}
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", outer)}}
	s := newSession(t)
	InfiniteRepetition(g, s)

	if s.ErrorCount() != 1 {
		t.Fatalf("got %d errors, want 1", s.ErrorCount())
	}
	want := "Possible infinite loop when parsing (repetition used with an expression that may not consume any input)"
	if s.Problems()[0].Message != want {
		t.Errorf("message = %q", s.Problems()[0].Message)
	}
}

// Scenario 5: pluck inside an action.
func TestIncorrectPlucking(t *testing.T) {
	// start = @"a" { return 1; }
	action := &ast.Action{
		Expression: &ast.Labeled{Pick: true, Expression: lit("a")},
		Code:       &ast.CodeBlock{Code: "return 1;"},
	}
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", action)}}
	s := newSession(t)
	IncorrectPlucking(g, s)

	if s.ErrorCount() != 1 {
		t.Fatalf("got %d errors, want 1", s.ErrorCount())
	}
	want := `"@" cannot be used with an action block`
	if s.Problems()[0].Message != want {
		t.Errorf("message = %q", s.Problems()[0].Message)
	}
}

func TestDuplicateRules(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("a", lit("x")),
		rule("a", lit("y")),
	}}
	s := newSession(t)
	DuplicateRules(g, s)

	if s.ErrorCount() != 1 {
		t.Fatalf("got %d errors, want 1", s.ErrorCount())
	}
}

// Idempotence of check passes (universal invariant 1): running a pass
// twice against the same grammar produces the same diagnostics.
func TestCheckPassesAreIdempotent(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", ref("X"))}}

	s1 := newSession(t)
	UndefinedRules(g, s1)
	UndefinedRules(g, s1)

	if s1.ErrorCount() != 2 {
		t.Fatalf("running twice should double the count (no pass-local dedup): got %d", s1.ErrorCount())
	}
	p := s1.Problems()
	if p[0].Message != p[1].Message {
		t.Errorf("two runs produced different diagnostics: %q vs %q", p[0].Message, p[1].Message)
	}
}
