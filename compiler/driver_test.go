package compiler

import (
	"strings"
	"testing"

	"github.com/polkovnikov-ph/peggy/ast"
)

func rule(name string, expr ast.Expression) *ast.Rule {
	return &ast.Rule{Name: name, Expression: expr}
}

// A grammar with a check-stage error never reaches transform or
// generate: Compile returns the retained CompileError and g's rules are
// left untouched (no Bytecode, no pools).
func TestCompileStopsAtFailedCheckStage(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("start", &ast.RuleReference{Name: "missing"}),
	}}

	compiled, session, err := Compile(g, Options{})
	if err == nil {
		t.Fatal("want error for undefined rule")
	}
	if session.Stage() != "check" {
		t.Errorf("session stopped in stage %q, want %q", session.Stage(), "check")
	}
	if compiled != nil {
		t.Errorf("compiled grammar should be nil on failure")
	}
	if g.Rules[0].Bytecode != nil {
		t.Error("generate stage must not have run")
	}
}

// A clean grammar runs every stage: the reference to the proxy rule is
// rewritten (with an info diagnostic), the proxy itself is kept because
// it is an allowed start rule, match results are inferred, and
// bytecode/pools are populated.
func TestCompileEndToEnd(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("start", &ast.RuleReference{Name: "letter"}),
		rule("letter", &ast.Literal{Value: "a"}),
		rule("pair", &ast.Sequence{Elements: []ast.Expression{
			&ast.RuleReference{Name: "start"},
			&ast.Literal{Value: "b"},
		}}),
	}}

	compiled, session, err := Compile(g, Options{AllowedStartRules: []string{"start"}})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(session.Problems()) == 0 {
		t.Error("expected at least an info diagnostic for the proxy rewrite")
	}

	start := findRule(compiled, "start")
	if start == nil {
		t.Fatal("start rule missing (should be kept: it is an allowed start rule)")
	}
	if len(start.Bytecode) == 0 {
		t.Error("start rule has no bytecode after generate")
	}
	if len(compiled.Literals) == 0 {
		t.Error("literal pool is empty after generate")
	}
}

func TestGenerateBytecodeOutputDisassembles(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("start", &ast.Literal{Value: "a"}),
	}}

	result, _, err := Generate(g, Options{Output: OutputBytecode})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	text, ok := result.(string)
	if !ok {
		t.Fatalf("result type = %T, want string", result)
	}
	if !strings.Contains(text, "start") {
		t.Errorf("disassembly = %q, want it to mention the rule name", text)
	}
}

func TestResolveAllowedStartRulesDefaultsToFirstRule(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", &ast.Literal{Value: "x"})}}
	got, err := resolveAllowedStartRules(g, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "start" {
		t.Errorf("got %v, want [start]", got)
	}
}

func TestResolveAllowedStartRulesRejectsUnknownName(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{rule("start", &ast.Literal{Value: "x"})}}
	_, err := resolveAllowedStartRules(g, []string{"nope"})
	if err == nil {
		t.Fatal("want UsageError for unknown rule name")
	}
	if _, ok := err.(*UsageError); !ok {
		t.Errorf("err type = %T, want *UsageError", err)
	}
}

func TestResolveAllowedStartRulesWildcard(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		rule("a", &ast.Literal{Value: "x"}),
		rule("b", &ast.Literal{Value: "y"}),
	}}
	got, err := resolveAllowedStartRules(g, []string{"*"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %v, want both rule names", got)
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
