package fixture

import (
	"testing"

	"github.com/polkovnikov-ph/peggy/ast"
)

func TestLoadAndBuildSimpleGrammar(t *testing.T) {
	data := []byte(`
rules:
  - name: start
    expression:
      kind: sequence
      elements:
        - kind: labeled
          label: op
          expression:
            kind: literal
            value: "+"
        - kind: action
          code: "return op"
          expression:
            kind: rule_ref
            name: digit
  - name: digit
    expression:
      kind: class
      parts:
        - {lo: "0", hi: "9"}
`)

	fx, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g, err := fx.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(g.Rules))
	}

	seq, ok := g.Rules[0].Expression.(*ast.Sequence)
	if !ok || len(seq.Elements) != 2 {
		t.Fatalf("start's expression = %#v, want a two-element sequence", g.Rules[0].Expression)
	}
	labeled, ok := seq.Elements[0].(*ast.Labeled)
	if !ok || labeled.Label != "op" {
		t.Fatalf("first element = %#v, want labeled \"op\"", seq.Elements[0])
	}

	class, ok := g.Rules[1].Expression.(*ast.CharacterClass)
	if !ok || len(class.Parts) != 1 || class.Parts[0].Lo != '0' || class.Parts[0].Hi != '9' {
		t.Fatalf("digit's expression = %#v, want class 0-9", g.Rules[1].Expression)
	}
}

func TestBuildRejectsUnknownOperator(t *testing.T) {
	data := []byte(`
rules:
  - name: start
    expression:
      kind: suffixed
      operator: nonsense
      expression:
        kind: literal
        value: "a"
`)
	fx, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := fx.Build(); err == nil {
		t.Fatal("want error for unknown suffix operator")
	}
}

func TestBuildRejectsMissingChildExpression(t *testing.T) {
	data := []byte(`
rules:
  - name: start
    expression:
      kind: group
`)
	fx, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := fx.Build(); err == nil {
		t.Fatal("want error for group with no expression")
	}
}
