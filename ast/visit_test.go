package ast

import "testing"

// Default (nil) handlers for wrapper nodes recurse into Expression; the
// terminal-kind handlers are mandatory and always invoked directly.
func TestExprVisitorDefaultRecursion(t *testing.T) {
	var visited []string
	v := NewExprVisitor(ExprHandlers{
		Literal: func(v *ExprVisitor, n *Literal, aux any) any {
			visited = append(visited, "literal:"+n.Value)
			return nil
		},
		RuleReference:     func(v *ExprVisitor, n *RuleReference, aux any) any { return nil },
		SemanticPredicate: func(v *ExprVisitor, n *SemanticPredicate, aux any) any { return nil },
		CharacterClass:    func(v *ExprVisitor, n *CharacterClass, aux any) any { return nil },
		Any:               func(v *ExprVisitor, n *Any, aux any) any { return nil },
		Choice:            func(v *ExprVisitor, n *Choice, aux any) any { return nil },
		Sequence:          func(v *ExprVisitor, n *Sequence, aux any) any { return nil },
	})

	n := &Group{Expression: &Labeled{Label: "x", Expression: &Literal{Value: "a"}}}
	v.Visit(n, nil)

	if len(visited) != 1 || visited[0] != "literal:a" {
		t.Errorf("visited = %v, want [literal:a] (Group/Labeled should recurse by default)", visited)
	}
}

// FullVisitor's default Choice/Sequence handlers walk every child, and
// VisitGrammar's default walks every rule.
func TestFullVisitorWalksWholeGrammar(t *testing.T) {
	var seen []string
	v := NewFullVisitor(FullHandlers{
		Literal: func(v *FullVisitor, n *Literal, aux any) any {
			seen = append(seen, n.Value)
			return nil
		},
	})

	g := &Grammar{Rules: []*Rule{
		{Name: "start", Expression: &Sequence{Elements: []Expression{
			&Literal{Value: "a"},
			&Choice{Alternatives: []Expression{&Literal{Value: "b"}, &Literal{Value: "c"}}},
		}}},
	}}

	v.VisitGrammar(g, nil)

	want := []string{"a", "b", "c"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

// An overridden Grammar handler takes over VisitGrammar entirely,
// bypassing the default per-rule walk.
func TestFullVisitorGrammarOverride(t *testing.T) {
	called := false
	v := NewFullVisitor(FullHandlers{
		Grammar: func(v *FullVisitor, n *Grammar, aux any) any {
			called = true
			return nil
		},
	})
	v.VisitGrammar(&Grammar{Rules: []*Rule{{Name: "x", Expression: &Literal{Value: "a"}}}}, nil)
	if !called {
		t.Error("Grammar handler was not invoked")
	}
}

// A RuleReference with no handler set is a documented no-op in
// FullVisitor (unlike ExprVisitor, where it's mandatory).
func TestFullVisitorRuleReferenceDefaultsToNoOp(t *testing.T) {
	v := NewFullVisitor(FullHandlers{})
	g := &Grammar{Rules: []*Rule{{Name: "start", Expression: &RuleReference{Name: "other"}}}}

	// Must not panic.
	v.VisitGrammar(g, nil)
}
