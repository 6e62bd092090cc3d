package ast

import "fmt"

// ExprHandlers configures an ExprVisitor. The handlers for RuleReference,
// SemanticPredicate, Literal, CharacterClass, Any, Choice and Sequence
// are required: these node kinds have no single "expression" child to
// recurse into by default. The remaining handlers are optional; when
// left nil, visiting the node recurses into its Expression field.
type ExprHandlers struct {
	RuleReference     func(v *ExprVisitor, n *RuleReference, aux any) any
	SemanticPredicate func(v *ExprVisitor, n *SemanticPredicate, aux any) any
	Literal           func(v *ExprVisitor, n *Literal, aux any) any
	CharacterClass    func(v *ExprVisitor, n *CharacterClass, aux any) any
	Any               func(v *ExprVisitor, n *Any, aux any) any
	Choice            func(v *ExprVisitor, n *Choice, aux any) any
	Sequence          func(v *ExprVisitor, n *Sequence, aux any) any

	Named    func(v *ExprVisitor, n *Named, aux any) any
	Action   func(v *ExprVisitor, n *Action, aux any) any
	Labeled  func(v *ExprVisitor, n *Labeled, aux any) any
	Prefixed func(v *ExprVisitor, n *Prefixed, aux any) any
	Suffixed func(v *ExprVisitor, n *Suffixed, aux any) any
	Group    func(v *ExprVisitor, n *Group, aux any) any
}

// ExprVisitor dispatches over Expression nodes only. Build one with
// NewExprVisitor for passes that never need to look at the enclosing
// Grammar or Rule (e.g. a pass run once per rule body).
type ExprVisitor struct {
	h ExprHandlers
}

// NewExprVisitor builds an ExprVisitor. It panics at visit time, not at
// construction time, if a required handler is missing — the same
// fail-fast-on-use contract the full visitor uses for unhandled kinds.
func NewExprVisitor(h ExprHandlers) *ExprVisitor {
	return &ExprVisitor{h: h}
}

// Visit dispatches n to the appropriate handler (or default), threading
// aux through the recursion and returning whatever the handler returns.
func (v *ExprVisitor) Visit(n Expression, aux any) any {
	switch x := n.(type) {
	case *RuleReference:
		return v.h.RuleReference(v, x, aux)
	case *SemanticPredicate:
		return v.h.SemanticPredicate(v, x, aux)
	case *Literal:
		return v.h.Literal(v, x, aux)
	case *CharacterClass:
		return v.h.CharacterClass(v, x, aux)
	case *Any:
		return v.h.Any(v, x, aux)
	case *Choice:
		return v.h.Choice(v, x, aux)
	case *Sequence:
		return v.h.Sequence(v, x, aux)
	case *Named:
		if v.h.Named != nil {
			return v.h.Named(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Action:
		if v.h.Action != nil {
			return v.h.Action(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Labeled:
		if v.h.Labeled != nil {
			return v.h.Labeled(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Prefixed:
		if v.h.Prefixed != nil {
			return v.h.Prefixed(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Suffixed:
		if v.h.Suffixed != nil {
			return v.h.Suffixed(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Group:
		if v.h.Group != nil {
			return v.h.Group(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	default:
		panic(fmt.Sprintf("ast: unhandled expression type %T", n))
	}
}

// FullHandlers configures a FullVisitor. Every handler is optional.
// Grammar defaults to visiting every rule. Rule defaults to visiting its
// body. Choice and Sequence default to visiting every
// alternative/element. Every other expression kind defaults the same
// way ExprVisitor does, except the primary atoms (RuleReference,
// SemanticPredicate, Literal, CharacterClass, Any) default to doing
// nothing at all.
type FullHandlers struct {
	Grammar func(v *FullVisitor, n *Grammar, aux any) any
	Rule    func(v *FullVisitor, n *Rule, aux any) any

	Named             func(v *FullVisitor, n *Named, aux any) any
	Choice            func(v *FullVisitor, n *Choice, aux any) any
	Action            func(v *FullVisitor, n *Action, aux any) any
	Sequence          func(v *FullVisitor, n *Sequence, aux any) any
	Labeled           func(v *FullVisitor, n *Labeled, aux any) any
	Prefixed          func(v *FullVisitor, n *Prefixed, aux any) any
	Suffixed          func(v *FullVisitor, n *Suffixed, aux any) any
	Group             func(v *FullVisitor, n *Group, aux any) any
	RuleReference     func(v *FullVisitor, n *RuleReference, aux any) any
	SemanticPredicate func(v *FullVisitor, n *SemanticPredicate, aux any) any
	Literal           func(v *FullVisitor, n *Literal, aux any) any
	CharacterClass    func(v *FullVisitor, n *CharacterClass, aux any) any
	Any               func(v *FullVisitor, n *Any, aux any) any
}

// FullVisitor dispatches over the whole AST: Grammar, Rule, and every
// expression kind.
type FullVisitor struct {
	h FullHandlers
}

// NewFullVisitor builds a FullVisitor.
func NewFullVisitor(h FullHandlers) *FullVisitor {
	return &FullVisitor{h: h}
}

// VisitGrammar dispatches g, defaulting to a walk of every rule.
func (v *FullVisitor) VisitGrammar(g *Grammar, aux any) any {
	if v.h.Grammar != nil {
		return v.h.Grammar(v, g, aux)
	}
	for _, r := range g.Rules {
		v.VisitRule(r, aux)
	}
	return nil
}

// VisitRule dispatches r, defaulting to visiting its body.
func (v *FullVisitor) VisitRule(r *Rule, aux any) any {
	if v.h.Rule != nil {
		return v.h.Rule(v, r, aux)
	}
	return v.Visit(r.Expression, aux)
}

// Visit dispatches an expression node.
func (v *FullVisitor) Visit(n Expression, aux any) any {
	switch x := n.(type) {
	case *Named:
		if v.h.Named != nil {
			return v.h.Named(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Choice:
		if v.h.Choice != nil {
			return v.h.Choice(v, x, aux)
		}
		for _, alt := range x.Alternatives {
			v.Visit(alt, aux)
		}
		return nil
	case *Action:
		if v.h.Action != nil {
			return v.h.Action(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Sequence:
		if v.h.Sequence != nil {
			return v.h.Sequence(v, x, aux)
		}
		for _, el := range x.Elements {
			v.Visit(el, aux)
		}
		return nil
	case *Labeled:
		if v.h.Labeled != nil {
			return v.h.Labeled(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Prefixed:
		if v.h.Prefixed != nil {
			return v.h.Prefixed(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Suffixed:
		if v.h.Suffixed != nil {
			return v.h.Suffixed(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *Group:
		if v.h.Group != nil {
			return v.h.Group(v, x, aux)
		}
		return v.Visit(x.Expression, aux)
	case *RuleReference:
		if v.h.RuleReference != nil {
			return v.h.RuleReference(v, x, aux)
		}
		return nil
	case *SemanticPredicate:
		if v.h.SemanticPredicate != nil {
			return v.h.SemanticPredicate(v, x, aux)
		}
		return nil
	case *Literal:
		if v.h.Literal != nil {
			return v.h.Literal(v, x, aux)
		}
		return nil
	case *CharacterClass:
		if v.h.CharacterClass != nil {
			return v.h.CharacterClass(v, x, aux)
		}
		return nil
	case *Any:
		if v.h.Any != nil {
			return v.h.Any(v, x, aux)
		}
		return nil
	default:
		panic(fmt.Sprintf("ast: unhandled expression type %T", n))
	}
}
