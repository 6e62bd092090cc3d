// Package fixture loads a grammar AST from a YAML document. There is
// no meta-grammar text parser in scope, so cmd/pegc and tests that need
// a grammar to drive the pipeline build one from a fixture file like
// this instead of parsing ".peg" source.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/polkovnikov-ph/peggy/ast"
)

// Grammar is the YAML shape of a whole grammar document.
type Grammar struct {
	Initializer         string `yaml:"initializer,omitempty"`
	PerParseInitializer string `yaml:"perParseInitializer,omitempty"`
	Rules               []Rule `yaml:"rules"`
}

// Rule is the YAML shape of one named rule.
type Rule struct {
	Name       string `yaml:"name"`
	Expression Node   `yaml:"expression"`
}

// Part is one character or range within a character class.
type Part struct {
	Lo string `yaml:"lo"`
	Hi string `yaml:"hi,omitempty"`
}

// Node is the YAML shape of one expression node. Kind selects which of
// the remaining fields are meaningful; it mirrors ast's node kinds
// one-to-one.
type Node struct {
	Kind string `yaml:"kind"`

	Name         string  `yaml:"name,omitempty"`
	Value        string  `yaml:"value,omitempty"`
	IgnoreCase   bool    `yaml:"ignoreCase,omitempty"`
	Inverted     bool    `yaml:"inverted,omitempty"`
	Negative     bool    `yaml:"negative,omitempty"`
	Label        string  `yaml:"label,omitempty"`
	Pick         bool    `yaml:"pick,omitempty"`
	Operator     string  `yaml:"operator,omitempty"`
	Code         string  `yaml:"code,omitempty"`
	Parts        []Part  `yaml:"parts,omitempty"`
	Expression   *Node   `yaml:"expression,omitempty"`
	Alternatives []Node  `yaml:"alternatives,omitempty"`
	Elements     []Node  `yaml:"elements,omitempty"`
}

// Load parses a YAML document into a Grammar fixture.
func Load(data []byte) (*Grammar, error) {
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return &g, nil
}

// Build converts a fixture into an *ast.Grammar. Every node gets a
// zero Location: fixtures have no source text to point back at.
func (g *Grammar) Build() (*ast.Grammar, error) {
	out := &ast.Grammar{}
	if g.Initializer != "" {
		out.Initializer = &ast.CodeBlock{Code: g.Initializer}
	}
	if g.PerParseInitializer != "" {
		out.PerParseInitializer = &ast.CodeBlock{Code: g.PerParseInitializer}
	}
	for _, r := range g.Rules {
		expr, err := buildNode(&r.Expression)
		if err != nil {
			return nil, fmt.Errorf("fixture: rule %q: %w", r.Name, err)
		}
		out.Rules = append(out.Rules, &ast.Rule{
			Name:       r.Name,
			NameSpan:   ast.Location{},
			Expression: expr,
		})
	}
	return out, nil
}

func buildNode(n *Node) (ast.Expression, error) {
	switch n.Kind {
	case "literal":
		return &ast.Literal{Value: n.Value, IgnoreCase: n.IgnoreCase}, nil
	case "any":
		return &ast.Any{}, nil
	case "class":
		parts, err := buildParts(n.Parts)
		if err != nil {
			return nil, err
		}
		return &ast.CharacterClass{Parts: parts, Inverted: n.Inverted, IgnoreCase: n.IgnoreCase}, nil
	case "rule_ref":
		return &ast.RuleReference{Name: n.Name}, nil
	case "semantic_predicate":
		return &ast.SemanticPredicate{Negative: n.Negative, Code: &ast.CodeBlock{Code: n.Code}}, nil
	case "named":
		child, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return &ast.Named{Name: n.Name, Expression: child}, nil
	case "group":
		child, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return &ast.Group{Expression: child}, nil
	case "action":
		child, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return &ast.Action{Expression: child, Code: &ast.CodeBlock{Code: n.Code}}, nil
	case "labeled":
		child, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return &ast.Labeled{Label: n.Label, Pick: n.Pick, Expression: child}, nil
	case "prefixed":
		child, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		op, err := prefixOperator(n.Operator)
		if err != nil {
			return nil, err
		}
		return &ast.Prefixed{Operator: op, Expression: child}, nil
	case "suffixed":
		child, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		op, err := suffixOperator(n.Operator)
		if err != nil {
			return nil, err
		}
		return &ast.Suffixed{Operator: op, Expression: child}, nil
	case "choice":
		alts := make([]ast.Expression, 0, len(n.Alternatives))
		for i := range n.Alternatives {
			alt, err := buildNode(&n.Alternatives[i])
			if err != nil {
				return nil, err
			}
			alts = append(alts, alt)
		}
		return &ast.Choice{Alternatives: alts}, nil
	case "sequence":
		elems := make([]ast.Expression, 0, len(n.Elements))
		for i := range n.Elements {
			el, err := buildNode(&n.Elements[i])
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
		}
		return &ast.Sequence{Elements: elems}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", n.Kind)
	}
}

func buildChild(n *Node) (ast.Expression, error) {
	if n.Expression == nil {
		return nil, fmt.Errorf("%s node missing expression", n.Kind)
	}
	return buildNode(n.Expression)
}

func buildParts(parts []Part) ([]ast.ClassPart, error) {
	out := make([]ast.ClassPart, 0, len(parts))
	for _, p := range parts {
		lo := []rune(p.Lo)
		if len(lo) != 1 {
			return nil, fmt.Errorf("class part lo %q must be a single rune", p.Lo)
		}
		hi := lo[0]
		if p.Hi != "" {
			hiRunes := []rune(p.Hi)
			if len(hiRunes) != 1 {
				return nil, fmt.Errorf("class part hi %q must be a single rune", p.Hi)
			}
			hi = hiRunes[0]
		}
		out = append(out, ast.ClassPart{Lo: lo[0], Hi: hi})
	}
	return out, nil
}

func prefixOperator(s string) (ast.PrefixOperator, error) {
	switch s {
	case "text":
		return ast.Text, nil
	case "simple_and":
		return ast.SimpleAnd, nil
	case "simple_not":
		return ast.SimpleNot, nil
	default:
		return 0, fmt.Errorf("unknown prefix operator %q", s)
	}
}

func suffixOperator(s string) (ast.SuffixOperator, error) {
	switch s {
	case "optional":
		return ast.Optional, nil
	case "zero_or_more":
		return ast.ZeroOrMore, nil
	case "one_or_more":
		return ast.OneOrMore, nil
	default:
		return 0, fmt.Errorf("unknown suffix operator %q", s)
	}
}
