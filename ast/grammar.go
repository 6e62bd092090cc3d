package ast

// Rule is a named parsing expression. Bytecode is populated by the
// generate stage; it is nil until then.
type Rule struct {
	Location Location
	NameSpan Location
	Name     string

	Expression Expression
	Bytecode   []int
}

func (r *Rule) Loc() Location { return r.Location }

// Grammar is the root AST node and the sole owner of every descendant
// node. Literals, Classes, Expectations and Functions are the four
// constant pools; they are populated by the generate stage and are nil
// before it runs.
type Grammar struct {
	Location Location

	Initializer         *CodeBlock
	PerParseInitializer *CodeBlock
	Rules               []*Rule

	Literals     []string
	Classes      []CharClassDesc
	Expectations []ExpectationDesc
	Functions    []FunctionDesc
}

func (g *Grammar) Loc() Location { return g.Location }

// CharClassDesc is a deduplicated character-class constant-pool entry.
type CharClassDesc struct {
	Parts      []ClassPart
	Inverted   bool
	IgnoreCase bool
}

// ExpectationKind discriminates the ExpectationDesc variants.
type ExpectationKind int

const (
	ExpectRule ExpectationKind = iota
	ExpectLiteral
	ExpectClass
	ExpectAny
)

// ExpectationDesc is a deduplicated expected-token constant-pool entry
// used by the runtime to build "expected X but found Y" error messages.
type ExpectationDesc struct {
	Kind ExpectationKind

	RuleName string // ExpectRule

	Value      string // ExpectLiteral
	IgnoreCase bool   // ExpectLiteral, ExpectClass

	Parts    []ClassPart // ExpectClass
	Inverted bool        // ExpectClass
}

// FunctionKind discriminates the FunctionDesc variants.
type FunctionKind int

const (
	FunctionAction FunctionKind = iota
	FunctionPredicate
)

// FunctionDesc is a deduplicated user-code constant-pool entry: an
// action body or a semantic-predicate body, along with the parameter
// names (label names visible at the point the code is interned) that
// the runtime must pass when calling it.
type FunctionDesc struct {
	Kind       FunctionKind
	Params     []string
	Body       string
	Location   Location
}
