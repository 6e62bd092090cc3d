package ast

// Node is implemented by every AST node, expression or otherwise.
type Node interface {
	Loc() Location
}

// Expression is implemented by every parsing-combinator node. The Match
// field is an annotation populated by the transform stage's match-result
// inference pass; it is left at its zero value (Sometimes) until that
// pass runs.
type Expression interface {
	Node
	Match() MatchResult
	SetMatch(MatchResult)

	// exprNode seals the interface to this package's node types, the
	// way a discriminated union would be sealed in a language with
	// closed sum types.
	exprNode()
}

type exprBase struct {
	Location    Location
	MatchResult MatchResult
}

func (e *exprBase) Loc() Location          { return e.Location }
func (e *exprBase) Match() MatchResult     { return e.MatchResult }
func (e *exprBase) SetMatch(m MatchResult) { e.MatchResult = m }
func (e *exprBase) exprNode()              {}

// CodeBlock is a span of user code, e.g. an action body, a predicate
// body, or a top-level initializer.
type CodeBlock struct {
	Code     string
	Location Location
}

// Named gives the wrapped expression a human-readable name used in
// "expected" error messages instead of its structural description.
type Named struct {
	exprBase
	Name       string
	Expression Expression
}

// Choice tries each alternative in order; the first to match wins.
type Choice struct {
	exprBase
	Alternatives []Expression
}

// Action runs user code against the match result of the wrapped
// expression.
type Action struct {
	exprBase
	Expression Expression
	Code       *CodeBlock
}

// Sequence requires every element to match, in order.
type Sequence struct {
	exprBase
	Elements []Expression
}

// Labeled binds the match result of the wrapped expression to Label
// (which may be empty for an unlabeled grouping). Pick marks a "pluck"
// (`@label:`) contributing its value to an auto-built sequence result.
type Labeled struct {
	exprBase
	Label      string
	Pick       bool
	Expression Expression
}

// PrefixOperator distinguishes the Prefixed node variants.
type PrefixOperator int

const (
	// Text textifies the slice of input matched by the operand.
	Text PrefixOperator = iota
	// SimpleAnd is positive lookahead.
	SimpleAnd
	// SimpleNot is negative lookahead.
	SimpleNot
)

// Prefixed wraps an expression with a non-consuming or text-capturing
// prefix operator.
type Prefixed struct {
	exprBase
	Operator   PrefixOperator
	Expression Expression
}

// SuffixOperator distinguishes the Suffixed node variants.
type SuffixOperator int

const (
	// Optional matches the operand zero or one times.
	Optional SuffixOperator = iota
	// ZeroOrMore matches the operand zero or more times.
	ZeroOrMore
	// OneOrMore matches the operand one or more times.
	OneOrMore
)

// Suffixed wraps an expression with a repetition suffix operator.
type Suffixed struct {
	exprBase
	Operator   SuffixOperator
	Expression Expression
}

// Group parenthesizes an expression, starting a fresh label scope.
type Group struct {
	exprBase
	Expression Expression
}

// RuleReference refers to another rule by name.
type RuleReference struct {
	exprBase
	Name string
}

// SemanticPredicate runs user code and succeeds or fails based on its
// boolean result (inverted when Negative is set).
type SemanticPredicate struct {
	exprBase
	Negative bool
	Code     *CodeBlock
}

// Literal matches an exact string, optionally case-insensitively.
type Literal struct {
	exprBase
	Value      string
	IgnoreCase bool
}

// ClassPart is a single character or, when Lo != Hi, an inclusive
// character range within a CharacterClass.
type ClassPart struct {
	Lo, Hi rune
}

// Single reports whether the part denotes exactly one character.
func (p ClassPart) Single() bool { return p.Lo == p.Hi }

// CharacterClass matches one input unit against a list of characters or
// ranges, optionally inverted and/or case-insensitive.
type CharacterClass struct {
	exprBase
	Parts      []ClassPart
	Inverted   bool
	IgnoreCase bool
}

// Any matches any single input unit.
type Any struct {
	exprBase
}
