package generate

import "github.com/polkovnikov-ph/peggy/ast"

// pools accumulates the four constant pools during generation,
// deduplicating by structural equality so two identical literals,
// classes, expectations or function bodies share one slot regardless of
// how many expressions reference them. Once generation finishes, its
// contents are copied onto the grammar.
type pools struct {
	literals     []string
	literalIndex map[string]int

	classes     []ast.CharClassDesc
	classIndex  map[string]int

	expectations []ast.ExpectationDesc
	expectIndex  map[string]int

	functions    []ast.FunctionDesc
	functionIndex map[string]int
}

func newPools() *pools {
	return &pools{
		literalIndex:  map[string]int{},
		classIndex:    map[string]int{},
		expectIndex:   map[string]int{},
		functionIndex: map[string]int{},
	}
}

func (p *pools) literal(value string) int {
	if i, ok := p.literalIndex[value]; ok {
		return i
	}
	i := len(p.literals)
	p.literals = append(p.literals, value)
	p.literalIndex[value] = i
	return i
}

func (p *pools) class(desc ast.CharClassDesc) int {
	key := classKey(desc)
	if i, ok := p.classIndex[key]; ok {
		return i
	}
	i := len(p.classes)
	p.classes = append(p.classes, desc)
	p.classIndex[key] = i
	return i
}

func (p *pools) expectation(desc ast.ExpectationDesc) int {
	key := expectationKey(desc)
	if i, ok := p.expectIndex[key]; ok {
		return i
	}
	i := len(p.expectations)
	p.expectations = append(p.expectations, desc)
	p.expectIndex[key] = i
	return i
}

// function interns by structural equality of kind, parameter names and
// body text — not by source location. Two actions with identical code
// and, coincidentally, the same label names in scope at the point each
// is interned collapse to one pool entry even though they sit at
// different call sites in the grammar; see DESIGN.md for why this
// content-based dedup is kept rather than tightened to identity.
func (p *pools) function(desc ast.FunctionDesc) int {
	key := functionKey(desc)
	if i, ok := p.functionIndex[key]; ok {
		return i
	}
	i := len(p.functions)
	p.functions = append(p.functions, desc)
	p.functionIndex[key] = i
	return i
}

func functionKey(f ast.FunctionDesc) string {
	k := "k"
	if f.Kind == ast.FunctionPredicate {
		k = "p"
	}
	for _, name := range f.Params {
		k += "," + name
	}
	k += ";" + f.Body
	return k
}

func classKey(c ast.CharClassDesc) string {
	k := make([]byte, 0, 8+len(c.Parts)*9)
	if c.Inverted {
		k = append(k, '!')
	}
	if c.IgnoreCase {
		k = append(k, 'i')
	}
	for _, part := range c.Parts {
		k = appendRune(k, part.Lo)
		k = append(k, '-')
		k = appendRune(k, part.Hi)
		k = append(k, ',')
	}
	return string(k)
}

func expectationKey(e ast.ExpectationDesc) string {
	switch e.Kind {
	case ast.ExpectRule:
		return "r:" + e.RuleName
	case ast.ExpectLiteral:
		k := "l:" + e.Value
		if e.IgnoreCase {
			k += ":i"
		}
		return k
	case ast.ExpectClass:
		return "c:" + classKey(ast.CharClassDesc{Parts: e.Parts, Inverted: e.Inverted, IgnoreCase: e.IgnoreCase})
	default: // ExpectAny
		return "a:"
	}
}

func appendRune(b []byte, r rune) []byte {
	return append(b, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
}
