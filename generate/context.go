package generate

import "github.com/polkovnikov-ph/peggy/ast"

// labelEnv maps label names to the stack position their bound value
// lives at, preserving bind order so CALL's argument list is
// deterministic regardless of Go's unordered map iteration.
type labelEnv struct {
	names []string
	sp    map[string]int
}

func newLabelEnv() *labelEnv {
	return &labelEnv{sp: map[string]int{}}
}

func (e *labelEnv) clone() *labelEnv {
	ne := &labelEnv{
		names: append([]string{}, e.names...),
		sp:    make(map[string]int, len(e.sp)),
	}
	for k, v := range e.sp {
		ne.sp[k] = v
	}
	return ne
}

func (e *labelEnv) bind(name string, sp int) {
	if _, ok := e.sp[name]; !ok {
		e.names = append(e.names, name)
	}
	e.sp[name] = sp
}

// context carries the stack-discipline state threaded through emission:
// the current simulated stack pointer, the label environment, the
// enclosing sequence's pluck collector (nil outside one) and the
// nearest enclosing action (nil if none).
type context struct {
	sp     int
	env    *labelEnv
	pluck  *[]int
	action *ast.Action
}

func (c context) withSP(sp int) context {
	c.sp = sp
	return c
}

func negate(m ast.MatchResult) ast.MatchResult {
	switch m {
	case ast.Always:
		return ast.Never
	case ast.Never:
		return ast.Always
	default:
		return ast.Sometimes
	}
}

// buildCondition implements the generator's central shortcut rule:
// a statically ALWAYS node never needs its runtime branch emitted at
// all, a statically NEVER node collapses to its failure path, and only
// a genuinely SOMETIMES node needs cond plus both inlined bodies.
func buildCondition(match ast.MatchResult, cond []int, then, els []int) []int {
	switch match {
	case ast.Always:
		return then
	case ast.Never:
		return els
	default:
		out := append([]int{}, cond...)
		out = append(out, len(then), len(els))
		out = append(out, then...)
		out = append(out, els...)
		return out
	}
}

// buildLoop emits a WHILE_NOT_ERROR-style loop: the condition opcode
// followed by the body's length and the body inlined.
func buildLoop(cond []int, body []int) []int {
	out := append([]int{}, cond...)
	out = append(out, len(body))
	out = append(out, body...)
	return out
}

// buildCall emits CALL for fn, popping delta stack slots and passing
// env's bindings by offset from sp, in bind order.
func buildCall(fnIdx, delta int, env *labelEnv, sp int) []int {
	out := []int{int(Call), fnIdx, delta, len(env.names)}
	for _, name := range env.names {
		out = append(out, sp-env.sp[name])
	}
	return out
}

// popN picks POP over the more general POP_N when removing a single
// slot, matching the instruction the teacher's peer emitters reach for
// in the common case.
func popN(n int) []int {
	if n == 1 {
		return []int{int(Pop)}
	}
	return []int{int(PopN), n}
}
