package generate

import (
	"fmt"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
)

// Generate lowers every rule's expression tree to bytecode and records
// the four constant pools onto the grammar. It assumes check and
// transform have already run: every RuleReference resolves, every
// expression node carries a final match result, and no proxy rules
// remain unless they were named in allowedStartRules.
func Generate(g *ast.Grammar, s *diagnostics.Session) {
	gn := &generator{g: g, pools: newPools(), ruleIndex: map[string]int{}}
	for i, r := range g.Rules {
		gn.ruleIndex[r.Name] = i
	}
	for _, r := range g.Rules {
		ctx := context{sp: -1, env: newLabelEnv()}
		r.Bytecode = gn.emit(r.Expression, ctx)
	}
	g.Literals = gn.pools.literals
	g.Classes = gn.pools.classes
	g.Expectations = gn.pools.expectations
	g.Functions = gn.pools.functions
}

type generator struct {
	g         *ast.Grammar
	pools     *pools
	ruleIndex map[string]int
}

func (gn *generator) emit(n ast.Expression, ctx context) []int {
	switch x := n.(type) {
	case *ast.Literal:
		return gn.emitLiteral(x)
	case *ast.CharacterClass:
		return gn.emitClass(x)
	case *ast.Any:
		return gn.emitAny(x)
	case *ast.Prefixed:
		if x.Operator == ast.Text {
			return gn.emitText(x, ctx)
		}
		return gn.emitSimpleAndNot(x, ctx)
	case *ast.SemanticPredicate:
		return gn.emitSemanticPredicate(x, ctx)
	case *ast.Suffixed:
		switch x.Operator {
		case ast.Optional:
			return gn.emitOptional(x, ctx)
		case ast.ZeroOrMore:
			return gn.emitZeroOrMore(x, ctx)
		default:
			return gn.emitOneOrMore(x, ctx)
		}
	case *ast.Choice:
		return gn.emitChoiceRec(x.Alternatives, ctx)
	case *ast.Sequence:
		return gn.emitSequence(x, ctx)
	case *ast.Action:
		return gn.emitAction(x, ctx)
	case *ast.Labeled:
		return gn.emitLabeled(x, ctx)
	case *ast.Group:
		return gn.emitGroup(x, ctx)
	case *ast.Named:
		return gn.emitNamed(x, ctx)
	case *ast.RuleReference:
		return gn.emitRuleRef(x)
	default:
		panic(fmt.Sprintf("generate: unhandled expression type %T", n))
	}
}

func (gn *generator) emitLiteral(n *ast.Literal) []int {
	if n.Value == "" {
		return []int{int(PushEmptyString)}
	}
	if n.Match() == ast.Always {
		if n.IgnoreCase {
			return []int{int(AcceptN), len([]rune(n.Value))}
		}
		return []int{int(AcceptString), gn.pools.literal(n.Value)}
	}

	litIdx := gn.pools.literal(n.Value)
	expIdx := gn.pools.expectation(ast.ExpectationDesc{Kind: ast.ExpectLiteral, Value: n.Value, IgnoreCase: n.IgnoreCase})

	var cond, then []int
	if n.IgnoreCase {
		cond = []int{int(MatchStringIC), litIdx}
		then = []int{int(AcceptN), len([]rune(n.Value))}
	} else {
		cond = []int{int(MatchString), litIdx}
		then = []int{int(AcceptString), litIdx}
	}
	els := []int{int(Fail), expIdx}
	return buildCondition(n.Match(), cond, then, els)
}

func (gn *generator) emitClass(n *ast.CharacterClass) []int {
	expIdx := gn.pools.expectation(ast.ExpectationDesc{Kind: ast.ExpectClass, Parts: n.Parts, Inverted: n.Inverted, IgnoreCase: n.IgnoreCase})
	if n.Match() == ast.Never {
		return []int{int(Fail), expIdx}
	}
	classIdx := gn.pools.class(ast.CharClassDesc{Parts: n.Parts, Inverted: n.Inverted, IgnoreCase: n.IgnoreCase})
	cond := []int{int(MatchCharClass), classIdx}
	then := []int{int(AcceptN), 1}
	els := []int{int(Fail), expIdx}
	return buildCondition(n.Match(), cond, then, els)
}

func (gn *generator) emitAny(n *ast.Any) []int {
	expIdx := gn.pools.expectation(ast.ExpectationDesc{Kind: ast.ExpectAny})
	cond := []int{int(MatchAny)}
	then := []int{int(AcceptN), 1}
	els := []int{int(Fail), expIdx}
	return buildCondition(n.Match(), cond, then, els)
}

// emitSimpleAndNot handles both lookahead prefixes. The condition
// opcode is chosen so that, uniformly, "then" means the prefix as a
// whole succeeds and "else" means it fails: IF_NOT_ERROR for "&" (it
// succeeds when the child didn't error), IF_ERROR for "!" (it succeeds
// when the child did).
func (gn *generator) emitSimpleAndNot(n *ast.Prefixed, ctx context) []int {
	negative := n.Operator == ast.SimpleNot
	child := gn.emit(n.Expression, ctx.withSP(ctx.sp+1))

	m := n.Expression.Match()
	if negative {
		m = negate(m)
	}

	succeed := []int{int(Pop), int(PopCurrPos), int(PushUndefined)}
	fail := []int{int(Pop), int(PopCurrPos), int(PushFailed)}

	condOp := IfNotError
	if negative {
		condOp = IfError
	}

	out := []int{int(PushCurrPos), int(SilentFailsOn)}
	out = append(out, child...)
	out = append(out, int(SilentFailsOff))
	out = append(out, buildCondition(m, []int{int(condOp)}, succeed, fail)...)
	return out
}

func (gn *generator) emitSemanticPredicate(n *ast.SemanticPredicate, ctx context) []int {
	fnIdx := gn.pools.function(ast.FunctionDesc{
		Kind:     ast.FunctionPredicate,
		Params:   ctx.env.names,
		Body:     n.Code.Code,
		Location: n.Code.Location,
	})

	succeed := []int{int(Pop), int(PushUndefined)}
	fail := []int{int(Pop), int(PushFailed)}
	if n.Negative {
		succeed, fail = fail, succeed
	}

	out := []int{int(UpdateSavedPos)}
	out = append(out, buildCall(fnIdx, 0, ctx.env, ctx.sp+1)...)
	out = append(out, buildCondition(ast.Sometimes, []int{int(If)}, succeed, fail)...)
	return out
}

func (gn *generator) emitOptional(n *ast.Suffixed, ctx context) []int {
	child := gn.emit(n.Expression, ctx)
	out := append([]int{}, child...)
	if n.Expression.Match() == ast.Always {
		return out
	}
	then := []int{int(Pop), int(PushNull)}
	out = append(out, buildCondition(ast.Sometimes, []int{int(IfError)}, then, []int{})...)
	return out
}

func (gn *generator) emitZeroOrMore(n *ast.Suffixed, ctx context) []int {
	child := gn.emit(n.Expression, ctx.withSP(ctx.sp+1))
	out := []int{int(PushEmptyArray)}
	out = append(out, child...)
	loopBody := append([]int{int(Append)}, child...)
	out = append(out, buildLoop([]int{int(WhileNotError)}, loopBody)...)
	out = append(out, int(Pop))
	return out
}

func (gn *generator) emitOneOrMore(n *ast.Suffixed, ctx context) []int {
	child := gn.emit(n.Expression, ctx.withSP(ctx.sp+1))
	out := []int{int(PushEmptyArray)}
	out = append(out, child...)

	loopBody := append([]int{int(Append)}, child...)
	succeed := append(buildLoop([]int{int(WhileNotError)}, loopBody), int(Pop))
	fail := []int{int(Pop), int(Pop), int(PushFailed)}

	out = append(out, buildCondition(n.Expression.Match(), []int{int(IfNotError)}, succeed, fail)...)
	return out
}

func (gn *generator) emitText(n *ast.Prefixed, ctx context) []int {
	child := gn.emit(n.Expression, ctx.withSP(ctx.sp+1))
	out := []int{int(PushCurrPos)}
	out = append(out, child...)
	succeed := []int{int(Text)}
	fail := []int{int(Nip)}
	out = append(out, buildCondition(n.Expression.Match(), []int{int(IfNotError)}, succeed, fail)...)
	return out
}

func (gn *generator) emitChoiceRec(alts []ast.Expression, ctx context) []int {
	first := gn.emit(alts[0], ctx)
	if len(alts) == 1 || alts[0].Match() == ast.Always {
		return first
	}
	rest := gn.emitChoiceRec(alts[1:], ctx)
	then := append([]int{int(Pop)}, rest...)
	tail := buildCondition(negate(alts[0].Match()), []int{int(IfError)}, then, []int{})
	return append(append([]int{}, first...), tail...)
}

func (gn *generator) emitSequence(n *ast.Sequence, ctx context) []int {
	elems := n.Elements
	pluck := []int{}
	base := ctx.sp + 1 // sp of the saved-pos slot PUSH_CURR_POS leaves behind

	tailFn := func() []int {
		finalSP := base + len(elems)
		total := len(elems) + 1
		switch {
		case len(pluck) > 0:
			offsets := make([]int, len(pluck))
			for i, p := range pluck {
				offsets[i] = finalSP - p
			}
			out := []int{int(Pluck), total, len(pluck)}
			return append(out, offsets...)
		case ctx.action != nil:
			fnIdx := gn.pools.function(ast.FunctionDesc{
				Kind:     ast.FunctionAction,
				Params:   ctx.env.names,
				Body:     ctx.action.Code.Code,
				Location: ctx.action.Code.Location,
			})
			out := []int{int(LoadSavedPos), len(elems)}
			return append(out, buildCall(fnIdx, total, ctx.env, finalSP)...)
		default:
			return []int{int(Wrap), len(elems), int(Nip)}
		}
	}

	body := gn.emitSequenceBody(elems, 0, base, ctx.env, &pluck, tailFn)
	return append([]int{int(PushCurrPos)}, body...)
}

func (gn *generator) emitSequenceBody(elems []ast.Expression, idx, sp int, env *labelEnv, pluck *[]int, tailFn func() []int) []int {
	if idx == len(elems) {
		return tailFn()
	}

	elemCtx := context{sp: sp, env: env, pluck: pluck}
	code := gn.emit(elems[idx], elemCtx)
	m := elems[idx].Match()
	processed := idx + 1
	rollback := func() []int {
		return append(popN(processed), int(PopCurrPos), int(PushFailed))
	}

	if m == ast.Never {
		return append(code, rollback()...)
	}
	rest := gn.emitSequenceBody(elems, idx+1, sp+1, env, pluck, tailFn)
	if m == ast.Always {
		return append(code, rest...)
	}
	tail := buildCondition(ast.Sometimes, []int{int(IfNotError)}, rest, rollback())
	return append(code, tail...)
}

func (gn *generator) emitAction(n *ast.Action, ctx context) []int {
	if seq, ok := n.Expression.(*ast.Sequence); ok && len(seq.Elements) > 0 {
		actionCtx := ctx
		actionCtx.action = n
		return gn.emitSequence(seq, actionCtx)
	}

	child := gn.emit(n.Expression, ctx.withSP(ctx.sp+1))
	out := []int{int(PushCurrPos)}
	out = append(out, child...)

	fnIdx := gn.pools.function(ast.FunctionDesc{
		Kind:     ast.FunctionAction,
		Params:   ctx.env.names,
		Body:     n.Code.Code,
		Location: n.Code.Location,
	})
	succeed := []int{int(LoadSavedPos), 1}
	succeed = append(succeed, buildCall(fnIdx, 1, ctx.env, ctx.sp+2)...)
	succeed = append(succeed, int(Nip))
	fail := []int{int(Nip)}

	out = append(out, buildCondition(n.Expression.Match(), []int{int(IfNotError)}, succeed, fail)...)
	return out
}

func (gn *generator) emitLabeled(n *ast.Labeled, ctx context) []int {
	if n.Label != "" {
		ctx.env.bind(n.Label, ctx.sp+1)
	}
	if n.Pick && ctx.pluck != nil {
		*ctx.pluck = append(*ctx.pluck, ctx.sp+1)
	}
	childCtx := ctx
	childCtx.action = nil
	return gn.emit(n.Expression, childCtx)
}

func (gn *generator) emitGroup(n *ast.Group, ctx context) []int {
	childCtx := ctx
	childCtx.env = ctx.env.clone()
	return gn.emit(n.Expression, childCtx)
}

func (gn *generator) emitNamed(n *ast.Named, ctx context) []int {
	child := gn.emit(n.Expression, ctx)
	out := []int{int(SilentFailsOn)}
	out = append(out, child...)
	out = append(out, int(SilentFailsOff))
	if n.Match() == ast.Always {
		return out
	}

	expIdx := gn.pools.expectation(ast.ExpectationDesc{Kind: ast.ExpectRule, RuleName: n.Name})
	fail := []int{int(Pop), int(Fail), expIdx}
	out = append(out, buildCondition(negate(n.Match()), []int{int(IfError)}, fail, []int{})...)
	return out
}

func (gn *generator) emitRuleRef(n *ast.RuleReference) []int {
	idx, ok := gn.ruleIndex[n.Name]
	if !ok {
		panic(fmt.Sprintf("generate: rule reference to undefined rule %q reached the generate stage", n.Name))
	}
	return []int{int(Rule), idx}
}
