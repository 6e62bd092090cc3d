package generate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/polkovnikov-ph/peggy/ast"
)

var opcodeNames = map[Opcode]string{
	PushEmptyString: "PUSH_EMPTY_STRING",
	PushUndefined:   "PUSH_UNDEFINED",
	PushNull:        "PUSH_NULL",
	PushFailed:      "PUSH_FAILED",
	PushEmptyArray:  "PUSH_EMPTY_ARRAY",
	PushCurrPos:     "PUSH_CURR_POS",
	Pop:             "POP",
	PopCurrPos:      "POP_CURR_POS",
	PopN:            "POP_N",
	Nip:             "NIP",
	Append:          "APPEND",
	Wrap:            "WRAP",
	Text:            "TEXT",
	Pluck:           "PLUCK",
	If:              "IF",
	IfError:         "IF_ERROR",
	IfNotError:      "IF_NOT_ERROR",
	WhileNotError:   "WHILE_NOT_ERROR",
	MatchAny:        "MATCH_ANY",
	MatchString:     "MATCH_STRING",
	MatchStringIC:   "MATCH_STRING_IC",
	MatchCharClass:  "MATCH_CHAR_CLASS",
	AcceptN:         "ACCEPT_N",
	AcceptString:    "ACCEPT_STRING",
	Fail:            "FAIL",
	LoadSavedPos:    "LOAD_SAVED_POS",
	UpdateSavedPos:  "UPDATE_SAVED_POS",
	Call:            "CALL",
	Rule:            "RULE",
	SilentFailsOn:   "SILENT_FAILS_ON",
	SilentFailsOff:  "SILENT_FAILS_OFF",
}

// operandCounts gives the number of integer operands that follow each
// opcode printed by Disassemble's default case; an opcode missing here
// has none. Branching opcodes (IF*, WHILE_NOT_ERROR, MATCH_*) and the
// variable-length CALL and PLUCK are not listed: Disassemble decodes
// their operands and recurses into inlined bodies in dedicated cases.
var operandCounts = map[Opcode]int{
	PopN:         1,
	Wrap:         1,
	AcceptN:      1,
	AcceptString: 1,
	Fail:         1,
	LoadSavedPos: 1,
	Rule:         1,
}

// Disassemble renders a rule's bytecode as indented, human-readable
// text, resolving pool indices against pools so a reader can see the
// literal or expectation a given instruction refers to without
// cross-referencing the pool dump by hand. It has no bearing on the
// bytecode ABI; it exists purely for debugging and tests.
func Disassemble(r *ast.Rule, g *ast.Grammar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rule %s:\n", r.Name)
	d := &disassembler{g: g, b: &b}
	d.block(r.Bytecode, 1)
	return b.String()
}

type disassembler struct {
	g *ast.Grammar
	b *strings.Builder
}

func (d *disassembler) block(code []int, depth int) {
	i := 0
	for i < len(code) {
		i = d.instruction(code, i, depth)
	}
}

func (d *disassembler) instruction(code []int, i, depth int) int {
	op := Opcode(code[i])
	name, ok := opcodeNames[op]
	if !ok {
		name = "UNKNOWN_" + strconv.Itoa(int(op))
	}
	indent := strings.Repeat("  ", depth)

	switch op {
	case If, IfError, IfNotError:
		thenLen, elseLen := code[i+1], code[i+2]
		fmt.Fprintf(d.b, "%s%s\n", indent, name)
		thenStart := i + 3
		elseStart := thenStart + thenLen
		d.block(code[thenStart:thenStart+thenLen], depth+1)
		if elseLen > 0 {
			fmt.Fprintf(d.b, "%sELSE\n", indent)
			d.block(code[elseStart:elseStart+elseLen], depth+1)
		}
		return elseStart + elseLen
	case WhileNotError:
		bodyLen := code[i+1]
		fmt.Fprintf(d.b, "%s%s\n", indent, name)
		bodyStart := i + 2
		d.block(code[bodyStart:bodyStart+bodyLen], depth+1)
		return bodyStart + bodyLen
	case MatchAny, MatchString, MatchStringIC, MatchCharClass:
		extra := 0
		if op != MatchAny {
			extra = 1
		}
		thenLen, elseLen := code[i+1+extra], code[i+2+extra]
		args := code[i+1 : i+1+extra]
		fmt.Fprintf(d.b, "%s%s%s\n", indent, name, d.describeArgs(op, args))
		thenStart := i + 3 + extra
		elseStart := thenStart + thenLen
		d.block(code[thenStart:thenStart+thenLen], depth+1)
		if elseLen > 0 {
			fmt.Fprintf(d.b, "%sELSE\n", indent)
			d.block(code[elseStart:elseStart+elseLen], depth+1)
		}
		return elseStart + elseLen
	case Call:
		n := code[i+3]
		end := i + 4 + n
		fmt.Fprintf(d.b, "%s%s %v\n", indent, name, code[i+1:end])
		return end
	case Pluck:
		k := code[i+2]
		end := i + 3 + k
		fmt.Fprintf(d.b, "%s%s %v\n", indent, name, code[i+1:end])
		return end
	default:
		n := operandCounts[op]
		end := i + 1 + n
		fmt.Fprintf(d.b, "%s%s%s\n", indent, name, d.describeArgs(op, code[i+1:end]))
		return end
	}
}

func (d *disassembler) describeArgs(op Opcode, args []int) string {
	if len(args) == 0 {
		return ""
	}
	extra := ""
	switch op {
	case MatchString, MatchStringIC, AcceptString:
		if idx := args[0]; idx >= 0 && idx < len(d.g.Literals) {
			extra = fmt.Sprintf(" %q", d.g.Literals[idx])
		}
	case Fail:
		if idx := args[0]; idx >= 0 && idx < len(d.g.Expectations) {
			extra = fmt.Sprintf(" %+v", d.g.Expectations[idx])
		}
	case Rule:
		if idx := args[0]; idx >= 0 && idx < len(d.g.Rules) {
			extra = " " + d.g.Rules[idx].Name
		}
	}
	return fmt.Sprintf(" %v%s", args, extra)
}
