// Package generate implements the bytecode generator (C6): it lowers a
// checked, transformed grammar into a flat stack-machine program per
// rule plus the four deduplicated constant pools the program's
// instructions index into. The opcode numbering below is stable — it is
// the external ABI a target-language emitter's runtime consumes.
package generate

// Opcode is one instruction in a rule's bytecode. Every opcode is
// followed by a fixed or variable number of operands, documented per
// constant below.
type Opcode int

const (
	// Stack family.
	PushEmptyString Opcode = iota // no operands
	PushUndefined                 // no operands
	PushNull                      // no operands
	PushFailed                    // no operands
	PushEmptyArray                // no operands
	PushCurrPos                   // no operands
	Pop                           // no operands
	PopCurrPos                    // no operands
	PopN                          // n
	Nip                           // no operands
	Append                        // no operands
	Wrap                          // n
	Text                          // no operands
	Pluck                         // n, k, p1..pk

	// Control family. Branch bodies are inlined; the operand(s)
	// immediately following the opcode (and, for IF_ERROR/
	// IF_NOT_ERROR/IF, a second length) are the byte lengths of the
	// inlined then/else (or loop body) ranges that follow.
	If
	IfError
	IfNotError
	WhileNotError

	// Matching family.
	MatchAny      // a, f (then-length, else-length)
	MatchString   // s, a, f
	MatchStringIC // s, a, f
	MatchCharClass
	AcceptN   // n
	AcceptString
	Fail // e

	// Calls/positions family.
	LoadSavedPos // p
	UpdateSavedPos
	Call // f, delta, n, p1..pN

	// Rules family.
	Rule // r

	// Expectations family.
	SilentFailsOn
	SilentFailsOff
)

// Failed is the distinguished sentinel value a runtime uses to signal
// "this fragment did not match". It is never encoded into bytecode
// itself; it is the runtime value IF_ERROR and friends branch on.
const Failed = -1
