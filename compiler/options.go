package compiler

import (
	"github.com/polkovnikov-ph/peggy/check"
	"github.com/polkovnikov-ph/peggy/diagnostics"
	"github.com/polkovnikov-ph/peggy/internal/logging"
	"github.com/polkovnikov-ph/peggy/transform"
)

// Output selects what Compile returns once the generate stage has run.
type Output string

const (
	// OutputAST returns the fully-annotated grammar (bytecode and pools
	// populated, but no rendering performed).
	OutputAST Output = "ast"
	// OutputBytecode returns a disassembled text rendering of every
	// rule's bytecode, for debugging. The real emitter's "parser",
	// "source", "source-and-map" and "source-with-inline-map" outputs
	// need a target-language code generator, which is out of scope.
	OutputBytecode Output = "bytecode"
)

// Options configures one Compile invocation. The zero value is usable:
// it compiles with the default passes, the first rule as the only
// allowed start rule, no tracing, and an "ast" output.
type Options struct {
	// AllowedStartRules names the rules that may be entered directly.
	// The sentinel "*" expands to every rule name. Defaults to the
	// first rule's name.
	AllowedStartRules []string

	// Cache is passed through to the emitter; analysis ignores it.
	Cache bool

	// Trace enables Debug-level stage entry/exit logging through
	// Logger. It has no effect on diagnostics.
	Trace bool

	// GrammarSource is an opaque identifier for the grammar's source, of
	// the same kind as Location.Source. Compile does not read it and does not
	// write it into any Location; locations carry whatever Source the
	// caller's AST already has.
	GrammarSource any

	// Plugins run, in order, before compilation starts.
	Plugins []Plugin

	// ReservedWords overrides DefaultReservedWords. Preserved as
	// configuration surface for a text-parsing front end; this core has
	// no parser, so nothing here enforces it directly.
	ReservedWords []string

	// OnError, OnWarning, OnInfo are notified synchronously as each
	// diagnostic of that severity is recorded.
	OnError   diagnostics.Callback
	OnWarning diagnostics.Callback
	OnInfo    diagnostics.Callback

	// Output selects what Compile returns.
	Output Output

	// Logger receives trace messages when Trace is set. Defaults to a
	// no-op logger.
	Logger logging.Logger
}

// Config is the mutable pipeline configuration a Plugin's Use hook may
// alter: the ordered pass lists for each stage, and the reserved-word
// list. Compile clones the package defaults into a fresh Config for
// every invocation so plugins never mutate global state.
type Config struct {
	CheckPasses     []check.Named
	TransformPasses []transform.Named
	ReservedWords   []string
}

func newConfig(opts Options) *Config {
	reserved := opts.ReservedWords
	if reserved == nil {
		reserved = DefaultReservedWords
	}
	return &Config{
		CheckPasses:     check.Default(),
		TransformPasses: transform.Default(),
		ReservedWords:   append([]string{}, reserved...),
	}
}
