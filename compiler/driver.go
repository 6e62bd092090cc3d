// Package compiler is the pipeline driver (C7): it sequences the
// check, transform and generate stages against a grammar, honoring
// plugin configuration and the allowed-start-rules / reserved-word
// options, in the teacher's staged-Compiler idiom generalized to three
// stages instead of one flat pass list.
package compiler

import (
	"fmt"
	"strings"

	"github.com/polkovnikov-ph/peggy/ast"
	"github.com/polkovnikov-ph/peggy/diagnostics"
	"github.com/polkovnikov-ph/peggy/generate"
	"github.com/polkovnikov-ph/peggy/internal/logging"
	"github.com/polkovnikov-ph/peggy/transform"
)

// UsageError is raised immediately by Compile, before any stage runs,
// for option problems the driver itself is responsible for validating
// (as opposed to semantic problems the check stage reports).
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Compile runs the check, transform and generate stages over g in
// order, stopping at the first stage boundary that has recorded an
// error. On success g itself has been mutated in place (transform
// rewrites it, generate populates bytecode and pools) and is also
// returned for convenience.
func Compile(g *ast.Grammar, opts Options) (*ast.Grammar, *diagnostics.Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	cfg := newConfig(opts)
	for _, p := range opts.Plugins {
		p.Use(cfg, &opts)
	}

	allowed, err := resolveAllowedStartRules(g, opts.AllowedStartRules)
	if err != nil {
		return nil, nil, err
	}

	s := diagnostics.NewSession(opts.OnError, opts.OnWarning, opts.OnInfo)

	if err := runCheckStage(g, cfg, s, opts, logger); err != nil {
		return nil, s, err
	}

	if err := runTransformStage(g, cfg, s, opts, logger, allowed); err != nil {
		return nil, s, err
	}

	if err := runGenerateStage(g, s, opts, logger); err != nil {
		return nil, s, err
	}

	return g, s, nil
}

func runCheckStage(g *ast.Grammar, cfg *Config, s *diagnostics.Session, opts Options, logger logging.Logger) error {
	s.SetStage("check")
	if opts.Trace {
		logger.Debug("stage check: running %d passes", len(cfg.CheckPasses))
	}
	for _, p := range cfg.CheckPasses {
		if opts.Trace {
			logger.Debug("stage check: pass %s", p.Name)
		}
		p.Run(g, s)
	}
	if opts.Trace {
		logger.Debug("stage check: done")
	}
	return s.CheckErrors()
}

func runTransformStage(g *ast.Grammar, cfg *Config, s *diagnostics.Session, opts Options, logger logging.Logger, allowed []string) error {
	s.SetStage("transform")
	topts := transform.Options{AllowedStartRules: allowed}
	if opts.Trace {
		logger.Debug("stage transform: running %d passes", len(cfg.TransformPasses))
	}
	for _, p := range cfg.TransformPasses {
		if opts.Trace {
			logger.Debug("stage transform: pass %s", p.Name)
		}
		p.Run(g, topts, s)
	}
	if opts.Trace {
		logger.Debug("stage transform: done")
	}
	return s.CheckErrors()
}

func runGenerateStage(g *ast.Grammar, s *diagnostics.Session, opts Options, logger logging.Logger) error {
	s.SetStage("generate")
	if opts.Trace {
		logger.Debug("stage generate: running")
	}
	generate.Generate(g, s)
	if opts.Trace {
		logger.Debug("stage generate: done")
	}
	return s.CheckErrors()
}

// resolveAllowedStartRules defaults to the first rule's name, expands
// the "*" sentinel to every rule name, and rejects any name that isn't
// actually a rule in g — a usage error, not a semantic one, because it
// is about the caller's options rather than the grammar's content.
func resolveAllowedStartRules(g *ast.Grammar, requested []string) ([]string, error) {
	if len(requested) == 0 {
		if len(g.Rules) == 0 {
			return nil, &UsageError{Message: "compiler: grammar has no rules"}
		}
		return []string{g.Rules[0].Name}, nil
	}

	for _, name := range requested {
		if name == "*" {
			all := make([]string, len(g.Rules))
			for i, r := range g.Rules {
				all[i] = r.Name
			}
			return all, nil
		}
	}

	for _, name := range requested {
		if ast.FindRule(g, name) == nil {
			return nil, &UsageError{Message: fmt.Sprintf("compiler: allowedStartRules names unknown rule %q", name)}
		}
	}
	return requested, nil
}

// Generate is the outer entrypoint mirroring spec.md §4.7's
// generate(grammar, options): it runs Compile and then renders the
// result according to opts.Output. Only "ast" (the fully-annotated
// grammar) and "bytecode" (a disassembled text dump) are supported
// here — the emitter's "parser"/"source"/"source-and-map" outputs need
// a target-language code generator, which is out of scope.
func Generate(g *ast.Grammar, opts Options) (any, *diagnostics.Session, error) {
	compiled, s, err := Compile(g, opts)
	if err != nil {
		return nil, s, err
	}

	switch opts.Output {
	case OutputBytecode:
		var b strings.Builder
		for _, r := range compiled.Rules {
			b.WriteString(generate.Disassemble(r, compiled))
		}
		return b.String(), s, nil
	default:
		return compiled, s, nil
	}
}
