// Package diagnostics implements the per-compilation diagnostics
// session that the check, transform and generate stages report
// problems into, in the teacher's Errors/Error aggregate-error idiom.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/polkovnikov-ph/peggy/ast"
)

// Severity classifies a Problem.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Problem is a single diagnostic record: (severity, message, location?,
// notes?), matching spec.md §6's diagnostic record shape.
type Problem struct {
	Severity Severity
	Message  string
	Location *ast.Location
	Notes    []ast.Note
}

func (p Problem) Error() string {
	if p.Location == nil {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.Location.Start, p.Message)
}

// Problems is a series of diagnostics, e.g. everything a failed stage
// accumulated before it was checked.
type Problems []Problem

func (ps Problems) Error() string {
	switch len(ps) {
	case 0:
		return "no error(s)"
	case 1:
		return fmt.Sprintf("1 problem occurred: %v", ps[0].Error())
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Error()
	}
	return fmt.Sprintf("%d problems occurred:\n%s", len(ps), strings.Join(parts, "\n"))
}

// CompileError is the retained exception constructed the first time a
// session records an error in a given stage. Stage is the session's
// current stage at the time; Problems aliases the session's growing
// list (via the *Session back-reference), so by the time the caller
// inspects it after the stage finishes, it reflects everything the
// stage reported — not just the first error that triggered it.
type CompileError struct {
	Stage   string
	session *Session
}

// Problems returns every diagnostic the session had accumulated by the
// time this error is inspected, including ones reported after the first
// error that constructed it.
func (e *CompileError) Problems() Problems {
	return e.session.Problems()
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Problems().Error())
}
