package diagnostics

import (
	"fmt"

	"github.com/polkovnikov-ph/peggy/ast"
)

// Callback is notified every time a Problem of its severity is recorded.
type Callback func(Problem)

func noop(Problem) {}

// Session is the per-compilation mutable context threaded through every
// pass. It accumulates problems, tracks the error count used for the
// stage-boundary fail-fast check, and retains the first error raised in
// the current stage.
//
// A Session is not safe for concurrent use; each call to the pipeline
// driver constructs a fresh one.
type Session struct {
	onError   Callback
	onWarning Callback
	onInfo    Callback

	problems   Problems
	errorCount int
	stage      string
	firstError *CompileError
}

// NewSession constructs a Session. Any nil callback defaults to a no-op.
func NewSession(onError, onWarning, onInfo Callback) *Session {
	if onError == nil {
		onError = noop
	}
	if onWarning == nil {
		onWarning = noop
	}
	if onInfo == nil {
		onInfo = noop
	}
	return &Session{onError: onError, onWarning: onWarning, onInfo: onInfo}
}

// SetStage assigns the stage passes run under. Reporting before a stage
// has been set is a programmer error.
func (s *Session) SetStage(stage string) {
	s.stage = stage
}

// Stage returns the current stage name.
func (s *Session) Stage() string {
	return s.stage
}

func (s *Session) requireStage() {
	if s.stage == "" {
		panic("diagnostics: session.error/warning/info called with no stage set")
	}
}

// Error records an error-severity problem. It never unwinds the call
// stack; a pass that wants to stop its own traversal after reporting
// must do so with ordinary control flow (return, break, etc).
func (s *Session) Error(message string, loc *ast.Location, notes ...ast.Note) {
	s.requireStage()
	p := Problem{Severity: Error, Message: message, Location: loc, Notes: notes}
	s.problems = append(s.problems, p)
	s.errorCount++
	if s.firstError == nil {
		s.firstError = &CompileError{Stage: s.stage, session: s}
	}
	s.onError(p)
}

// Warning records a warning-severity problem. It does not affect the
// error count.
func (s *Session) Warning(message string, loc *ast.Location, notes ...ast.Note) {
	s.requireStage()
	p := Problem{Severity: Warning, Message: message, Location: loc, Notes: notes}
	s.problems = append(s.problems, p)
	s.onWarning(p)
}

// Info records an info-severity problem. It does not affect the error
// count.
func (s *Session) Info(message string, loc *ast.Location, notes ...ast.Note) {
	s.requireStage()
	p := Problem{Severity: Info, Message: message, Location: loc, Notes: notes}
	s.problems = append(s.problems, p)
	s.onInfo(p)
}

// ErrorCount returns the number of error-severity problems recorded so
// far, across every stage run on this session.
func (s *Session) ErrorCount() int {
	return s.errorCount
}

// Problems returns every diagnostic recorded so far, across every stage.
func (s *Session) Problems() Problems {
	out := make(Problems, len(s.problems))
	copy(out, s.problems)
	return out
}

// CheckErrors raises the retained first error if the error count is
// non-zero. The driver calls this at the end of every stage.
func (s *Session) CheckErrors() error {
	if s.errorCount == 0 {
		return nil
	}
	if s.firstError == nil {
		// Should be unreachable: errorCount > 0 implies Error() set
		// firstError on the same call that incremented it.
		panic(fmt.Sprintf("diagnostics: %d errors recorded but no first error retained", s.errorCount))
	}
	return s.firstError
}
