// Package ast defines the node types for a parsed PEG grammar, the
// generic visitor factories used to traverse them, and the small set of
// structural helpers the later compiler stages depend on.
package ast

import "fmt"

// Position is a single point in a grammar's source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a source span. Source is the opaque grammarSource option
// value attached to every node that was produced while compiling a given
// input; it is carried through for error formatting and is never
// interpreted by the core.
type Location struct {
	Source any
	Start  Position
	End    Position
}

func (l Location) String() string {
	return l.Start.String()
}

// Note is a secondary pointer attached to a diagnostic, e.g. "originally
// defined here".
type Note struct {
	Message  string
	Location Location
}
