package diagnostics

import (
	"fmt"
	"strings"
)

// Source pairs a grammarSource identifier with the text it names, for
// caret-underlined rendering.
type Source struct {
	ID   any
	Text string
}

// FormatProblems renders a caret-underlined diagnostic block per
// problem, skipping Info severity from the summary the way a compiler's
// default reporter would. sources maps a problem's Location.Source
// (compared by fmt.Sprint, since grammarSource is an opaque any) to its
// text, used to render the offending line.
func FormatProblems(problems Problems, sources []Source) string {
	text := make(map[string]string, len(sources))
	for _, s := range sources {
		text[fmt.Sprint(s.ID)] = s.Text
	}

	var b strings.Builder
	n := 0
	for _, p := range problems {
		if p.Severity == Info {
			continue
		}
		if n > 0 {
			b.WriteByte('\n')
		}
		n++
		writeProblem(&b, p, text)
	}
	return b.String()
}

func writeProblem(b *strings.Builder, p Problem, text map[string]string) {
	fmt.Fprintf(b, "%s: %s\n", p.Severity, p.Message)
	if p.Location != nil {
		fmt.Fprintf(b, "  --> %v\n", p.Location.Start)
		if line, ok := sourceLine(text[fmt.Sprint(p.Location.Source)], p.Location.Start.Line); ok {
			fmt.Fprintf(b, "   | %s\n", line)
			col := p.Location.Start.Column
			if col < 1 {
				col = 1
			}
			fmt.Fprintf(b, "   | %s^\n", strings.Repeat(" ", col-1))
		}
	}
	for _, note := range p.Notes {
		fmt.Fprintf(b, "  note: %s (%v)\n", note.Message, note.Location.Start)
	}
}

func sourceLine(text string, line int) (string, bool) {
	if text == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}
