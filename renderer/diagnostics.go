// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Terminal rendering of parse diagnostics.

package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"orcaparse/parser"
)

var (
	colorError  = lipgloss.Color("#EF4444")
	colorAccent = lipgloss.Color("#F59E0B")
	colorMuted  = lipgloss.Color("#6B7280")
)

// Styles controls how diagnostics are painted. With Color unset the output
// is plain text.
type Styles struct {
	Color    bool
	Location lipgloss.Style
	Severity lipgloss.Style
	Source   lipgloss.Style
	Caret    lipgloss.Style
}

// PlainStyles returns styles that print without escape sequences.
func PlainStyles() Styles {
	return Styles{}
}

// ColorStyles returns the terminal color scheme.
func ColorStyles() Styles {
	return Styles{
		Color:    true,
		Location: lipgloss.NewStyle().Bold(true),
		Severity: lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Source:   lipgloss.NewStyle().Foreground(colorMuted),
		Caret:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	}
}

func (s Styles) paint(st lipgloss.Style, text string) string {
	if !s.Color || text == "" {
		return text
	}
	return st.Render(text)
}

// WriteDiagnostics prints every diagnostic as "file:line:col: error: msg"
// followed by the source line and a caret under the column.
func WriteDiagnostics(w io.Writer, file string, src []byte, diags []parser.Diagnostic, styles Styles) error {
	lines := strings.Split(string(src), "\n")
	for _, d := range diags {
		pos := d.Position()
		loc := fmt.Sprintf("%d:%d:", pos.Line, pos.Col)
		if file != "" {
			loc = file + ":" + loc
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			styles.paint(styles.Location, loc),
			styles.paint(styles.Severity, "error:"),
			parser.Message(d)); err != nil {
			return err
		}

		if pos.Line < 1 || pos.Line > len(lines) {
			continue
		}
		line := strings.TrimRight(lines[pos.Line-1], "\r")
		if _, err := fmt.Fprintf(w, "  %s\n  %s\n",
			styles.paint(styles.Source, line),
			styles.paint(styles.Caret, caretLine(line, pos.Col))); err != nil {
			return err
		}
	}
	return nil
}

// caretLine places '^' under the col-th rune of line, copying tabs so the
// caret lines up.
func caretLine(line string, col int) string {
	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	b.WriteByte('^')
	return b.String()
}
