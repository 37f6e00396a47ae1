package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors with colors and professional styling.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorError     = color.New(color.FgRed)
	colorErrorBold = color.New(color.FgHiRed, color.Bold)
	colorCode      = color.New(color.FgHiBlack)
	colorLocation  = color.New(color.FgCyan)
	colorLineNum   = color.New(color.FgHiBlack)
	colorPipe      = color.New(color.FgHiBlack)
	colorSource    = color.New(color.FgWhite)
	colorCaret     = color.New(color.FgHiRed)
	colorHint      = color.New(color.FgHiYellow)
	colorNote      = color.New(color.FgHiBlue)
)

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "error", "parse error", "malformed pattern", etc.
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int               // For multi-character underlines
	SourceLines []SourceLineEntry // Multiple lines for context
	Hint        string            // "Did you mean?" suggestion
	Note        string            // Additional context
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // True if this is the line with the error
}

// Format formats the error as a string using a consistent Rust-like style.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats the error with an optional prefix like "[1/5]".
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder

	// Calculate line number width for consistent alignment
	lineNumWidth := 2
	if err.Line >= 100 {
		lineNumWidth = len(fmt.Sprintf("%d", err.Line))
	}

	// Error header: "error[E2001]: message" or "error[1/5]: message"
	f.writeHeader(&b, err, prefix)

	// Location arrow: "  --> file.vl:10:5"
	f.writeLocation(&b, err, lineNumWidth)

	// Source context with line numbers
	f.writeSource(&b, err, lineNumWidth)

	// Hint (e.g., "Did you mean?")
	if err.Hint != "" {
		f.writeHint(&b, err.Hint, lineNumWidth)
	}

	// Note
	if err.Note != "" {
		f.writeNote(&b, err.Note, lineNumWidth)
	}

	return b.String()
}

func (f *Formatter) sprint(c *color.Color, s string) string {
	if f.UseColor {
		return c.Sprint(s)
	}
	return s
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError, prefix string) {
	// Determine what to show: "error", "error[E2001]", or "error[1/5]"
	label := "error"
	if err.Kind != "" && err.Kind != "error" {
		label = err.Kind
	}
	b.WriteString(f.sprint(colorErrorBold, label))

	// Add code or prefix in brackets
	if err.Code != "" {
		b.WriteString(f.sprint(colorCode, fmt.Sprintf("[%s]", err.Code)))
	} else if prefix != "" {
		b.WriteString(f.sprint(colorCode, fmt.Sprintf("[%s]", prefix)))
	}

	// Message
	b.WriteString(f.sprint(colorError, ": "))
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if err.Line == 0 && err.Filename == "" {
		return
	}

	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(f.sprint(colorLineNum, padding))
	b.WriteString(f.sprint(colorLocation, "-->"))
	b.WriteString(" ")

	loc := ""
	if err.Filename != "" {
		loc = err.Filename
		if err.Line > 0 {
			loc += fmt.Sprintf(":%d:%d", err.Line, err.Column)
		}
	} else if err.Line > 0 {
		loc = fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	b.WriteString(f.sprint(colorLocation, loc))
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if len(err.SourceLines) == 0 {
		return
	}

	padding := strings.Repeat(" ", lineNumWidth)

	// Empty pipe line for visual separation
	b.WriteString(f.sprint(colorLineNum, padding))
	b.WriteString(f.sprint(colorPipe, " |\n"))

	for _, line := range err.SourceLines {
		// Line number: " 6 |"
		lineNumStr := fmt.Sprintf("%*d", lineNumWidth, line.Number)
		b.WriteString(f.sprint(colorLineNum, lineNumStr))
		b.WriteString(f.sprint(colorPipe, " | "))
		b.WriteString(f.sprint(colorSource, line.Text))
		b.WriteString("\n")

		// Caret line for the main error line
		if line.IsMain && err.Column > 0 {
			b.WriteString(f.sprint(colorLineNum, padding))
			b.WriteString(f.sprint(colorPipe, " | "))

			// Spaces to reach the error column
			b.WriteString(strings.Repeat(" ", err.Column-1))

			// Carets under the error
			caretLen := 1
			if err.EndColumn > err.Column {
				caretLen = err.EndColumn - err.Column + 1
			}
			b.WriteString(f.sprint(colorCaret, strings.Repeat("^", caretLen)))
			b.WriteString("\n")
		}
	}
}

func (f *Formatter) writeHint(b *strings.Builder, hint string, lineNumWidth int) {
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(f.sprint(colorLineNum, padding))
	b.WriteString(f.sprint(colorPipe, " |\n"))
	b.WriteString(f.sprint(colorLineNum, padding))
	b.WriteString(f.sprint(colorPipe, " = "))
	b.WriteString(f.sprint(colorHint, "hint: "))
	b.WriteString(hint)
	b.WriteString("\n")
}

func (f *Formatter) writeNote(b *strings.Builder, note string, lineNumWidth int) {
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(f.sprint(colorLineNum, padding))
	b.WriteString(f.sprint(colorPipe, " = "))
	b.WriteString(f.sprint(colorNote, "note: "))
	b.WriteString(note)
	b.WriteString("\n")
}

// FormatMultiple formats multiple errors with consistent styling.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	if len(errs) == 0 {
		return ""
	}

	// Single error - no numbering needed
	if len(errs) == 1 {
		return f.Format(errs[0])
	}

	var b strings.Builder
	total := len(errs)

	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		prefix := fmt.Sprintf("%d/%d", i+1, total)
		b.WriteString(f.FormatWithPrefix(err, prefix))
	}

	// Summary
	b.WriteString("\n")
	b.WriteString(f.sprint(colorErrorBold, fmt.Sprintf("found %d errors", total)))
	b.WriteString("\n")

	return b.String()
}
