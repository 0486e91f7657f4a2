// Package output provides mode-aware rendering for the newsroom CLI.
//
// Every command writes through a Renderer, which resolves one of four
// output modes: text (styled, for humans at a terminal), markdown (plain,
// pipe-friendly), json (machine-readable documents), or auto, which picks
// text on a TTY and markdown otherwise. Styling is applied only in text
// mode on a real terminal, so captured or redirected output never carries
// ANSI escape codes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode selects how command results are rendered.
type OutputMode string

const (
	// ModeAuto picks text on a TTY, markdown otherwise.
	ModeAuto OutputMode = "auto"
	// ModeText renders styled terminal output.
	ModeText OutputMode = "text"
	// ModeMarkdown renders plain markdown suitable for piping.
	ModeMarkdown OutputMode = "markdown"
	// ModeJSON renders machine-readable JSON documents.
	ModeJSON OutputMode = "json"
)

// Mode parses a mode string, falling back to auto for unknown values.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use this to exercise both terminal and piped behavior.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   mode,
	}
	r.styles = newStyles(out, r.colorEnabled())
	return r
}

// isTerminal reports whether the writer is backed by a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// colorEnabled reports whether styled output should carry color.
// Only text mode on a real terminal is styled, and NO_COLOR wins.
func (r *Renderer) colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return r.isTTY && r.EffectiveMode() == ModeText
}

// DisableColor switches the renderer to unstyled output. Flags like
// --no-color use this after construction.
func (r *Renderer) DisableColor() {
	r.styles = newStyles(r.out, false)
}

// EffectiveMode resolves auto to a concrete mode.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the underlying output writer, for callers that need
// direct access (JSON encoders, tables).
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the underlying error writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Styles returns the active style set.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Success prints a success line with a check mark.
func (r *Renderer) Success(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.styles.StatusSuccess.String(), msg)
}

// Warning prints a warning line.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.styles.Warning.Render("!"), msg)
}

// Error prints an error line to the error writer.
func (r *Renderer) Error(msg string) {
	fmt.Fprintf(r.errOut, "%s %s\n", r.styles.StatusFailed.String(), msg)
}

// Muted prints a de-emphasized line.
func (r *Renderer) Muted(s string) {
	fmt.Fprintln(r.out, r.styles.Muted.Render(s))
}

// Header prints a section heading. Markdown mode emits a markdown
// heading; text mode emits a styled line.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		fmt.Fprintln(r.out, FormatHeader(level, text))
		return
	}
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	fmt.Fprintln(r.out, style.Render(text))
}

// StatusLine prints a per-item status line: an icon, the item name, and
// an optional muted detail.
func (r *Renderer) StatusLine(name, status, detail string) {
	var icon string
	switch status {
	case "success":
		icon = r.styles.StatusSuccess.String()
	case "failed", "error":
		icon = r.styles.StatusFailed.String()
	case "warn", "warning":
		icon = r.styles.Warning.Render("!")
	case "skipped":
		icon = r.styles.Muted.Render("-")
	default:
		icon = r.styles.Muted.Render("•")
	}

	line := fmt.Sprintf("  %s %s", icon, name)
	if detail != "" {
		line += " " + r.styles.Muted.Render("("+detail+")")
	}
	fmt.Fprintln(r.out, line)
}

// EntryLine prints a numbered entry line with a styled file name.
func (r *Renderer) EntryLine(n int, name, description string) {
	fmt.Fprintf(r.out, "  %2d. %s  %s\n", n, r.styles.EntryPath.Render(name), description)
}

// JSON encodes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
