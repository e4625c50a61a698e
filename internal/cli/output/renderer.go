// Package output renders CLI results. A Renderer adapts to where its output
// goes: styled text on a terminal, markdown when piped, JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Mode selects the output rendering mode.
type Mode string

// Rendering modes.
const (
	ModeAuto     Mode = ""
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer for the given writers and mode.
// ModeAuto resolves at render time: styled text on a terminal, markdown
// otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: newStyles(),
	}
}

// EffectiveMode resolves ModeAuto against the output destination.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok {
		if termenv.NewOutput(f).ColorProfile() != termenv.Ascii {
			return ModeText
		}
	}
	return ModeMarkdown
}

// Styles returns the style set for terminal rendering.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Success writes a success status line.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, r.styles.Success.Render("✓")+" "+msg)
		return
	}
	fmt.Fprintln(r.out, "OK: "+msg)
}

// Warning writes a warning status line to standard error.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning:")+" "+msg)
		return
	}
	fmt.Fprintln(r.errOut, "warning: "+msg)
}

// Error writes an error status line to standard error.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errOut, r.styles.Error.Render("error:")+" "+msg)
		return
	}
	fmt.Fprintln(r.errOut, "error: "+msg)
}

// Header writes a section heading in the effective mode.
func (r *Renderer) Header(text string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, r.styles.Bold.Render(text))
		return
	}
	fmt.Fprintln(r.out, FormatHeader(2, text))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader renders a markdown heading of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	prefix := ""
	for i := 0; i < level; i++ {
		prefix += "#"
	}
	return prefix + " " + text
}

// FormatKeyValue renders a markdown key/value line.
func FormatKeyValue(key, value string) string {
	return "- **" + key + "**: " + value
}
