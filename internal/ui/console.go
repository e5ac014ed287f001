// Package ui renders task-cli output: status lines, panels and tables.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Console writes styled lines to an output and an error stream.
// Color follows the mode: "auto" asks the terminal, "always" and
// "never" force it.
type Console struct {
	out, err   io.Writer
	theme      Theme
	outR, errR *lipgloss.Renderer
}

// NewConsole returns a console for the given streams.
func NewConsole(out, errw io.Writer, theme Theme, color string) *Console {
	c := &Console{
		out:   out,
		err:   errw,
		theme: theme,
		outR:  lipgloss.NewRenderer(out),
		errR:  lipgloss.NewRenderer(errw),
	}
	if theme.Name == "mono" {
		color = "never"
	}
	switch color {
	case "always":
		c.outR.SetColorProfile(termenv.ANSI256)
		c.errR.SetColorProfile(termenv.ANSI256)
	case "never":
		c.outR.SetColorProfile(termenv.Ascii)
		c.errR.SetColorProfile(termenv.Ascii)
	}
	return c
}

// Out is the raw output stream.
func (c *Console) Out() io.Writer { return c.out }

// Theme is the active theme.
func (c *Console) Theme() Theme { return c.theme }

// Renderer is the renderer bound to the output stream.
func (c *Console) Renderer() *lipgloss.Renderer { return c.outR }

// Style returns a style on the output renderer with a foreground.
func (c *Console) Style(color lipgloss.TerminalColor) lipgloss.Style {
	return c.outR.NewStyle().Foreground(color)
}

// Println writes s unstyled.
func (c *Console) Println(s string) { fmt.Fprintln(c.out, s) }

// Success writes a completed-action line.
func (c *Console) Success(msg string) { fmt.Fprintln(c.out, c.Style(c.theme.Success).Render(msg)) }

// Notice writes a normal but unsuccessful outcome, such as a missing id.
func (c *Console) Notice(msg string) { fmt.Fprintln(c.out, c.Style(c.theme.Pending).Render(msg)) }

func (c *Console) OK(msg string) { c.Success(c.theme.SymOK + " " + msg) }

func (c *Console) Fail(msg string) {
	st := c.errR.NewStyle().Foreground(c.theme.Error).Bold(true)
	fmt.Fprintln(c.err, st.Render(c.theme.SymFail+" "+msg))
}

// Hint writes a muted line to the error stream.
func (c *Console) Hint(msg string) {
	fmt.Fprintln(c.err, c.errR.NewStyle().Faint(true).Render(msg))
}
