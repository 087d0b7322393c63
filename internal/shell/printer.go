package shell

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/go-ports/todo/internal/models"
)

// Printer renders shell output lines.
type Printer struct {
	w io.Writer

	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	header  lipgloss.Style
	done    lipgloss.Style
	pending lipgloss.Style
	id      lipgloss.Style
}

// NewPrinter creates a Printer for w. color is "auto" (detect from w),
// "always" or "never".
func NewPrinter(w io.Writer, color string) *Printer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	}
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		info:    r.NewStyle().Foreground(lipgloss.Color("6")),
		header:  r.NewStyle().Bold(true),
		done:    r.NewStyle().Foreground(lipgloss.Color("8")),
		pending: r.NewStyle().Foreground(lipgloss.Color("3")),
		id:      r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.success.Render("✓ "+msg))
}

// Error prints a failure line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.failure.Render("✗ "+msg))
}

// Info prints a neutral line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, p.info.Render("ℹ "+msg))
}

// Plain prints text unstyled.
func (p *Printer) Plain(text string) {
	fmt.Fprintln(p.w, text)
}

// Todos prints a framed list, one todo per line in the given order.
func (p *Printer) Todos(todos []models.Todo) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.header.Render("=== YOUR TODO LIST ==="))
	for _, t := range todos {
		mark, status, style := "○", "TO DO", p.pending
		if t.Completed {
			mark, status, style = "✓", "FINISHED", p.done
		}
		fmt.Fprintf(p.w, "%s %s %s %s\n",
			p.id.Render(fmt.Sprintf("#%d", t.ID)), mark, t.Text, style.Render("["+status+"]"))
	}
	fmt.Fprintln(p.w, p.header.Render("======================"))
	fmt.Fprintln(p.w)
}
