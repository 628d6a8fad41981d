package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Banner is printed at the top of interactive commands
const Banner = `
    ┌─────────────────────────────────────────┐
    │  pexelsearch  ·  Pexels photo search    │
    └─────────────────────────────────────────┘
`

// ANSI color wrappers
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		return fmt.Sprintf(colorString, text)
	}
}

// Printer writes command output, coloring it only on a terminal
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer; color is enabled when w is a terminal
// and NO_COLOR is unset
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, color: color}
}

// NewPlainPrinter creates a printer that never colors
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) paint(fn func(string) string, s string) string {
	if !p.color {
		return s
	}
	return fn(s)
}

// Banner prints the banner
func (p *Printer) Banner() {
	fmt.Fprint(p.w, p.paint(Cyan, Banner))
}

// Error prints an error message in red
func (p *Printer) Error(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Fprintln(p.w, p.paint(Red, msg))
}

// Success prints a success message in green
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.paint(Green, msg))
}

// Info prints a label and value
func (p *Printer) Info(label string, value string) {
	fmt.Fprintf(p.w, "%s: %s\n", p.paint(Cyan, label), p.paint(Yellow, value))
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Fprintln(p.w, p.paint(Yellow, msg))
}

// Highlight prints a message in magenta
func (p *Printer) Highlight(msg string) {
	fmt.Fprintln(p.w, p.paint(Magenta, msg))
}

// Muted prints a dimmed message
func (p *Printer) Muted(msg string) {
	fmt.Fprintln(p.w, p.paint(Dim, msg))
}
