// Package display renders user-facing console output. Logs go to stderr
// through the logging package; this package owns what is printed on stdout.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/term"

	"concatfiles/internal/domain"
)

// Printer writes console messages, colouring them when the destination is a
// terminal.
type Printer struct {
	out      io.Writer
	colorize bool
}

// NewPrinter creates a printer for out. Colour is enabled only when out is a
// terminal and NO_COLOR is not set.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:      out,
		colorize: isTerminal(out) && !color.NoColor,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Summary prints the completion line for a successful run, e.g.
//
//	Concatenated 2 file(s) into 'out.txt'.
func (p *Printer) Summary(result domain.Result) error {
	count := strconv.Itoa(result.Files)
	output := fmt.Sprintf("'%s'", result.OutputPath)

	if p.colorize {
		green := color.New(color.FgGreen, color.Bold)
		cyan := color.New(color.FgCyan)
		green.EnableColor()
		cyan.EnableColor()
		count = green.Sprint(count)
		output = cyan.Sprint(output)
	}

	_, err := fmt.Fprintf(p.out, "Concatenated %s file(s) into %s.\n", count, output)
	return err
}
