// Package ui prints themed, non-interactive output for the subcommands.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[95m"
	fgCyan    = "\033[96m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr

	forceColor   bool
	disableColor bool
)

// SetOutput redirects all printing. nil keeps the current stream.
func SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// C wraps s in color when stdout is a terminal, or when forced.
func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(out, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(errOut, C(current.Error, symCross+" "+msg)) }

// Hint prints a muted line to stderr, after a Fail.
func Hint(msg string) { fmt.Fprintln(errOut, C(current.Muted, msg)) }

// Info prints a muted line to stdout.
func Info(msg string) { fmt.Fprintln(out, C(current.Muted, msg)) }

func Println(a ...any) { fmt.Fprintln(out, a...) }

func Printf(format string, a ...any) { fmt.Fprintf(out, format, a...) }
