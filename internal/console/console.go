// Package console prints the decorated status lines shown to the user.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.FgCyan, color.Bold)
)

// Success prints "✅ msg" preceded by a blank line.
func Success(w io.Writer, msg string) {
	okColor.Fprintf(w, "\n✅ %s\n", msg)
}

// Failure prints "❌ msg" preceded by a blank line.
func Failure(w io.Writer, msg string) {
	failColor.Fprintf(w, "\n❌ %s\n", msg)
}

// Warn prints a non-fatal notice.
func Warn(w io.Writer, msg string) {
	warnColor.Fprintf(w, "⚠ %s\n", msg)
}

// Section prints a section heading such as "📌 Missing Values:".
func Section(w io.Writer, icon, title string) {
	headColor.Fprintf(w, "\n%s %s\n", icon, title)
}

// Infof prints a plain status line.
func Infof(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
