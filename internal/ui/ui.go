package ui

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects all messages, e.g. to io.Discard while a TUI owns the
// terminal. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func printf(c *color.Color, format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	c.Fprintf(out, format+"\n", a...)
}

func Header(format string, a ...interface{}) {
	printf(HeaderColor, format, a...)
}

func Info(format string, a ...interface{}) {
	printf(InfoColor, format, a...)
}

func Success(format string, a ...interface{}) {
	printf(SuccessColor, format, a...)
}

func Warning(format string, a ...interface{}) {
	printf(WarningColor, format, a...)
}

func Error(format string, a ...interface{}) {
	printf(ErrorColor, format, a...)
}

func Path(format string, a ...interface{}) {
	printf(PathColor, "  "+format, a...)
}

// --- Summaries ---

// SideSummary is one line of PrintComparisonSummary.
type SideSummary struct {
	Side  string
	Title string
	Kind  string
}

// PrintComparisonSummary lists the three sides of a comparison and marks the
// current one.
func PrintComparisonSummary(title string, sides []SideSummary, current string) {
	Header("--- %s ---", title)
	for _, s := range sides {
		marker := " "
		if s.Side == current {
			marker = "*"
		}
		Path("%s %-5s %s (%s)", marker, s.Side, s.Title, s.Kind)
	}
	if current != "" {
		Info("Current side: %s", current)
	}
}
