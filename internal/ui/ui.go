package ui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// Spinner wraps a terminal spinner shown around slow operations such as the
// AI call.
type Spinner struct {
	spinner *spinner.Spinner
}

func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
	)
	return &Spinner{spinner: s}
}

func (s *Spinner) Start() {
	s.spinner.Start()
}

func (s *Spinner) Stop() {
	s.spinner.Stop()
}

func (s *Spinner) UpdateMessage(message string) {
	s.spinner.Suffix = " " + message
}

func PrintSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", Success.Sprint("✅"), fmt.Sprintf(format, args...))
}

func PrintError(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", Error.Sprint("❌"), fmt.Sprintf(format, args...))
}

func PrintWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", Warning.Sprint("⚠️"), fmt.Sprintf(format, args...))
}

func PrintInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", Info.Sprint("ℹ️"), fmt.Sprintf(format, args...))
}

// PrintSuggestion renders the actionable hint attached to a domain error.
func PrintSuggestion(suggestion string) {
	if suggestion == "" {
		return
	}
	fmt.Printf("%s %s\n", Dim.Sprint("💡"), Dim.Sprint(suggestion))
}
