package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _____           _             ", "#818cf8"},
		{"|_   _|   _ _ __(_)_ __   __ _ ", "#a78bfa"},
		{"  | || | | | '__| | '_ \\ / _` |", "#c084fc"},
		{"  | || |_| | |  | | | | | (_| |", "#e879f9"},
		{"  |_| \\__,_|_|  |_|_| |_|\\__, |", "#f472b6"},
		{"                         |___/ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  Caesar cipher on a Turing machine").Faint())
	fmt.Fprintln(w)
}

// Styler colours terminal output according to the writer's capabilities.
type Styler struct {
	out *termenv.Output
}

// NewStyler creates a Styler for w. Plain writers (files, pipes) get no escape codes.
func NewStyler(w io.Writer) *Styler {
	return &Styler{out: termenv.NewOutput(w)}
}

// Outcome renders an outcome in green, red or yellow.
func (s *Styler) Outcome(o domain.Outcome) string {
	color := "#facc15"
	switch o {
	case domain.OutcomeAccepted:
		color = "#4ade80"
	case domain.OutcomeRejected:
		color = "#f87171"
	}
	return s.out.String(string(o)).Foreground(s.out.Color(color)).Bold().String()
}

// Success renders a check-marked line.
func (s *Styler) Success(msg string) string {
	return s.out.String("✓ " + msg).Foreground(s.out.Color("#4ade80")).String()
}

// Error renders a cross-marked line.
func (s *Styler) Error(msg string) string {
	return s.out.String("✗ " + msg).Foreground(s.out.Color("#f87171")).String()
}

// Header renders a section title.
func (s *Styler) Header(msg string) string {
	return s.out.String(msg).Bold().String()
}
