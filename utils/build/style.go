package build

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Styles for the build summary
type Styles struct {
	Phase   lipgloss.Style
	Job     lipgloss.Style
	Count   lipgloss.Style
	Warning lipgloss.Style
	OK      lipgloss.Style
	Failed  lipgloss.Style
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// NewStyles returns coloured styles, or plain ones when color is false
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Phase: plain, Job: plain, Count: plain, Warning: plain, OK: plain, Failed: plain}
	}
	return Styles{
		Phase:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Job:     lipgloss.NewStyle().PaddingLeft(2),
		Count:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		OK:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Failed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// WriteSummary prints per-phase, per-job counts followed by a status line
func WriteSummary(w io.Writer, r *Report, buildErr error, s Styles) {
	title := cases.Title(language.English)

	current := ""
	for _, st := range r.Stats() {
		if st.Phase != current {
			current = st.Phase
			fmt.Fprintln(w, s.Phase.Render(title.String(st.Phase)))
		}
		line := fmt.Sprintf("%-24s %s", s.Job.Render(st.Job),
			s.Count.Render(fmt.Sprintf("%d file(s), %d unchanged", st.Files, st.Unchanged)))
		if st.Warnings > 0 {
			line += " " + s.Warning.Render(fmt.Sprintf("%d warning(s)", st.Warnings))
		}
		fmt.Fprintln(w, line)
	}

	if buildErr != nil {
		fmt.Fprintln(w, s.Failed.Render("Build failed"))
		return
	}
	status := "Build complete"
	if n := r.WarningCount(); n > 0 {
		status += " " + s.Warning.Render(fmt.Sprintf("(%d warning(s))", n))
	}
	fmt.Fprintln(w, s.OK.Render(status))
}
