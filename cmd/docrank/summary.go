package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgallion1/docrank/internal/pipeline"
)

var (
	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for documents that produced sections
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for failed documents
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// summaryTopN bounds the ranked sections listed in the console summary.
const summaryTopN = 5

// renderSummary formats a run summary for the terminal.
func renderSummary(sum *pipeline.Summary, stages map[string]pipeline.StatsSnapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Documents"))
	b.WriteByte('\n')
	for _, d := range sum.Documents {
		if d.Err != nil {
			fmt.Fprintf(&b, "%s %s %s\n", errorStyle.Render("✗"), d.Filename, dimStyle.Render(d.Err.Error()))
			continue
		}
		lang := d.Language
		if lang == "" {
			lang = "unknown"
		}
		fmt.Fprintf(&b, "%s %s %s\n", successStyle.Render("✓"), d.Filename,
			dimStyle.Render(fmt.Sprintf("%d pages, %d sections, %s", d.Pages, d.Sections, lang)))
	}

	b.WriteByte('\n')
	b.WriteString(titleStyle.Render("Top sections"))
	b.WriteByte('\n')
	if len(sum.Top) == 0 {
		b.WriteString(dimStyle.Render("none"))
		b.WriteByte('\n')
	}
	for i, s := range sum.Top {
		if i == summaryTopN {
			break
		}
		fmt.Fprintf(&b, "%2d. %s %s\n", s.ImportanceRank, s.Title,
			dimStyle.Render(fmt.Sprintf("(%s p.%d, %.3f)", s.Document, s.Page, s.RelevanceScore)))
	}

	if len(stages) > 0 {
		b.WriteByte('\n')
		b.WriteString(titleStyle.Render("Timings"))
		b.WriteByte('\n')
		names := make([]string, 0, len(stages))
		for name := range stages {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			st := stages[name]
			fmt.Fprintf(&b, "%-8s %s\n", name,
				dimStyle.Render(fmt.Sprintf("n=%d avg=%.1fms max=%dms", st.Count, st.AvgMs, st.MaxMs)))
		}
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("run %s, %d sections in %s", sum.RunID, sum.Sections, sum.Elapsed.Round(1e6))))
	return boxStyle.Render(b.String())
}
