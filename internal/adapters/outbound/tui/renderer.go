package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/driftguard/driftguard/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	tipStyle      = lipgloss.NewStyle().Foreground(info)
	skipStyle     = lipgloss.NewStyle().Foreground(faint)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderRunSummary renders a validator run for the console: one block per
// validator with its findings, then a verdict line.
func RenderRunSummary(summary *domain.RunSummary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("driftguard"))
	b.WriteString(dimStyle.Render("  validator run — " + summary.Target))
	b.WriteString("\n\n")

	for _, result := range summary.Results {
		renderResult(&b, result)
	}

	for _, warn := range summary.Warnings {
		b.WriteString("  " + warnStyle.Render("! "+warn) + "\n")
	}

	b.WriteString("\n  " + separatorLine + "\n")
	if summary.Passed() {
		b.WriteString("  " + passStyle.Render("PASS") + dimStyle.Render("  all validators passed") + "\n")
	} else {
		failed := strings.Join(summary.FailedValidators(), ", ")
		b.WriteString("  " + failStyle.Render("FAIL") + dimStyle.Render("  "+failed) + "\n")
	}
	return b.String()
}

func renderResult(b *strings.Builder, result *domain.ValidationResult) {
	switch {
	case result.Skipped:
		b.WriteString(fmt.Sprintf("  %s %s\n",
			skipStyle.Render("[SKIP]"), dimStyle.Render(result.Validator)))
		return
	case result.Passed():
		b.WriteString(fmt.Sprintf("  %s %s\n",
			passStyle.Render("[PASS]"), titleStyle.Render(result.Validator)))
	default:
		b.WriteString(fmt.Sprintf("  %s %s\n",
			failStyle.Render("[FAIL]"), titleStyle.Render(result.Validator)))
	}

	n := 0
	for _, finding := range result.Findings {
		label, style := findingTag(finding.Level)
		location := ""
		if finding.File != "" {
			location = dimStyle.Render(" (" + finding.File + ")")
		}
		if finding.Level == domain.LevelError {
			n++
			b.WriteString(fmt.Sprintf("      %s %d. %s%s\n", style.Render(label), n, finding.Message, location))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s%s\n", style.Render(label), finding.Message, location))
		}
	}
}

func findingTag(level domain.FindingLevel) (string, lipgloss.Style) {
	switch level {
	case domain.LevelError:
		return "[ERR]", failStyle
	case domain.LevelWarning:
		return "[WARN]", warnStyle
	default:
		return "[TIP]", tipStyle
	}
}
