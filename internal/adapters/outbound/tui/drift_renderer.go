package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/driftguard/driftguard/internal/domain"
)

var severityStyles = map[domain.Severity]lipgloss.Style{
	domain.SeverityCritical: failStyle,
	domain.SeverityMajor:    lipgloss.NewStyle().Foreground(danger),
	domain.SeverityMinor:    warnStyle,
	domain.SeverityInfo:     tipStyle,
}

// renderOrder fixes the console grouping, most severe first.
var renderOrder = []domain.Severity{
	domain.SeverityCritical,
	domain.SeverityMajor,
	domain.SeverityMinor,
	domain.SeverityInfo,
}

// RenderDriftReport renders a drift report grouped by severity.
func RenderDriftReport(report *domain.DriftReport) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("driftguard"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  drift level %d — %s", report.Level, report.Repo)))
	if report.RepoHead != "" {
		b.WriteString(faintStyle.Render("  @" + shortMarker(report.RepoHead)))
	}
	b.WriteString("\n\n")

	counts := report.CountsBySeverity()
	var parts []string
	for _, sev := range renderOrder {
		if counts[sev] > 0 {
			parts = append(parts, severityStyles[sev].Render(fmt.Sprintf("%d %s", counts[sev], sev)))
		}
	}
	if len(parts) == 0 {
		b.WriteString("  " + passStyle.Render("No drift detected.") + "\n")
	} else {
		b.WriteString("  " + titleStyle.Render("Findings") + "  " + strings.Join(parts, "  ") + "\n\n")
		for _, sev := range renderOrder {
			for _, finding := range report.Findings {
				if finding.Severity != sev {
					continue
				}
				renderFinding(&b, finding)
			}
		}
	}

	if len(report.Skipped) > 0 {
		b.WriteString("\n")
		for _, skip := range report.Skipped {
			b.WriteString("  " + skipStyle.Render("skipped: "+skip) + "\n")
		}
	}
	return b.String()
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	tag := severityStyles[f.Severity].Render(strings.ToUpper(string(f.Severity)))
	b.WriteString(fmt.Sprintf("  %s %s %s\n", faintStyle.Render(f.ID), tag, f.Message))
	if f.File != "" {
		b.WriteString("      " + dimStyle.Render(f.File) + "\n")
	}
	if f.Expected != "" || f.Observed != "" {
		b.WriteString("      " + dimStyle.Render(
			fmt.Sprintf("expected %s, observed %s", f.Expected, f.Observed)) + "\n")
	}
	for _, fix := range f.SuggestedFix {
		b.WriteString("      " + tipStyle.Render("→ "+fix) + "\n")
	}
}

func shortMarker(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
