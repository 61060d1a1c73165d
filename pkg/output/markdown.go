package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/iwvelando/portfolio-optimizer/pkg/format"
	"github.com/iwvelando/portfolio-optimizer/pkg/optimization"
)

const markdownWrap = 100

// Markdown returns report as a GitHub-flavored markdown document.
func Markdown(report *optimization.Report) string {
	cur := report.Currency
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Portfolio for %s\n\n", datasetName(report.Dataset))
	fmt.Fprintf(&sb, "- **Strategy:** %s", report.Strategy)
	if !report.Exact {
		sb.WriteString(" (heuristic)")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- **Budget:** %s\n", format.Currency(report.Budget, cur))
	fmt.Fprintf(&sb, "- **Cost:** %s\n", format.Currency(report.TotalCost, cur))
	fmt.Fprintf(&sb, "- **Profit:** %s (%s)\n", format.Currency(report.TotalProfit, cur), format.Percent(report.ReturnPercent()))
	fmt.Fprintf(&sb, "- **Remaining:** %s\n\n", format.Currency(report.Remaining, cur))

	if len(report.Items) == 0 {
		sb.WriteString("_No action fits within the budget._\n")
	} else {
		sb.WriteString("| Action | Cost | Profit % | Profit |\n")
		sb.WriteString("|---|---:|---:|---:|\n")
		for _, item := range report.Items {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", escapeCell(item.ID),
				format.Currency(item.UnitCost, cur),
				format.Percent(item.ProfitPercent),
				format.Currency(item.ProfitAbsolute, cur))
		}
	}

	if len(report.Skipped) > 0 {
		sb.WriteString("\n## Skipped records\n\n")
		for _, s := range report.Skipped {
			fmt.Fprintf(&sb, "- line %d: %s (%s)\n", s.Line, escapeCell(s.ID), s.Reason)
		}
	}
	if len(report.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(&sb, "- %s\n", warning)
		}
	}
	return sb.String()
}

// MarkdownFormat renders the markdown report for a terminal.
func MarkdownFormat(w io.Writer, report *optimization.Report) error {
	return renderMarkdown(w, Markdown(report))
}

func renderMarkdown(w io.Writer, md string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
