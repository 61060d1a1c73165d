// Package output provides utilities for formatting and displaying optimization reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/format"
	"github.com/iwvelando/portfolio-optimizer/pkg/optimization"
	"github.com/iwvelando/portfolio-optimizer/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders report in the named format.
func Write(w io.Writer, outputFormat string, report *optimization.Report) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CSVFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	case constants.OutputFormatMarkdown:
		return MarkdownFormat(w, report)
	default:
		return PrettyFormat(w, report)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report *optimization.Report) error {
	p := message.NewPrinter(language.English)
	cur := report.Currency

	kind := "heuristic"
	if report.Exact {
		kind = "exact"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Portfolio for %s (%s, %s) ---\n", datasetName(report.Dataset), report.Strategy, kind)
	fmt.Fprintf(&sb, "Budget     %s\n", format.Currency(report.Budget, cur))
	_, _ = p.Fprintf(&sb, "Candidates %d (%d skipped)\n", report.Candidates, len(report.Skipped))
	_, _ = p.Fprintf(&sb, "Selected   %d\n", len(report.Items))
	fmt.Fprintf(&sb, "Cost       %s\n", format.Currency(report.TotalCost, cur))
	fmt.Fprintf(&sb, "Profit     %s (%s)\n", format.Currency(report.TotalProfit, cur), format.Percent(report.ReturnPercent()))
	fmt.Fprintf(&sb, "Remaining  %s\n", format.Currency(report.Remaining, cur))
	fmt.Fprintf(&sb, "Duration   %s\n", report.Duration)

	if len(report.Items) > 0 {
		t := newTable("Action", "Cost", "Profit %", "Profit").alignRight(1, 2, 3)
		for _, item := range report.Items {
			t.addRow(item.ID,
				format.Currency(item.UnitCost, cur),
				format.Percent(item.ProfitPercent),
				format.Currency(item.ProfitAbsolute, cur))
		}
		sb.WriteString("\n")
		sb.WriteString(t.String())
	} else {
		sb.WriteString("\nNo action fits within the budget.\n")
	}

	if len(report.Skipped) > 0 {
		sb.WriteString("\nSkipped records:\n")
		for _, s := range report.Skipped {
			_, _ = p.Fprintf(&sb, "  line %d: %s (%s, cost %s)\n", s.Line, s.ID, s.Reason, format.NumericCurrency(s.Cost))
		}
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(&sb, "\nWarning: %s\n", warning)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// CSVFormat outputs the selected actions in comma-separated value format,
// followed by a total row.
func CSVFormat(w io.Writer, report *optimization.Report) error {
	writer := csv.NewWriter(w)
	records := [][]string{{"id", "cost", "profit_percent", "profit"}}
	for _, item := range report.Items {
		records = append(records, []string{
			item.ID,
			decimalString(item.UnitCost),
			decimalString(item.ProfitPercent),
			decimalString(item.ProfitAbsolute),
		})
	}
	records = append(records, []string{"total", decimalString(report.TotalCost), "", decimalString(report.TotalProfit)})

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv output: %w", err)
	}
	return nil
}

// JSONFormat outputs v as indented JSON.
func JSONFormat(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write json output: %w", err)
	}
	return nil
}

func decimalString(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func datasetName(name string) string {
	if name == "" {
		return "catalog"
	}
	return name
}
