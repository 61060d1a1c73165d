package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/format"
	"github.com/iwvelando/portfolio-optimizer/pkg/optimization"
	"github.com/iwvelando/portfolio-optimizer/pkg/validation"
)

// ComparisonFormat renders a strategy comparison in the named format.
func ComparisonFormat(w io.Writer, outputFormat string, comparison *optimization.Comparison) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	switch outputFormat {
	case constants.OutputFormatJSON:
		return JSONFormat(w, comparison)
	case constants.OutputFormatCSV:
		return comparisonCSV(w, comparison)
	case constants.OutputFormatMarkdown:
		return renderMarkdown(w, ComparisonMarkdown(comparison))
	default:
		return comparisonPretty(w, comparison)
	}
}

func comparisonRows(comparison *optimization.Comparison) [][]string {
	cur := comparison.Currency
	rows := make([][]string, 0, len(comparison.Entries))
	for _, entry := range comparison.Entries {
		r := entry.Report
		optimal := "no"
		if entry.MatchesOptimum {
			optimal = "yes"
		}
		rows = append(rows, []string{
			r.Strategy,
			strconv.Itoa(len(r.Items)),
			format.Currency(r.TotalCost, cur),
			format.Currency(r.TotalProfit, cur),
			format.Currency(entry.Gap, cur),
			optimal,
			r.Duration.String(),
		})
	}
	return rows
}

var comparisonHeaders = []string{"Strategy", "Items", "Cost", "Profit", "Gap", "Optimal", "Duration"}

func comparisonPretty(w io.Writer, comparison *optimization.Comparison) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Strategy comparison for %s ---\n", datasetName(comparison.Dataset))
	fmt.Fprintf(&sb, "Budget     %s\n", format.Currency(comparison.Budget, comparison.Currency))
	fmt.Fprintf(&sb, "Candidates %d\n", comparison.Candidates)
	fmt.Fprintf(&sb, "Optimum    %s\n\n", format.Currency(comparison.Optimum, comparison.Currency))

	t := newTable(comparisonHeaders...).alignRight(1, 2, 3, 4, 6)
	for _, row := range comparisonRows(comparison) {
		t.addRow(row...)
	}
	sb.WriteString(t.String())

	for _, note := range comparison.Notes {
		fmt.Fprintf(&sb, "\nNote: %s", note)
	}
	if len(comparison.Notes) > 0 {
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func comparisonCSV(w io.Writer, comparison *optimization.Comparison) error {
	writer := csv.NewWriter(w)
	records := [][]string{{"strategy", "exact", "items", "cost", "profit", "gap", "matches_optimum", "duration_ns"}}
	for _, entry := range comparison.Entries {
		r := entry.Report
		records = append(records, []string{
			r.Strategy,
			strconv.FormatBool(r.Exact),
			strconv.Itoa(len(r.Items)),
			decimalString(r.TotalCost),
			decimalString(r.TotalProfit),
			decimalString(entry.Gap),
			strconv.FormatBool(entry.MatchesOptimum),
			strconv.FormatInt(int64(r.Duration), 10),
		})
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv output: %w", err)
	}
	return nil
}

// ComparisonMarkdown returns the comparison as a markdown document.
func ComparisonMarkdown(comparison *optimization.Comparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Strategy comparison for %s\n\n", datasetName(comparison.Dataset))
	fmt.Fprintf(&sb, "Budget %s, %d candidates, optimum %s.\n\n",
		format.Currency(comparison.Budget, comparison.Currency),
		comparison.Candidates,
		format.Currency(comparison.Optimum, comparison.Currency))

	sb.WriteString("| " + strings.Join(comparisonHeaders, " | ") + " |\n")
	sb.WriteString("|---|---:|---:|---:|---:|---|---:|\n")
	for _, row := range comparisonRows(comparison) {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	if len(comparison.Notes) > 0 {
		sb.WriteString("\n")
		for _, note := range comparison.Notes {
			fmt.Fprintf(&sb, "- %s\n", note)
		}
	}
	return sb.String()
}
