// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
)

// OutputFormats lists the supported report formats.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatMarkdown,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return fmt.Errorf("expected output format of %s, got %s",
			strings.Join(OutputFormats, ", "), format)
	}
	return nil
}

// ValidateStrategy resolves name, aliases included, and returns the
// canonical strategy name.
func ValidateStrategy(name string) (string, error) {
	strategy, err := knapsack.Lookup(name)
	if err != nil {
		return "", err
	}
	return strategy.Name(), nil
}

// ValidateStrategies resolves a comma separated list of strategies. An empty
// list selects every registered strategy. Duplicates are dropped.
func ValidateStrategies(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return knapsack.Strategies(), nil
	}

	var names []string
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		name, err := ValidateStrategy(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return knapsack.Strategies(), nil
	}
	return names, nil
}

// ValidateBudget checks that budget is a finite, non-negative amount no
// larger than knapsack.MaxBudget.
func ValidateBudget(budget float64) error {
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return fmt.Errorf("budget must be a finite amount, got %v", budget)
	}
	if budget < 0 {
		return fmt.Errorf("budget must not be negative, got %.2f", budget)
	}
	if budget > knapsack.MaxBudget {
		return fmt.Errorf("%w: got %.2f, limit %.2f", knapsack.ErrBudgetTooLarge, budget, knapsack.MaxBudget)
	}
	return nil
}
