// Package catalog loads candidate actions from CSV files and lists the
// datasets available to the optimizer.
package catalog

import (
	"strings"
)

// Schema maps catalog fields to the CSV header names that may carry them.
// Matching is case-insensitive and ignores surrounding whitespace.
type Schema struct {
	ID     []string `yaml:"id,omitempty" mapstructure:"id"`
	Cost   []string `yaml:"cost,omitempty" mapstructure:"cost"`
	Profit []string `yaml:"profit,omitempty" mapstructure:"profit"`
}

// DefaultSchema accepts the original French headers as well as the
// name,price,profit layout.
func DefaultSchema() Schema {
	return Schema{
		ID:     []string{"Actions #", "action", "name", "id"},
		Cost:   []string{"Coût par action (en euros)", "Cout par action (en euros)", "price", "cost", "unit_cost"},
		Profit: []string{"Bénéfice (après 2 ans)", "Benefice (apres 2 ans)", "profit", "percent", "profit_percent"},
	}
}

// WithDefaults fills any empty alias list from DefaultSchema.
func (s Schema) WithDefaults() Schema {
	defaults := DefaultSchema()
	if len(s.ID) == 0 {
		s.ID = defaults.ID
	}
	if len(s.Cost) == 0 {
		s.Cost = defaults.Cost
	}
	if len(s.Profit) == 0 {
		s.Profit = defaults.Profit
	}
	return s
}

type columns struct {
	id, cost, profit int
}

func (c columns) width() int {
	return max(c.id, c.cost, c.profit) + 1
}

func (s Schema) resolve(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	find := func(field string, aliases []string) (int, error) {
		for _, alias := range aliases {
			if i, ok := index[normalizeHeader(alias)]; ok {
				return i, nil
			}
		}
		return 0, &MissingColumnError{Field: field, Aliases: aliases}
	}

	var cols columns
	var err error
	if cols.id, err = find("id", s.ID); err != nil {
		return cols, err
	}
	if cols.cost, err = find("cost", s.Cost); err != nil {
		return cols, err
	}
	if cols.profit, err = find("profit", s.Profit); err != nil {
		return cols, err
	}
	return cols, nil
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}
