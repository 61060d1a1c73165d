package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Catalog is the parsed content of one dataset.
type Catalog struct {
	Name    string          `json:"name"`
	Items   []knapsack.Item `json:"items"`
	Skipped []Skipped       `json:"skipped,omitempty"`
}

// Skipped describes a record that was read but left out of the catalog.
type Skipped struct {
	Line   int     `json:"line"`
	ID     string  `json:"id"`
	Cost   float64 `json:"cost"`
	Reason string  `json:"reason"`
}

// Load reads a CSV catalog. The first record is the header; columns are
// located through schema. Every returned item has a strictly positive cost:
// records priced at zero or less are reported in Skipped instead.
func Load(r io.Reader, schema Schema) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read header: %w", err)
	}

	cols, err := schema.WithDefaults().resolve(header)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{Items: []knapsack.Item{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: failed to read record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) < cols.width() {
			return nil, &RecordError{Line: line, Column: "record", Value: strings.Join(record, ","),
				Err: fmt.Errorf("expected at least %d fields, got %d", cols.width(), len(record))}
		}

		id := strings.TrimSpace(record[cols.id])
		cost, err := parseAmount(record[cols.cost])
		if err != nil {
			return nil, &RecordError{Line: line, Column: header[cols.cost], Value: record[cols.cost], Err: err}
		}
		percent, err := parseAmount(record[cols.profit])
		if err != nil {
			return nil, &RecordError{Line: line, Column: header[cols.profit], Value: record[cols.profit], Err: err}
		}

		if !cost.IsPositive() {
			catalog.Skipped = append(catalog.Skipped, Skipped{
				Line:   line,
				ID:     id,
				Cost:   cost.InexactFloat64(),
				Reason: "non-positive cost",
			})
			continue
		}

		catalog.Items = append(catalog.Items, knapsack.Item{
			ID:             id,
			UnitCost:       cost.InexactFloat64(),
			ProfitPercent:  percent.InexactFloat64(),
			ProfitAbsolute: cost.Mul(percent).Div(hundred).InexactFloat64(),
		})
	}

	return catalog, nil
}

// parseAmount accepts plain decimals, a trailing percent sign, a currency
// symbol and a decimal comma ("12,5%").
func parseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimSuffix(value, "%")
	value = strings.TrimSuffix(value, "€")
	value = strings.TrimPrefix(value, "€")
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	if !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}
	return decimal.NewFromString(value)
}
