// Package optimization provides shared data structures for optimization results.
package optimization

import (
	"encoding/json"
	"time"

	"github.com/iwvelando/portfolio-optimizer/internal/catalog"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/iwvelando/portfolio-optimizer/pkg/mathutil"
)

// Elapsed is a duration rendered as a Go duration string in JSON ("1.5ms").
type Elapsed time.Duration

// MarshalJSON implements json.Marshaler.
func (e Elapsed) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(e).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Elapsed) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*e = Elapsed(d)
	return nil
}

// String returns the duration in Go notation.
func (e Elapsed) String() string {
	return time.Duration(e).String()
}

// Report captures the result of one strategy run against one catalog.
type Report struct {
	RequestID   string            `json:"requestId,omitempty"`
	Dataset     string            `json:"dataset"`
	Currency    string            `json:"currency"`
	Budget      float64           `json:"budget"`
	Strategy    string            `json:"strategy"`
	Exact       bool              `json:"exact"`
	Candidates  int               `json:"candidates"`
	TotalProfit float64           `json:"totalProfit"`
	TotalCost   float64           `json:"totalCost"`
	Remaining   float64           `json:"remaining"`
	Items       []knapsack.Item   `json:"items"`
	Skipped     []catalog.Skipped `json:"skipped"`
	Duration    Elapsed           `json:"duration"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// ReturnPercent is the profit expressed as a percentage of the money spent.
func (r *Report) ReturnPercent() float64 {
	return mathutil.CalculatePercentage(r.TotalProfit, r.TotalCost)
}

// IDs returns the identifiers of the selected items in order.
func (r *Report) IDs() []string {
	ids := make([]string, len(r.Items))
	for i, item := range r.Items {
		ids[i] = item.ID
	}
	return ids
}

// ComparisonEntry is one strategy's outcome within a Comparison.
type ComparisonEntry struct {
	Report         *Report `json:"report"`
	MatchesOptimum bool    `json:"matchesOptimum"`
	Gap            float64 `json:"gap"`
}

// Comparison runs several strategies on the same catalog and budget.
type Comparison struct {
	RequestID  string            `json:"requestId,omitempty"`
	Dataset    string            `json:"dataset"`
	Currency   string            `json:"currency"`
	Budget     float64           `json:"budget"`
	Candidates int               `json:"candidates"`
	Optimum    float64           `json:"optimum"`
	Entries    []ComparisonEntry `json:"entries"`
	Omitted    []string          `json:"omitted,omitempty"`
	Notes      []string          `json:"notes,omitempty"`
}
