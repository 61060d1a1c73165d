package knapsack

import (
	"github.com/iwvelando/portfolio-optimizer/pkg/mathutil"
)

// Solution is the outcome of one solver invocation.
//
// TotalProfit is the sum of the chosen items' absolute profit, summed in the
// order the items appear in Items. TotalCost is summed in minor units.
type Solution struct {
	Strategy    string  `json:"strategy"`
	TotalProfit float64 `json:"totalProfit"`
	TotalCost   float64 `json:"totalCost"`
	Items       []Item  `json:"items"`
}

// Empty returns the zero-profit solution with no items.
func Empty(strategy string) Solution {
	return Solution{
		Strategy: strategy,
		Items:    []Item{},
	}
}

func newSolution(strategy string, items []Item) Solution {
	if len(items) == 0 {
		return Empty(strategy)
	}
	var cost int64
	var profit float64
	for _, item := range items {
		cost += item.CostUnits()
		profit += item.ProfitAbsolute
	}
	return Solution{
		Strategy:    strategy,
		TotalProfit: profit,
		TotalCost:   mathutil.FromMinorUnits(cost),
		Items:       items,
	}
}

// IDs returns the identifiers of the chosen items in order.
func (s Solution) IDs() []string {
	ids := make([]string, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.ID
	}
	return ids
}

// CostUnits returns the total cost of the chosen items in minor units.
func (s Solution) CostUnits() int64 {
	var cost int64
	for _, item := range s.Items {
		cost += item.CostUnits()
	}
	return cost
}

// Feasible reports whether the chosen items fit within budget once both are
// expressed in minor units.
func (s Solution) Feasible(budget float64) bool {
	capacity, err := Capacity(budget)
	if err != nil {
		return false
	}
	return s.CostUnits() <= capacity
}

// Remaining returns the unspent part of budget.
func (s Solution) Remaining(budget float64) float64 {
	return mathutil.FromMinorUnits(mathutil.ToMinorUnits(budget) - s.CostUnits())
}
