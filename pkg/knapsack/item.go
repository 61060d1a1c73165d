package knapsack

import (
	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/mathutil"
)

// Item is a candidate action. Items are read-only once loaded.
type Item struct {
	ID             string  `json:"id"`
	UnitCost       float64 `json:"unitCost"`
	ProfitPercent  float64 `json:"profitPercent"`
	ProfitAbsolute float64 `json:"profitAbsolute"`
}

// NewItem builds an Item and derives its absolute profit from the percentage.
func NewItem(id string, unitCost, profitPercent float64) Item {
	return Item{
		ID:             id,
		UnitCost:       unitCost,
		ProfitPercent:  profitPercent,
		ProfitAbsolute: unitCost * profitPercent / constants.PercentageMultiplier,
	}
}

// CostUnits returns the unit cost in minor currency units.
func (i Item) CostUnits() int64 {
	return mathutil.ToMinorUnits(i.UnitCost)
}

// Ratio returns the profit earned per currency unit spent.
func (i Item) Ratio() float64 {
	if i.UnitCost <= 0 {
		return 0
	}
	return i.ProfitAbsolute / i.UnitCost
}

// costUnits converts every item cost once. Non-positive entries mark items
// that no strategy may select.
func costUnits(items []Item) []int64 {
	costs := make([]int64, len(items))
	for i, item := range items {
		costs[i] = item.CostUnits()
	}
	return costs
}
