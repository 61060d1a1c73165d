package knapsack

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/portfolio-optimizer/pkg/mathutil"
)

var (
	// ErrNegativeBudget is returned when the budget is negative or not a finite number.
	ErrNegativeBudget = errors.New("knapsack: budget must be a non-negative finite amount")

	// ErrBudgetTooLarge is returned when the budget exceeds MaxBudget.
	ErrBudgetTooLarge = errors.New("knapsack: budget exceeds the supported maximum")

	// ErrUnknownStrategy is returned by Lookup for unsupported strategy names.
	ErrUnknownStrategy = errors.New("knapsack: unknown strategy")
)

// MaxCapacity bounds the budget in minor units. SolveDynamic allocates one
// float64 per cent plus one bit per (item, cent), so 10,000,000 cents costs
// 80 MB for the profit row and 1.25 MB per item.
const MaxCapacity int64 = 10_000_000

// MaxBudget is MaxCapacity expressed in currency units.
const MaxBudget = float64(MaxCapacity) / 100

// Capacity validates budget and converts it to minor currency units.
func Capacity(budget float64) (int64, error) {
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNegativeBudget, budget)
	}
	if budget > MaxBudget {
		return 0, fmt.Errorf("%w: got %.2f, limit %.2f", ErrBudgetTooLarge, budget, MaxBudget)
	}
	return mathutil.ToMinorUnits(budget), nil
}
