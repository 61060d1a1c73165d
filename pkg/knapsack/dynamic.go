package knapsack

import "slices"

// decisions records, for one item, the budgets whose best profit was reached
// by adding that item during its pass.
type decisions struct {
	item int
	cost int64
	bits []uint64
}

func newDecisions(item int, cost, capacity int64) *decisions {
	return &decisions{
		item: item,
		cost: cost,
		bits: make([]uint64, capacity/64+1),
	}
}

func (d *decisions) set(budget int64) {
	d.bits[budget/64] |= 1 << uint(budget%64)
}

func (d *decisions) has(budget int64) bool {
	return d.bits[budget/64]&(1<<uint(budget%64)) != 0
}

// SolveDynamic returns an optimal subset of items whose total cost does not
// exceed budget.
//
// The budget and every cost are converted to cents. best[b] holds the highest
// profit reachable with a spend of at most b cents using the items processed
// so far. Each item is folded in by scanning b from capacity down to its cost,
// so best[b-cost] still excludes the item when it is read: an item is never
// counted twice.
//
// When several budgets reach the maximum profit, the lowest one wins. The
// chosen items are returned in catalog order.
func SolveDynamic(items []Item, budget float64) (Solution, error) {
	capacity, err := Capacity(budget)
	if err != nil {
		return Solution{}, err
	}
	if len(items) == 0 || capacity == 0 {
		return Empty(StrategyDynamic), nil
	}

	best := make([]float64, capacity+1)
	var table []*decisions

	for i, item := range items {
		cost := item.CostUnits()
		if cost <= 0 || cost > capacity {
			continue
		}
		profit := item.ProfitAbsolute
		row := newDecisions(i, cost, capacity)
		for b := capacity; b >= cost; b-- {
			if candidate := best[b-cost] + profit; candidate > best[b] {
				best[b] = candidate
				row.set(b)
			}
		}
		table = append(table, row)
	}

	winner := int64(0)
	for b := int64(1); b <= capacity; b++ {
		if best[b] > best[winner] {
			winner = b
		}
	}

	// Walk the passes backwards: the latest item that improved the current
	// budget is the last one added, and the budget before it is b-cost.
	var chosen []Item
	b := winner
	for k := len(table) - 1; k >= 0 && b > 0; k-- {
		row := table[k]
		if !row.has(b) {
			continue
		}
		chosen = append(chosen, items[row.item])
		b -= row.cost
	}
	slices.Reverse(chosen)

	return newSolution(StrategyDynamic, chosen), nil
}
