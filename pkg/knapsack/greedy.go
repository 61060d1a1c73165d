package knapsack

import "sort"

// SolveGreedy ranks items by profit per unit of cost, best first, and buys
// each one that still fits in the remaining budget. Items with equal ratios
// keep their catalog order. The result lists items in the order they were
// bought.
//
// This is a heuristic: it is fast but can miss the optimum, for instance when
// a high-ratio item blocks a pair of slightly lower-ratio items that together
// earn more.
func SolveGreedy(items []Item, budget float64) (Solution, error) {
	capacity, err := Capacity(budget)
	if err != nil {
		return Solution{}, err
	}
	if len(items) == 0 || capacity == 0 {
		return Empty(StrategyGreedy), nil
	}

	costs := costUnits(items)
	order := make([]int, 0, len(items))
	for i, cost := range costs {
		if cost > 0 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Ratio() > items[order[b]].Ratio()
	})

	remaining := capacity
	var chosen []Item
	for _, i := range order {
		if costs[i] <= remaining {
			chosen = append(chosen, items[i])
			remaining -= costs[i]
		}
	}

	return newSolution(StrategyGreedy, chosen), nil
}
