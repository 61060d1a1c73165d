package knapsack

// SolveEnumeration checks every combination of every size, from the empty
// set up to all items, and keeps the first feasible combination with strictly
// greater profit than the best seen so far. Combinations of a given size are
// visited in lexicographic index order.
//
// The running time is exponential in len(items); see MaxExhaustiveItems.
func SolveEnumeration(items []Item, budget float64) (Solution, error) {
	capacity, err := Capacity(budget)
	if err != nil {
		return Solution{}, err
	}
	if len(items) == 0 || capacity == 0 {
		return Empty(StrategyEnumeration), nil
	}

	costs := costUnits(items)
	bestProfit := 0.0
	var best []int

	for size := 0; size <= len(items); size++ {
		combinations(len(items), size, func(combo []int) {
			var cost int64
			var profit float64
			for _, i := range combo {
				if costs[i] <= 0 {
					return
				}
				cost += costs[i]
				profit += items[i].ProfitAbsolute
			}
			if cost <= capacity && profit > bestProfit {
				bestProfit = profit
				best = append(best[:0], combo...)
			}
		})
	}

	chosen := make([]Item, len(best))
	for k, i := range best {
		chosen[k] = items[i]
	}
	return newSolution(StrategyEnumeration, chosen), nil
}

// combinations calls fn with every k-sized subset of [0, n) in lexicographic
// order. fn must not retain combo.
func combinations(n, k int, fn func(combo []int)) {
	if k < 0 || k > n {
		return
	}
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}
	for {
		fn(combo)
		i := k - 1
		for i >= 0 && combo[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		combo[i]++
		for j := i + 1; j < k; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
}
