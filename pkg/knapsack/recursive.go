package knapsack

import "slices"

// selection is an immutable, singly linked record of the items taken along
// one branch of the search. Extending it never affects sibling branches.
type selection struct {
	item Item
	prev *selection
}

func (s *selection) with(item Item) *selection {
	return &selection{item: item, prev: s}
}

func (s *selection) items() []Item {
	var out []Item
	for node := s; node != nil; node = node.prev {
		out = append(out, node.item)
	}
	slices.Reverse(out)
	return out
}

// SolveRecursive explores the full include/exclude tree depth first. A branch
// that would exceed the budget contributes a zero-profit empty result. When
// both branches tie, the branch that skips the item wins.
//
// The running time is exponential in len(items); see MaxExhaustiveItems.
func SolveRecursive(items []Item, budget float64) (Solution, error) {
	capacity, err := Capacity(budget)
	if err != nil {
		return Solution{}, err
	}
	if len(items) == 0 || capacity == 0 {
		return Empty(StrategyRecursive), nil
	}

	s := &search{items: items, costs: costUnits(items), capacity: capacity}
	_, chosen := s.explore(0, nil, 0, 0)
	return newSolution(StrategyRecursive, chosen.items()), nil
}

type search struct {
	items    []Item
	costs    []int64
	capacity int64
}

func (s *search) explore(index int, chosen *selection, cost int64, profit float64) (float64, *selection) {
	if index == len(s.items) {
		return profit, chosen
	}

	skipProfit, skipChosen := s.explore(index+1, chosen, cost, profit)

	takeProfit, takeChosen := 0.0, (*selection)(nil)
	if c := s.costs[index]; c > 0 && cost+c <= s.capacity {
		item := s.items[index]
		takeProfit, takeChosen = s.explore(index+1, chosen.with(item), cost+c, profit+item.ProfitAbsolute)
	}

	if takeProfit > skipProfit {
		return takeProfit, takeChosen
	}
	return skipProfit, skipChosen
}
