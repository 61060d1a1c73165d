package knapsack

import (
	"fmt"
	"math/rand"
)

// abcCatalog is the three-action scenario: budget 500 buys A and C.
func abcCatalog() []Item {
	return []Item{
		NewItem("A", 100, 30),
		NewItem("B", 300, 30),
		NewItem("C", 250, 48),
	}
}

// twentyActions is the twenty-action catalog the project started from.
func twentyActions() []Item {
	rows := []struct {
		cost    float64
		percent float64
	}{
		{20, 5}, {30, 10}, {50, 15}, {70, 20}, {60, 17},
		{80, 25}, {22, 7}, {26, 11}, {48, 13}, {34, 27},
		{42, 17}, {110, 9}, {38, 23}, {14, 1}, {18, 3},
		{8, 8}, {4, 12}, {10, 14}, {24, 21}, {114, 18},
	}
	items := make([]Item, len(rows))
	for i, row := range rows {
		items[i] = NewItem(fmt.Sprintf("Action-%d", i+1), row.cost, row.percent)
	}
	return items
}

// randomCatalog returns n items with costs between 0.01 and 200.00 and
// profits between 0% and 30%, both with two decimals.
func randomCatalog(rng *rand.Rand, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		cost := float64(rng.Intn(20000)+1) / 100
		percent := float64(rng.Intn(3001)) / 100
		items[i] = NewItem(fmt.Sprintf("R%d", i), cost, percent)
	}
	return items
}

func sumProfit(items []Item) float64 {
	total := 0.0
	for _, item := range items {
		total += item.ProfitAbsolute
	}
	return total
}

func solvers() []Strategy {
	out := make([]Strategy, 0, len(registry))
	out = append(out, registry...)
	return out
}
