// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"strings"

	"github.com/iwvelando/portfolio-optimizer/internal/catalog"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/iwvelando/portfolio-optimizer/pkg/optimization"
)

// ActionsCSV is the twenty-action dataset with its original French headers.
const ActionsCSV = `Actions #,Coût par action (en euros),Bénéfice (après 2 ans)
Action-1,20,5%
Action-2,30,10%
Action-3,50,15%
Action-4,70,20%
Action-5,60,17%
Action-6,80,25%
Action-7,22,7%
Action-8,26,11%
Action-9,48,13%
Action-10,34,27%
Action-11,42,17%
Action-12,110,9%
Action-13,38,23%
Action-14,14,1%
Action-15,18,3%
Action-16,8,8%
Action-17,4,12%
Action-18,10,14%
Action-19,24,21%
Action-20,114,18%
`

// ABCCSV holds three actions; a budget of 500 buys A and C for a profit of 150.
const ABCCSV = `name,price,profit
A,100,30
B,300,30
C,250,48
`

// ABCCatalog returns the parsed form of ABCCSV.
func ABCCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Name: "abc.csv",
		Items: []knapsack.Item{
			knapsack.NewItem("A", 100, 30),
			knapsack.NewItem("B", 300, 30),
			knapsack.NewItem("C", 250, 48),
		},
		Skipped: []catalog.Skipped{},
	}
}

// ParseCatalog loads data with the default schema and panics on error.
func ParseCatalog(name, data string) *catalog.Catalog {
	cat, err := catalog.Load(strings.NewReader(data), catalog.DefaultSchema())
	if err != nil {
		panic(fmt.Sprintf("testutil: invalid catalog %s: %v", name, err))
	}
	cat.Name = name
	return cat
}

// SyntheticCatalog returns n items with deterministic costs and profits.
func SyntheticCatalog(n int) *catalog.Catalog {
	items := make([]knapsack.Item, n)
	for i := range items {
		items[i] = knapsack.NewItem(fmt.Sprintf("Item-%d", i+1), float64(10+(i*7)%90), float64(1+(i*11)%29))
	}
	return &catalog.Catalog{Name: fmt.Sprintf("synthetic-%d.csv", n), Items: items}
}

// FindEntry finds a strategy entry by name in the comparison.
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(comparison *optimization.Comparison, strategy string) *optimization.ComparisonEntry {
	if comparison == nil {
		return nil
	}
	for i := range comparison.Entries {
		if comparison.Entries[i].Report.Strategy == strategy {
			return &comparison.Entries[i]
		}
	}
	return nil
}
