package knapsack

import (
	"fmt"
	"strings"
)

// Strategy names.
const (
	StrategyDynamic     = "dynamic"
	StrategyRecursive   = "recursive"
	StrategyEnumeration = "enumeration"
	StrategyGreedy      = "greedy"
)

// MaxExhaustiveItems is the largest catalog size for which the exponential
// strategies stay practical: 2^25 subsets take seconds, and every extra item
// doubles that. BenchmarkSolveEnumeration and BenchmarkSolveRecursive measure
// it. It is advisory: the solvers themselves do not enforce it.
const MaxExhaustiveItems = 25

// Solver is the contract shared by every strategy.
type Solver interface {
	Name() string
	Solve(items []Item, budget float64) (Solution, error)
}

// Strategy describes a registered solver.
type Strategy struct {
	name        string
	exact       bool
	exponential bool
	solve       func([]Item, float64) (Solution, error)
}

// Name returns the canonical strategy name.
func (s Strategy) Name() string { return s.name }

// Exact reports whether the strategy always returns an optimal subset.
func (s Strategy) Exact() bool { return s.exact }

// Exponential reports whether the running time grows as 2^n.
func (s Strategy) Exponential() bool { return s.exponential }

// Solve runs the strategy.
func (s Strategy) Solve(items []Item, budget float64) (Solution, error) {
	return s.solve(items, budget)
}

var registry = []Strategy{
	{name: StrategyDynamic, exact: true, solve: SolveDynamic},
	{name: StrategyRecursive, exact: true, exponential: true, solve: SolveRecursive},
	{name: StrategyEnumeration, exact: true, exponential: true, solve: SolveEnumeration},
	{name: StrategyGreedy, solve: SolveGreedy},
}

// CanonicalStrategy maps user-facing aliases to a strategy name. Unknown
// values are returned lower-cased.
func CanonicalStrategy(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "", "dp", "dynamic", "optimized", "optimised", "exact":
		return StrategyDynamic
	case "recursive", "bruteforce", "brute-force", "brute_force", "backtracking":
		return StrategyRecursive
	case "enumeration", "enumerate", "combinations", "itertools":
		return StrategyEnumeration
	case "greedy", "ratio":
		return StrategyGreedy
	default:
		return trimmed
	}
}

// Lookup returns the strategy registered under name or one of its aliases.
func Lookup(name string) (Strategy, error) {
	canonical := CanonicalStrategy(name)
	for _, s := range registry {
		if s.name == canonical {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w %q, expected one of %s",
		ErrUnknownStrategy, name, strings.Join(Strategies(), ", "))
}

// Strategies lists the canonical strategy names, exact solver first.
func Strategies() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.name
	}
	return names
}
