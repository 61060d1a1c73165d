// Package knapsack selects, from a catalog of actions, the subset that
// maximizes total profit without exceeding a spending budget. Each action can
// be bought at most once (0/1 knapsack).
//
// Four strategies share the same contract, Solve(items, budget):
//
//   - SolveDynamic: exact dynamic programming over integer cents.
//     O(n·capacity) time, one profit row of capacity+1 entries plus one
//     decision bit per (item, capacity) pair.
//   - SolveRecursive: exhaustive include/exclude search. O(2^n).
//   - SolveEnumeration: every combination of every size. O(n·2^n).
//   - SolveGreedy: profit/cost ratio heuristic. O(n log n), not optimal.
//
// Costs are always compared in minor currency units (cents) so that budget
// boundaries never depend on floating point equality. Profits stay float64
// since they are only ever compared for maximization.
//
// Budgets above MaxBudget are rejected with ErrBudgetTooLarge before any
// allocation, which keeps the dynamic programming tables bounded.
//
// The exhaustive strategies are intended for cross-checking small catalogs;
// MaxExhaustiveItems documents where they stop being practical. The package
// performs no I/O.
package knapsack
