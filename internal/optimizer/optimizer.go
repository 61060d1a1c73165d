// Package optimizer runs knapsack strategies against loaded catalogs and
// turns their solutions into reports.
package optimizer

import (
	"fmt"
	"time"

	"github.com/iwvelando/portfolio-optimizer/internal/catalog"
	"github.com/iwvelando/portfolio-optimizer/internal/config"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/iwvelando/portfolio-optimizer/pkg/mathutil"
	"github.com/iwvelando/portfolio-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

// profitTolerance absorbs summation-order differences between exact strategies.
const profitTolerance = 1e-6

type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
	now    func() time.Time
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := knapsack.Capacity(conf.Budget); err != nil {
		return nil, err
	}

	return &Runner{logger: logger, conf: conf, now: time.Now}, nil
}

// WithBudget returns a runner sharing r's settings that invests budget
// instead of the configured amount.
func (r *Runner) WithBudget(budget float64) (*Runner, error) {
	conf := *r.conf
	conf.Budget = budget
	runner, err := NewRunner(r.logger, &conf)
	if err != nil {
		return nil, err
	}
	runner.now = r.now
	return runner, nil
}

// Budget returns the amount the runner invests.
func (r *Runner) Budget() float64 {
	return r.conf.Budget
}

// Run solves the catalog with a single strategy.
func (r *Runner) Run(cat *catalog.Catalog, strategy string) (*optimization.Report, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	s, err := knapsack.Lookup(strategy)
	if err != nil {
		return nil, err
	}
	return r.run(cat, s)
}

// Compare solves the catalog with every listed strategy, or all of them when
// strategies is empty, and measures each result against the exact optimum.
func (r *Runner) Compare(cat *catalog.Catalog, strategies []string) (*optimization.Comparison, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if len(strategies) == 0 {
		strategies = knapsack.Strategies()
	}

	var resolved []knapsack.Strategy
	seen := make(map[string]bool)
	for _, name := range strategies {
		s, err := knapsack.Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[s.Name()] {
			continue
		}
		seen[s.Name()] = true
		resolved = append(resolved, s)
	}

	comparison := &optimization.Comparison{
		Dataset:    cat.Name,
		Currency:   r.conf.Currency,
		Budget:     r.conf.Budget,
		Candidates: len(cat.Items),
		Entries:    []optimization.ComparisonEntry{},
	}

	limit := r.conf.Limits.ExhaustiveMaxItems
	haveOptimum := false
	for _, s := range resolved {
		if s.Exponential() && r.conf.Limits.SkipExhaustiveAboveMax && len(cat.Items) > limit {
			comparison.Omitted = append(comparison.Omitted, s.Name())
			comparison.Notes = append(comparison.Notes, fmt.Sprintf(
				"%s omitted: %d items exceeds the exhaustive limit of %d", s.Name(), len(cat.Items), limit))
			r.logger.Info("skipping exhaustive strategy",
				zap.String("op", "optimizer.Compare"),
				zap.String("strategy", s.Name()),
				zap.Int("items", len(cat.Items)),
				zap.Int("limit", limit),
			)
			continue
		}

		report, err := r.run(cat, s)
		if err != nil {
			return nil, err
		}
		comparison.Entries = append(comparison.Entries, optimization.ComparisonEntry{Report: report})
		if s.Exact() && (!haveOptimum || report.TotalProfit > comparison.Optimum) {
			comparison.Optimum = report.TotalProfit
			haveOptimum = true
		}
	}

	if !haveOptimum {
		solution, err := knapsack.SolveDynamic(cat.Items, r.conf.Budget)
		if err != nil {
			return nil, err
		}
		comparison.Optimum = solution.TotalProfit
	}

	for i := range comparison.Entries {
		entry := &comparison.Entries[i]
		entry.Gap = mathutil.Round(comparison.Optimum - entry.Report.TotalProfit)
		entry.MatchesOptimum = mathutil.WithinTolerance(entry.Report.TotalProfit, comparison.Optimum, profitTolerance)
		if entry.Report.Exact && !entry.MatchesOptimum {
			comparison.Notes = append(comparison.Notes, fmt.Sprintf(
				"%s returned %.2f, below the optimum of %.2f", entry.Report.Strategy, entry.Report.TotalProfit, comparison.Optimum))
			r.logger.Warn("exact strategies disagree",
				zap.String("op", "optimizer.Compare"),
				zap.String("strategy", entry.Report.Strategy),
				zap.Float64("profit", entry.Report.TotalProfit),
				zap.Float64("optimum", comparison.Optimum),
			)
		}
	}

	return comparison, nil
}

func (r *Runner) run(cat *catalog.Catalog, s knapsack.Strategy) (*optimization.Report, error) {
	var warnings []string
	if s.Exponential() && len(cat.Items) > r.conf.Limits.ExhaustiveMaxItems {
		warning := fmt.Sprintf("%s explores 2^%d subsets; expect a long run above %d items",
			s.Name(), len(cat.Items), r.conf.Limits.ExhaustiveMaxItems)
		warnings = append(warnings, warning)
		r.logger.Warn("exhaustive strategy above item limit",
			zap.String("op", "optimizer.Run"),
			zap.String("strategy", s.Name()),
			zap.Int("items", len(cat.Items)),
			zap.Int("limit", r.conf.Limits.ExhaustiveMaxItems),
		)
	}

	start := r.now()
	solution, err := s.Solve(cat.Items, r.conf.Budget)
	elapsed := r.now().Sub(start)
	if err != nil {
		return nil, fmt.Errorf("%s strategy failed: %w", s.Name(), err)
	}

	skipped := cat.Skipped
	if skipped == nil {
		skipped = []catalog.Skipped{}
	}
	report := &optimization.Report{
		Dataset:     cat.Name,
		Currency:    r.conf.Currency,
		Budget:      r.conf.Budget,
		Strategy:    s.Name(),
		Exact:       s.Exact(),
		Candidates:  len(cat.Items),
		TotalProfit: solution.TotalProfit,
		TotalCost:   solution.TotalCost,
		Remaining:   solution.Remaining(r.conf.Budget),
		Items:       solution.Items,
		Skipped:     skipped,
		Duration:    optimization.Elapsed(elapsed),
		Warnings:    warnings,
	}

	r.logger.Info("optimization complete",
		zap.String("op", "optimizer.Run"),
		zap.String("dataset", cat.Name),
		zap.String("strategy", s.Name()),
		zap.Int("items", len(cat.Items)),
		zap.Int("selected", len(solution.Items)),
		zap.Float64("budget", r.conf.Budget),
		zap.Float64("profit", solution.TotalProfit),
		zap.Float64("cost", solution.TotalCost),
		zap.Duration("duration", elapsed),
	)

	return report, nil
}
