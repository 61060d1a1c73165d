package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/portfolio-optimizer/internal/config"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/iwvelando/portfolio-optimizer/pkg/optimization"
	"github.com/iwvelando/portfolio-optimizer/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workspace writes two datasets and a config file pointing at them. The
// config leaves catalog.file empty unless file is given.
func workspace(t *testing.T, file string) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	data := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(data, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "abc.csv"), []byte(testutil.ABCCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "actions.csv"), []byte(testutil.ActionsCSV), 0o644))

	configPath = filepath.Join(dir, "config.yaml")
	contents := "budget: 500\ncurrency: USD\ncatalog:\n  directory: " + data + "\n"
	if file != "" {
		contents += "  file: " + file + "\n"
	}
	contents += "logging:\n  level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))
	return dir, configPath
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(newApp())
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSolveCatalogFileCSV(t *testing.T) {
	dir, configPath := workspace(t, "")

	stdout, _, err := execute(t, "",
		"solve", "--config", configPath,
		"--catalog", filepath.Join(dir, "data", "abc.csv"),
		"--budget", "500", "-s", "dp", "--output-format", "csv")
	require.NoError(t, err)

	expected := "id,cost,profit_percent,profit\n" +
		"A,100.00,30.00,30.00\n" +
		"C,250.00,48.00,120.00\n" +
		"total,350.00,,150.00\n"
	assert.Equal(t, expected, stdout)
}

func TestSolveConfiguredDatasetJSON(t *testing.T) {
	_, configPath := workspace(t, "actions.csv")

	stdout, _, err := execute(t, "", "solve", "--config", configPath, "--output-format", "json")
	require.NoError(t, err)

	var report optimization.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "actions.csv", report.Dataset)
	assert.Equal(t, knapsack.StrategyDynamic, report.Strategy)
	assert.Equal(t, 500.0, report.Budget)
	assert.Equal(t, "USD", report.Currency)
	assert.Equal(t, 20, report.Candidates)
	assert.LessOrEqual(t, report.TotalCost, 500.0)
}

func TestSolveInteractiveChoice(t *testing.T) {
	_, configPath := workspace(t, "")

	stdout, stderr, err := execute(t, "1\n", "solve", "--config", configPath, "--strategy", "greedy")
	require.NoError(t, err)

	assert.Contains(t, stderr, "  1. abc.csv")
	assert.Contains(t, stderr, "  2. actions.csv")
	assert.Contains(t, stdout, "--- Portfolio for abc.csv (greedy, heuristic) ---")
	assert.Contains(t, stdout, "Profit     $150.00")

	_, _, err = execute(t, "9\n", "solve", "--config", configPath)
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	_, configPath := workspace(t, "abc.csv")

	stdout, _, err := execute(t, "", "compare", "--config", configPath,
		"--strategies", "dynamic,recursive,greedy", "--budget", "100", "--output-format", "json")
	require.NoError(t, err)

	var comparison optimization.Comparison
	require.NoError(t, json.Unmarshal([]byte(stdout), &comparison))
	assert.Equal(t, 100.0, comparison.Budget)
	require.Len(t, comparison.Entries, 3)
	for _, entry := range comparison.Entries {
		assert.Equal(t, []string{"A"}, entry.Report.IDs())
		assert.True(t, entry.MatchesOptimum)
	}

	stdout, _, err = execute(t, "", "compare", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- Strategy comparison for abc.csv ---")
	assert.Contains(t, stdout, "enumeration")
}

func TestDatasetsCommand(t *testing.T) {
	_, configPath := workspace(t, "")

	stdout, _, err := execute(t, "", "datasets", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "abc.csv\nactions.csv\n", stdout)

	stdout, _, err = execute(t, "", "datasets", "--config", configPath, "--output-format", "json")
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &names))
	assert.Equal(t, []string{"abc.csv", "actions.csv"}, names)
}

func TestCommandErrors(t *testing.T) {
	dir, configPath := workspace(t, "abc.csv")

	tests := []struct {
		name string
		args []string
	}{
		{"Missing explicit config", []string{"solve", "--config", filepath.Join(dir, "nope.yaml")}},
		{"Invalid output format", []string{"solve", "--config", configPath, "--output-format", "html"}},
		{"Invalid log level", []string{"solve", "--config", configPath, "--log-level", "verbose"}},
		{"Unknown strategy", []string{"solve", "--config", configPath, "--strategy", "annealing"}},
		{"Negative budget", []string{"solve", "--config", configPath, "--budget", "-1"}},
		{"Missing catalog file", []string{"solve", "--config", configPath, "--catalog", filepath.Join(dir, "missing.csv")}},
		{"Unknown compare strategy", []string{"compare", "--config", configPath, "--strategies", "dp,annealing"}},
		{"Unexpected argument", []string{"solve", "--config", configPath, "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		logging   config.LoggingConfig
		override  string
		expectErr bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"JSON debug", config.LoggingConfig{Level: "debug", Format: "json"}, "", false},
		{"Warning alias", config.LoggingConfig{Level: "warning"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "bogus"}, "ERROR", false},
		{"Invalid level", config.LoggingConfig{Level: "trace"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "optimizer.log")

	logger, err := initializeLogger(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"msg":"hello"`)
}
