package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(test *testing.T) {
	v := viper.New()
	cfg, err := Load(v, "")
	if err != nil {
		test.Fatal(err)
	}
	if cfg.NumWorkers != 4 {
		test.Errorf("got NumWorkers %d, want 4", cfg.NumWorkers)
	}
	if cfg.ErrorBudget != 32 {
		test.Errorf("got ErrorBudget %d, want 32", cfg.ErrorBudget)
	}
	if cfg.EMax != 1024 {
		test.Errorf("got EMax %d, want 1024", cfg.EMax)
	}
}

func TestLoadRejectsBudgetAboveEMax(test *testing.T) {
	v := viper.New()
	v.Set("error_budget", 9999)
	v.Set("e_max", 10)
	if _, err := Load(v, ""); err == nil {
		test.Fatal("expected an error when error_budget exceeds e_max")
	}
}

func TestLoadFromFile(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "correct.toml")
	content := "num_workers = 8\nerror_budget = 16\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		test.Fatal(err)
	}

	v := viper.New()
	cfg, err := Load(v, path)
	if err != nil {
		test.Fatal(err)
	}
	if cfg.NumWorkers != 8 {
		test.Errorf("got NumWorkers %d, want 8", cfg.NumWorkers)
	}
	if cfg.ErrorBudget != 16 {
		test.Errorf("got ErrorBudget %d, want 16", cfg.ErrorBudget)
	}
}

func TestTuningMatchesBranchPtMatchValue(test *testing.T) {
	v := viper.New()
	v.Set("branch_pt_match_value", 2.0)
	cfg, err := Load(v, "")
	if err != nil {
		test.Fatal(err)
	}
	tuning := cfg.Tuning()
	if tuning.BranchPtMatchValue != 2.0 {
		test.Errorf("got BranchPtMatchValue %f, want 2.0", tuning.BranchPtMatchValue)
	}
}

