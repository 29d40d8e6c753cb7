//Package config is the layered configuration for the correction driver:
//flags override environment variables, which override a TOML config file,
//which overrides in-code defaults, resolved through github.com/spf13/viper.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/KaiqiangLiu/canu/editdist"
)

type Config struct {
	EditSpaceSize      int
	EMax               int32
	BranchPtMatchValue float64

	ErrorBudget int32 //per-overlap error budget E passed to PrefixEditDist
	NumWorkers  int

	Input        string
	OverlapStore string
	OutputStore  string
	EvalueOut    string
}

//Load builds a Config from (in increasing priority) in-code defaults, an
//optional TOML file at configPath (ignored if empty or missing), and
//environment variables prefixed CORRECT_. Command-line flags are bound by
//the caller via BindPFlag before Load is called, so they take final
//priority.
func Load(v *viper.Viper, configPath string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("correct")
	v.AutomaticEnv()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			//an explicit path that does not exist surfaces as a not-exist
			//error rather than ConfigFileNotFoundError
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config: reading %s: %w", configPath, err)
			}
		}
	}

	cfg := Config{
		EditSpaceSize:      v.GetInt("edit_space_size"),
		EMax:               int32(v.GetInt("e_max")),
		BranchPtMatchValue: v.GetFloat64("branch_pt_match_value"),
		ErrorBudget:        int32(v.GetInt("error_budget")),
		NumWorkers:         v.GetInt("num_workers"),
		Input:              v.GetString("input"),
		OverlapStore:       v.GetString("overlap_store"),
		OutputStore:        v.GetString("output_store"),
		EvalueOut:          v.GetString("evalue_out"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("edit_space_size", editdist.DefaultEditSpaceSize)
	v.SetDefault("e_max", 1024)
	v.SetDefault("branch_pt_match_value", 1.5)
	v.SetDefault("error_budget", 32)
	v.SetDefault("num_workers", 4)
	v.SetDefault("input", "")
	v.SetDefault("overlap_store", "")
	v.SetDefault("output_store", "")
	v.SetDefault("evalue_out", "")
}

func (c Config) validate() error {
	if c.NumWorkers <= 0 {
		return fmt.Errorf("config: num_workers must be > 0, got %d", c.NumWorkers)
	}
	if c.ErrorBudget < 0 {
		return fmt.Errorf("config: error_budget must be >= 0, got %d", c.ErrorBudget)
	}
	if c.ErrorBudget > c.EMax {
		return fmt.Errorf("config: error_budget (%d) exceeds e_max (%d)", c.ErrorBudget, c.EMax)
	}
	return nil
}

func (c Config) EditdistConfig() editdist.Config {
	return editdist.Config{EditSpaceSize: c.EditSpaceSize, EMax: c.EMax}
}

func (c Config) Tuning() *editdist.Tuning {
	t := editdist.DefaultTuning(c.EMax)
	t.BranchPtMatchValue = c.BranchPtMatchValue
	return t
}
