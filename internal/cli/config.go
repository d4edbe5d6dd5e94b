package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/idelchi/zpace/internal/scan"
)

// Configuration keys. Flags, environment variables (ZPACE_<KEY>) and the config file share them.
const (
	keyTop            = "top"
	keyMinSize        = "min_size"
	keyWorkers        = "workers"
	keyOutput         = "output"
	keyCategories     = "categories"
	keySpecialDirs    = "special_dirs"
	keySuffixes       = "special_suffixes"
	keySkipPaths      = "skip_paths"
	keyMaxSkipDepth   = "max_skip_depth"
	keyExcludes       = "excludes"
	keyCountSmall     = "count_small_in_categories"
	envPrefix         = "ZPACE"
	configName        = "config"
	defaultMinSizeStr = "100KiB"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputPaths = "paths"
)

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{OutputTable, OutputJSON, OutputPaths}

// Settings is the merged result of defaults, config file, environment and flags.
type Settings struct {
	// Top is the number of entries listed per category.
	Top int `mapstructure:"top"`
	// MinSize is the human-readable minimum size of listed entries.
	MinSize string `mapstructure:"min_size"`
	// Workers bounds parallel traversal.
	Workers int `mapstructure:"workers"`
	// Output is one of table, json or paths.
	Output string `mapstructure:"output"`
	// Categories replace the extensions of built-in file categories, or add new ones.
	Categories []CategoryOverride `mapstructure:"categories"`
	// SpecialDirs replace the names of built-in special-directory categories, or add new ones.
	SpecialDirs []SpecialDirOverride `mapstructure:"special_dirs"`
	// SpecialSuffixes replace the built-in suffix rules when set.
	SpecialSuffixes []SuffixOverride `mapstructure:"special_suffixes"`
	// SkipPaths replace the built-in skip list when set.
	SkipPaths []string `mapstructure:"skip_paths"`
	// MaxSkipDepth bounds the skip check (0 = derived).
	MaxSkipDepth int `mapstructure:"max_skip_depth"`
	// Excludes are regular expressions of paths to prune.
	Excludes []string `mapstructure:"excludes"`
	// CountSmallInCategories counts files below MinSize toward category totals.
	CountSmallInCategories bool `mapstructure:"count_small_in_categories"`
}

// CategoryOverride sets the extensions of one file category. An empty list removes the category.
type CategoryOverride struct {
	Name       string   `mapstructure:"name"`
	Extensions []string `mapstructure:"extensions"`
}

// SpecialDirOverride sets the directory names of one special category. An empty list removes the category.
type SpecialDirOverride struct {
	Name  string   `mapstructure:"name"`
	Names []string `mapstructure:"names"`
}

// SuffixOverride maps directory names ending in Suffix to Category.
type SuffixOverride struct {
	Suffix   string `mapstructure:"suffix"`
	Category string `mapstructure:"category"`
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(keyTop, scan.DefaultTopN)
	v.SetDefault(keyMinSize, defaultMinSizeStr)
	v.SetDefault(keyWorkers, 1)
	v.SetDefault(keyOutput, OutputTable)
	v.SetDefault(keyMaxSkipDepth, 0)
	v.SetDefault(keyCountSmall, true)
	v.SetDefault(keyExcludes, []string{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// configDirs lists the directories searched for config.{yaml,toml,json}.
func configDirs() []string {
	var dirs []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "zpace"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "zpace"))
	}

	return dirs
}

// readConfig loads the config file into v. An explicit file must exist; a missing default file is ignored.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)

		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("reading config file: %w", err)
	}

	return nil
}

func loadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decoding configuration: %w", err)
	}

	s.Output = strings.ToLower(s.Output)
	if !slices.Contains(allowedOutputs, s.Output) {
		return s, fmt.Errorf("invalid output format %q: must be one of %v", s.Output, allowedOutputs)
	}

	return s, nil
}

// ScanConfig turns the settings into a scan configuration rooted at root.
func (s Settings) ScanConfig(root string) (scan.Config, error) {
	cfg := scan.DefaultConfig(root)

	size, err := humanize.ParseBytes(s.MinSize)
	if err != nil {
		return cfg, fmt.Errorf("invalid min-size %q: %w", s.MinSize, err)
	}

	cfg.MinSize = int64(size) //nolint:gosec // Sizes beyond int64 are not realistic
	cfg.TopN = s.Top
	cfg.Workers = s.Workers
	cfg.MaxSkipDepth = s.MaxSkipDepth
	cfg.CategoryTotalsIncludeSmall = s.CountSmallInCategories

	if len(s.Excludes) > 0 {
		cfg.Excludes = s.Excludes
	}

	for _, c := range s.Categories {
		if len(c.Extensions) == 0 {
			delete(cfg.Categories, c.Name)

			continue
		}

		cfg.Categories[c.Name] = c.Extensions
	}

	for _, d := range s.SpecialDirs {
		if len(d.Names) == 0 {
			delete(cfg.SpecialDirs, d.Name)

			continue
		}

		cfg.SpecialDirs[d.Name] = d.Names
	}

	if s.SpecialSuffixes != nil {
		cfg.SuffixRules = make([]scan.SuffixRule, 0, len(s.SpecialSuffixes))
		for _, r := range s.SpecialSuffixes {
			cfg.SuffixRules = append(cfg.SuffixRules, scan.SuffixRule{Suffix: r.Suffix, Category: r.Category})
		}
	}

	if s.SkipPaths != nil {
		cfg.SkipPaths = s.SkipPaths
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
