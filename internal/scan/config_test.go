package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/zpace/internal/scan"
)

func TestDefaultConfig(t *testing.T) {
	cfg := scan.DefaultConfig("/home/user")

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/home/user", cfg.Root)
	assert.Equal(t, int64(100*1024), cfg.MinSize)
	assert.Equal(t, 10, cfg.TopN)
	assert.True(t, cfg.CategoryTotalsIncludeSmall)
	assert.Contains(t, cfg.SkipPaths, "/proc")
	assert.Len(t, cfg.Categories, 8)
	assert.Len(t, cfg.SpecialDirs, 7)
}

func TestDefaultTables_AreFreshCopies(t *testing.T) {
	first := scan.DefaultCategories()
	first["Pictures"] = nil
	delete(first, "Code")

	second := scan.DefaultCategories()
	assert.NotEmpty(t, second["Pictures"])
	assert.Contains(t, second, "Code")

	dirs := scan.DefaultSpecialDirs()
	dirs["Git Repos"][0] = "changed"
	assert.Equal(t, ".git", scan.DefaultSpecialDirs()["Git Repos"][0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*scan.Config)
	}{
		{"zero top", func(c *scan.Config) { c.TopN = 0 }},
		{"negative min size", func(c *scan.Config) { c.MinSize = -1 }},
		{"negative workers", func(c *scan.Config) { c.Workers = -2 }},
		{"negative skip depth", func(c *scan.Config) { c.MaxSkipDepth = -1 }},
		{"empty category", func(c *scan.Config) { c.Categories[" "] = []string{".x"} }},
		{"reserved category", func(c *scan.Config) { c.Categories[scan.OthersCategory] = []string{".x"} }},
		{"empty special category", func(c *scan.Config) { c.SpecialDirs[""] = []string{"x"} }},
		{"suffix without category", func(c *scan.Config) {
			c.SuffixRules = append(c.SuffixRules, scan.SuffixRule{Suffix: ".bundle"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scan.DefaultConfig(".")
			tt.mutate(&cfg)

			assert.ErrorIs(t, cfg.Validate(), scan.ErrInvalidConfig)
		})
	}
}
