package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idelchi/zpace/internal/scan"
)

func TestCategoryOf(t *testing.T) {
	c := scan.NewClassifier(scan.DefaultConfig("."))

	tests := map[string]string{
		".jpg":  "Pictures",
		".PNG":  "Pictures",
		".heic": "Pictures",
		".pdf":  "Documents",
		".pptx": "Documents",
		".py":   "Code",
		".tsx":  "Code",
		".mkv":  "Videos",
		".flac": "Music",
		".7z":   "Archives",
		".vmdk": "Disk Images",
		".yml":  "JSON/YAML",
		".json": "JSON/YAML",
		".xyz":  scan.OthersCategory,
		"":      scan.OthersCategory,
		".":     scan.OthersCategory,
	}

	for ext, want := range tests {
		assert.Equal(t, want, c.CategoryOf(ext), "extension %q", ext)
	}
}

func TestSpecialCategoryOf(t *testing.T) {
	c := scan.NewClassifier(scan.DefaultConfig("."))

	tests := map[string]string{
		".venv":        "Virtual Environments",
		"env":          "Virtual Environments",
		"node_modules": "Node Modules",
		"Node_Modules": "Node Modules",
		".bun":         "Bun Modules",
		"target":       "Build Artifacts",
		"dist":         "Build Artifacts",
		"__pycache__":  "Package Caches",
		".m2":          "Package Caches",
		".vscode":      "IDE Config",
		".git":         "Git Repos",
		"Safari.app":   "macOS Apps",
		"MyApp.app":    "macOS Apps",
	}

	for name, want := range tests {
		got, ok := c.SpecialCategoryOf(name)
		assert.True(t, ok, "directory %q", name)
		assert.Equal(t, want, got, "directory %q", name)
	}

	for _, name := range []string{"directory", "documents", "src", "application"} {
		_, ok := c.SpecialCategoryOf(name)
		assert.False(t, ok, "directory %q", name)
	}
}

func TestSpecialCategoryOf_ExactBeatsSuffix(t *testing.T) {
	cfg := scan.DefaultConfig(".")
	cfg.SpecialDirs["Web Apps"] = []string{"web.app"}
	cfg.SuffixRules = append(cfg.SuffixRules, scan.SuffixRule{Suffix: ".app", Category: "Never"})

	c := scan.NewClassifier(cfg)

	got, _ := c.SpecialCategoryOf("web.app")
	assert.Equal(t, "Web Apps", got)

	got, _ = c.SpecialCategoryOf("Other.app")
	assert.Equal(t, "macOS Apps", got, "first suffix rule wins")
}

func TestNewClassifier_Overrides(t *testing.T) {
	cfg := scan.DefaultConfig(".")
	cfg.Categories["Notes"] = []string{"md", ".ORG"}
	cfg.Categories["Also Notes"] = []string{".md"}

	c := scan.NewClassifier(cfg)

	assert.Equal(t, "Notes", c.CategoryOf(".org"))
	assert.Equal(t, "Also Notes", c.CategoryOf(".MD"), "alphabetically first category wins")
}
