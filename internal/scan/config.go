package scan

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// DefaultMinSize is the smallest file or special directory tracked in a top-N list.
	DefaultMinSize = 100 * 1024
	// DefaultTopN is the number of entries kept per category.
	DefaultTopN = 10
	// OthersCategory collects files whose extension matches no category.
	OthersCategory = "Others"
)

// ErrInvalidConfig is returned when a Config cannot be scanned with.
var ErrInvalidConfig = errors.New("invalid scan configuration")

// SuffixRule maps directory names ending in Suffix to Category.
type SuffixRule struct {
	// Suffix is matched against the end of the directory name.
	Suffix string `json:"suffix"`
	// Category is the special-directory category assigned on a match.
	Category string `json:"category"`
}

// Config describes one scan. It is read, never modified, by Scan.
type Config struct {
	// Root is the directory to scan.
	Root string
	// MinSize is the minimum on-disk size in bytes for an entry to be tracked in a top-N list.
	MinSize int64
	// TopN is the number of largest entries kept per category.
	TopN int
	// Categories maps a file category to its extensions (with leading dot, case-insensitive).
	Categories map[string][]string
	// SpecialDirs maps a special-directory category to exact directory names.
	SpecialDirs map[string][]string
	// SuffixRules are evaluated in order when no exact special name matches.
	SuffixRules []SuffixRule
	// SkipPaths are absolute paths pruned from the walk.
	SkipPaths []string
	// MaxSkipDepth is the deepest path depth checked against SkipPaths (0 = derive from SkipPaths).
	MaxSkipDepth int
	// Excludes are regular expressions; matching files and directories are pruned at any depth.
	Excludes []string
	// Workers bounds parallel subtree traversal (0 or 1 = sequential).
	Workers int
	// CategoryTotalsIncludeSmall counts files below MinSize toward their category's totals.
	// The global total always includes them.
	CategoryTotalsIncludeSmall bool
}

// DefaultConfig returns the built-in configuration for scanning root.
func DefaultConfig(root string) Config {
	return Config{
		Root:                       root,
		MinSize:                    DefaultMinSize,
		TopN:                       DefaultTopN,
		Categories:                 DefaultCategories(),
		SpecialDirs:                DefaultSpecialDirs(),
		SuffixRules:                DefaultSuffixRules(),
		SkipPaths:                  DefaultSkipPaths(),
		CategoryTotalsIncludeSmall: true,
	}
}

// DefaultCategories returns a fresh copy of the built-in file categories.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"Pictures":    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".svg", ".webp", ".heic"},
		"Documents":   {".doc", ".docx", ".pdf", ".txt", ".xls", ".xlsx", ".ppt", ".pptx", ".odt", ".rtf"},
		"Music":       {".mp3", ".wav", ".aac", ".flac", ".m4a", ".ogg", ".wma"},
		"Videos":      {".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v"},
		"Code":        {".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".rb", ".go", ".rs", ".ts", ".jsx", ".tsx"},
		"Archives":    {".tar", ".gz", ".zip", ".rar", ".7z", ".bz2", ".xz"},
		"Disk Images": {".iso", ".dmg", ".img", ".vdi", ".vmdk"},
		"JSON/YAML":   {".yml", ".yaml", ".json"},
	}
}

// DefaultSpecialDirs returns a fresh copy of the built-in special-directory names.
func DefaultSpecialDirs() map[string][]string {
	return map[string][]string{
		"Virtual Environments": {".venv", "venv", "env", "virtualenv", ".virtualenv"},
		"Node Modules":         {"node_modules"},
		"Bun Modules":          {".bun"},
		"Build Artifacts":      {"target", "build", "dist", ".gradle", ".cargo", "out"},
		"Package Caches":       {".npm", ".yarn", ".m2", ".pip", "__pycache__", ".cache"},
		"IDE Config":           {".idea", ".vscode", ".vs", ".eclipse"},
		"Git Repos":            {".git"},
	}
}

// DefaultSuffixRules returns the built-in pattern rules.
func DefaultSuffixRules() []SuffixRule {
	return []SuffixRule{
		{Suffix: ".app", Category: "macOS Apps"},
	}
}

// DefaultSkipPaths returns the built-in system paths pruned from every walk.
func DefaultSkipPaths() []string {
	return []string{
		// Linux
		"/dev",
		"/proc",
		"/sys",
		"/run",
		"/var/run",
		"/snap",
		"/boot",
		"/lost+found",
		// macOS
		"/System",
		"/Library",
		"/private/var",
		"/.Spotlight-V100",
		"/.DocumentRevisions-V100",
		"/.fseventsd",
	}
}

// Validate reports the first setting that makes the configuration unusable.
func (c Config) Validate() error {
	switch {
	case c.TopN < 1:
		return fmt.Errorf("%w: top-N must be at least 1, got %d", ErrInvalidConfig, c.TopN)
	case c.MinSize < 0:
		return fmt.Errorf("%w: minimum size cannot be negative", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers cannot be negative", ErrInvalidConfig)
	case c.MaxSkipDepth < 0:
		return fmt.Errorf("%w: maximum skip depth cannot be negative", ErrInvalidConfig)
	}

	for _, name := range slices.Sorted(maps.Keys(c.Categories)) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty category name", ErrInvalidConfig)
		}

		if name == OthersCategory {
			return fmt.Errorf("%w: %q is reserved for unmatched files", ErrInvalidConfig, name)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(c.SpecialDirs)) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty special-directory category name", ErrInvalidConfig)
		}
	}

	if _, err := NewExcluder(c.Excludes); err != nil {
		return err
	}

	for i, rule := range c.SuffixRules {
		if rule.Suffix == "" || rule.Category == "" {
			return fmt.Errorf("%w: suffix rule #%d needs both a suffix and a category", ErrInvalidConfig, i+1)
		}
	}

	return nil
}
