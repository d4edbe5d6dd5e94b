package scan

import (
	"maps"
	"slices"
	"strings"
)

// Classifier assigns files and directories to categories.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	extensions   map[string]string
	specialNames map[string]string
	suffixes     []SuffixRule
}

// NewClassifier builds the lookup tables for cfg. When an extension or
// directory name is listed under several categories, the alphabetically
// first category wins.
func NewClassifier(cfg Config) *Classifier {
	c := &Classifier{
		extensions:   make(map[string]string),
		specialNames: make(map[string]string),
		suffixes:     slices.Clone(cfg.SuffixRules),
	}

	for _, category := range slices.Sorted(maps.Keys(cfg.Categories)) {
		for _, ext := range cfg.Categories[category] {
			ext = normalizeExt(ext)
			if _, taken := c.extensions[ext]; ext != "" && !taken {
				c.extensions[ext] = category
			}
		}
	}

	for _, category := range slices.Sorted(maps.Keys(cfg.SpecialDirs)) {
		for _, name := range cfg.SpecialDirs[category] {
			name = strings.ToLower(name)
			if _, taken := c.specialNames[name]; name != "" && !taken {
				c.specialNames[name] = category
			}
		}
	}

	return c
}

// CategoryOf returns the category for a file extension such as ".PDF".
// Unknown and empty extensions map to OthersCategory.
func (c *Classifier) CategoryOf(ext string) string {
	if category, ok := c.extensions[normalizeExt(ext)]; ok {
		return category
	}

	return OthersCategory
}

// SpecialCategoryOf returns the special-directory category for a directory
// name. Exact names are compared case-insensitively; suffix rules are tried
// in order afterwards and the first match wins.
func (c *Classifier) SpecialCategoryOf(name string) (string, bool) {
	if category, ok := c.specialNames[strings.ToLower(name)]; ok {
		return category, true
	}

	for _, rule := range c.suffixes {
		if strings.HasSuffix(name, rule.Suffix) {
			return rule.Category, true
		}
	}

	return "", false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
