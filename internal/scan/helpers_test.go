package scan_test

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idelchi/zpace/internal/fsys"
	"github.com/idelchi/zpace/internal/scan"
)

const (
	kib = 1024
	mib = 1024 * kib
)

// writeFile creates a file of incompressible content and returns its on-disk size.
func writeFile(t *testing.T, path string, size int) int64 {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	info, err := os.Lstat(path)
	require.NoError(t, err)

	return fsys.OnDisk(info)
}

// virtualConfig returns a default config without skip paths, for in-memory trees.
func virtualConfig(root string) scan.Config {
	cfg := scan.DefaultConfig(root)
	cfg.SkipPaths = nil

	return cfg
}

func topPaths(summary scan.CategorySummary) []string {
	paths := make([]string, len(summary.Top))
	for i, e := range summary.Top {
		paths[i] = e.Path
	}

	return paths
}

func topSizes(summary scan.CategorySummary) []int64 {
	sizes := make([]int64, len(summary.Top))
	for i, e := range summary.Top {
		sizes[i] = e.Size
	}

	return sizes
}
