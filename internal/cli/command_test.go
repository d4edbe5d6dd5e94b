package cli

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/zpace/internal/scan"
)

func fixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	files := map[string]int{
		"movies/holiday.mp4":              300 * 1024,
		"docs/report.pdf":                 200 * 1024,
		"docs/tiny.txt":                   100,
		"project/node_modules/lib/big.js": 150 * 1024,
		"project/main.go":                 120 * 1024,
	}

	for rel, size := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

		data := make([]byte, size)
		_, err := rand.Read(data)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o600))
	}

	return root
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	isolateConfig(t)

	var stdout, stderr bytes.Buffer

	cmd := New("1.2.3").Command()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(ctx)

	return stdout.String(), stderr.String(), err
}

func TestCommand_JSON(t *testing.T) {
	root := fixture(t)

	out, _, err := execute(t, context.Background(), "--no-disk-usage", "-o", "json", root)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, ReportVersion, report["version"])
	assert.Equal(t, root, report["scan_path"])
	assert.NotContains(t, report, "disk_usage")

	summary := report["scan_summary"].(map[string]any)
	assert.InDelta(t, 4, summary["total_files"], 0)
	assert.InDelta(t, 1, summary["special_directories_count"], 0)

	files := report["files_by_category"].(map[string]any)
	assert.Contains(t, files, "Videos")
	assert.Contains(t, files, "Documents")
	assert.Contains(t, files, "Code")

	videos := files["Videos"].([]any)
	require.Len(t, videos, 1)
	assert.Equal(t, filepath.Join(root, "movies", "holiday.mp4"), videos[0].(map[string]any)["path"])

	special := report["special_directories"].(map[string]any)
	modules := special["Node Modules"].([]any)
	require.Len(t, modules, 1)
	assert.Equal(t, filepath.Join(root, "project", "node_modules"), modules[0].(map[string]any)["path"])
}

func TestCommand_Paths(t *testing.T) {
	root := fixture(t)

	out, _, err := execute(t, context.Background(), "--no-disk-usage", "-o", "paths", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, filepath.Join(root, "movies", "holiday.mp4"), lines[0])
	assert.Contains(t, lines, filepath.Join(root, "project", "node_modules"))
	assert.NotContains(t, out, "tiny.txt")
}

func TestCommand_Table(t *testing.T) {
	root := fixture(t)

	out, _, err := execute(t, context.Background(), "-n", "1", root)
	require.NoError(t, err)

	assert.Contains(t, out, "DISK USAGE")
	assert.Contains(t, out, "SPECIAL DIRECTORIES")
	assert.Contains(t, out, "LARGEST FILES BY CATEGORY")
	assert.Contains(t, out, "holiday.mp4")
	assert.Contains(t, out, "SCAN COMPLETE")
}

func TestCommand_MinSizeFlag(t *testing.T) {
	root := fixture(t)

	out, _, err := execute(t, context.Background(), "--no-disk-usage", "-o", "paths", "-m", "250KiB", root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "movies", "holiday.mp4")+"\n", out)
}

func TestCommand_Exclude(t *testing.T) {
	root := fixture(t)

	out, _, err := execute(t, context.Background(), "--no-disk-usage", "-o", "paths", "-e", `/movies$`, "-e", `\.pdf$`, root)
	require.NoError(t, err)

	assert.NotContains(t, out, "holiday.mp4")
	assert.NotContains(t, out, "report.pdf")
	assert.Contains(t, out, "main.go")
}

func TestCommand_ConfigFlag(t *testing.T) {
	root := fixture(t)
	config := writeConfig(t, "config.yaml", "special_dirs:\n  - name: Node Modules\n    names: []\n")

	out, _, err := execute(t, context.Background(), "--no-disk-usage", "-o", "paths", "--config", config, root)
	require.NoError(t, err)

	assert.NotContains(t, out, filepath.Join(root, "project", "node_modules")+"\n")
	assert.Contains(t, out, "big.js")
}

func TestCommand_Version(t *testing.T) {
	out, _, err := execute(t, context.Background(), "--version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestCommand_SymlinkRoot(t *testing.T) {
	target := fixture(t)
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(target, link))

	out, errOut, err := execute(t, context.Background(), "--no-disk-usage", link)
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Contains(t, errOut, "symlink")
	assert.Contains(t, errOut, "zpace "+resolved)
}

func TestCommand_Errors(t *testing.T) {
	_, _, err := execute(t, context.Background(), "--no-disk-usage", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, scan.ErrInvalidRoot)

	_, _, err = execute(t, context.Background(), "-o", "xml", t.TempDir())
	require.Error(t, err)

	_, _, err = execute(t, context.Background(), "a", "b")
	require.Error(t, err)
}

func TestCommand_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := execute(t, ctx, "--no-disk-usage", fixture(t))
	require.ErrorIs(t, err, ErrInterrupted)
}

func TestRootPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := rootPath(nil)
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = rootPath([]string{"~/Downloads"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Downloads"), got)

	got, err = rootPath([]string{"/srv"})
	require.NoError(t, err)
	assert.Equal(t, "/srv", got)
}
