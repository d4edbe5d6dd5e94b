package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/idelchi/zpace/internal/disksize"
	"github.com/idelchi/zpace/internal/diskusage"
	"github.com/idelchi/zpace/internal/fsys"
	"github.com/idelchi/zpace/internal/scan"
)

// DefaultProgressInterval is the minimum time between progress line updates.
const DefaultProgressInterval = 500 * time.Millisecond

// ErrInterrupted is returned when the scan is cancelled by a signal.
var ErrInterrupted = errors.New("scan interrupted by user")

// Options holds everything needed for one run.
type Options struct {
	// Scan is the scanner configuration.
	Scan scan.Config
	// Output is one of table, json or paths.
	Output string
	// Debug enables debug logging and disables the progress line.
	Debug bool
	// DiskUsage enables the disk capacity and trash report.
	DiskUsage bool
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// terminalWidth returns the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // File descriptors fit in int
	if err != nil {
		return 0
	}

	return width
}

// progressLine returns a throttled progress hook writing a single status line to w.
func progressLine(w io.Writer, usage *diskusage.Stats, interval time.Duration) scan.ProgressFunc {
	var last time.Time

	return func(files, bytes int64) {
		now := time.Now()
		if now.Sub(last) < interval {
			return
		}

		last = now

		msg := fmt.Sprintf("Scanning… %d files, %s", files, bytesOf(bytes))
		if usage != nil && usage.Used > 0 {
			msg += fmt.Sprintf(" (%.1f%% of used space)", float64(bytes)/float64(usage.Used)*100) //nolint:mnd // Percentage
		}

		fmt.Fprintf(w, "\r\033[2K%s\r", msg)
	}
}

func logic(ctx context.Context, options Options, stdout, stderr io.Writer, logger *slog.Logger) error {
	root := options.Scan.Root

	// Symlinked roots are reported instead of followed.
	if info, err := os.Lstat(root); err == nil && fsys.IsSymlink(info.Mode()) {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return fmt.Errorf("resolving symlink %q: %w", root, err)
		}

		fmt.Fprintf(stderr, "Attention: %s is a symlink to %s\n", root, resolved)
		fmt.Fprintf(stderr, "To analyse the linked directory, run: zpace %s\n", resolved)

		return nil
	}

	report := Report{Width: terminalWidth(stdout)}

	if options.DiskUsage {
		usage, err := diskusage.Usage(root)
		if err != nil {
			logger.Warn("disk usage unavailable", "path", root, "error", err)
		} else {
			report.Usage = &usage
		}

		trash := diskusage.TrashSize(disksize.New(nil))
		logger.Debug("trash", "path", trash.Path, "status", trash.Status.String(), "size", humanize.IBytes(uint64(max(trash.Size, 0)))) //nolint:gosec // Clamped
		report.Trash = &trash
	}

	enableProgress := options.Output == OutputTable && !options.Debug && isTerminal(stderr)

	scanOpts := []scan.Option{scan.WithLogger(logger)}

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		scanOpts = append(scanOpts, scan.WithProgress(progressLine(stderr, report.Usage, DefaultProgressInterval)))
	}

	result, err := scan.Scan(ctx, options.Scan, scanOpts...)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	switch {
	case errors.Is(err, context.Canceled):
		return ErrInterrupted
	case err != nil:
		return err
	}

	if result.ErrorCount > 0 {
		logger.Warn("some entries could not be read and were left out", "errors", result.ErrorCount)
	}

	report.Result = result
	report.Timestamp = time.Now()

	switch options.Output {
	case OutputJSON:
		return PrintJSON(report, stdout)
	case OutputPaths:
		return PrintPaths(report, stdout)
	case OutputTable:
		return PrintTable(report, stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
