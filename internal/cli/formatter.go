package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/zpace/internal/diskusage"
	"github.com/idelchi/zpace/internal/scan"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// ReportVersion is the schema version of the JSON report.
	ReportVersion = "1.0"

	defaultWidth = 80
)

// Report is everything printed after a scan.
type Report struct {
	// Result is the completed scan.
	Result *scan.Result
	// Usage is the capacity of the scanned filesystem, nil if unknown or disabled.
	Usage *diskusage.Stats
	// Trash is the trash lookup, nil if disabled.
	Trash *diskusage.Trash
	// Timestamp is when the report was built.
	Timestamp time.Time
	// Width is the length of the section rules in table output (0 = default).
	Width int
}

type jsonReport struct {
	Version            string                 `json:"version"`
	ScanPath           string                 `json:"scan_path"`
	Timestamp          string                 `json:"timestamp"`
	DiskUsage          *jsonDiskUsage         `json:"disk_usage,omitempty"`
	ScanSummary        jsonSummary            `json:"scan_summary"`
	SpecialDirectories map[string][]jsonEntry `json:"special_directories"`
	FilesByCategory    map[string][]jsonEntry `json:"files_by_category"`
}

type jsonDiskUsage struct {
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedPercent float64 `json:"used_percent"`
	TrashBytes  *int64  `json:"trash_bytes,omitempty"`
}

type jsonSummary struct {
	TotalFiles              int64 `json:"total_files"`
	SpecialDirectoriesCount int64 `json:"special_directories_count"`
	TotalSizeBytes          int64 `json:"total_size_bytes"`
	SkippedPaths            int64 `json:"skipped_paths"`
	ErrorCount              int64 `json:"error_count"`
}

type jsonEntry struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

func entriesByCategory(summaries map[string]scan.CategorySummary) map[string][]jsonEntry {
	out := make(map[string][]jsonEntry, len(summaries))

	for name, summary := range summaries {
		if len(summary.Top) == 0 {
			continue
		}

		entries := make([]jsonEntry, 0, len(summary.Top))
		for _, e := range summary.Top {
			entries = append(entries, jsonEntry{Path: e.Path, SizeBytes: e.Size})
		}

		out[name] = entries
	}

	return out
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report Report, writer io.Writer) error {
	res := report.Result

	out := jsonReport{
		Version:   ReportVersion,
		ScanPath:  res.Root,
		Timestamp: report.Timestamp.Format(time.RFC3339),
		ScanSummary: jsonSummary{
			TotalFiles:              res.Files,
			SpecialDirectoriesCount: res.SpecialDirs,
			TotalSizeBytes:          res.TotalBytes,
			SkippedPaths:            res.Skipped,
			ErrorCount:              res.ErrorCount,
		},
		SpecialDirectories: entriesByCategory(res.SpecialCategories),
		FilesByCategory:    entriesByCategory(res.FileCategories),
	}

	if report.Usage != nil {
		out.DiskUsage = &jsonDiskUsage{
			TotalBytes:  report.Usage.Total,
			UsedBytes:   report.Usage.Used,
			FreeBytes:   report.Usage.Free,
			UsedPercent: math.Round(report.Usage.UsedPercent()*10) / 10, //nolint:mnd // One decimal
		}

		if report.Trash != nil && report.Trash.Status == diskusage.TrashFound {
			size := report.Trash.Size
			out.DiskUsage.TrashBytes = &size
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintPaths outputs one tracked path per line, largest first.
func PrintPaths(report Report, writer io.Writer) error {
	var entries []scan.Entry

	for _, summary := range report.Result.SortedSpecialCategories() {
		entries = append(entries, summary.Top...)
	}

	for _, summary := range report.Result.SortedFileCategories() {
		entries = append(entries, summary.Top...)
	}

	slices.SortStableFunc(entries, func(a, b scan.Entry) int {
		return cmp.Compare(b.Size, a.Size)
	})

	for _, e := range entries {
		if _, err := fmt.Fprintln(writer, e.Path); err != nil {
			return err
		}
	}

	return nil
}

func bytesOf(n int64) string {
	return humanize.IBytes(uint64(max(n, 0))) //nolint:gosec // Clamped to non-negative
}

func trashLine(trash diskusage.Trash) string {
	if trash.Status != diskusage.TrashFound {
		return trash.Status.String()
	}

	if trash.IsLarge() {
		return bytesOf(trash.Size) + " (consider emptying your trash)"
	}

	return bytesOf(trash.Size)
}

func printSection(w io.Writer, title, rule string, summaries []scan.CategorySummary, unit string) {
	shown := 0

	for _, s := range summaries {
		if len(s.Top) > 0 {
			shown++
		}
	}

	if shown == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n%s\n", title, rule)

	for _, s := range summaries {
		if len(s.Top) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s (%d %s, %s total):\t\n", s.Name, s.Count, unit, bytesOf(s.Bytes))

		for i, e := range s.Top {
			fmt.Fprintf(w, "  %d) %s\t%s\n", i+1, bytesOf(e.Size), e.Path)
		}
	}
}

// PrintTable outputs the report in human-readable table format.
func PrintTable(report Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)
	res := report.Result

	width := report.Width
	if width <= 0 {
		width = defaultWidth
	}

	rule := strings.Repeat("=", width)

	if report.Usage != nil {
		u := report.Usage

		fmt.Fprintf(w, "\nDISK USAGE\n%s\n", rule)
		fmt.Fprintf(w, "  Free:\t%s / %s\n", humanize.IBytes(u.Free), humanize.IBytes(u.Total))
		fmt.Fprintf(w, "  Used:\t%s (%.1f%%)\n", humanize.IBytes(u.Used), u.UsedPercent())

		if report.Trash != nil {
			fmt.Fprintf(w, "  Trash:\t%s\n", trashLine(*report.Trash))
		}
	}

	printSection(w, "SPECIAL DIRECTORIES", rule, res.SortedSpecialCategories(), "directories")
	printSection(w, "LARGEST FILES BY CATEGORY", rule, res.SortedFileCategories(), "files")

	fmt.Fprintf(w, "\nSCAN COMPLETE: %s\n%s\n", res.Root, rule)
	fmt.Fprintf(w, "Files:\t%d\n", res.Files)
	fmt.Fprintf(w, "Special directories:\t%d\n", res.SpecialDirs)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", bytesOf(res.TotalBytes), res.TotalBytes)

	if res.Skipped > 0 {
		fmt.Fprintf(w, "Skipped paths:\t%d\n", res.Skipped)
	}

	if res.ErrorCount > 0 {
		fmt.Fprintf(w, "Unreadable entries:\t%d\n", res.ErrorCount)
	}

	fmt.Fprintf(w, "Elapsed:\t%v\n", res.Elapsed.Round(time.Millisecond))

	return w.Flush()
}
