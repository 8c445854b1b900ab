// Package stats reports the contents of an archive root: per-month photo
// and video counts, plus the duplicates and snapshot holding areas. A
// report taken before and after a batch run yields the run's net effect.
package stats

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"pv-go/internal/pv"
)

// Row is the file count of one year-month archive bucket.
type Row struct {
	Month  string
	Photos int
	Videos int
}

// Total is the combined photo and video count of the bucket.
func (r Row) Total() int { return r.Photos + r.Videos }

// Report is a point-in-time census of the archive root.
type Report struct {
	Months     []Row
	Duplicates int
	Snapshots  int
}

// TotalFiles is the combined count across all months and holding areas.
func (r *Report) TotalFiles() int {
	n := r.Duplicates + r.Snapshots
	for _, m := range r.Months {
		n += m.Total()
	}
	return n
}

// Scan walks the archive layout and counts files per bucket. Missing
// directories count zero; a fresh root scans clean. Only 6-digit-named
// archive subdirectories count as months, so the ERROR bucket and any
// stray directories never surface as rows. The snapshot count is
// recursive because repeated runs can nest structure there; the
// duplicates area is flat.
func Scan(layout pv.Layout) (*Report, error) {
	report := &Report{
		Duplicates: countFiles(layout.DuplicatesDir()),
		Snapshots:  countFilesRecursive(layout.SnapshotDir()),
	}

	entries, err := os.ReadDir(layout.ArchiveDir())
	if os.IsNotExist(err) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || !isMonthName(entry.Name()) {
			continue
		}
		month := filepath.Join(layout.ArchiveDir(), entry.Name())
		report.Months = append(report.Months, Row{
			Month:  entry.Name(),
			Photos: countFiles(filepath.Join(month, pv.KindPhoto.BucketDir())),
			Videos: countFiles(filepath.Join(month, pv.KindVideo.BucketDir())),
		})
	}

	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})
	return report, nil
}

// isMonthName reports whether name is a YYYYMM bucket name.
func isMonthName(name string) bool {
	if len(name) != 6 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

func countFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			n++
		}
	}
	return n
}

func countFilesRecursive(dir string) int {
	n := 0
	filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			n++
		}
		return nil
	})
	return n
}

// Cell is one compared count: the after value plus its change.
type Cell struct {
	Count int
	Diff  int // after minus before
}

// String renders the count with a direction marker when it changed.
func (c Cell) String() string {
	switch {
	case c.Diff > 0:
		return fmt.Sprintf("%d ↑%d", c.Count, c.Diff)
	case c.Diff < 0:
		return fmt.Sprintf("%d ↓%d", c.Count, -c.Diff)
	default:
		return strconv.Itoa(c.Count)
	}
}

// Delta is the per-cell change of one bucket between two reports. Holding
// areas carry only the Total cell.
type Delta struct {
	Bucket string
	Photos Cell
	Videos Cell
	Total  Cell
}

// Changed reports whether any cell moved. A month whose photo gain cancels
// its video loss still counts as changed.
func (d Delta) Changed() bool {
	return d.Photos.Diff != 0 || d.Videos.Diff != 0 || d.Total.Diff != 0
}

// Compare returns the buckets whose counts changed between before and
// after, with per-cell deltas: month buckets first, holding areas last.
func Compare(before, after *Report) []Delta {
	prev := make(map[string]Row, len(before.Months))
	for _, m := range before.Months {
		prev[m.Month] = m
	}
	seen := make(map[string]bool, len(after.Months))

	var deltas []Delta
	for _, m := range after.Months {
		seen[m.Month] = true
		if d := monthDelta(prev[m.Month], m); d.Changed() {
			deltas = append(deltas, d)
		}
	}
	for _, m := range before.Months {
		if seen[m.Month] {
			continue
		}
		if d := monthDelta(m, Row{Month: m.Month}); d.Changed() {
			deltas = append(deltas, d)
		}
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Bucket < deltas[j].Bucket })

	if diff := after.Duplicates - before.Duplicates; diff != 0 {
		deltas = append(deltas, Delta{
			Bucket: "duplicates",
			Total:  Cell{Count: after.Duplicates, Diff: diff},
		})
	}
	if diff := after.Snapshots - before.Snapshots; diff != 0 {
		deltas = append(deltas, Delta{
			Bucket: "snapshot",
			Total:  Cell{Count: after.Snapshots, Diff: diff},
		})
	}
	return deltas
}

func monthDelta(before, after Row) Delta {
	return Delta{
		Bucket: after.Month,
		Photos: Cell{Count: after.Photos, Diff: after.Photos - before.Photos},
		Videos: Cell{Count: after.Videos, Diff: after.Videos - before.Videos},
		Total:  Cell{Count: after.Total(), Diff: after.Total() - before.Total()},
	}
}

// isHoldingArea marks the rows that have no photo/video split.
func isHoldingArea(bucket string) bool {
	return bucket == "duplicates" || bucket == "snapshot"
}

// Render writes the report as a table.
func Render(w io.Writer, r *Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Month", "Photos", "Videos", "Total"})
	for _, m := range r.Months {
		table.Append([]string{
			m.Month,
			fmt.Sprintf("%d", m.Photos),
			fmt.Sprintf("%d", m.Videos),
			fmt.Sprintf("%d", m.Total()),
		})
	}
	table.Append([]string{"duplicates", "", "", fmt.Sprintf("%d", r.Duplicates)})
	table.Append([]string{"snapshot", "", "", fmt.Sprintf("%d", r.Snapshots)})
	table.SetFooter([]string{"", "", "total", fmt.Sprintf("%d", r.TotalFiles())})
	table.Render()
}

// RenderDeltas writes the changed buckets of a before/after comparison as
// a table, one marked cell per changed count. No deltas means the run
// changed nothing.
func RenderDeltas(w io.Writer, deltas []Delta) {
	if len(deltas) == 0 {
		fmt.Fprintln(w, "no changes")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Bucket", "Photos", "Videos", "Total"})
	for _, d := range deltas {
		photos, videos := d.Photos.String(), d.Videos.String()
		if isHoldingArea(d.Bucket) {
			photos, videos = "", ""
		}
		table.Append([]string{d.Bucket, photos, videos, d.Total.String()})
	}
	table.Render()
}
