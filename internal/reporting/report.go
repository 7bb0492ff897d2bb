// Package reporting renders experiment outcomes for humans (plain text
// bucket tables) and for machines (JSON).
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rankeval/ileval/internal/experiment"
	"github.com/rankeval/ileval/internal/power"
)

// FormatText renders the outcome as one bucket table per grid cell.
func FormatText(outcome *experiment.Outcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Experiment: %s\n", outcome.Name)
	fmt.Fprintf(&b, "Pairs: %d | Trials per simulation: %d | Depth: %d | alpha=%.3f beta=%.3f\n",
		outcome.Setup.Pairs, outcome.Setup.Trials, outcome.Setup.Depth,
		outcome.Setup.Alpha, outcome.Setup.Beta)

	for _, cell := range outcome.Cells {
		fmt.Fprintf(&b, "\n%s + %s\n", cell.Model, cell.Interleaver)
		b.WriteString(formatBuckets(cell.Buckets))
	}
	return b.String()
}

func formatBuckets(buckets []power.BucketSummary) string {
	var b strings.Builder
	b.WriteString("  dERR bucket        min   median      max       mean   stddev    count\n")
	for _, bucket := range buckets {
		label := fmt.Sprintf("[%.3f - %.3f)", bucket.Lo, bucket.Hi)
		if !bucket.HasInfo {
			fmt.Fprintf(&b, "  %-17s %s\n", label, "NO DATA")
			continue
		}
		fmt.Fprintf(&b, "  %-17s %5d %8d %8d %10.1f %8.1f %8d\n",
			label, bucket.Min, bucket.Median, bucket.Max, bucket.Mean, bucket.StdDev, bucket.Count)
	}
	return b.String()
}

// WriteJSON writes the outcome as indented JSON to w.
func WriteJSON(w io.Writer, outcome *experiment.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome); err != nil {
		return fmt.Errorf("reporting: encode outcome: %w", err)
	}
	return nil
}

// SaveJSON writes the outcome to the named file.
func SaveJSON(path string, outcome *experiment.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("reporting: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	if err := WriteJSON(f, outcome); err != nil {
		return err
	}
	return f.Close()
}
