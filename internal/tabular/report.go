package tabular

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/siamvotes/votemerge/pkg/reconcile"
)

// WriteSummary renders the operator summary: run statistics, per-kind
// diagnostic counts, and a sampled list of diagnostics per kind. Sampling
// keeps the terminal readable on bad days; the full list is in the
// diagnostics export. A non-positive sampleLimit falls back to the limit
// the reconciler was configured with.
func WriteSummary(w io.Writer, result *reconcile.Result, sampleLimit int) error {
	if sampleLimit <= 0 {
		sampleLimit = result.SampleLimit()
	}
	stats := result.Metadata.Stats

	fmt.Fprintf(w, "Run %s completed in %s\n\n", result.Metadata.RunID, result.Metadata.Duration.Round(time.Millisecond))

	statsTable := tablewriter.NewTable(w)
	statsTable.Header("Metric", "Count")
	rows := [][]any{
		{"Result rows in", stats.ResultsIn},
		{"Registry rows in", stats.RegistryIn},
		{"Matched", stats.Matched},
		{"Matched by name", stats.MatchedByName},
		{"Unmatched", stats.Unmatched},
		{"Malformed", stats.Malformed},
		{"Duplicate registry keys", stats.Duplicates},
		{"Rank gaps", stats.RankGaps},
	}
	for _, row := range rows {
		if err := statsTable.Append(row...); err != nil {
			return err
		}
	}
	if err := statsTable.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Match rate: %.1f%%\n", result.MatchRate()*100)

	if !result.HasIssues() {
		fmt.Fprintln(w, "No data-quality issues found.")
		return nil
	}

	fmt.Fprintln(w)
	diagTable := tablewriter.NewTable(w)
	diagTable.Header("Kind", "Key", "Message")

	kinds := []reconcile.Kind{
		reconcile.KindMalformedRecord,
		reconcile.KindDuplicateRegistryKey,
		reconcile.KindUnmatchedResult,
		reconcile.KindRankGap,
	}
	counts := result.Counts()
	for _, kind := range kinds {
		for _, d := range result.Sample(kind, sampleLimit) {
			if err := diagTable.Append(string(d.Kind), d.Key.String(), d.Message); err != nil {
				return err
			}
		}
		if extra := counts[kind] - sampleLimit; extra > 0 {
			if err := diagTable.Append(string(kind), "", fmt.Sprintf("... and %d more", extra)); err != nil {
				return err
			}
		}
	}
	return diagTable.Render()
}
