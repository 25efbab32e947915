package reconcile

import (
	"time"

	"github.com/google/uuid"

	"github.com/siamvotes/votemerge/pkg/election"
)

// Result is the outcome of one reconciliation run: the augmented dataset in
// result input order, the ordered diagnostics list, and run metadata for the
// operator report.
type Result struct {
	Augmented   []election.AugmentedRecord `json:"augmented" yaml:"augmented"`
	Diagnostics []Diagnostic               `json:"diagnostics" yaml:"diagnostics"`
	Metadata    Metadata                   `json:"metadata" yaml:"metadata"`

	// sampleLimit is the configured per-kind sample size, carried so
	// reporting can default to what the reconciler was built with.
	sampleLimit int
}

// Metadata describes the run itself.
type Metadata struct {
	RunID     uuid.UUID     `json:"run_id" yaml:"run_id"`
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Stats     Statistics    `json:"stats" yaml:"stats"`
}

// Statistics counts what happened to the input records.
type Statistics struct {
	ResultsIn     int `json:"results_in" yaml:"results_in"`
	RegistryIn    int `json:"registry_in" yaml:"registry_in"`
	Matched       int `json:"matched" yaml:"matched"`
	MatchedByName int `json:"matched_by_name" yaml:"matched_by_name"`
	Unmatched     int `json:"unmatched" yaml:"unmatched"`
	Malformed     int `json:"malformed" yaml:"malformed"`
	Duplicates    int `json:"duplicates" yaml:"duplicates"`
	RankGaps      int `json:"rank_gaps" yaml:"rank_gaps"`
}

// HasIssues reports whether any diagnostics were recorded.
func (r *Result) HasIssues() bool {
	return len(r.Diagnostics) > 0
}

// Counts returns the number of diagnostics per kind.
func (r *Result) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, d := range r.Diagnostics {
		counts[d.Kind]++
	}
	return counts
}

// SampleLimit returns the per-kind sample size the reconciler was
// configured with.
func (r *Result) SampleLimit() int {
	return r.sampleLimit
}

// Samples returns up to the configured sample limit of diagnostics of the
// given kind, in recorded order.
func (r *Result) Samples(kind Kind) []Diagnostic {
	return r.Sample(kind, r.sampleLimit)
}

// Sample returns up to limit diagnostics of the given kind, in recorded
// order. A zero or negative limit returns nil.
func (r *Result) Sample(kind Kind, limit int) []Diagnostic {
	if limit <= 0 {
		return nil
	}
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind != kind {
			continue
		}
		out = append(out, d)
		if len(out) == limit {
			break
		}
	}
	return out
}

// MatchRate returns the fraction of well-formed result rows that found a
// registry entry, in [0, 1]. Zero when there were no valid rows.
func (r *Result) MatchRate() float64 {
	valid := r.Metadata.Stats.Matched + r.Metadata.Stats.Unmatched
	if valid == 0 {
		return 0
	}
	return float64(r.Metadata.Stats.Matched) / float64(valid)
}
