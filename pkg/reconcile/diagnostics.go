package reconcile

import "fmt"

// Kind classifies a data-quality issue found during reconciliation.
type Kind string

// Diagnostic kinds. All are record-level and non-fatal.
const (
	// KindMalformedRecord marks an input record missing a required key
	// field. Malformed result rows are excluded from output.
	KindMalformedRecord Kind = "MALFORMED_RECORD"

	// KindDuplicateRegistryKey marks two registry entries sharing a join
	// key. The duplicate policy decides which entry the index keeps.
	KindDuplicateRegistryKey Kind = "DUPLICATE_REGISTRY_KEY"

	// KindUnmatchedResult marks a result row with no registry entry.
	// The row is still output, with empty enrichment fields.
	KindUnmatchedResult Kind = "UNMATCHED_RESULT"

	// KindRankGap marks a constituency contest whose rank sequence is not
	// contiguous from 1. A warning only; no rows are dropped.
	KindRankGap Kind = "RANK_GAP"
)

// Key is the join key a diagnostic refers to. ConsID is empty for
// nationwide party registrations.
type Key struct {
	ConsID   string `json:"cons_id,omitempty" yaml:"cons_id,omitempty"`
	BallotNo int    `json:"ballot_no,omitempty" yaml:"ballot_no,omitempty"`
}

// String renders the key as "cons_id/ballot_no".
func (k Key) String() string {
	if k.ConsID == "" {
		return fmt.Sprintf("*/%d", k.BallotNo)
	}
	return fmt.Sprintf("%s/%d", k.ConsID, k.BallotNo)
}

// Diagnostic describes one data-quality issue encountered while joining the
// result and registry datasets. Diagnostics are ordered deterministically:
// registry index issues first in registry input order, then per-result issues
// in result input order, then rank warnings in group first-appearance order.
type Diagnostic struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Key     Key    `json:"key" yaml:"key"`
	Message string `json:"message" yaml:"message"`
}

// String implements fmt.Stringer for log and report output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Kind, d.Key, d.Message)
}
