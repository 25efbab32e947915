// Package reconcile joins official constituency results with candidate and
// party ballot registrations. The join is left-outer and order-preserving:
// every well-formed result row yields exactly one augmented row, enriched
// with registry identity fields when a registration matches its
// (constituency, ballot number) key and left empty otherwise. All
// data-quality issues surface as diagnostics; none abort the run.
package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siamvotes/votemerge/pkg/election"
	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/logging"
	"github.com/siamvotes/votemerge/pkg/thai"
)

// Reconciler joins result and registry datasets into augmented records.
type Reconciler interface {
	// Reconcile performs the join. Nil input slices are a hard error;
	// empty slices are valid and yield an empty result. The inputs are
	// never mutated, and identical inputs produce identical results,
	// diagnostics ordering included.
	Reconcile(results []election.ResultRecord, registry []election.RegistryRecord) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	duplicatePolicy DuplicatePolicy
	nameFallback    bool
	sampleLimit     int
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		duplicatePolicy: options.duplicatePolicy,
		nameFallback:    options.nameFallback,
		sampleLimit:     options.sampleLimit,
	}, nil
}

// Reconcile implements the Reconciler interface.
func (r *reconciler) Reconcile(results []election.ResultRecord, registry []election.RegistryRecord) (*Result, error) {
	if results == nil {
		return nil, fmt.Errorf("results: %w", errors.ErrAbsentInput)
	}
	if registry == nil {
		return nil, fmt.Errorf("registry: %w", errors.ErrAbsentInput)
	}

	start := time.Now()
	stats := Statistics{
		ResultsIn:  len(results),
		RegistryIn: len(registry),
	}

	idx, diags := buildIndex(registry, r.duplicatePolicy, &stats)

	augmented := make([]election.AugmentedRecord, 0, len(results))
	for _, rec := range results {
		if !rec.HasKey() {
			stats.Malformed++
			diags = append(diags, Diagnostic{
				Kind:    KindMalformedRecord,
				Key:     Key{ConsID: rec.ConsID},
				Message: fmt.Sprintf("result row (contest %q, rank %d) missing join key", rec.Contest, rec.Rank),
			})
			continue
		}

		out := election.AugmentedRecord{ResultRecord: rec}

		match, found := idx.lookup(rec)
		if !found && r.nameFallback {
			match, found = idx.matchByName(rec)
			if found {
				stats.MatchedByName++
			}
		}

		if found {
			stats.Matched++
			out.CandidateName = match.CandidateName
			out.PartyName = match.PartyName
			out.PartyAbbr = match.PartyAbbr
		} else {
			stats.Unmatched++
			ballot, _ := rec.BallotNo()
			diags = append(diags, Diagnostic{
				Kind:    KindUnmatchedResult,
				Key:     Key{ConsID: rec.ConsID, BallotNo: ballot},
				Message: fmt.Sprintf("no registry entry for %s contest ballot %d", rec.Contest, ballot),
			})
		}

		augmented = append(augmented, out)
	}

	rankDiags := checkRanks(results)
	stats.RankGaps = len(rankDiags)
	diags = append(diags, rankDiags...)

	end := time.Now()
	result := &Result{
		Augmented:   augmented,
		Diagnostics: diags,
		sampleLimit: r.sampleLimit,
		Metadata: Metadata{
			RunID:     uuid.New(),
			StartTime: start,
			EndTime:   end,
			Duration:  end.Sub(start),
			Stats:     stats,
		},
	}

	logging.Debug().
		Int("results_in", stats.ResultsIn).
		Int("registry_in", stats.RegistryIn).
		Int("matched", stats.Matched).
		Int("unmatched", stats.Unmatched).
		Int("malformed", stats.Malformed).
		Msg("Reconciliation complete")

	return result, nil
}

// matchByName scans the row's constituency registrations for a name match.
// Only constituency contests qualify: party-list identity is the ballot
// number itself, and guessing parties by name invites false positives.
func (idx *registryIndex) matchByName(r election.ResultRecord) (election.RegistryRecord, bool) {
	if r.Contest != election.ContestConstituency || r.ReportedCandidateName == "" {
		return election.RegistryRecord{}, false
	}
	for _, reg := range idx.byCons[r.ConsID] {
		if thai.SameName(r.ReportedCandidateName, reg.CandidateName) {
			return reg, true
		}
	}
	return election.RegistryRecord{}, false
}
