package reconcile

import (
	"fmt"

	"github.com/siamvotes/votemerge/pkg/election"
)

// registryIndex holds the lookup structures built from the registry input.
// Constituency-scoped entries are keyed by (cons_id, ballot_no); nationwide
// party entries by ballot_no alone. byCons keeps each constituency's rows in
// input order for the name-fallback scan.
type registryIndex struct {
	scoped     map[Key]election.RegistryRecord
	nationwide map[int]election.RegistryRecord
	byCons     map[string][]election.RegistryRecord
}

// buildIndex indexes the registry, applying the duplicate policy and
// emitting one diagnostic per colliding entry, in registry input order.
// Malformed registry rows are skipped with a diagnostic; they enrich
// nothing, so nothing is lost from the output.
func buildIndex(registry []election.RegistryRecord, policy DuplicatePolicy, stats *Statistics) (*registryIndex, []Diagnostic) {
	idx := &registryIndex{
		scoped:     make(map[Key]election.RegistryRecord, len(registry)),
		nationwide: make(map[int]election.RegistryRecord),
		byCons:     make(map[string][]election.RegistryRecord),
	}

	var diags []Diagnostic
	for _, rec := range registry {
		if !rec.HasKey() {
			stats.Malformed++
			diags = append(diags, Diagnostic{
				Kind:    KindMalformedRecord,
				Key:     Key{ConsID: rec.ConsID, BallotNo: rec.BallotNo},
				Message: fmt.Sprintf("registry entry for %q missing constituency or ballot number", rec.CandidateName),
			})
			continue
		}

		if rec.Nationwide {
			if prev, exists := idx.nationwide[rec.BallotNo]; exists {
				stats.Duplicates++
				diags = append(diags, Diagnostic{
					Kind:    KindDuplicateRegistryKey,
					Key:     Key{BallotNo: rec.BallotNo},
					Message: fmt.Sprintf("nationwide ballot %d registered by both %q and %q", rec.BallotNo, prev.PartyName, rec.PartyName),
				})
				if policy == DuplicateFirstWins {
					continue
				}
			}
			idx.nationwide[rec.BallotNo] = rec
			continue
		}

		key := Key{ConsID: rec.ConsID, BallotNo: rec.BallotNo}
		if prev, exists := idx.scoped[key]; exists {
			stats.Duplicates++
			diags = append(diags, Diagnostic{
				Kind:    KindDuplicateRegistryKey,
				Key:     key,
				Message: fmt.Sprintf("ballot %s registered by both %q and %q", key, prev.CandidateName, rec.CandidateName),
			})
			if policy == DuplicateFirstWins {
				continue
			}
			// Last wins: the name-fallback scan must see the same entry
			// the ballot lookup resolves to, so replace the stale row.
			idx.scoped[key] = rec
			rows := idx.byCons[rec.ConsID]
			for i := range rows {
				if rows[i].BallotNo == rec.BallotNo {
					rows[i] = rec
					break
				}
			}
			continue
		}
		idx.scoped[key] = rec
		idx.byCons[rec.ConsID] = append(idx.byCons[rec.ConsID], rec)
	}

	return idx, diags
}

// lookup resolves a result row against the index. Constituency-scoped
// entries take precedence; party-list rows fall back to the nationwide
// party table.
func (idx *registryIndex) lookup(r election.ResultRecord) (election.RegistryRecord, bool) {
	ballot, ok := r.BallotNo()
	if !ok {
		return election.RegistryRecord{}, false
	}

	if rec, found := idx.scoped[Key{ConsID: r.ConsID, BallotNo: ballot}]; found {
		return rec, true
	}
	if r.Contest == election.ContestPartyList {
		if rec, found := idx.nationwide[ballot]; found {
			return rec, true
		}
	}
	return election.RegistryRecord{}, false
}
