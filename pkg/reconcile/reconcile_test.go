package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamvotes/votemerge/pkg/election"
	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/reconcile"
)

func constituencyResult(consID string, ballot, votes int) election.ResultRecord {
	return election.ResultRecord{
		ConsID:            consID,
		Contest:           election.ContestConstituency,
		Rank:              1,
		CandidateBallotNo: election.IntPtr(ballot),
		Votes:             votes,
	}
}

func partyListResult(consID string, ballot, rank int) election.ResultRecord {
	return election.ResultRecord{
		ConsID:        consID,
		Contest:       election.ContestPartyList,
		Rank:          rank,
		PartyBallotNo: election.IntPtr(ballot),
	}
}

func registryEntry(consID string, ballot int, candidate, party string) election.RegistryRecord {
	return election.RegistryRecord{
		ConsID:        consID,
		BallotNo:      ballot,
		CandidateName: candidate,
		PartyName:     party,
		PartyAbbr:     party,
	}
}

func newReconciler(t *testing.T, opts ...reconcile.Option) reconcile.Reconciler {
	t.Helper()
	r, err := reconcile.New(opts...)
	require.NoError(t, err)
	return r
}

func TestReconcileExactMatch(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{
		{
			ConsID:            "BKK_1",
			Contest:           election.ContestConstituency,
			Rank:              1,
			CandidateBallotNo: election.IntPtr(3),
			Votes:             15000,
		},
	}
	registry := []election.RegistryRecord{
		registryEntry("BKK_1", 3, "Somchai", "X"),
	}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)

	got := result.Augmented[0]
	assert.Equal(t, "Somchai", got.CandidateName)
	assert.Equal(t, "X", got.PartyName)
	assert.Equal(t, 15000, got.Votes)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, 1, result.Metadata.Stats.Matched)
}

func TestReconcileUnmatched(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{constituencyResult("BKK_1", 9, 500)}
	registry := []election.RegistryRecord{registryEntry("BKK_1", 3, "Somchai", "X")}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)

	got := result.Augmented[0]
	assert.Empty(t, got.CandidateName)
	assert.False(t, got.Matched())

	require.Len(t, result.Diagnostics, 1)
	diag := result.Diagnostics[0]
	assert.Equal(t, reconcile.KindUnmatchedResult, diag.Kind)
	assert.Equal(t, reconcile.Key{ConsID: "BKK_1", BallotNo: 9}, diag.Key)
}

func TestReconcileDuplicateRegistryLastWins(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{constituencyResult("BKK_2", 1, 100)}
	registry := []election.RegistryRecord{
		registryEntry("BKK_2", 1, "First Entry", "A"),
		registryEntry("BKK_2", 1, "Second Entry", "B"),
	}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)

	dups := result.Sample(reconcile.KindDuplicateRegistryKey, 10)
	require.Len(t, dups, 1)
	assert.Equal(t, reconcile.Key{ConsID: "BKK_2", BallotNo: 1}, dups[0].Key)

	// Later entry wins under the default policy.
	require.Len(t, result.Augmented, 1)
	assert.Equal(t, "Second Entry", result.Augmented[0].CandidateName)
}

func TestReconcileDuplicateRegistryFirstWins(t *testing.T) {
	r := newReconciler(t, reconcile.WithDuplicatePolicy(reconcile.DuplicateFirstWins))

	results := []election.ResultRecord{constituencyResult("BKK_2", 1, 100)}
	registry := []election.RegistryRecord{
		registryEntry("BKK_2", 1, "First Entry", "A"),
		registryEntry("BKK_2", 1, "Second Entry", "B"),
	}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)
	assert.Equal(t, "First Entry", result.Augmented[0].CandidateName)
	assert.Equal(t, 1, result.Metadata.Stats.Duplicates)
}

func TestReconcilePartyListScopedBeatsNationwide(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{partyListResult("BKK_1", 5, 1)}
	registry := []election.RegistryRecord{
		{BallotNo: 5, PartyName: "Nationwide Party", Nationwide: true},
		{ConsID: "BKK_1", BallotNo: 5, PartyName: "Scoped Party"},
	}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)
	assert.Equal(t, "Scoped Party", result.Augmented[0].PartyName)
}

func TestReconcilePartyListNationwideFallback(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{partyListResult("CNX_2", 31, 1)}
	registry := []election.RegistryRecord{
		{BallotNo: 31, PartyName: "Move Ahead", PartyAbbr: "MA", Nationwide: true},
	}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)
	assert.Equal(t, "Move Ahead", result.Augmented[0].PartyName)
	assert.Equal(t, "MA", result.Augmented[0].PartyAbbr)
}

func TestReconcileMalformedExcluded(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{
		constituencyResult("BKK_1", 1, 100),
		{Contest: election.ContestConstituency, Rank: 2}, // no cons, no ballot
		{ConsID: "BKK_1", Contest: election.ContestConstituency, Rank: 3}, // no ballot
	}
	registry := []election.RegistryRecord{registryEntry("BKK_1", 1, "Somchai", "X")}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)

	assert.Len(t, result.Augmented, 1)
	assert.Equal(t, 2, result.Metadata.Stats.Malformed)
	assert.Len(t, result.Sample(reconcile.KindMalformedRecord, 10), 2)
}

func TestReconcileCardinality(t *testing.T) {
	r := newReconciler(t)

	var results []election.ResultRecord
	for ballot := 1; ballot <= 8; ballot++ {
		rec := constituencyResult("BKK_1", ballot, 100*ballot)
		rec.Rank = ballot
		results = append(results, rec)
	}
	// Two malformed rows in the middle.
	results = append(results[:4], append([]election.ResultRecord{
		{Contest: election.ContestConstituency},
		{Contest: election.ContestConstituency},
	}, results[4:]...)...)

	registry := []election.RegistryRecord{registryEntry("BKK_1", 2, "Somchai", "X")}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)

	// Output cardinality equals the count of well-formed inputs.
	assert.Len(t, result.Augmented, 8)
	assert.Equal(t, 10, result.Metadata.Stats.ResultsIn)
}

func TestReconcilePreservesInputOrder(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{
		constituencyResult("BKK_3", 2, 50),
		constituencyResult("BKK_1", 1, 500),
		constituencyResult("BKK_2", 4, 200),
	}

	result, err := r.Reconcile(results, []election.RegistryRecord{})
	require.NoError(t, err)
	require.Len(t, result.Augmented, 3)
	assert.Equal(t, "BKK_3", result.Augmented[0].ConsID)
	assert.Equal(t, "BKK_1", result.Augmented[1].ConsID)
	assert.Equal(t, "BKK_2", result.Augmented[2].ConsID)
}

func TestReconcileIdempotent(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{
		constituencyResult("BKK_1", 1, 100),
		constituencyResult("BKK_1", 9, 50),
		partyListResult("BKK_1", 31, 1),
	}
	registry := []election.RegistryRecord{
		registryEntry("BKK_1", 1, "Somchai", "X"),
		registryEntry("BKK_1", 1, "Somchai Again", "X"),
		{BallotNo: 31, PartyName: "Move Ahead", Nationwide: true},
	}

	first, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	second, err := r.Reconcile(results, registry)
	require.NoError(t, err)

	assert.Equal(t, first.Augmented, second.Augmented)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
	assert.Equal(t, first.Metadata.Stats, second.Metadata.Stats)
}

func TestReconcileSampleLimitCarried(t *testing.T) {
	r := newReconciler(t, reconcile.WithSampleLimit(1))

	var results []election.ResultRecord
	for i, ballot := range []int{7, 8, 9} {
		rec := constituencyResult("BKK_1", ballot, 100-10*i)
		rec.Rank = i + 1
		results = append(results, rec)
	}

	result, err := r.Reconcile(results, []election.RegistryRecord{})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 3)

	assert.Equal(t, 1, result.SampleLimit())
	assert.Len(t, result.Samples(reconcile.KindUnmatchedResult), 1)

	// An explicit limit still overrides the configured one.
	assert.Len(t, result.Sample(reconcile.KindUnmatchedResult, 10), 3)
}

func TestNameFallbackSeesLastWinsEntry(t *testing.T) {
	results := []election.ResultRecord{
		{
			ConsID:                "BKK_1",
			Contest:               election.ContestConstituency,
			Rank:                  1,
			CandidateBallotNo:     election.IntPtr(99), // not in registry
			ReportedCandidateName: "สมชาย ใจดี",
		},
	}
	registry := []election.RegistryRecord{
		{ConsID: "BKK_1", BallotNo: 3, CandidateName: "สมชาย ใจดี", PartyName: "Old Party"},
		{ConsID: "BKK_1", BallotNo: 3, CandidateName: "สมชาย ใจดี", PartyName: "Corrected Party"},
	}

	// Last-wins: the name path resolves the duplicate the same way the
	// ballot path does.
	r := newReconciler(t, reconcile.WithNameFallback(true))
	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)
	assert.Equal(t, "Corrected Party", result.Augmented[0].PartyName)
	assert.Equal(t, 1, result.Metadata.Stats.Duplicates)

	r = newReconciler(t,
		reconcile.WithNameFallback(true),
		reconcile.WithDuplicatePolicy(reconcile.DuplicateFirstWins),
	)
	result, err = r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)
	assert.Equal(t, "Old Party", result.Augmented[0].PartyName)
}

func TestReconcileRankGapWarning(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{
		partyListResult("BKK_3", 10, 1),
		partyListResult("BKK_3", 11, 2),
		partyListResult("BKK_3", 12, 4), // gap at 3
	}

	result, err := r.Reconcile(results, []election.RegistryRecord{})
	require.NoError(t, err)

	// All rows survive.
	assert.Len(t, result.Augmented, 3)

	gaps := result.Sample(reconcile.KindRankGap, 10)
	require.Len(t, gaps, 1)
	assert.Equal(t, "BKK_3", gaps[0].Key.ConsID)
	assert.Contains(t, gaps[0].Message, "missing 3")
	assert.Equal(t, 1, result.Metadata.Stats.RankGaps)
}

func TestReconcileRepeatedRankWarning(t *testing.T) {
	r := newReconciler(t)

	// [1, 2, 2] leaves no hole but breaks rank uniqueness.
	results := []election.ResultRecord{
		partyListResult("BKK_4", 10, 1),
		partyListResult("BKK_4", 11, 2),
		partyListResult("BKK_4", 12, 2),
	}

	result, err := r.Reconcile(results, []election.RegistryRecord{})
	require.NoError(t, err)
	assert.Len(t, result.Augmented, 3)

	gaps := result.Sample(reconcile.KindRankGap, 10)
	require.Len(t, gaps, 1)
	assert.Contains(t, gaps[0].Message, "repeated 2")
	assert.Equal(t, 1, result.Metadata.Stats.RankGaps)
}

func TestReconcileAbsentInputs(t *testing.T) {
	r := newReconciler(t)

	_, err := r.Reconcile(nil, []election.RegistryRecord{})
	assert.True(t, errors.IsAbsentInput(err))

	_, err = r.Reconcile([]election.ResultRecord{}, nil)
	assert.True(t, errors.IsAbsentInput(err))

	// Empty is not absent.
	result, err := r.Reconcile([]election.ResultRecord{}, []election.RegistryRecord{})
	require.NoError(t, err)
	assert.Empty(t, result.Augmented)
	assert.Empty(t, result.Diagnostics)
}

func TestReconcileNameFallback(t *testing.T) {
	results := []election.ResultRecord{
		{
			ConsID:                "BKK_1",
			Contest:               election.ContestConstituency,
			Rank:                  1,
			CandidateBallotNo:     election.IntPtr(99), // not in registry
			ReportedCandidateName: "นายสมชาย ใจดี",
		},
	}
	registry := []election.RegistryRecord{
		registryEntry("BKK_1", 3, "สมชาย ใจดี", "X"),
	}

	// Without fallback the row stays unmatched.
	r := newReconciler(t)
	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)
	assert.False(t, result.Augmented[0].Matched())

	// With fallback it matches by normalized name.
	r = newReconciler(t, reconcile.WithNameFallback(true))
	result, err = r.Reconcile(results, registry)
	require.NoError(t, err)
	require.Len(t, result.Augmented, 1)
	assert.Equal(t, "สมชาย ใจดี", result.Augmented[0].CandidateName)
	assert.Equal(t, 1, result.Metadata.Stats.MatchedByName)
	assert.Empty(t, result.Sample(reconcile.KindUnmatchedResult, 10))
}

func TestReconcileInputsNotMutated(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{constituencyResult("BKK_1", 3, 100)}
	registry := []election.RegistryRecord{registryEntry("BKK_1", 3, "Somchai", "X")}

	resultsCopy := make([]election.ResultRecord, len(results))
	copy(resultsCopy, results)
	registryCopy := make([]election.RegistryRecord, len(registry))
	copy(registryCopy, registry)

	_, err := r.Reconcile(results, registry)
	require.NoError(t, err)

	assert.Equal(t, resultsCopy, results)
	assert.Equal(t, registryCopy, registry)
}

func TestResultCountsAndMatchRate(t *testing.T) {
	r := newReconciler(t)

	results := []election.ResultRecord{
		constituencyResult("BKK_1", 1, 100),
		constituencyResult("BKK_1", 9, 50),
	}
	registry := []election.RegistryRecord{registryEntry("BKK_1", 1, "Somchai", "X")}

	result, err := r.Reconcile(results, registry)
	require.NoError(t, err)

	counts := result.Counts()
	assert.Equal(t, 1, counts[reconcile.KindUnmatchedResult])
	assert.InDelta(t, 0.5, result.MatchRate(), 1e-9)
	assert.True(t, result.HasIssues())
}

func TestInvalidOptions(t *testing.T) {
	_, err := reconcile.New(reconcile.WithDuplicatePolicy("majority_vote"))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconcile.New(reconcile.WithSampleLimit(-1))
	assert.True(t, errors.IsValidationError(err))
}
