package ectreport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamvotes/votemerge/internal/transport"
	"github.com/siamvotes/votemerge/pkg/election"
)

func intp(n int) *int { return &n }

func testRefData() *refData {
	return newRefData(
		provincesPayload{Province: []provinceInfo{
			{ProvID: "10", Province: "กรุงเทพมหานคร"},
		}},
		[]consInfo{
			{ConsID: "10001", ConsNo: 1, Zone: []string{"พระนคร", "ดุสิต"}, RegisteredVote: 120000},
			{ConsID: "10099", ConsNo: 0}, // placeholder entry, dropped
		},
		[]partyInfo{
			{ID: 1, Name: "พรรคหนึ่ง", Abbr: "ห.", PartyNo: intp(7)},
			{ID: 2, Name: "พรรคสอง", Abbr: "ส.", PartyNo: intp(31)},
		},
		[]mpCandidate{
			{MpAppID: "C1", MpAppName: "สมชาย ใจดี", MpAppNo: intp(3), PartyID: 1},
			{MpAppID: "C2", MpAppName: "วิชัย มั่นคง", MpAppNo: intp(5), PartyID: 2},
		},
	)
}

func testStats() statsPayload {
	return statsPayload{ResultProvince: []provinceStats{
		{
			ProvID: "10",
			Constituencies: []consStats{
				{
					ConsID:         "10001",
					TurnOut:        90000,
					PercentTurnOut: 75,
					ValidVotes:     85000,
					Candidates: []candidateResult{
						{MpAppID: "C2", MpAppRank: 2, MpAppVote: 20000, MpAppVotePercent: 23.5, PartyID: 2},
						{MpAppID: "C1", MpAppRank: 1, MpAppVote: 40000, MpAppVotePercent: 47.1, PartyID: 1},
					},
					ResultParty: []partyResult{
						{PartyID: 2, PartyListVote: 30000, PartyListVotePercent: 35.3},
						{PartyID: 1, PartyListVote: 25000, PartyListVotePercent: 29.4},
						{PartyID: 99, PartyListVote: 0},
					},
				},
				{ConsID: "10099"}, // no reference entry
			},
		},
	}}
}

func TestFlatten(t *testing.T) {
	rows := flatten(testStats(), testRefData())

	// 2 candidate rows + 2 party-list rows (zero-vote line dropped).
	require.Len(t, rows, 4)

	first := rows[0]
	assert.Equal(t, election.ContestConstituency, first.Contest)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 40000, first.Votes)
	assert.Equal(t, "สมชาย ใจดี", first.ReportedCandidateName)
	require.NotNil(t, first.CandidateBallotNo)
	assert.Equal(t, 3, *first.CandidateBallotNo)
	require.NotNil(t, first.PartyBallotNo)
	assert.Equal(t, 7, *first.PartyBallotNo)
	assert.Equal(t, "กรุงเทพมหานคร", first.Province)
	assert.Equal(t, election.ConstituencyKey("กรุงเทพมหานคร", 1), first.ConsID)
	assert.Equal(t, "พระนคร, ดุสิต", first.Zones)
	assert.Equal(t, 120000, first.Stats.RegisteredVoters)
	assert.Equal(t, 75.0, first.Stats.ConsTurnoutPct)

	// Candidate rows are ordered by votes descending.
	assert.Equal(t, 20000, rows[1].Votes)
	assert.Equal(t, 2, rows[1].Rank)

	// Party-list rows follow, re-ranked by votes.
	pl := rows[2]
	assert.Equal(t, election.ContestPartyList, pl.Contest)
	assert.Equal(t, 1, pl.Rank)
	assert.Equal(t, "พรรคสอง", pl.ReportedPartyName)
	require.NotNil(t, pl.PartyBallotNo)
	assert.Equal(t, 31, *pl.PartyBallotNo)
	assert.Nil(t, pl.CandidateBallotNo)

	assert.Equal(t, 2, rows[3].Rank)
	assert.Equal(t, 25000, rows[3].Votes)
}

func TestFlattenEveryRowHasJoinKey(t *testing.T) {
	for _, row := range flatten(testStats(), testRefData()) {
		assert.True(t, row.HasKey(), "row rank %d contest %s", row.Rank, row.Contest)
	}
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/data/data/refs/info_province.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"province":[{"prov_id":"10","province":"กรุงเทพมหานคร"}]}`))
	})
	mux.HandleFunc("/data/data/refs/info_constituency.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"cons_id":"10001","cons_no":1,"zone":["พระนคร"],"registered_vote":1000}]`))
	})
	mux.HandleFunc("/data/data/refs/info_party_overview.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"พรรคหนึ่ง","abbr":"ห.","party_no":7}]`))
	})
	mux.HandleFunc("/data/data/refs/info_mp_candidate.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"mp_app_id":"C1","mp_app_name":"สมชาย ใจดี","mp_app_no":3,"party_id":1}]`))
	})
	mux.HandleFunc("/data/records/stats_cons.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result_province":[{"prov_id":"10","constituencies":[{"cons_id":"10001","turn_out":800,"candidates":[{"mp_app_id":"C1","mp_app_rank":1,"mp_app_vote":500,"party_id":1}]}]}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	src := New(
		transport.New(transport.WithRetries(0)),
		WithStaticBase(srv.URL+"/data"),
		WithStatsBase(srv.URL+"/data"),
	)

	require.NoError(t, src.Fetch(context.Background()))
	require.NoError(t, src.Cleanup())

	results := src.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 500, results[0].Votes)
	assert.True(t, strings.HasPrefix(results[0].ConsID, "กรุงเทพมหานคร_"))
}

func TestFetchPropagatesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := New(
		transport.New(transport.WithRetries(0)),
		WithStaticBase(srv.URL),
		WithStatsBase(srv.URL),
	)

	err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provinces")
}
