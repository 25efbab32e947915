package ectreport

import (
	"sort"

	"github.com/siamvotes/votemerge/pkg/election"
)

// refData holds the reference lookups needed to flatten stats_cons.json.
type refData struct {
	provinces  map[string]provinceInfo
	cons       map[string]consInfo
	parties    map[int]partyInfo
	candidates map[string]mpCandidate
}

func newRefData(provinces provincesPayload, cons []consInfo, parties []partyInfo, candidates []mpCandidate) *refData {
	ref := &refData{
		provinces:  make(map[string]provinceInfo, len(provinces.Province)),
		cons:       make(map[string]consInfo, len(cons)),
		parties:    make(map[int]partyInfo, len(parties)),
		candidates: make(map[string]mpCandidate, len(candidates)),
	}
	for _, p := range provinces.Province {
		ref.provinces[p.ProvID] = p
	}
	for _, c := range cons {
		ref.cons[c.ConsID] = c
	}
	for _, p := range parties {
		ref.parties[p.ID] = p
	}
	for _, c := range candidates {
		ref.candidates[c.MpAppID] = c
	}
	return ref
}

// flatten turns the per-constituency stats tree into flat result records:
// one row per constituency candidate, then one row per party-list line,
// ordered by votes descending within each group. Constituency aggregates are
// duplicated onto every row, matching the published tabular shape.
func flatten(stats statsPayload, ref *refData) []election.ResultRecord {
	var rows []election.ResultRecord

	for _, prov := range stats.ResultProvince {
		provName := prov.ProvID
		if p, ok := ref.provinces[prov.ProvID]; ok {
			provName = p.Province
		}

		for _, cons := range prov.Constituencies {
			info, ok := ref.cons[cons.ConsID]
			if !ok || info.ConsNo == 0 {
				continue
			}

			base := election.ResultRecord{
				Province: provName,
				ProvID:   prov.ProvID,
				ConsID:   election.ConstituencyKey(provName, info.ConsNo),
				ConsNo:   info.ConsNo,
				Zones:    joinZones(info.Zone),
				Stats: election.ConstituencyStats{
					RegisteredVoters:    info.RegisteredVote,
					ConsTurnout:         cons.TurnOut,
					ConsTurnoutPct:      cons.PercentTurnOut,
					ConsValid:           cons.ValidVotes,
					ConsInvalid:         cons.InvalidVotes,
					ConsBlank:           cons.BlankVotes,
					PartyListTurnout:    cons.PartyListTurnOut,
					PartyListTurnoutPct: cons.PartyListPercentTurnOut,
					PartyListValid:      cons.PartyListValidVotes,
					PartyListInvalid:    cons.PartyListInvalidVotes,
					PartyListBlank:      cons.PartyListBlankVotes,
				},
			}

			rows = append(rows, candidateRows(base, cons.Candidates, ref)...)
			rows = append(rows, partyListRows(base, cons.ResultParty, ref)...)
		}
	}

	return rows
}

// candidateRows builds constituency-contest rows ordered by votes descending.
func candidateRows(base election.ResultRecord, candidates []candidateResult, ref *refData) []election.ResultRecord {
	sorted := make([]candidateResult, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MpAppVote > sorted[j].MpAppVote
	})

	rows := make([]election.ResultRecord, 0, len(sorted))
	for _, cand := range sorted {
		row := base
		row.Contest = election.ContestConstituency
		row.Rank = cand.MpAppRank
		row.Votes = cand.MpAppVote
		row.VotePct = cand.MpAppVotePercent

		if info, ok := ref.candidates[cand.MpAppID]; ok {
			row.ReportedCandidateName = info.MpAppName
			if info.MpAppNo != nil {
				n := *info.MpAppNo
				row.CandidateBallotNo = &n
			}
		}
		if party, ok := ref.parties[cand.PartyID]; ok {
			row.ReportedPartyName = party.Name
			if party.PartyNo != nil {
				n := *party.PartyNo
				row.PartyBallotNo = &n
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// partyListRows builds party-list rows ordered by votes descending, ranked
// 1-based. Zero-vote lines are dropped, as the published tables drop them.
func partyListRows(base election.ResultRecord, results []partyResult, ref *refData) []election.ResultRecord {
	sorted := make([]partyResult, 0, len(results))
	for _, r := range results {
		if r.PartyListVote > 0 {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PartyListVote > sorted[j].PartyListVote
	})

	rows := make([]election.ResultRecord, 0, len(sorted))
	for i, r := range sorted {
		row := base
		row.Contest = election.ContestPartyList
		row.Rank = i + 1
		row.Votes = r.PartyListVote
		row.VotePct = r.PartyListVotePercent

		if party, ok := ref.parties[r.PartyID]; ok {
			row.ReportedPartyName = party.Name
			if party.PartyNo != nil {
				n := *party.PartyNo
				row.PartyBallotNo = &n
			}
		}

		rows = append(rows, row)
	}
	return rows
}

func joinZones(zones []string) string {
	out := ""
	for i, z := range zones {
		if i > 0 {
			out += ", "
		}
		out += z
	}
	return out
}
