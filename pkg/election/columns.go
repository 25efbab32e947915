package election

import "strconv"

// Columns is the tabular serialization contract for augmented records.
// The order is load-bearing: downstream consumers index by position.
func Columns() []string {
	return []string{
		"province",
		"prov_id",
		"cons_id",
		"cons_no",
		"zones",
		"registered_voters",
		"cons_turnout",
		"cons_turnout_pct",
		"cons_valid",
		"cons_invalid",
		"cons_blank",
		"party_list_turnout",
		"party_list_turnout_pct",
		"party_list_valid",
		"party_list_invalid",
		"party_list_blank",
		"type",
		"rank",
		"candidate_ballot_no",
		"candidate_name",
		"party_ballot_no",
		"party_name",
		"party_abbr",
		"votes",
		"vote_pct",
	}
}

// Row serializes the record into one tabular row matching Columns().
func (a AugmentedRecord) Row() []string {
	return []string{
		a.Province,
		a.ProvID,
		a.ConsID,
		strconv.Itoa(a.ConsNo),
		a.Zones,
		strconv.Itoa(a.Stats.RegisteredVoters),
		strconv.Itoa(a.Stats.ConsTurnout),
		formatPct(a.Stats.ConsTurnoutPct),
		strconv.Itoa(a.Stats.ConsValid),
		strconv.Itoa(a.Stats.ConsInvalid),
		strconv.Itoa(a.Stats.ConsBlank),
		strconv.Itoa(a.Stats.PartyListTurnout),
		formatPct(a.Stats.PartyListTurnoutPct),
		strconv.Itoa(a.Stats.PartyListValid),
		strconv.Itoa(a.Stats.PartyListInvalid),
		strconv.Itoa(a.Stats.PartyListBlank),
		a.Contest.String(),
		strconv.Itoa(a.Rank),
		formatOptional(a.CandidateBallotNo),
		a.CandidateName,
		formatOptional(a.PartyBallotNo),
		a.PartyName,
		a.PartyAbbr,
		strconv.Itoa(a.Votes),
		formatPct(a.VotePct),
	}
}

// formatOptional renders an optional ballot number, empty when absent.
func formatOptional(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// formatPct renders a percentage with minimal digits, matching the source
// feed's mixed int/float representation.
func formatPct(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IntPtr returns a pointer to n. Convenience for building optional fields.
func IntPtr(n int) *int {
	return &n
}
