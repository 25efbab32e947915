// Package election defines the domain records for Thai election data:
// per-candidate constituency results as reported by the ECT, candidate and
// party ballot registrations from Vote62, and the augmented records produced
// by joining the two. All records are value types constructed once by a
// source and never mutated afterward.
package election

import "slices"

// ContestType identifies which contest a result row belongs to.
type ContestType string

// Contest types.
const (
	// ContestConstituency is the single-member constituency MP contest.
	ContestConstituency ContestType = "constituency"
	// ContestPartyList is the proportional-representation party-list contest.
	ContestPartyList ContestType = "party_list"
)

// ContestTypes returns all defined contest types.
func ContestTypes() []ContestType {
	return []ContestType{ContestConstituency, ContestPartyList}
}

// IsValid returns true if the contest type is one of the defined constants.
func (t ContestType) IsValid() bool {
	return slices.Contains(ContestTypes(), t)
}

// String returns the string representation of the contest type.
func (t ContestType) String() string {
	return string(t)
}

// ConstituencyStats holds the constituency-level aggregates reported by the
// ECT. The upstream feed duplicates these onto every result row of the
// constituency, and the output contract preserves that shape.
type ConstituencyStats struct {
	RegisteredVoters int `json:"registered_voters" yaml:"registered_voters"`

	// Constituency MP contest aggregates.
	ConsTurnout    int     `json:"cons_turnout" yaml:"cons_turnout"`
	ConsTurnoutPct float64 `json:"cons_turnout_pct" yaml:"cons_turnout_pct"`
	ConsValid      int     `json:"cons_valid" yaml:"cons_valid"`
	ConsInvalid    int     `json:"cons_invalid" yaml:"cons_invalid"`
	ConsBlank      int     `json:"cons_blank" yaml:"cons_blank"`

	// Party-list contest aggregates.
	PartyListTurnout    int     `json:"party_list_turnout" yaml:"party_list_turnout"`
	PartyListTurnoutPct float64 `json:"party_list_turnout_pct" yaml:"party_list_turnout_pct"`
	PartyListValid      int     `json:"party_list_valid" yaml:"party_list_valid"`
	PartyListInvalid    int     `json:"party_list_invalid" yaml:"party_list_invalid"`
	PartyListBlank      int     `json:"party_list_blank" yaml:"party_list_blank"`
}

// ResultRecord is one row of official results: one candidate or one party's
// votes within a single constituency contest. Optional ballot numbers are
// pointers; nil means the source did not report one.
type ResultRecord struct {
	Province string `json:"province" yaml:"province"`
	ProvID   string `json:"prov_id" yaml:"prov_id"`
	ConsID   string `json:"cons_id" yaml:"cons_id"`
	ConsNo   int    `json:"cons_no" yaml:"cons_no"`
	Zones    string `json:"zones" yaml:"zones"`

	Stats ConstituencyStats `json:"stats" yaml:"stats"`

	Contest ContestType `json:"type" yaml:"type"`

	// Rank is the 1-based position within the constituency+contest group,
	// ordered by votes descending.
	Rank int `json:"rank" yaml:"rank"`

	// CandidateBallotNo is present only for constituency contests.
	CandidateBallotNo *int `json:"candidate_ballot_no,omitempty" yaml:"candidate_ballot_no,omitempty"`
	PartyBallotNo     *int `json:"party_ballot_no,omitempty" yaml:"party_ballot_no,omitempty"`

	// ReportedCandidateName and ReportedPartyName are the names as printed in
	// the official results feed. They are not part of the output contract;
	// the reconciler may use them for name-fallback matching.
	ReportedCandidateName string `json:"reported_candidate_name,omitempty" yaml:"reported_candidate_name,omitempty"`
	ReportedPartyName     string `json:"reported_party_name,omitempty" yaml:"reported_party_name,omitempty"`

	Votes   int     `json:"votes" yaml:"votes"`
	VotePct float64 `json:"vote_pct" yaml:"vote_pct"`
}

// BallotNo returns the join ballot number for this row: the candidate ballot
// number for constituency contests, the party ballot number for party-list
// rows. ok is false when the relevant number is absent.
func (r ResultRecord) BallotNo() (int, bool) {
	switch r.Contest {
	case ContestConstituency:
		if r.CandidateBallotNo != nil {
			return *r.CandidateBallotNo, true
		}
	case ContestPartyList:
		if r.PartyBallotNo != nil {
			return *r.PartyBallotNo, true
		}
	}
	return 0, false
}

// HasKey reports whether the row carries the fields required to join it:
// a constituency ID, a valid contest type, and a ballot number.
func (r ResultRecord) HasKey() bool {
	if r.ConsID == "" || !r.Contest.IsValid() {
		return false
	}
	_, ok := r.BallotNo()
	return ok
}

// RegistryRecord is one candidate or party ballot registration. Constituency
// candidate rows carry a ConsID; nationwide party rows leave it empty and set
// Nationwide.
type RegistryRecord struct {
	ConsID        string `json:"cons_id,omitempty" yaml:"cons_id,omitempty"`
	BallotNo      int    `json:"ballot_no" yaml:"ballot_no"`
	CandidateName string `json:"candidate_name,omitempty" yaml:"candidate_name,omitempty"`
	PartyName     string `json:"party_name" yaml:"party_name"`
	PartyAbbr     string `json:"party_abbr,omitempty" yaml:"party_abbr,omitempty"`

	// Nationwide marks a party-level registration valid in every
	// constituency (party-list ballot numbers are assigned nationally).
	Nationwide bool `json:"nationwide,omitempty" yaml:"nationwide,omitempty"`
}

// HasKey reports whether the registration carries a usable join key.
// Nationwide rows need only a ballot number; constituency rows need both.
func (r RegistryRecord) HasKey() bool {
	if r.BallotNo <= 0 {
		return false
	}
	return r.Nationwide || r.ConsID != ""
}

// AugmentedRecord is a ResultRecord enriched with the identity fields of its
// matching registration. Enrichment fields stay empty when no match exists.
type AugmentedRecord struct {
	ResultRecord

	CandidateName string `json:"candidate_name" yaml:"candidate_name"`
	PartyName     string `json:"party_name" yaml:"party_name"`
	PartyAbbr     string `json:"party_abbr" yaml:"party_abbr"`
}

// Matched reports whether the record was enriched from the registry.
func (a AugmentedRecord) Matched() bool {
	return a.CandidateName != "" || a.PartyName != ""
}
