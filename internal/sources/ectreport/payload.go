package ectreport

// Wire types for the ECT report JSON endpoints. Field names follow the feed,
// which mixes snake_case reference data with per-candidate "mp_app_*"
// prefixes. Only the fields the flattener reads are declared.

// provincesPayload is the shape of info_province.json.
type provincesPayload struct {
	Province []provinceInfo `json:"province"`
}

type provinceInfo struct {
	ProvID   string `json:"prov_id"`
	Province string `json:"province"`
}

// consInfo is one entry of info_constituency.json.
type consInfo struct {
	ConsID         string   `json:"cons_id"`
	ConsNo         int      `json:"cons_no"`
	Zone           []string `json:"zone"`
	RegisteredVote int      `json:"registered_vote"`
}

// partyInfo is one entry of info_party_overview.json. PartyNo is the
// nationwide ballot number assigned to the party.
type partyInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Abbr    string `json:"abbr"`
	PartyNo *int   `json:"party_no"`
}

// mpCandidate is one entry of info_mp_candidate.json. MpAppNo is the
// candidate's ballot number within the constituency.
type mpCandidate struct {
	MpAppID   string `json:"mp_app_id"`
	MpAppName string `json:"mp_app_name"`
	MpAppNo   *int   `json:"mp_app_no"`
	PartyID   int    `json:"party_id"`
}

// statsPayload is the shape of stats_cons.json.
type statsPayload struct {
	ResultProvince []provinceStats `json:"result_province"`
}

type provinceStats struct {
	ProvID         string      `json:"prov_id"`
	Constituencies []consStats `json:"constituencies"`
}

type consStats struct {
	ConsID string `json:"cons_id"`

	TurnOut        int     `json:"turn_out"`
	PercentTurnOut float64 `json:"percent_turn_out"`
	ValidVotes     int     `json:"valid_votes"`
	InvalidVotes   int     `json:"invalid_votes"`
	BlankVotes     int     `json:"blank_votes"`

	PartyListTurnOut        int     `json:"party_list_turn_out"`
	PartyListPercentTurnOut float64 `json:"party_list_percent_turn_out"`
	PartyListValidVotes     int     `json:"party_list_valid_votes"`
	PartyListInvalidVotes   int     `json:"party_list_invalid_votes"`
	PartyListBlankVotes     int     `json:"party_list_blank_votes"`

	Candidates  []candidateResult `json:"candidates"`
	ResultParty []partyResult     `json:"result_party"`
}

// candidateResult is one constituency candidate's vote line.
type candidateResult struct {
	MpAppID          string  `json:"mp_app_id"`
	MpAppRank        int     `json:"mp_app_rank"`
	MpAppVote        int     `json:"mp_app_vote"`
	MpAppVotePercent float64 `json:"mp_app_vote_percent"`
	PartyID          int     `json:"party_id"`
}

// partyResult is one party-list vote line within a constituency.
type partyResult struct {
	PartyID              int     `json:"party_id"`
	PartyListVote        int     `json:"party_list_vote"`
	PartyListVotePercent float64 `json:"party_list_vote_percent"`
}
