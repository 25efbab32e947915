package vote62

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Wire types for the Vote62 structure JSON. The feed is hand-maintained and
// sloppy about numeric types (ballot numbers appear both as numbers and as
// strings), so flexInt absorbs either.

type structurePayload struct {
	Provinces []provinceEntry `json:"provinces"`
	Parties   []partyEntry    `json:"parties"`
	Votables  []votableEntry  `json:"votables"`
}

type provinceEntry struct {
	Name      string          `json:"name"`
	Districts []districtEntry `json:"districts"`
}

type districtEntry struct {
	Name         string           `json:"name"`
	Subdistricts []subdistrictRow `json:"subdistricts"`
}

type subdistrictRow struct {
	Name            string              `json:"name"`
	VotingDistricts []votingDistrictRow `json:"votingDistricts"`
}

type votingDistrictRow struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type partyEntry struct {
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Number       flexInt `json:"number"`
}

// votableEntry is one ballot line. "voteingDistrict" is a typo in the
// upstream data, kept here because that is the actual key on the wire.
type votableEntry struct {
	ElectionType    string  `json:"electionType"`
	VotingDistrict  string  `json:"voteingDistrict"`
	No              flexInt `json:"no"`
	Candidate       string  `json:"candidate"`
	Party           string  `json:"party"`
}

// constituencyElectionType marks สส.เขต (constituency MP) ballot lines.
const constituencyElectionType = "สส.เขต"

// flexInt decodes a JSON number or a numeric string. Zero when absent or
// unparseable.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// Int returns the value as a plain int.
func (f flexInt) Int() int {
	return int(f)
}
