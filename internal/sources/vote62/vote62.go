// Package vote62 fetches candidate and party ballot registrations from the
// Vote62 structure feed. The feed is one large JSON document: a geographic
// tree mapping voting-district codes to provinces and constituency numbers,
// a nationwide party table with ballot numbers, and a flat "votables" list
// of every ballot line.
package vote62

import (
	"context"
	"strconv"
	"strings"

	"github.com/siamvotes/votemerge/internal/transport"
	"github.com/siamvotes/votemerge/pkg/election"
	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/logging"
	"github.com/siamvotes/votemerge/pkg/sources"
)

// DefaultURL is the published location of the structure document.
const DefaultURL = "https://vote62-general-66-site.s3.ap-southeast-1.amazonaws.com/structure_f-69-1.json"

// Compile-time interface check.
var _ sources.RegistrySource = (*Source)(nil)

// Source fetches and normalizes the Vote62 registry.
type Source struct {
	client   *transport.Client
	url      string
	registry []election.RegistryRecord
}

// Option configures the source.
type Option func(*Source)

// WithURL overrides the structure document URL.
func WithURL(url string) Option {
	return func(s *Source) { s.url = url }
}

// New creates a Vote62 source using the given transport client.
func New(client *transport.Client, opts ...Option) *Source {
	s := &Source{
		client: client,
		url:    DefaultURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID implements sources.Source.
func (s *Source) ID() sources.ID {
	return sources.Vote62ID
}

// Fetch retrieves the structure document and extracts registrations.
func (s *Source) Fetch(ctx context.Context) error {
	name := s.ID().String()

	var payload structurePayload
	if err := s.client.GetJSON(ctx, name, s.url, &payload); err != nil {
		return errors.WrapSource(name, "structure", err)
	}

	s.registry = extract(payload)

	logging.Ctx(ctx).Info().
		Int("provinces", len(payload.Provinces)).
		Int("parties", len(payload.Parties)).
		Int("votables", len(payload.Votables)).
		Int("registrations", len(s.registry)).
		Msg("Fetched Vote62 registry")

	return nil
}

// Registry implements sources.RegistrySource.
func (s *Source) Registry() []election.RegistryRecord {
	return s.registry
}

// Cleanup implements sources.Source.
func (s *Source) Cleanup() error {
	return nil
}

// districtInfo identifies the constituency a voting-district code belongs to.
type districtInfo struct {
	province string
	consNo   int
}

// extract turns the structure document into registry records: constituency
// candidate lines first, in feed order, then nationwide party rows.
func extract(payload structurePayload) []election.RegistryRecord {
	codes := districtLookup(payload.Provinces)

	var records []election.RegistryRecord
	for _, v := range payload.Votables {
		if v.ElectionType != constituencyElectionType {
			continue
		}
		info, ok := codes[v.VotingDistrict]
		if !ok {
			// Unknown district code; keep the row keyless so the
			// reconciler reports it instead of dropping it silently.
			records = append(records, election.RegistryRecord{
				BallotNo:      v.No.Int(),
				CandidateName: v.Candidate,
				PartyName:     v.Party,
			})
			continue
		}
		records = append(records, election.RegistryRecord{
			ConsID:        election.ConstituencyKey(info.province, info.consNo),
			BallotNo:      v.No.Int(),
			CandidateName: v.Candidate,
			PartyName:     v.Party,
		})
	}

	for _, p := range payload.Parties {
		if p.Number.Int() <= 0 {
			continue
		}
		records = append(records, election.RegistryRecord{
			BallotNo:   p.Number.Int(),
			PartyName:  p.Name,
			PartyAbbr:  p.Abbreviation,
			Nationwide: true,
		})
	}

	return records
}

// districtLookup flattens the geographic tree into code -> constituency.
func districtLookup(provinces []provinceEntry) map[string]districtInfo {
	codes := make(map[string]districtInfo)
	for _, prov := range provinces {
		for _, district := range prov.Districts {
			for _, sub := range district.Subdistricts {
				for _, vd := range sub.VotingDistricts {
					if _, seen := codes[vd.Code]; seen {
						continue
					}
					codes[vd.Code] = districtInfo{
						province: prov.Name,
						consNo:   parseConsNo(vd.Name),
					}
				}
			}
		}
	}
	return codes
}

// parseConsNo extracts the constituency number from a voting-district name,
// which is either a bare number or a label like "เขต 3".
func parseConsNo(name string) int {
	name = strings.TrimSpace(name)
	if n, err := strconv.Atoi(name); err == nil {
		return n
	}

	digits := strings.Builder{}
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
