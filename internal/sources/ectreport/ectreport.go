// Package ectreport fetches official election results from the ECT report
// site and normalizes them into result records. The site publishes static
// JSON: reference data (provinces, constituencies, parties, MP candidates)
// and per-constituency vote statistics, which are joined and flattened into
// one row per candidate or party-list line.
package ectreport

import (
	"context"

	"github.com/siamvotes/votemerge/internal/transport"
	"github.com/siamvotes/votemerge/pkg/election"
	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/logging"
	"github.com/siamvotes/votemerge/pkg/sources"
)

// Default endpoint bases for the ECT report site.
const (
	DefaultStaticBase = "https://static-ectreport69.ect.go.th/data"
	DefaultStatsBase  = "https://stats-ectreport69.ect.go.th/data"
)

// Compile-time interface check.
var _ sources.ResultSource = (*Source)(nil)

// Source fetches and normalizes the ECT results feed.
type Source struct {
	client     *transport.Client
	staticBase string
	statsBase  string
	results    []election.ResultRecord
}

// Option configures the source.
type Option func(*Source)

// WithStaticBase overrides the reference-data base URL.
func WithStaticBase(base string) Option {
	return func(s *Source) { s.staticBase = base }
}

// WithStatsBase overrides the statistics base URL.
func WithStatsBase(base string) Option {
	return func(s *Source) { s.statsBase = base }
}

// New creates an ECT report source using the given transport client.
func New(client *transport.Client, opts ...Option) *Source {
	s := &Source{
		client:     client,
		staticBase: DefaultStaticBase,
		statsBase:  DefaultStatsBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID implements sources.Source.
func (s *Source) ID() sources.ID {
	return sources.ECTReportID
}

// Fetch retrieves all endpoints and flattens them into result records.
func (s *Source) Fetch(ctx context.Context) error {
	log := logging.Ctx(ctx)
	name := s.ID().String()

	var provinces provincesPayload
	if err := s.client.GetJSON(ctx, name, s.staticBase+"/data/refs/info_province.json", &provinces); err != nil {
		return errors.WrapSource(name, "provinces", err)
	}

	var cons []consInfo
	if err := s.client.GetJSON(ctx, name, s.staticBase+"/data/refs/info_constituency.json", &cons); err != nil {
		return errors.WrapSource(name, "constituencies", err)
	}

	var parties []partyInfo
	if err := s.client.GetJSON(ctx, name, s.staticBase+"/data/refs/info_party_overview.json", &parties); err != nil {
		return errors.WrapSource(name, "parties", err)
	}

	var candidates []mpCandidate
	if err := s.client.GetJSON(ctx, name, s.staticBase+"/data/refs/info_mp_candidate.json", &candidates); err != nil {
		return errors.WrapSource(name, "mp_candidates", err)
	}

	var stats statsPayload
	if err := s.client.GetJSON(ctx, name, s.statsBase+"/records/stats_cons.json", &stats); err != nil {
		return errors.WrapSource(name, "stats_cons", err)
	}

	ref := newRefData(provinces, cons, parties, candidates)
	s.results = flatten(stats, ref)

	log.Info().
		Int("provinces", len(provinces.Province)).
		Int("constituencies", len(cons)).
		Int("parties", len(parties)).
		Int("candidates", len(candidates)).
		Int("rows", len(s.results)).
		Msg("Fetched ECT results")

	return nil
}

// Results implements sources.ResultSource.
func (s *Source) Results() []election.ResultRecord {
	return s.results
}

// Cleanup implements sources.Source.
func (s *Source) Cleanup() error {
	return nil
}
