// Package sources defines the interface for election data sources. A source
// fetches one upstream dataset and normalizes it into domain records: the
// ECT report site produces result records, the Vote62 registry produces
// ballot registrations. Fetch and parse happen up front so the reconciler
// downstream works over fully-materialized in-memory data.
package sources

import (
	"context"
	"slices"

	"github.com/siamvotes/votemerge/pkg/election"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs.
const (
	// ECTReportID is the official ECT results feed.
	ECTReportID ID = "ectreport"
	// Vote62ID is the Vote62 candidate registry.
	Vote62ID ID = "vote62"
)

// IDs returns all defined source IDs.
func IDs() []ID {
	return []ID{ECTReportID, Vote62ID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source is a fetchable upstream dataset.
type Source interface {
	// ID identifies this source.
	ID() ID

	// Fetch retrieves and parses the upstream payloads. It must be called
	// before the accessor methods return data.
	Fetch(ctx context.Context) error

	// Cleanup releases any resources held after fetching.
	Cleanup() error
}

// ResultSource produces official per-candidate result records.
type ResultSource interface {
	Source

	// Results returns the normalized result records, in feed order.
	Results() []election.ResultRecord
}

// RegistrySource produces candidate and party ballot registrations.
type RegistrySource interface {
	Source

	// Registry returns the normalized registration records, constituency
	// candidates first, then nationwide party rows.
	Registry() []election.RegistryRecord
}
