// Package websearch locates public profile links for a person. The lookup is
// strictly best effort: a failed or empty search degrades the founder record,
// it never fails the analysis, so PersonLookup has no error return.
package websearch

import (
	"context"
)

// Result holds whatever public presence a search surfaced for a person.
// Zero-value fields mean nothing was found.
type Result struct {
	LinkedIn         string
	Twitter          string
	GitHub           string
	Bio              string
	Company          string
	SearchSuccessful bool
}

// PersonLookup searches the public web for a person's professional presence.
type PersonLookup interface {
	SearchPerson(ctx context.Context, name, company string) Result
}

// Stub is a PersonLookup that finds nothing. It is the explicit default so a
// deployment without search credentials still produces complete reports.
type Stub struct{}

// NewStub creates a no-op person lookup.
func NewStub() *Stub {
	return &Stub{}
}

// SearchPerson returns an empty, unsuccessful result.
func (s *Stub) SearchPerson(_ context.Context, _, _ string) Result {
	return Result{}
}
