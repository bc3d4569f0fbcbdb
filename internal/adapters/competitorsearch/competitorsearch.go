// Package competitorsearch discovers companies adjacent to a pitch. The
// searcher feeds raw hits into the competitor-analysis prompt; it does not
// judge relevance itself. Which implementation runs is explicit
// configuration, a deployment never falls back to the stub silently.
package competitorsearch

import (
	"context"
	"fmt"
	"strings"
)

// Hit is one discovered company or product.
type Hit struct {
	Name    string
	URL     string
	Snippet string
}

// Searcher finds companies matching a market query.
type Searcher interface {
	Search(ctx context.Context, query string) []Hit
}

// Stub returns deterministic synthetic hits derived from the query. It
// exists for deployments without a search backend and for tests that need
// reproducible competitor landscapes.
type Stub struct{}

// NewStub creates the deterministic searcher.
func NewStub() *Stub {
	return &Stub{}
}

// Search fabricates three plausible competitors around the query's leading
// keyword. The same query always yields the same hits.
func (s *Stub) Search(_ context.Context, query string) []Hit {
	keyword := leadingKeyword(query)
	return []Hit{
		{
			Name:    keyword + " Technologies",
			URL:     fmt.Sprintf("https://example.com/%s-technologies", strings.ToLower(keyword)),
			Snippet: fmt.Sprintf("%s Technologies offers an established platform in this space.", keyword),
		},
		{
			Name:    keyword + " Labs",
			URL:     fmt.Sprintf("https://example.com/%s-labs", strings.ToLower(keyword)),
			Snippet: fmt.Sprintf("%s Labs is a venture-backed startup targeting the same segment.", keyword),
		},
		{
			Name:    "Open" + keyword,
			URL:     fmt.Sprintf("https://example.com/open%s", strings.ToLower(keyword)),
			Snippet: fmt.Sprintf("Open%s is an open-source alternative with a growing community.", keyword),
		},
	}
}

// stopwords excluded when picking the query's leading keyword.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "for": {}, "in": {}, "of": {},
	"or": {}, "the": {}, "to": {}, "with": {}, "platform": {},
	"startup": {}, "company": {},
}

func leadingKeyword(query string) string {
	for _, word := range strings.Fields(query) {
		cleaned := strings.Trim(strings.ToLower(word), `.,"'()`)
		if len(cleaned) < 3 {
			continue
		}
		if _, skip := stopwords[cleaned]; skip {
			continue
		}
		return strings.ToUpper(cleaned[:1]) + cleaned[1:]
	}
	return "Market"
}
