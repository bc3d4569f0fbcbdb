package competitorsearch

import (
	"context"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	defaultSearchBaseURL = "https://html.duckduckgo.com/html/"
	searchTimeout        = 15 * time.Second
	maxBodyBytes         = 1 << 20
	maxHits              = 8
)

var resultAnchorRe = regexp.MustCompile(`(?s)<a[^>]+class="result__a"[^>]+href="([^"]+)"[^>]*>(.*?)</a>`)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Live scrapes an HTML search engine results page for competitor hits.
type Live struct {
	httpClient *http.Client
	baseURL    string
	log        logger.Logger
}

// NewLive creates a scraping searcher. baseURL overrides the engine for
// tests; empty selects the default.
func NewLive(baseURL string, log logger.Logger) *Live {
	if baseURL == "" {
		baseURL = defaultSearchBaseURL
	}
	return &Live{
		httpClient: &http.Client{Timeout: searchTimeout},
		baseURL:    baseURL,
		log:        log.Named("competitorsearch"),
	}
}

// Search runs the query and returns result titles and links. Failures
// return no hits; the analysis stage treats an empty landscape as valid.
func (l *Live) Search(ctx context.Context, query string) []Hit {
	metrics.RecordLookup("competitorsearch")

	endpoint := l.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.RecordLookupError("competitorsearch")
		return nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; deckray/1.0)")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		metrics.RecordLookupError("competitorsearch")
		l.log.Debug(ctx, "competitor search failed", logger.String("query", query), logger.Error(err))
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordLookupError("competitorsearch")
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.RecordLookupError("competitorsearch")
		return nil
	}

	var hits []Hit
	for _, match := range resultAnchorRe.FindAllStringSubmatch(string(body), maxHits) {
		title := strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(match[2], "")))
		if title == "" {
			continue
		}
		hits = append(hits, Hit{Name: title, URL: match[1]})
	}
	return hits
}
