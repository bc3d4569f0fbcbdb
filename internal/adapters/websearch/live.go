package websearch

import (
	"context"
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
	maxSearchBodyBytes   = 1 << 20
)

var (
	linkedinRe = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+`)
	twitterRe  = regexp.MustCompile(`https?://(?:www\.)?(?:twitter|x)\.com/[A-Za-z0-9_]+`)
	githubRe   = regexp.MustCompile(`https?://(?:www\.)?github\.com/([A-Za-z0-9-]+)`)
)

// githubReservedPaths are github.com first path segments that are site
// features, not usernames.
var githubReservedPaths = map[string]struct{}{
	"features": {}, "topics": {}, "trending": {}, "about": {},
	"pricing": {}, "search": {}, "login": {}, "orgs": {},
}

// Live scrapes an HTML search engine results page for profile links.
type Live struct {
	httpClient *http.Client
	baseURL    string
	log        logger.Logger
}

// NewLive creates a scraping person lookup. baseURL overrides the search
// endpoint for tests; empty selects the default engine.
func NewLive(baseURL string, log logger.Logger) *Live {
	if baseURL == "" {
		baseURL = defaultSearchBaseURL
	}
	return &Live{
		httpClient: &http.Client{Timeout: searchTimeout},
		baseURL:    baseURL,
		log:        log.Named("websearch"),
	}
}

// SearchPerson queries for "<name> <company> founder" and pulls the first
// LinkedIn, Twitter/X, and GitHub links out of the result page.
func (l *Live) SearchPerson(ctx context.Context, name, company string) Result {
	metrics.RecordLookup("websearch")

	query := strings.TrimSpace(name + " " + company + " founder")
	endpoint := l.baseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.RecordLookupError("websearch")
		return Result{}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; deckray/1.0)")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		metrics.RecordLookupError("websearch")
		l.log.Debug(ctx, "person search failed", logger.String("name", name), logger.Error(err))
		return Result{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordLookupError("websearch")
		return Result{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBodyBytes))
	if err != nil {
		metrics.RecordLookupError("websearch")
		return Result{}
	}

	page := string(body)
	result := Result{
		LinkedIn: linkedinRe.FindString(page),
		Twitter:  twitterRe.FindString(page),
		GitHub:   firstGitHubUser(page),
		Company:  company,
	}
	result.SearchSuccessful = result.LinkedIn != "" || result.Twitter != "" || result.GitHub != ""
	return result
}

func firstGitHubUser(page string) string {
	for _, match := range githubRe.FindAllStringSubmatch(page, 10) {
		user := match[1]
		if _, reserved := githubReservedPaths[strings.ToLower(user)]; !reserved {
			return user
		}
	}
	return ""
}
