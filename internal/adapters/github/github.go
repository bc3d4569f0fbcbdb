// Package github is a minimal GitHub REST v3 client covering the three
// lookups the pipeline needs: user profile, user repositories, and
// repository search. Missing users and rate limits come back as empty
// results rather than errors so founder enrichment degrades instead of
// failing.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	defaultBaseURL   = "https://api.github.com"
	requestTimeout   = 15 * time.Second
	maxBodyBytes     = 4 << 20
	reposPerPage     = 100
	searchResultSize = 5
)

// Profile is the subset of a GitHub user we report on.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Repo is the subset of a repository we report on.
type Repo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Client calls the GitHub REST API, optionally authenticated.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        logger.Logger
}

// New creates a GitHub client. baseURL overrides the API host for tests;
// token is optional and raises the unauthenticated rate limit when set.
func New(baseURL, token string, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		log:        log.Named("github"),
	}
}

// GetUserProfile fetches a user's public profile. An unknown or
// rate-limited user yields (nil, nil).
func (c *Client) GetUserProfile(ctx context.Context, username string) (*Profile, error) {
	metrics.RecordLookup("github")

	body, found, err := c.get(ctx, "/users/"+url.PathEscape(username))
	if err != nil || !found {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("decoding user profile: %w", err)
	}
	return &profile, nil
}

// GetUserRepositories fetches a user's repositories, most recently updated
// first. An unknown or rate-limited user yields an empty slice.
func (c *Client) GetUserRepositories(ctx context.Context, username string) ([]Repo, error) {
	metrics.RecordLookup("github")

	path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=%d", url.PathEscape(username), reposPerPage)
	body, found, err := c.get(ctx, path)
	if err != nil || !found {
		return nil, err
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, fmt.Errorf("decoding user repositories: %w", err)
	}
	return repos, nil
}

// SearchRepositories runs a repository search and returns the top matches
// by stars.
func (c *Client) SearchRepositories(ctx context.Context, query string) ([]Repo, error) {
	metrics.RecordLookup("github")

	path := fmt.Sprintf("/search/repositories?q=%s&sort=stars&order=desc&per_page=%d",
		url.QueryEscape(query), searchResultSize)
	body, found, err := c.get(ctx, path)
	if err != nil || !found {
		return nil, err
	}

	var result struct {
		Items []Repo `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding repository search: %w", err)
	}
	return result.Items, nil
}

// get performs a GET and reports found=false for the statuses we treat as
// an absent result (404 unknown user, 403 rate limit).
func (c *Client) get(ctx context.Context, path string) (body []byte, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordLookupError("github")
		return nil, false, fmt.Errorf("calling github: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden:
		c.log.Debug(ctx, "github lookup returned no result",
			logger.String("path", path),
			logger.Int("status", resp.StatusCode))
		return nil, false, nil
	default:
		metrics.RecordLookupError("github")
		return nil, false, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.RecordLookupError("github")
		return nil, false, fmt.Errorf("reading response: %w", err)
	}
	return body, true, nil
}
