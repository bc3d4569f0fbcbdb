// Package gitroll drives GitRoll developer-profile scans: fire a scan for a
// GitHub username, then poll the public profile page until a score shows up
// or the ceiling passes. Scans routinely outlive our patience, so a timeout
// is an expected outcome, not an error.
package gitroll

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	requestTimeout   = 30 * time.Second
	maxPageBytes     = 2 << 20
	defaultInterval  = 10 * time.Second
	defaultScanLimit = 300 * time.Second
)

var (
	scoreRe   = regexp.MustCompile(`"score":\s*([0-9]+(?:\.[0-9]+)?)`)
	ogScoreRe = regexp.MustCompile(`"ogImageScore":\s*([0-9]+(?:\.[0-9]+)?)`)
)

// ScanStatus is one observation of a scan. Completed means a score was
// visible on the profile page.
type ScanStatus struct {
	Completed    bool
	Score        *float64
	OGImageScore *float64
	ProfileURL   string
}

// Client starts and polls GitRoll scans.
type Client struct {
	httpClient   *http.Client
	apiURL       string
	profileURL   string
	pollInterval time.Duration
	scanTimeout  time.Duration
	log          logger.Logger
}

// New creates a GitRoll client. Zero durations select the service defaults
// (10s poll interval, 300s ceiling).
func New(apiURL, profileURL string, pollInterval, scanTimeout time.Duration, log logger.Logger) *Client {
	if pollInterval <= 0 {
		pollInterval = defaultInterval
	}
	if scanTimeout <= 0 {
		scanTimeout = defaultScanLimit
	}
	return &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		apiURL:       apiURL,
		profileURL:   strings.TrimRight(profileURL, "/"),
		pollInterval: pollInterval,
		scanTimeout:  scanTimeout,
		log:          log.Named("gitroll"),
	}
}

// InitiateScan requests a scan for username and returns the scan id.
func (c *Client) InitiateScan(ctx context.Context, username string) (string, error) {
	metrics.RecordLookup("gitroll")

	body, err := json.Marshal(map[string]string{"user": username})
	if err != nil {
		return "", fmt.Errorf("marshaling scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordLookupError("gitroll")
		return "", fmt.Errorf("initiating scan: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		metrics.RecordLookupError("gitroll")
		return "", fmt.Errorf("reading scan response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordLookupError("gitroll")
		return "", fmt.Errorf("%w: status %d", ErrScanFailed, resp.StatusCode)
	}

	var parsed struct {
		ScanID string `json:"scanId"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decoding scan response: %w", err)
	}
	scanID := parsed.ScanID
	if scanID == "" {
		scanID = parsed.ID
	}
	if scanID == "" {
		return "", ErrNoScanID
	}
	return scanID, nil
}

// CheckStatus fetches the scan's profile page and scrapes the embedded
// score fields. The page serves JSON inside a script tag, so a regex is the
// stable way in.
func (c *Client) CheckStatus(ctx context.Context, scanID string) (ScanStatus, error) {
	profileURL := c.profileURL + "/" + scanID
	status := ScanStatus{ProfileURL: profileURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return status, fmt.Errorf("building status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return status, fmt.Errorf("fetching profile page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return status, nil
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return status, fmt.Errorf("reading profile page: %w", err)
	}

	if score, ok := scrapeScore(string(page), scoreRe); ok {
		status.Score = &score
		status.Completed = true
	}
	if ogScore, ok := scrapeScore(string(page), ogScoreRe); ok {
		status.OGImageScore = &ogScore
	}
	return status, nil
}

// WaitForCompletion polls until the scan completes, the ceiling passes, or
// ctx is canceled. A timed-out scan returns Completed=false with whatever
// was last observed; it never returns an error.
func (c *Client) WaitForCompletion(ctx context.Context, scanID string) ScanStatus {
	deadline := time.NewTimer(c.scanTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	last := ScanStatus{ProfileURL: c.profileURL + "/" + scanID}
	for {
		status, err := c.CheckStatus(ctx, scanID)
		if err != nil {
			c.log.Debug(ctx, "scan status check failed",
				logger.String("scan_id", scanID), logger.Error(err))
		} else {
			last = status
		}
		if last.Completed {
			return last
		}

		select {
		case <-ctx.Done():
			metrics.RecordScanTimeout()
			return last
		case <-deadline.C:
			metrics.RecordScanTimeout()
			c.log.Warn(ctx, "scan did not complete before ceiling",
				logger.String("scan_id", scanID),
				logger.Any("ceiling", c.scanTimeout))
			return last
		case <-ticker.C:
		}
	}
}

func scrapeScore(page string, re *regexp.Regexp) (float64, bool) {
	match := re.FindStringSubmatch(page)
	if match == nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return score, true
}
