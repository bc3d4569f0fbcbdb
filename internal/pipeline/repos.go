package pipeline

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/deckray/deckray/internal/adapters/github"
	"github.com/deckray/deckray/internal/domain/classify"
	"github.com/deckray/deckray/internal/domain/dedupe"
	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	maxReportedRepos   = 5
	reposPerFounder    = 3
	errorMarkerName    = "unavailable"
	errorMarkerMessage = "repository lookup failed"
)

var githubRepoURLRe = regexp.MustCompile(`https?://github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)

// analyzeRepositories collects code repositories from two sources: URLs
// mentioned in the deck itself, then each founder's top repositories by
// stars. At most five distinct repos are reported.
func (r *Runner) analyzeRepositories(ctx context.Context, deckText string, founders []model.Founder) []model.Repository {
	if r.code == nil {
		return nil
	}

	now := r.now()
	seen := dedupe.NewSet()
	var repos []model.Repository

	add := func(repo model.Repository) bool {
		if seen.SeenAndRecord(repo.URL) {
			return len(repos) < maxReportedRepos
		}
		repos = append(repos, repo)
		return len(repos) < maxReportedRepos
	}

	for _, fullName := range deckRepoNames(deckText) {
		found, err := r.code.SearchRepositories(ctx, "repo:"+fullName)
		if err != nil {
			metrics.RecordStageFailure(stepGitHubAnalysis)
			r.log.Warn(ctx, "deck repository lookup failed",
				logger.String("repo", fullName), logger.Error(err))
			if !add(model.Repository{
				URL:         "https://github.com/" + fullName,
				Name:        errorMarkerName,
				Description: errorMarkerMessage,
				Activity:    model.ActivityUnknown,
			}) {
				return repos
			}
			continue
		}
		for _, repo := range found {
			if !strings.EqualFold(repo.FullName, fullName) {
				continue
			}
			if !add(toRepository(repo, now)) {
				return repos
			}
		}
	}

	for _, founder := range founders {
		if founder.GitHub == "" {
			continue
		}
		owned, err := r.code.GetUserRepositories(ctx, founder.GitHub)
		if err != nil {
			metrics.RecordStageFailure(stepGitHubAnalysis)
			r.log.Warn(ctx, "founder repository lookup failed",
				logger.String("username", founder.GitHub), logger.Error(err))
			if !add(model.Repository{
				URL:         "https://github.com/" + founder.GitHub,
				Name:        errorMarkerName,
				Description: errorMarkerMessage,
				Activity:    model.ActivityUnknown,
			}) {
				return repos
			}
			continue
		}
		for _, repo := range topByStars(owned, reposPerFounder) {
			if !add(toRepository(repo, now)) {
				return repos
			}
		}
	}

	return repos
}

// deckRepoNames extracts owner/name pairs from repository URLs in the deck.
func deckRepoNames(deckText string) []string {
	seen := dedupe.NewSet()
	var names []string
	for _, match := range githubRepoURLRe.FindAllStringSubmatch(deckText, -1) {
		fullName := match[1] + "/" + strings.TrimSuffix(match[2], ".git")
		if seen.SeenAndRecord(fullName) {
			continue
		}
		names = append(names, fullName)
	}
	return names
}

func topByStars(repos []github.Repo, n int) []github.Repo {
	sorted := make([]github.Repo, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Stars != sorted[j].Stars {
			return sorted[i].Stars > sorted[j].Stars
		}
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func toRepository(repo github.Repo, now time.Time) model.Repository {
	return model.Repository{
		URL:         repo.HTMLURL,
		Name:        repo.Name,
		Description: repo.Description,
		Language:    repo.Language,
		Stars:       repo.Stars,
		Forks:       repo.Forks,
		Activity:    classify.Activity(repo.UpdatedAt, now),
		LastUpdated: repo.UpdatedAt,
	}
}
