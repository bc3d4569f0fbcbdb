package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/domain/parse"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

// Founder score applied when only the scoring call fails; the collected
// signals are still worth reporting at a neutral score.
const neutralFounderScore = 5.0

// enrichFounders runs per-founder enrichment with a bounded worker fan-out.
// Output order matches input order regardless of completion order.
func (r *Runner) enrichFounders(ctx context.Context, founders []model.Founder, project model.Project) []model.Founder {
	if len(founders) == 0 {
		return founders
	}

	enriched := make([]model.Founder, len(founders))
	sem := make(chan struct{}, r.enrichWorkers)
	var wg sync.WaitGroup

	for i, f := range founders {
		wg.Add(1)
		go func(idx int, founder model.Founder) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			enriched[idx] = r.enrichOne(ctx, founder, project)
		}(i, f)
	}
	wg.Wait()

	return enriched
}

// enrichOne gathers external signals for a founder and scores them. A panic
// anywhere in enrichment zeroes this founder and touches nothing else.
func (r *Runner) enrichOne(ctx context.Context, founder model.Founder, project model.Project) (result model.Founder) {
	result = founder

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error(ctx, "founder enrichment panicked",
				logger.String("founder", founder.Name), logger.Any("panic", rec))
			result = founder
			result.Score = 0
			result.TechnicalScore = 0
			result.BusinessScore = 0
			result.SearchSuccessful = false
		}
	}()

	var signals strings.Builder

	lookup := r.person.SearchPerson(ctx, founder.Name, project.ProjectName)
	result.LinkedIn = lookup.LinkedIn
	result.Twitter = lookup.Twitter
	result.GitHub = lookup.GitHub
	result.Bio = lookup.Bio
	result.Company = lookup.Company
	result.SearchSuccessful = lookup.SearchSuccessful
	if lookup.SearchSuccessful {
		fmt.Fprintf(&signals, "Web presence: linkedin=%s twitter=%s github=%s\n",
			orNone(lookup.LinkedIn), orNone(lookup.Twitter), orNone(lookup.GitHub))
	} else {
		signals.WriteString("Web presence: no public profiles found\n")
	}

	if result.GitHub != "" && r.code != nil {
		if profile, err := r.code.GetUserProfile(ctx, result.GitHub); err == nil && profile != nil {
			fmt.Fprintf(&signals, "Code hosting: %d public repos, %d followers, bio %q\n",
				profile.PublicRepos, profile.Followers, profile.Bio)
		}
	}

	if result.GitHub != "" && r.scanner != nil {
		r.scanFounder(ctx, &result, &signals)
	}

	r.scoreFounder(ctx, &result, project, signals.String())
	return result
}

// scanFounder fires a developer scan and waits for the score. A scan that
// never completes leaves the founder without a scan score; it is not an
// error.
func (r *Runner) scanFounder(ctx context.Context, founder *model.Founder, signals *strings.Builder) {
	scanID, err := r.scanner.InitiateScan(ctx, founder.GitHub)
	if err != nil {
		r.log.Debug(ctx, "scan initiation failed",
			logger.String("founder", founder.Name), logger.Error(err))
		return
	}

	status := r.scanner.WaitForCompletion(ctx, scanID)
	founder.GitRollUserID = scanID
	if status.Completed && status.Score != nil {
		founder.GitRollScore = status.Score
		fmt.Fprintf(signals, "Developer scan score: %.1f/10 (%s)\n", *status.Score, status.ProfileURL)
	} else {
		signals.WriteString("Developer scan did not complete in time\n")
	}
}

// scoreFounder asks the model to score the founder from collected signals.
// Only this call failing yields the neutral score.
func (r *Runner) scoreFounder(ctx context.Context, founder *model.Founder, project model.Project, signals string) {
	raw, err := r.completer.Complete(ctx, founderScoringPrompt(*founder, project, signals))
	if err != nil {
		metrics.RecordStageFailure(stepFounderAnalysis)
		r.log.Warn(ctx, "founder scoring failed",
			logger.String("founder", founder.Name), logger.Error(err))
		founder.Score = neutralFounderScore
		founder.TechnicalScore = neutralFounderScore
		founder.BusinessScore = neutralFounderScore
		return
	}

	obj, strategy := parse.Object(raw, nil, nil)
	metrics.RecordParserRung(string(strategy))
	if obj == nil {
		founder.Score = neutralFounderScore
		founder.TechnicalScore = neutralFounderScore
		founder.BusinessScore = neutralFounderScore
		return
	}

	founder.Score = parse.Number(obj["score"], neutralFounderScore)
	founder.TechnicalScore = parse.Number(obj["technical_score"], neutralFounderScore)
	founder.BusinessScore = parse.Number(obj["business_score"], neutralFounderScore)
	founder.Contribution = parse.String(obj["contribution"], "")
	founder.Strengths = parse.StringList(obj["strengths"])
	founder.Improvements = parse.StringList(obj["areas_for_improvement"])
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
