package pipeline

import (
	"context"
	"strings"

	"github.com/deckray/deckray/internal/adapters/competitorsearch"
	"github.com/deckray/deckray/internal/domain/classify"
	"github.com/deckray/deckray/internal/domain/dedupe"
	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/domain/parse"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const maxSearchQueries = 3

// analyzeCompetitors maps the competitive landscape: expand the project
// into search queries, collect hits, and have the model structure the
// result. Saturation is always derived from the final competitor count,
// never taken from the model.
func (r *Runner) analyzeCompetitors(ctx context.Context, project model.Project) model.CompetitorReport {
	hits := r.searchCompetitors(ctx, project)

	raw, err := r.completer.Complete(ctx, competitorPrompt(project, hits))
	if err != nil {
		metrics.RecordStageFailure(stepCompetitorAnalysis)
		r.log.Error(ctx, "competitor analysis failed", logger.Error(err))
		return defaultCompetitorReport()
	}

	obj, strategy := parse.Object(raw, nil, nil)
	metrics.RecordParserRung(string(strategy))
	if obj == nil {
		metrics.RecordStageFailure(stepCompetitorAnalysis)
		return defaultCompetitorReport()
	}

	seen := dedupe.NewSet()
	var competitors []model.Competitor
	for _, item := range parse.List(obj, "competitors") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := parse.String(entry["name"], "")
		if name == "" || seen.SeenAndRecord(name) {
			continue
		}
		competitors = append(competitors, model.Competitor{
			Name:           name,
			Description:    parse.String(entry["description"], ""),
			Website:        parse.String(entry["website"], ""),
			Funding:        parse.String(entry["funding"], "Unknown"),
			Founded:        parse.String(entry["founded"], "Unknown"),
			Employees:      parse.String(entry["employees"], "Unknown"),
			RelevanceScore: parse.Number(entry["relevance_score"], 0),
		})
	}

	return model.CompetitorReport{
		Competitors:          competitors,
		MarketSaturation:     classify.Saturation(len(competitors)),
		CompetitiveAdvantage: parse.String(obj["competitive_advantage"], ""),
		ThreatLevel:          parse.String(obj["threat_level"], "unknown"),
		KeyDifferentiators:   parse.StringList(obj["key_differentiators"]),
		MarketGaps:           parse.StringList(obj["market_gaps"]),
		Recommendations:      parse.StringList(obj["recommendations"]),
	}
}

// searchCompetitors expands the project profile into a few queries and
// merges the hits.
func (r *Runner) searchCompetitors(ctx context.Context, project model.Project) []competitorsearch.Hit {
	queries := searchQueries(project)
	seen := dedupe.NewSet()
	var hits []competitorsearch.Hit
	for _, query := range queries {
		for _, hit := range r.searcher.Search(ctx, query) {
			if seen.SeenAndRecord(hit.Name) {
				continue
			}
			hits = append(hits, hit)
		}
	}
	return hits
}

func searchQueries(project model.Project) []string {
	var queries []string
	if project.ProjectName != "" && project.ProjectName != failedProjectName {
		queries = append(queries, project.ProjectName+" competitors")
	}
	if phrase := keyPhrase(project.Description); phrase != "" {
		queries = append(queries, phrase+" companies")
	}
	if project.TargetMarket != "" && project.TargetMarket != "Unknown" {
		queries = append(queries, project.TargetMarket+" startups")
	}
	if len(queries) > maxSearchQueries {
		queries = queries[:maxSearchQueries]
	}
	if len(queries) == 0 {
		queries = []string{"startup competitors"}
	}
	return queries
}

// keyPhrase takes the first handful of meaningful words from a description.
func keyPhrase(description string) string {
	words := strings.Fields(description)
	if len(words) == 0 {
		return ""
	}
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

func defaultCompetitorReport() model.CompetitorReport {
	return model.CompetitorReport{
		MarketSaturation: classify.Saturation(0),
		ThreatLevel:      "unknown",
	}
}
