package pipeline

import (
	"context"
	"fmt"
	"regexp"

	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/domain/parse"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	neutralViabilityScore = 5.0
	defaultRecommendation = "More research needed"
	technicalErrorRisk    = "Technical error"
)

// manualScoreRe finds a bare "score ... N" claim in prose when the model
// ignored the JSON instruction entirely.
var manualScoreRe = regexp.MustCompile(`(?i)(?:overall\s+|viability\s+)?score\D{0,10}(10|\d(?:\.\d+)?)`)

// scoreViability runs the weighted VC assessment. The model's arithmetic is
// authoritative; scores are read as-is, not recomputed.
func (r *Runner) scoreViability(ctx context.Context, project model.Project, deckText string) model.Viability {
	raw, err := r.completer.Complete(ctx, viabilityPrompt(project, deckText, r.deckPrefix))
	if err != nil {
		metrics.RecordStageFailure(stepViabilityAnalysis)
		r.log.Error(ctx, "viability scoring failed", logger.Error(err))
		return defaultViability(err)
	}

	obj, strategy := parse.Object(raw, manualScore, nil)
	metrics.RecordParserRung(string(strategy))
	if obj == nil {
		metrics.RecordStageFailure(stepViabilityAnalysis)
		return defaultViability(fmt.Errorf("unparseable model response"))
	}

	v := model.Viability{
		Score:              parse.Number(obj["score"], neutralViabilityScore),
		TeamScore:          parse.Number(obj["team_score"], neutralViabilityScore),
		MarketScore:        parse.Number(obj["market_score"], neutralViabilityScore),
		ProductScore:       parse.Number(obj["product_score"], neutralViabilityScore),
		BusinessModelScore: parse.Number(obj["business_model_score"], neutralViabilityScore),
		ExecutionScore:     parse.Number(obj["execution_score"], neutralViabilityScore),
		Explanation:        parse.String(obj["explanation"], ""),
		RiskFactors:        parse.StringList(obj["risk_factors"]),
		Strengths:          parse.StringList(obj["strengths"]),
		PenaltiesApplied:   parse.StringList(obj["penalties_applied"]),
		BonusesApplied:     parse.StringList(obj["bonuses_applied"]),
		CriticalConcerns:   parse.StringList(obj["critical_concerns"]),
		Recommendation:     parse.String(obj["recommendation"], defaultRecommendation),
	}
	v.Score = clampScore(v.Score)
	return v
}

// manualScore salvages at least the overall score from a prose reply.
func manualScore(raw string) (map[string]any, bool) {
	match := manualScoreRe.FindStringSubmatch(raw)
	if match == nil {
		return nil, false
	}
	return map[string]any{"score": match[1]}, true
}

// defaultViability is the neutral assessment used when scoring fails
// entirely; the explanation carries the failure cause.
func defaultViability(err error) model.Viability {
	return model.Viability{
		Score:          neutralViabilityScore,
		Explanation:    fmt.Sprintf("Assessment failed: %v", err),
		RiskFactors:    []string{technicalErrorRisk},
		Recommendation: defaultRecommendation,
	}
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 10:
		return 10
	default:
		return score
	}
}
