package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

// summarize produces the one-line executive summary. Model failure falls
// back to a templated line so the field is never empty.
func (r *Runner) summarize(ctx context.Context, project model.Project, viability model.Viability) string {
	raw, err := r.completer.Complete(ctx, summaryPrompt(project, viability))
	if err != nil {
		metrics.RecordStageFailure(stepSummaryGeneration)
		r.log.Warn(ctx, "summary generation failed", logger.Error(err))
		return fallbackSummary(project, viability)
	}

	summary := cleanSummary(raw)
	if summary == "" {
		return fallbackSummary(project, viability)
	}
	return summary
}

// cleanSummary normalizes model output to a single line: the "Summary:"
// prefix goes, wrapping quotes go, newlines collapse to spaces.
func cleanSummary(raw string) string {
	summary := strings.TrimSpace(raw)

	for _, prefix := range []string{"Summary:", "summary:", "SUMMARY:"} {
		summary = strings.TrimSpace(strings.TrimPrefix(summary, prefix))
	}

	summary = strings.Trim(summary, `"'`)
	summary = strings.Join(strings.Fields(summary), " ")
	return summary
}

func fallbackSummary(project model.Project, viability model.Viability) string {
	return fmt.Sprintf("Analysis of %s completed with viability score %.1f/10.",
		project.ProjectName, viability.Score)
}
