package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/domain/parse"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

// failedProjectName marks a project whose profile could not be extracted.
// The report still succeeds; the sentinel is the visible signal.
const failedProjectName = "Analysis Failed"

// extractProject builds the business profile from the deck. A model failure
// yields the sentinel project with the error embedded in the description.
func (r *Runner) extractProject(ctx context.Context, deckText, nameHint string) model.Project {
	raw, err := r.completer.Complete(ctx, deckExtractionPrompt(deckText, r.deckPrefix))
	if err != nil {
		metrics.RecordStageFailure(stepProjectAnalysis)
		r.log.Error(ctx, "project extraction failed", logger.Error(err))
		return failedProject(err)
	}

	obj, strategy := parse.Object(raw, nil, nil)
	metrics.RecordParserRung(string(strategy))
	if obj == nil {
		metrics.RecordStageFailure(stepProjectAnalysis)
		return failedProject(fmt.Errorf("unparseable model response"))
	}

	project := model.Project{
		ProjectName:      parse.String(obj["project_name"], ""),
		Description:      parse.String(obj["description"], "Unknown"),
		ProblemStatement: parse.String(obj["problem_statement"], "Unknown"),
		Solution:         parse.String(obj["solution"], "Unknown"),
		TargetMarket:     parse.String(obj["target_market"], "Unknown"),
		BusinessModel:    parse.String(obj["business_model"], "Unknown"),
	}

	// The caller's explicit name wins over whatever the model inferred.
	if hint := strings.TrimSpace(nameHint); hint != "" {
		project.ProjectName = hint
	}
	if project.ProjectName == "" {
		project.ProjectName = "Unknown"
	}
	return project
}

// failedProject always carries the sentinel name, even when the caller
// supplied one; the failure must stay visible in the name field.
func failedProject(err error) model.Project {
	return model.Project{
		ProjectName: failedProjectName,
		Description: fmt.Sprintf("Analysis failed: %v", err),
	}
}
