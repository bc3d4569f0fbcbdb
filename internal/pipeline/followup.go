package pipeline

import (
	"context"

	"github.com/deckray/deckray/internal/domain/classify"
	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/domain/parse"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	maxQuestions      = 10
	priorityQuestions = 3
)

// generateQuestions produces the due-diligence follow-up question set. A
// total model failure yields one canned question per category so the
// investor always has something to ask.
func (r *Runner) generateQuestions(ctx context.Context, project model.Project, viability model.Viability, founders []model.Founder, competitors model.CompetitorReport) model.QuestionSet {
	raw, err := r.completer.Complete(ctx, followupPrompt(project, viability, founders, competitors))
	if err != nil {
		metrics.RecordStageFailure(stepFollowupQuestions)
		r.log.Error(ctx, "question generation failed", logger.Error(err))
		return buildQuestionSet(cannedQuestions())
	}

	items := questionItems(raw)
	questions := make([]model.Question, 0, maxQuestions)
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text := parse.String(entry["question"], "")
		if text == "" {
			continue
		}
		category := parse.String(entry["category"], "")
		if !classify.KnownCategory(category) {
			category = classify.CategorizeQuestion(text)
		}
		questions = append(questions, model.Question{
			Question:  text,
			Category:  category,
			Priority:  parse.String(entry["priority"], "medium"),
			Rationale: parse.String(entry["rationale"], ""),
		})
		if len(questions) == maxQuestions {
			break
		}
	}

	if len(questions) == 0 {
		return buildQuestionSet(cannedQuestions())
	}
	return buildQuestionSet(questions)
}

// questionItems accepts both response shapes: an object with a "questions"
// array and a bare array.
func questionItems(raw string) []any {
	obj, strategy := parse.Object(raw, nil, nil)
	if obj != nil {
		if items := parse.List(obj, "questions"); items != nil {
			metrics.RecordParserRung(string(strategy))
			return items
		}
	}

	items, arrayStrategy := parse.Array(raw, nil)
	metrics.RecordParserRung(string(arrayStrategy))
	return items
}

// buildQuestionSet finalizes ordering-derived fields. Priority questions
// are the positional first three, preserving the model's own ranking.
func buildQuestionSet(questions []model.Question) model.QuestionSet {
	categories := make(map[string]int)
	for _, q := range questions {
		categories[q.Category]++
	}

	n := priorityQuestions
	if len(questions) < n {
		n = len(questions)
	}

	return model.QuestionSet{
		Questions:         questions,
		TotalQuestions:    len(questions),
		Categories:        categories,
		PriorityQuestions: questions[:n],
	}
}

func cannedQuestions() []model.Question {
	return []model.Question{
		{
			Question: "What relevant experience does the founding team bring to this market?",
			Category: classify.CategoryTeam, Priority: "high",
			Rationale: "Team quality is the strongest early-stage signal.",
		},
		{
			Question: "What is the total addressable market and how was it sized?",
			Category: classify.CategoryMarket, Priority: "high",
			Rationale: "Market size claims need independent validation.",
		},
		{
			Question: "What is the current state of the product and the technical roadmap?",
			Category: classify.CategoryTechnology, Priority: "medium",
			Rationale: "Execution risk concentrates in the build.",
		},
		{
			Question: "How does the company acquire customers and at what cost?",
			Category: classify.CategoryBusiness, Priority: "medium",
			Rationale: "Unit economics determine scalability.",
		},
		{
			Question: "What are the biggest risks to the next twelve months of milestones?",
			Category: classify.CategoryRisk, Priority: "medium",
			Rationale: "Founders' own risk framing is informative.",
		},
	}
}
