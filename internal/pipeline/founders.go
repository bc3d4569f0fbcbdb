package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/deckray/deckray/internal/domain/classify"
	"github.com/deckray/deckray/internal/domain/dedupe"
	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/domain/parse"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	maxFounders         = 10
	maxFallbackFounders = 5
)

// roleNameRe pairs a capitalized name with a recognized title, e.g.
// "Jane Doe, CEO" or "John Smith - Co-founder". Used only when the model
// response yields no JSON.
var roleNameRe = regexp.MustCompile(`(?m)([A-Z][A-Za-z'.-]+(?:\s+[A-Z][A-Za-z'.-]+){0,3})\s*[,:–—-]\s*(CEO|CTO|CMO|CFO|Founder|Co-[Ff]ounder|Director|Head of [A-Za-z ]+|VP[A-Za-z ]*|President)`)

// extractFounders pulls the named team out of the deck. JSON failure falls
// back to scanning the deck itself for name-title pairs.
func (r *Runner) extractFounders(ctx context.Context, deckText string) []model.Founder {
	raw, err := r.completer.Complete(ctx, founderExtractionPrompt(deckText, r.founderPrefix))
	if err != nil {
		metrics.RecordStageFailure(stepFounderAnalysis)
		r.log.Warn(ctx, "founder extraction failed, scanning deck directly", logger.Error(err))
		return fallbackFounders(deckText)
	}

	obj, strategy := parse.Object(raw, nil, nil)
	metrics.RecordParserRung(string(strategy))
	if obj == nil {
		return fallbackFounders(deckText)
	}

	seen := dedupe.NewSet()
	founders := make([]model.Founder, 0, maxFounders)
	for _, item := range parse.List(obj, "founders") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := parse.String(entry["name"], "")
		if !classify.ValidFounderName(name) {
			continue
		}
		if seen.SeenAndRecord(name) {
			continue
		}
		founders = append(founders, model.Founder{
			Name:    name,
			Role:    parse.String(entry["role"], "Unknown"),
			DeckBio: parse.String(entry["bio"], ""),
		})
		if len(founders) == maxFounders {
			break
		}
	}

	if len(founders) == 0 {
		return fallbackFounders(deckText)
	}
	return founders
}

// fallbackFounders scans raw deck text for name-title pairs. Candidates are
// lower confidence than model output, so the tighter name bounds apply and
// the cap is halved.
func fallbackFounders(deckText string) []model.Founder {
	seen := dedupe.NewSet()
	founders := make([]model.Founder, 0, maxFallbackFounders)
	for _, match := range roleNameRe.FindAllStringSubmatch(deckText, -1) {
		name := strings.TrimSpace(match[1])
		if !classify.ValidFallbackName(name) {
			continue
		}
		if seen.SeenAndRecord(name) {
			continue
		}
		founders = append(founders, model.Founder{
			Name: name,
			Role: strings.TrimSpace(match[2]),
		})
		if len(founders) == maxFallbackFounders {
			break
		}
	}
	return founders
}
