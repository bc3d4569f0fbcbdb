package pipeline

import (
	"time"

	"github.com/deckray/deckray/internal/adapters/competitorsearch"
	"github.com/deckray/deckray/internal/adapters/websearch"
	"github.com/deckray/deckray/pkg/logger"
)

// Option applies a configuration option to the runner.
type Option func(*Runner)

// WithPersonLookup sets the person search adapter.
func WithPersonLookup(p websearch.PersonLookup) Option {
	return func(r *Runner) {
		if p != nil {
			r.person = p
		}
	}
}

// WithCodeHost sets the code-hosting adapter. Without one, repository and
// profile lookups are skipped.
func WithCodeHost(c CodeHost) Option {
	return func(r *Runner) {
		r.code = c
	}
}

// WithScanner sets the developer-scan adapter. Without one, scan scores are
// left empty.
func WithScanner(s Scanner) Option {
	return func(r *Runner) {
		r.scanner = s
	}
}

// WithCompetitorSearcher sets the competitor discovery adapter.
func WithCompetitorSearcher(s competitorsearch.Searcher) Option {
	return func(r *Runner) {
		if s != nil {
			r.searcher = s
		}
	}
}

// WithLogger sets the logger for pipeline operations.
func WithLogger(log logger.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithStageTimeout bounds each stage's external calls.
func WithStageTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.stageLimit = d
		}
	}
}

// WithScanCeiling aligns the founder stage's time limit with the
// developer-scan ceiling so a scan can run to completion.
func WithScanCeiling(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.scanCeiling = d
		}
	}
}

// WithEnrichWorkers bounds concurrent founder enrichment.
func WithEnrichWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.enrichWorkers = n
		}
	}
}

// WithPrefixCaps sets the per-stage deck truncation lengths in runes.
func WithPrefixCaps(deck, founder int) Option {
	return func(r *Runner) {
		if deck > 0 {
			r.deckPrefix = deck
		}
		if founder > 0 {
			r.founderPrefix = founder
		}
	}
}

// WithClock overrides time for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides report id generation for tests.
func WithIDGenerator(newID func() string) Option {
	return func(r *Runner) {
		if newID != nil {
			r.newID = newID
		}
	}
}
