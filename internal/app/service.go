// Package app wires configuration, adapters, and the pipeline into the
// service the transport layer talks to.
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/deckray/deckray/internal/adapters/competitorsearch"
	"github.com/deckray/deckray/internal/adapters/extract"
	"github.com/deckray/deckray/internal/adapters/github"
	"github.com/deckray/deckray/internal/adapters/gitroll"
	"github.com/deckray/deckray/internal/adapters/llm"
	"github.com/deckray/deckray/internal/adapters/websearch"
	"github.com/deckray/deckray/internal/config"
	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/pipeline"
	"github.com/deckray/deckray/pkg/logger"
)

// Service owns the analysis pipeline and its adapters.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	extractor *extract.Extractor
	runner    *pipeline.Runner

	completer llm.Completer // overridable before wiring, for tests

	started   time.Time
	total     atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

// Stats is the operational snapshot served by the stats endpoint.
type Stats struct {
	UptimeSeconds      float64 `json:"uptime_seconds"`
	AnalysesTotal      int64   `json:"analyses_total"`
	AnalysesSucceeded  int64   `json:"analyses_succeeded"`
	AnalysesFailed     int64   `json:"analyses_failed"`
	LLMProvider        string  `json:"llm_provider"`
	CompetitorSearch   string  `json:"competitor_search_mode"`
	StageTimeoutSecond int     `json:"stage_timeout_seconds"`
}

// New builds the service from configuration, wiring every adapter.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	s := &Service{
		cfg:     cfg,
		log:     logger.Get().Named("app"),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.completer == nil {
		completer, err := llm.New(cfg, s.log)
		if err != nil {
			return nil, fmt.Errorf("building model client: %w", err)
		}
		s.completer = completer
	}

	if s.extractor == nil {
		s.extractor = extract.New()
	}

	if s.runner == nil {
		runner, err := pipeline.NewRunner(s.completer,
			pipeline.WithLogger(s.log.Named("pipeline")),
			pipeline.WithPersonLookup(websearch.NewLive("", s.log)),
			pipeline.WithCodeHost(github.New(cfg.GitHubBaseURL, cfg.GitHubToken, s.log)),
			pipeline.WithScanner(gitroll.New(
				cfg.GitRollAPIURL,
				cfg.GitRollProfileURL,
				time.Duration(cfg.ScanPollIntervalSeconds)*time.Second,
				time.Duration(cfg.ScanTimeoutSeconds)*time.Second,
				s.log,
			)),
			pipeline.WithCompetitorSearcher(s.competitorSearcher()),
			pipeline.WithStageTimeout(time.Duration(cfg.StageTimeoutSeconds)*time.Second),
			pipeline.WithScanCeiling(time.Duration(cfg.ScanTimeoutSeconds)*time.Second),
			pipeline.WithEnrichWorkers(cfg.EnrichWorkerCount),
			pipeline.WithPrefixCaps(cfg.DeckPrefixChars, cfg.FounderPrefixChars),
		)
		if err != nil {
			return nil, fmt.Errorf("building pipeline: %w", err)
		}
		s.runner = runner
	}

	s.log.Info(context.Background(), "service ready",
		logger.String("llm_provider", cfg.LLMProvider),
		logger.String("competitor_search_mode", cfg.CompetitorSearchMode))

	return s, nil
}

func (s *Service) competitorSearcher() competitorsearch.Searcher {
	if s.cfg.CompetitorSearchMode == config.CompetitorSearchLive {
		return competitorsearch.NewLive("", s.log)
	}
	return competitorsearch.NewStub()
}

// Analyze extracts text from an uploaded deck and runs the full pipeline.
// Extraction problems (unsupported format, unreadable file) return an
// error; pipeline degradations do not.
func (s *Service) Analyze(ctx context.Context, content []byte, filename, projectName string) (model.Report, error) {
	text, format, err := s.extractor.Text(ctx, content, filename)
	if err != nil {
		s.failed.Add(1)
		s.total.Add(1)
		return model.Report{}, err
	}

	doc := model.Document{Text: text, Filename: filename, Format: format}
	report := s.runner.Analyze(ctx, doc, projectName)

	s.total.Add(1)
	if report.Status == model.StatusSuccess {
		s.succeeded.Add(1)
	} else {
		s.failed.Add(1)
	}
	return report, nil
}

// GetStats returns the operational snapshot.
func (s *Service) GetStats() Stats {
	return Stats{
		UptimeSeconds:      time.Since(s.started).Seconds(),
		AnalysesTotal:      s.total.Load(),
		AnalysesSucceeded:  s.succeeded.Load(),
		AnalysesFailed:     s.failed.Load(),
		LLMProvider:        s.cfg.LLMProvider,
		CompetitorSearch:   s.cfg.CompetitorSearchMode,
		StageTimeoutSecond: s.cfg.StageTimeoutSeconds,
	}
}
