package app

import (
	"github.com/deckray/deckray/internal/adapters/extract"
	"github.com/deckray/deckray/internal/adapters/llm"
	"github.com/deckray/deckray/internal/pipeline"
	"github.com/deckray/deckray/pkg/logger"
)

// Option applies a configuration option to the service.
type Option func(*Service)

// WithLogger sets the logger for service operations.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCompleter overrides the model client, bypassing provider wiring.
func WithCompleter(c llm.Completer) Option {
	return func(s *Service) {
		s.completer = c
	}
}

// WithExtractor overrides the document extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

// WithRunner overrides the whole pipeline, bypassing adapter wiring.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Service) {
		s.runner = r
	}
}
