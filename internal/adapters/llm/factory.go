package llm

import (
	"fmt"

	"github.com/deckray/deckray/internal/config"
	"github.com/deckray/deckray/pkg/logger"
)

// New builds the Completer selected by configuration.
func New(cfg *config.Config, log logger.Logger) (Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL, log)
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.LLMProvider)
	}
}
