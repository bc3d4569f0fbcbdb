// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Competitor search modes.
const (
	CompetitorSearchStub = "stub"
	CompetitorSearchLive = "live"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LLMProvider selects the text-generation backend: openai or anthropic.
	LLMProvider string `koanf:"llm_provider"`

	// LLMModel overrides the provider's default model when non-empty.
	LLMModel string `koanf:"llm_model"`

	// LLMAPIKey authenticates against the text-generation backend.
	LLMAPIKey string `koanf:"llm_api_key"`

	// LLMBaseURL overrides the provider endpoint, mainly for tests.
	LLMBaseURL string `koanf:"llm_base_url"`

	// GitHubBaseURL points at the code-hosting REST API.
	GitHubBaseURL string `koanf:"github_base_url"`

	// GitHubToken is an optional token for higher rate limits.
	GitHubToken string `koanf:"github_token"`

	// GitRollAPIURL is the scan-initiation endpoint of the code-quality service.
	GitRollAPIURL string `koanf:"gitroll_api_url"`

	// GitRollProfileURL is the base URL scan results are scraped from.
	GitRollProfileURL string `koanf:"gitroll_profile_url"`

	// ScanPollIntervalSeconds is the delay between scan status checks.
	ScanPollIntervalSeconds int `koanf:"scan_poll_interval_seconds"`

	// ScanTimeoutSeconds bounds the wall-clock wait for a scan to complete.
	ScanTimeoutSeconds int `koanf:"scan_timeout_seconds"`

	// StageTimeoutSeconds bounds each external call made by a pipeline stage.
	StageTimeoutSeconds int `koanf:"stage_timeout_seconds"`

	// EnrichWorkerCount bounds concurrent founder enrichment.
	EnrichWorkerCount int `koanf:"enrich_worker_count"`

	// CompetitorSearchMode selects the competitor discovery adapter: stub or live.
	// The stub never ships implicitly; it must be chosen here.
	CompetitorSearchMode string `koanf:"competitor_search_mode"`

	// DeckPrefixChars caps the document prefix sent for project extraction.
	DeckPrefixChars int `koanf:"deck_prefix_chars"`

	// FounderPrefixChars caps the document prefix sent for founder extraction.
	FounderPrefixChars int `koanf:"founder_prefix_chars"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		LLMProvider:             ProviderOpenAI,
		LLMModel:                "",
		LLMAPIKey:               "",
		LLMBaseURL:              "",
		GitHubBaseURL:           "https://api.github.com",
		GitHubToken:             "",
		GitRollAPIURL:           "https://gitroll.io/api/user-scan",
		GitRollProfileURL:       "https://gitroll.io/profile",
		ScanPollIntervalSeconds: 10,
		ScanTimeoutSeconds:      300,
		StageTimeoutSeconds:     120,
		EnrichWorkerCount:       3,
		CompetitorSearchMode:    CompetitorSearchStub,
		DeckPrefixChars:         3000,
		FounderPrefixChars:      4000,
	}
}
