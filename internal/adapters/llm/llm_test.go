package llm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckray/deckray/internal/adapters/llm"
	"github.com/deckray/deckray/internal/config"
	"github.com/deckray/deckray/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOpenAIClient(t *testing.T) {
	log := logger.Get()

	Convey("Given an OpenAI-compatible server", t, func() {
		Convey("When the server returns a completion", func() {
			var gotPath, gotAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"score\": 8}"}}]}`))
			}))
			defer server.Close()

			client, err := llm.NewOpenAI("test-key", "test-model", server.URL, log)
			So(err, ShouldBeNil)

			text, err := client.Complete(context.Background(), "evaluate this")

			So(err, ShouldBeNil)
			So(text, ShouldEqual, `{"score": 8}`)
			So(gotPath, ShouldEqual, "/v1/chat/completions")
			So(gotAuth, ShouldEqual, "Bearer test-key")
		})

		Convey("When the server returns an error status", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
			}))
			defer server.Close()

			client, err := llm.NewOpenAI("test-key", "test-model", server.URL, log)
			So(err, ShouldBeNil)

			_, err = client.Complete(context.Background(), "evaluate this")

			So(err, ShouldWrap, llm.ErrRequestFailed)
		})

		Convey("When the completion has no content", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  "}}]}`))
			}))
			defer server.Close()

			client, err := llm.NewOpenAI("test-key", "test-model", server.URL, log)
			So(err, ShouldBeNil)

			_, err = client.Complete(context.Background(), "evaluate this")

			So(err, ShouldWrap, llm.ErrEmptyResponse)
		})

		Convey("When no api key is configured", func() {
			_, err := llm.NewOpenAI("", "test-model", "", log)
			So(err, ShouldWrap, llm.ErrMissingAPIKey)
		})
	})
}

func TestAnthropicClient(t *testing.T) {
	log := logger.Get()

	Convey("Given an Anthropic-compatible server", t, func() {
		Convey("When the server returns text blocks", func() {
			var gotPath, gotKey, gotVersion string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.Header.Get("x-api-key")
				gotVersion = r.Header.Get("anthropic-version")
				_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"part one "},{"type":"text","text":"part two"}]}`))
			}))
			defer server.Close()

			client, err := llm.NewAnthropic("test-key", "test-model", server.URL, log)
			So(err, ShouldBeNil)

			text, err := client.Complete(context.Background(), "evaluate this")

			So(err, ShouldBeNil)
			So(text, ShouldEqual, "part one part two")
			So(gotPath, ShouldEqual, "/v1/messages")
			So(gotKey, ShouldEqual, "test-key")
			So(gotVersion, ShouldEqual, "2023-06-01")
		})

		Convey("When the reply has no text blocks", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"content":[]}`))
			}))
			defer server.Close()

			client, err := llm.NewAnthropic("test-key", "test-model", server.URL, log)
			So(err, ShouldBeNil)

			_, err = client.Complete(context.Background(), "evaluate this")

			So(err, ShouldWrap, llm.ErrEmptyResponse)
		})
	})
}

func TestFactory(t *testing.T) {
	log := logger.Get()

	Convey("Given provider configuration", t, func() {
		Convey("When the provider is openai", func() {
			cfg := config.New()
			cfg.LLMProvider = config.ProviderOpenAI
			cfg.LLMAPIKey = "k"

			client, err := llm.New(cfg, log)

			So(err, ShouldBeNil)
			So(client, ShouldHaveSameTypeAs, &llm.OpenAIClient{})
		})

		Convey("When the provider is anthropic", func() {
			cfg := config.New()
			cfg.LLMProvider = config.ProviderAnthropic
			cfg.LLMAPIKey = "k"

			client, err := llm.New(cfg, log)

			So(err, ShouldBeNil)
			So(client, ShouldHaveSameTypeAs, &llm.AnthropicClient{})
		})

		Convey("When the provider is unknown", func() {
			cfg := config.New()
			cfg.LLMProvider = "bard"

			_, err := llm.New(cfg, log)

			So(err, ShouldWrap, llm.ErrUnsupportedProvider)
		})
	})
}
