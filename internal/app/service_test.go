package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/deckray/deckray/internal/adapters/extract"
	"github.com/deckray/deckray/internal/app"
	"github.com/deckray/deckray/internal/config"
	"github.com/deckray/deckray/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// echoCompleter returns a minimal valid JSON object for any prompt, enough
// for every stage's parser to succeed or degrade cleanly.
type echoCompleter struct{}

func (e *echoCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Extract the business profile") {
		return `{"project_name": "Echo Co", "description": "d", "problem_statement": "p", "solution": "s", "target_market": "t", "business_model": "b"}`, nil
	}
	return `{"score": 6}`, nil
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	cfg := config.New()
	cfg.LLMAPIKey = "test-key"

	svc, err := app.New(cfg, app.WithCompleter(&echoCompleter{}))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return svc
}

func TestServiceAnalyze(t *testing.T) {
	Convey("Given a wired service", t, func() {
		svc := newService(t)
		ctx := context.Background()

		Convey("When analyzing a text deck", func() {
			report, err := svc.Analyze(ctx, []byte("Echo Co pitch deck content"), "deck.txt", "")

			So(err, ShouldBeNil)
			So(report.Status, ShouldEqual, model.StatusSuccess)
			So(report.ProjectName, ShouldEqual, "Echo Co")
			So(report.FileProcessed, ShouldEqual, "deck.txt")
		})

		Convey("When the file format is unsupported", func() {
			_, err := svc.Analyze(ctx, []byte("data"), "deck.zip", "")

			So(err, ShouldWrap, extract.ErrUnsupportedFormat)
		})

		Convey("When the deck is empty", func() {
			report, err := svc.Analyze(ctx, []byte("   "), "deck.txt", "")

			So(err, ShouldBeNil)
			So(report.Status, ShouldEqual, model.StatusError)
		})
	})
}

func TestServiceStats(t *testing.T) {
	Convey("Given a service that has processed uploads", t, func() {
		svc := newService(t)
		ctx := context.Background()

		_, _ = svc.Analyze(ctx, []byte("deck one"), "a.txt", "")
		_, _ = svc.Analyze(ctx, []byte("   "), "b.txt", "")
		_, _ = svc.Analyze(ctx, []byte("data"), "c.zip", "")

		stats := svc.GetStats()

		So(stats.AnalysesTotal, ShouldEqual, 3)
		So(stats.AnalysesSucceeded, ShouldEqual, 1)
		So(stats.AnalysesFailed, ShouldEqual, 2)
		So(stats.LLMProvider, ShouldEqual, config.ProviderOpenAI)
		So(stats.UptimeSeconds, ShouldBeGreaterThanOrEqualTo, 0)
	})
}

func TestServiceConstruction(t *testing.T) {
	Convey("Given invalid construction inputs", t, func() {
		Convey("When config is nil", func() {
			_, err := app.New(nil)
			So(err, ShouldWrap, app.ErrNilConfig)
		})

		Convey("When no api key is configured and no completer is injected", func() {
			_, err := app.New(config.New())
			So(err, ShouldNotBeNil)
		})
	})
}
