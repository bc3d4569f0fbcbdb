package config_test

import (
	"testing"

	"github.com/deckray/deckray/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then core defaults should be set", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.LLMProvider, ShouldEqual, config.ProviderOpenAI)
		})

		Convey("Then scan polling defaults should match the service contract", func() {
			So(cfg.ScanPollIntervalSeconds, ShouldEqual, 10)
			So(cfg.ScanTimeoutSeconds, ShouldEqual, 300)
		})

		Convey("Then the competitor search adapter should default to the explicit stub", func() {
			So(cfg.CompetitorSearchMode, ShouldEqual, config.CompetitorSearchStub)
		})

		Convey("Then prompt prefix caps should be bounded", func() {
			So(cfg.DeckPrefixChars, ShouldEqual, 3000)
			So(cfg.FounderPrefixChars, ShouldEqual, 4000)
		})
	})
}
