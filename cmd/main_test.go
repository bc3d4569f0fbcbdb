package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/deckray/deckray/internal/adapters/http/api"
	"github.com/deckray/deckray/internal/adapters/http/swagger"
	app "github.com/deckray/deckray/internal/app"
	"github.com/deckray/deckray/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("DECKRAY_ADDR", ":8080")
			_ = os.Setenv("DECKRAY_LLM_PROVIDER", "anthropic")
			_ = os.Setenv("DECKRAY_STAGE_TIMEOUT_SECONDS", "60")
			defer func() {
				_ = os.Unsetenv("DECKRAY_ADDR")
				_ = os.Unsetenv("DECKRAY_LLM_PROVIDER")
				_ = os.Unsetenv("DECKRAY_STAGE_TIMEOUT_SECONDS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LLMProvider, convey.ShouldEqual, config.ProviderAnthropic)
				convey.So(cfg.StageTimeoutSeconds, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When testing service creation", func() {
			cfg := config.New()
			cfg.LLMAPIKey = "test-key"

			convey.Convey("Then service should be creatable from configuration", func() {
				svc, err := app.New(cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And HTTP server should be creatable", func() {
				svc, err := app.New(cfg)
				convey.So(err, convey.ShouldBeNil)

				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestHTTPServerTimeouts(t *testing.T) {
	convey.Convey("Given the HTTP server timeout constants", t, func() {
		convey.Convey("Then the write timeout should cover a worst-case analysis", func() {
			cfg := config.New()
			worstCase := 8*time.Duration(cfg.StageTimeoutSeconds)*time.Second +
				time.Duration(cfg.ScanTimeoutSeconds)*time.Second
			convey.So(writeTimeout, convey.ShouldBeGreaterThanOrEqualTo, worstCase)
		})

		convey.Convey("And slow-client protection should stay on the header read", func() {
			convey.So(readHeaderTimeout, convey.ShouldBeLessThanOrEqualTo, 10*time.Second)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop when the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			_ = os.Setenv("DECKRAY_ADDR", ":8080")
			_ = os.Setenv("DECKRAY_LLM_API_KEY", "test-key")
			defer func() {
				_ = os.Unsetenv("DECKRAY_ADDR")
				_ = os.Unsetenv("DECKRAY_LLM_API_KEY")
			}()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				svc, err := app.New(cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc, convey.ShouldNotBeNil)

				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)

				server.Register(ctx, mux)
				swagger.Register(ctx, mux)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("DECKRAY_LLM_PROVIDER", "parrot")
			defer func() { _ = os.Unsetenv("DECKRAY_LLM_PROVIDER") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation without an API key", func() {
			cfg := config.New()

			convey.Convey("Then service creation should fail", func() {
				svc, err := app.New(cfg)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(svc, convey.ShouldBeNil)
			})
		})
	})
}
