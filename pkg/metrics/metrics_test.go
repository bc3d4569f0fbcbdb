package metrics_test

import (
	"testing"

	"github.com/deckray/deckray/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording pipeline metrics", func() {
			So(func() {
				metrics.RecordAnalysisStarted()
				metrics.RecordStageDuration("project_analysis", 1.2)
				metrics.RecordStageFailure("viability_assessment")
				metrics.RecordParserRung("brace_match")
				metrics.RecordAnalysisCompleted("success", 12.5)
			}, ShouldNotPanic)
		})

		Convey("When recording LLM and lookup metrics", func() {
			So(func() {
				metrics.RecordLLMCall(350)
				metrics.RecordLLMError()
				metrics.RecordLLMEmptyResponse()
				metrics.RecordLookup("github")
				metrics.RecordLookupError("gitroll")
				metrics.RecordScanTimeout()
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				metrics.RecordHTTPRequest("upload", "POST", "200")
				metrics.RecordHTTPRequestDuration("upload", "POST", "200", 42)
				metrics.UpdateSystemMemoryUsage(1024)
				metrics.UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should be exposed", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
