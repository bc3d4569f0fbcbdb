package classify_test

import (
	"strings"
	"testing"
	"time"

	"github.com/deckray/deckray/internal/domain/classify"
	"github.com/deckray/deckray/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSaturation(t *testing.T) {
	Convey("Given competitor counts at the bucket boundaries", t, func() {
		So(classify.Saturation(0), ShouldEqual, "low")
		So(classify.Saturation(1), ShouldEqual, "low")
		So(classify.Saturation(3), ShouldEqual, "low")
		So(classify.Saturation(4), ShouldEqual, "medium")
		So(classify.Saturation(8), ShouldEqual, "medium")
		So(classify.Saturation(9), ShouldEqual, "high")
		So(classify.Saturation(50), ShouldEqual, "high")
	})
}

func TestActivity(t *testing.T) {
	Convey("Given a fixed reference time", t, func() {
		now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

		Convey("Then boundary days should fall into the documented buckets", func() {
			So(classify.Activity(daysAgo(0), now), ShouldEqual, model.ActivityVeryHigh)
			So(classify.Activity(daysAgo(7), now), ShouldEqual, model.ActivityVeryHigh)
			So(classify.Activity(daysAgo(8), now), ShouldEqual, model.ActivityHigh)
			So(classify.Activity(daysAgo(30), now), ShouldEqual, model.ActivityHigh)
			So(classify.Activity(daysAgo(31), now), ShouldEqual, model.ActivityMedium)
			So(classify.Activity(daysAgo(90), now), ShouldEqual, model.ActivityMedium)
			So(classify.Activity(daysAgo(91), now), ShouldEqual, model.ActivityLow)
			So(classify.Activity(daysAgo(365), now), ShouldEqual, model.ActivityLow)
		})

		Convey("Then a missing timestamp should be unknown", func() {
			So(classify.Activity(time.Time{}, now), ShouldEqual, model.ActivityUnknown)
		})
	})
}

func TestValidFounderName(t *testing.T) {
	Convey("Given candidate founder names", t, func() {
		Convey("Then clean two-to-four token names should pass", func() {
			So(classify.ValidFounderName("Jane Doe"), ShouldBeTrue)
			So(classify.ValidFounderName("Maria Garcia Lopez"), ShouldBeTrue)
			So(classify.ValidFounderName("Jean Claude Van Damme"), ShouldBeTrue)
		})

		Convey("Then degenerate names should be rejected", func() {
			So(classify.ValidFounderName(""), ShouldBeFalse)
			So(classify.ValidFounderName("J"), ShouldBeFalse)
			So(classify.ValidFounderName("ab"), ShouldBeFalse)
			So(classify.ValidFounderName(strings.Repeat("a", 101)), ShouldBeFalse)
			So(classify.ValidFounderName("One Two Three Four Five"), ShouldBeFalse)
			So(classify.ValidFounderName("Jane\nDoe"), ShouldBeFalse)
			So(classify.ValidFounderName("Jane\tDoe"), ShouldBeFalse)
			So(classify.ValidFounderName("Jane | Doe"), ShouldBeFalse)
			So(classify.ValidFounderName("Jane - CEO"), ShouldBeFalse)
			So(classify.ValidFounderName("• Jane Doe"), ShouldBeFalse)
		})

		Convey("Then the fallback bounds should be tighter", func() {
			So(classify.ValidFallbackName("Jane Doe"), ShouldBeTrue)
			So(classify.ValidFallbackName("Jan"), ShouldBeFalse) // len 3 not strictly above 3
			So(classify.ValidFallbackName(strings.Repeat("a", 50)), ShouldBeFalse)
			So(classify.ValidFallbackName(strings.Repeat("a", 49)), ShouldBeTrue)
		})
	})
}

func TestCategorizeQuestion(t *testing.T) {
	Convey("Given questions with category keywords", t, func() {
		So(classify.CategorizeQuestion("What is your team's relevant experience?"), ShouldEqual, classify.CategoryTeam)
		So(classify.CategorizeQuestion("How large is the addressable market?"), ShouldEqual, classify.CategoryMarket)
		So(classify.CategorizeQuestion("How does the platform scale technically?"), ShouldEqual, classify.CategoryTechnology)
		So(classify.CategorizeQuestion("What are your unit economics and revenue streams?"), ShouldEqual, classify.CategoryBusiness)
		So(classify.CategorizeQuestion("What is the biggest obstacle ahead?"), ShouldEqual, classify.CategoryRisk)
		So(classify.CategorizeQuestion("Tell me something else entirely."), ShouldEqual, classify.CategoryGeneral)
	})

	Convey("Given model-supplied categories", t, func() {
		So(classify.KnownCategory("team"), ShouldBeTrue)
		So(classify.KnownCategory("risk"), ShouldBeTrue)
		So(classify.KnownCategory("astrology"), ShouldBeFalse)
	})
}
