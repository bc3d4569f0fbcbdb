package parse_test

import (
	"strings"
	"testing"

	"github.com/deckray/deckray/internal/domain/parse"
	. "github.com/smartystreets/goconvey/convey"
)

func TestObject(t *testing.T) {
	def := map[string]any{"score": 5.0}

	Convey("Given a fenced json code block", t, func() {
		raw := "Here is my analysis:\n```json\n{\"score\": 8, \"summary\": \"strong\"}\n```\nLet me know."
		m, strategy := parse.Object(raw, nil, def)

		So(strategy, ShouldEqual, parse.StrategyRegex)
		So(parse.Number(m["score"], 0), ShouldEqual, 8)
		So(m["summary"], ShouldEqual, "strong")
	})

	Convey("Given a fence without the json language tag", t, func() {
		raw := "```\n{\"score\": 7}\n```"
		m, strategy := parse.Object(raw, nil, def)

		So(strategy, ShouldEqual, parse.StrategyRegex)
		So(parse.Number(m["score"], 0), ShouldEqual, 7)
	})

	Convey("Given JSON buried in conversational prose", t, func() {
		raw := `Sure! Here's the JSON you asked for: {"project_name": "Acme", "industry": "fintech"} Hope that helps!`
		m, strategy := parse.Object(raw, nil, def)

		So(strategy, ShouldEqual, parse.StrategyBraceMatch)
		So(m["project_name"], ShouldEqual, "Acme")
		So(m["industry"], ShouldEqual, "fintech")
	})

	Convey("Given nested objects and braces inside strings", t, func() {
		raw := `prefix {"name": "a {weird} co", "inner": {"depth": 2}} suffix`
		m, strategy := parse.Object(raw, nil, def)

		So(strategy, ShouldEqual, parse.StrategyBraceMatch)
		So(m["name"], ShouldEqual, "a {weird} co")
		So(parse.Map(m, "inner"), ShouldNotBeNil)
	})

	Convey("Given no recoverable JSON and a manual extractor", t, func() {
		raw := "The overall score is 6 out of 10 with strong fundamentals."
		manual := func(text string) (map[string]any, bool) {
			if strings.Contains(text, "score is 6") {
				return map[string]any{"score": 6.0}, true
			}
			return nil, false
		}
		m, strategy := parse.Object(raw, manual, def)

		So(strategy, ShouldEqual, parse.StrategyManual)
		So(m["score"], ShouldEqual, 6.0)
	})

	Convey("Given nothing recoverable at all", t, func() {
		m, strategy := parse.Object("I cannot answer that.", nil, def)

		So(strategy, ShouldEqual, parse.StrategyDefault)
		So(m, ShouldResemble, def)
	})

	Convey("Given an unbalanced brace before the real object", t, func() {
		raw := `broken { oops "x": then later {"score": 9} end`
		m, strategy := parse.Object(raw, nil, def)

		So(strategy, ShouldEqual, parse.StrategyBraceMatch)
		So(parse.Number(m["score"], 0), ShouldEqual, 9)
	})
}

func TestArray(t *testing.T) {
	Convey("Given a fenced array", t, func() {
		raw := "```json\n[\"q1\", \"q2\"]\n```"
		a, strategy := parse.Array(raw, nil)

		So(strategy, ShouldEqual, parse.StrategyRegex)
		So(parse.StringList(a), ShouldResemble, []string{"q1", "q2"})
	})

	Convey("Given an array in prose", t, func() {
		raw := `Questions: [{"question": "How?"}, {"question": "Why?"}] done`
		a, strategy := parse.Array(raw, nil)

		So(strategy, ShouldEqual, parse.StrategyBraceMatch)
		So(a, ShouldHaveLength, 2)
	})

	Convey("Given nothing recoverable", t, func() {
		def := []any{"fallback"}
		a, strategy := parse.Array("no list here", def)

		So(strategy, ShouldEqual, parse.StrategyDefault)
		So(a, ShouldResemble, def)
	})
}

func TestCoercion(t *testing.T) {
	Convey("Given drifting value types", t, func() {
		Convey("Number should accept numeric strings", func() {
			So(parse.Number("7.5", 0), ShouldEqual, 7.5)
			So(parse.Number(" 8 ", 0), ShouldEqual, 8)
			So(parse.Number("high", 5), ShouldEqual, 5)
			So(parse.Number(nil, 5), ShouldEqual, 5)
		})

		Convey("Int should truncate floats", func() {
			So(parse.Int(7.9, 0), ShouldEqual, 7)
			So(parse.Int("12", 0), ShouldEqual, 12)
			So(parse.Int(nil, 3), ShouldEqual, 3)
		})

		Convey("String should trim and reject empties", func() {
			So(parse.String("  hi  ", "def"), ShouldEqual, "hi")
			So(parse.String("   ", "def"), ShouldEqual, "def")
			So(parse.String(7.0, "def"), ShouldEqual, "7")
			So(parse.String(nil, "def"), ShouldEqual, "def")
		})

		Convey("Bool should accept string forms", func() {
			So(parse.Bool("true", false), ShouldBeTrue)
			So(parse.Bool("nope", true), ShouldBeTrue)
		})

		Convey("StringList should promote scalars and drop empties", func() {
			So(parse.StringList([]any{"a", "", "b", 3.0}), ShouldResemble, []string{"a", "b", "3"})
			So(parse.StringList("single"), ShouldResemble, []string{"single"})
			So(parse.StringList(nil), ShouldBeNil)
		})

		Convey("Map and List should guard against mistyped fields", func() {
			m := map[string]any{"obj": map[string]any{"k": "v"}, "arr": []any{1.0}, "str": "x"}
			So(parse.Map(m, "obj"), ShouldNotBeNil)
			So(parse.Map(m, "str"), ShouldBeNil)
			So(parse.List(m, "arr"), ShouldHaveLength, 1)
			So(parse.List(m, "obj"), ShouldBeNil)
		})
	})
}
