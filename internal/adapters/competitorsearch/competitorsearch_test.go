package competitorsearch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckray/deckray/internal/adapters/competitorsearch"
	"github.com/deckray/deckray/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStub(t *testing.T) {
	Convey("Given the deterministic stub", t, func() {
		stub := competitorsearch.NewStub()
		ctx := context.Background()

		Convey("Then the same query should yield the same hits", func() {
			first := stub.Search(ctx, "fintech payments platform")
			second := stub.Search(ctx, "fintech payments platform")

			So(first, ShouldResemble, second)
			So(first, ShouldHaveLength, 3)
			So(first[0].Name, ShouldEqual, "Fintech Technologies")
		})

		Convey("Then stopwords should not drive the hit names", func() {
			hits := stub.Search(ctx, "the platform for logistics")
			So(hits[0].Name, ShouldEqual, "Logistics Technologies")
		})

		Convey("Then an empty query should still produce hits", func() {
			hits := stub.Search(ctx, "")
			So(hits, ShouldHaveLength, 3)
			So(hits[0].Name, ShouldEqual, "Market Technologies")
		})
	})
}

func TestLive(t *testing.T) {
	log := logger.Get()

	Convey("Given a results page", t, func() {
		page := `<div>
			<a class="result__a" href="https://rival.example.com">Rival <b>Fintech</b> Inc</a>
			<a class="result__a" href="https://other.example.com">Other Payments Co</a>
		</div>`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(page))
		}))
		defer server.Close()

		searcher := competitorsearch.NewLive(server.URL, log)
		hits := searcher.Search(context.Background(), "fintech payments")

		So(hits, ShouldHaveLength, 2)
		So(hits[0].Name, ShouldEqual, "Rival Fintech Inc")
		So(hits[0].URL, ShouldEqual, "https://rival.example.com")
	})

	Convey("Given a failing engine", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "blocked", http.StatusForbidden)
		}))
		defer server.Close()

		searcher := competitorsearch.NewLive(server.URL, log)
		So(searcher.Search(context.Background(), "anything"), ShouldBeEmpty)
	})
}
