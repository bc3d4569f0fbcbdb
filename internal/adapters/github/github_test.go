package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckray/deckray/internal/adapters/github"
	"github.com/deckray/deckray/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	log := logger.Get()

	Convey("Given a GitHub API server", t, func(c C) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users/janedoe", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"login":"janedoe","name":"Jane Doe","bio":"builder","public_repos":42,"followers":100}`))
		})
		mux.HandleFunc("/users/janedoe/repos", func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Query().Get("sort"), ShouldEqual, "updated")
			_, _ = w.Write([]byte(`[
				{"name":"alpha","html_url":"https://github.com/janedoe/alpha","language":"Go","stargazers_count":10,"updated_at":"2025-06-01T00:00:00Z"},
				{"name":"beta","html_url":"https://github.com/janedoe/beta","language":"Python","stargazers_count":3,"updated_at":"2024-01-01T00:00:00Z"}
			]`))
		})
		mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		mux.HandleFunc("/users/limited", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limit exceeded", http.StatusForbidden)
		})
		mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Query().Get("q"), ShouldEqual, "acme platform")
			_, _ = w.Write([]byte(`{"items":[{"name":"acme","stargazers_count":500}]}`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client := github.New(server.URL, "", log)
		ctx := context.Background()

		Convey("When fetching a known user", func() {
			profile, err := client.GetUserProfile(ctx, "janedoe")

			So(err, ShouldBeNil)
			So(profile, ShouldNotBeNil)
			So(profile.Login, ShouldEqual, "janedoe")
			So(profile.PublicRepos, ShouldEqual, 42)
		})

		Convey("When fetching an unknown user", func() {
			profile, err := client.GetUserProfile(ctx, "ghost")

			So(err, ShouldBeNil)
			So(profile, ShouldBeNil)
		})

		Convey("When rate limited", func() {
			profile, err := client.GetUserProfile(ctx, "limited")

			So(err, ShouldBeNil)
			So(profile, ShouldBeNil)
		})

		Convey("When listing repositories", func() {
			repos, err := client.GetUserRepositories(ctx, "janedoe")

			So(err, ShouldBeNil)
			So(repos, ShouldHaveLength, 2)
			So(repos[0].Name, ShouldEqual, "alpha")
			So(repos[0].Stars, ShouldEqual, 10)
		})

		Convey("When searching repositories", func() {
			repos, err := client.SearchRepositories(ctx, "acme platform")

			So(err, ShouldBeNil)
			So(repos, ShouldHaveLength, 1)
			So(repos[0].Stars, ShouldEqual, 500)
		})
	})

	Convey("Given a token", t, func(c C) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.Header.Get("Authorization"), ShouldEqual, "Bearer secret")
			_, _ = w.Write([]byte(`{"login":"janedoe"}`))
		}))
		defer server.Close()

		client := github.New(server.URL, "secret", log)
		_, err := client.GetUserProfile(context.Background(), "janedoe")
		So(err, ShouldBeNil)
	})
}
