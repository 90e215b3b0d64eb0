package site_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sunugal/releves/internal/adapters/http/site"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	site.Register(context.Background(), mux, site.WithCookieName("authToken"))
	return httptest.NewServer(mux)
}

func get(t *testing.T, url string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func TestPageRouting(t *testing.T) {
	guard := &http.Cookie{Name: "authToken", Value: "tok-123"}

	Convey("Given the portal site", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When requesting the entry page without the guard cookie", func() {
			resp := get(t, ts.URL+"/", nil)
			defer resp.Body.Close()

			Convey("Then the login page is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "Se connecter")
			})
		})

		Convey("When requesting the entry page with the guard cookie", func() {
			resp := get(t, ts.URL+"/", guard)
			defer resp.Body.Close()

			Convey("Then the browser is sent to the results page", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusSeeOther)
				So(resp.Header.Get("Location"), ShouldEqual, "/releves")
			})
		})

		Convey("When requesting the results page without the guard cookie", func() {
			resp := get(t, ts.URL+"/releves", nil)
			defer resp.Body.Close()

			Convey("Then the browser is sent back to the entry page", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusSeeOther)
				So(resp.Header.Get("Location"), ShouldEqual, "/")
			})
		})

		Convey("When requesting the results page with the guard cookie", func() {
			resp := get(t, ts.URL+"/releves", guard)
			defer resp.Body.Close()

			Convey("Then the results page is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "Moyenne générale")
			})
		})

		Convey("When requesting a guard cookie with an empty value", func() {
			resp := get(t, ts.URL+"/releves", &http.Cookie{Name: "authToken", Value: ""})
			defer resp.Body.Close()

			Convey("Then it does not count as signed in", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusSeeOther)
			})
		})
	})
}
