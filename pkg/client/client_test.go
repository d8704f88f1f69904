package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080/path", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q): expected error", raw)
		}
	}
}

func TestSearch_EncodesParamsAndToken(t *testing.T) {
	minSalary := int64(1000)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != "golang" || q.Get("type") != "job,course" || q.Get("salaryMin") != "1000" {
			t.Errorf("query = %v", q)
		}
		if q.Has("salaryMax") || q.Has("limit") || q.Has("offset") {
			t.Errorf("zero values must be omitted: %v", q)
		}
		_, _ = w.Write([]byte(`{"success":true,"total":3,"query":"golang",
			"results":[{"id":"j1","type":"job","title":"Go dev","url":"/jobs/j1","data":{"featured":true}}],
			"failedSources":["course"]}`))
	}, WithToken("secret"))

	resp, err := c.Search(context.Background(), SearchParams{
		Query:     "golang",
		Types:     []string{"job", "course"},
		SalaryMin: &minSalary,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Total != 3 || len(resp.Results) != 1 || resp.Results[0].Type != "job" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Results[0].Data["featured"] != true {
		t.Errorf("data = %v", resp.Results[0].Data)
	}
	if len(resp.FailedSources) != 1 || resp.FailedSources[0] != "course" {
		t.Errorf("failedSources = %v", resp.FailedSources)
	}
}

func TestDiscover(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/api/startups/discover" || q.Get("hasWebsite") != "true" || q.Get("sortBy") != "name" {
			t.Errorf("request = %s", r.URL)
		}
		if q.Has("hasSocialMedia") {
			t.Errorf("false flag must be omitted: %v", q)
		}
		_, _ = w.Write([]byte(`{"success":true,"total":1,"limit":20,"offset":0,
			"items":[{"id":"s1","name":"Acme","engagement":{"views":7},"isOwner":true}]}`))
	})

	resp, err := c.Discover(context.Background(), DiscoverParams{HasWebsite: true, SortBy: "name"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if resp.Total != 1 || resp.Limit != 20 || len(resp.Items) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if s := resp.Items[0]; s.Name != "Acme" || s.Engagement.Views != 7 || !s.IsOwner {
		t.Errorf("item = %+v", s)
	}
}

func TestRankedAndLists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/startups/recommendations", "/api/startups/trending":
			if r.URL.Query().Get("limit") != "5" {
				t.Errorf("limit = %q", r.URL.Query().Get("limit"))
			}
			_, _ = w.Write([]byte(`{"success":true,"limit":5,"startups":[{"id":"s1","score":1.5}]}`))
		case "/api/search/suggestions":
			_, _ = w.Write([]byte(`{"success":true,"suggestions":[{"text":"Go dev","type":"job","id":"j1"}]}`))
		case "/api/search/popular":
			_, _ = w.Write([]byte(`{"success":true,"searches":[{"query":"go","count":4}]}`))
		case "/api/startups/analytics":
			_, _ = w.Write([]byte(`{"success":true,"analytics":{"total":9,"byCategory":[{"key":"tech","count":9}]}}`))
		case "/api/certificates/logos":
			_, _ = w.Write([]byte(`{"success":true,"logos":{"aws":"https://cdn/aws.png"}}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	rec, err := c.Recommendations(ctx, 5)
	if err != nil || len(rec) != 1 || rec[0].Score != 1.5 {
		t.Errorf("Recommendations = %+v, %v", rec, err)
	}
	tr, err := c.Trending(ctx, 5)
	if err != nil || len(tr) != 1 {
		t.Errorf("Trending = %+v, %v", tr, err)
	}
	sug, err := c.Suggestions(ctx, "go", 0)
	if err != nil || len(sug) != 1 || sug[0].Type != "job" {
		t.Errorf("Suggestions = %+v, %v", sug, err)
	}
	pop, err := c.Popular(ctx, 0)
	if err != nil || len(pop) != 1 || pop[0].Count != 4 {
		t.Errorf("Popular = %+v, %v", pop, err)
	}
	an, err := c.Analytics(ctx)
	if err != nil || an.Total != 9 || len(an.ByCategory) != 1 {
		t.Errorf("Analytics = %+v, %v", an, err)
	}
	logos, err := c.CertificateLogos(ctx)
	if err != nil || logos["aws"] == "" {
		t.Errorf("CertificateLogos = %v, %v", logos, err)
	}
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
		msg    string
	}{
		{http.StatusBadRequest, `{"error":"invalid limit"}`, ErrInvalidInput, "invalid limit"},
		{http.StatusUnauthorized, `{"error":"authentication required"}`, ErrUnauthenticated, "authentication required"},
		{http.StatusForbidden, `{"error":"forbidden"}`, ErrForbidden, "forbidden"},
		{http.StatusNotFound, `not json`, ErrNotFound, "Not Found"},
		{http.StatusServiceUnavailable, `{"status":"error"}`, ErrServer, "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Analytics(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Message != tt.msg || apiErr.StatusCode != tt.status {
				t.Errorf("APIError = %+v", apiErr)
			}
		})
	}
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"startups":`))
	})
	_, err := c.Trending(context.Background(), 0)
	if err == nil || !strings.Contains(err.Error(), "decode trending") {
		t.Fatalf("err = %v", err)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			_, _ = w.Write([]byte(`{"status":"ok","checks":{"database":"ok"}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}, WithPrometheus(reg))
	ctx := context.Background()

	h, err := c.Health(ctx)
	if err != nil || h.Status != "ok" || h.Checks["database"] != "ok" {
		t.Fatalf("Health = %+v, %v", h, err)
	}
	if _, err := c.Popular(ctx, 3); !errors.Is(err, ErrServer) {
		t.Fatalf("Popular err = %v", err)
	}

	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("health", "ok")); got != 1 {
		t.Errorf("health ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("popular", "error")); got != 1 {
		t.Errorf("popular error = %v, want 1", got)
	}

	// A second client on the same registry reuses the collectors.
	if _, err := New("http://localhost", WithPrometheus(reg)); err != nil {
		t.Fatalf("second New: %v", err)
	}
}
