// Package chi exposes discovery, global search and certificate endpoints over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/domain"
	"github.com/kailas-cloud/talentbridge/internal/domain/auth"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery/filter"
	"github.com/kailas-cloud/talentbridge/internal/domain/page"
	"github.com/kailas-cloud/talentbridge/internal/domain/param"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/kind"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/request"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/talentbridge/internal/logger"
	"github.com/kailas-cloud/talentbridge/internal/usecase/certificate"
	discoveryuc "github.com/kailas-cloud/talentbridge/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/talentbridge/internal/usecase/health"
	searchuc "github.com/kailas-cloud/talentbridge/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the HTTP API.
type Server struct {
	discovery     *discoveryuc.Service
	search        *searchuc.Service
	logos         *certificate.Logos
	health        *healthuc.Service
	shaper        *Shaper
	metrics       http.Handler
	strict        bool
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. logos may be nil when no certificate logos are configured.
func NewServer(
	discovery *discoveryuc.Service,
	search *searchuc.Service,
	logos *certificate.Logos,
	health *healthuc.Service,
	shaper *Shaper,
	logger *zap.Logger,
) *Server {
	s := &Server{
		discovery: discovery,
		search:    search,
		logos:     logos,
		health:    health,
		shaper:    shaper,
		metrics:   promhttp.Handler(),
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		invalidParamsHandler,
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest),
		sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
	}
	return s
}

// WithStrictFilters makes handlers reject requests carrying malformed parameters
// instead of ignoring them.
func (s *Server) WithStrictFilters(strict bool) *Server {
	s.strict = strict
	return s
}

// WithMetricsHandler replaces the default Prometheus handler served at /metrics.
func (s *Server) WithMetricsHandler(h http.Handler) *Server {
	if h != nil {
		s.metrics = h
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/search/suggestions", s.Suggestions)
		r.Get("/search/popular", s.Popular)

		r.Get("/startups/discover", s.Discover)
		r.Get("/startups/recommendations", s.Recommendations)
		r.Get("/startups/trending", s.Trending)
		r.Get("/startups/analytics", s.Analytics)

		r.Get("/certificates/logos", s.CertificateLogos)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	req := request.Normalize(r.URL.Query())
	if !s.checkDropped(w, r, req.Dropped()) {
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	body := map[string]any{
		"success": true,
		"results": s.shaper.Results(r.Context(), resp.Results),
		"total":   resp.Total,
		"query":   req.Query(),
		"filters": req.Filters(),
	}
	if len(resp.FailedSources) > 0 {
		body["failedSources"] = resp.FailedSources
	}
	writeJSON(w, http.StatusOK, body)
}

type suggestionItem struct {
	Text string    `json:"text"`
	Type kind.Kind `json:"type"`
	ID   string    `json:"id"`
}

// Suggestions handles GET /api/search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	var dropped param.Dropped
	limit := intParam(values, param.Limit, &dropped)
	if !s.checkDropped(w, r, dropped) {
		return
	}

	sugg, err := s.search.Suggest(r.Context(), values.Get(request.ParamQuery), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]suggestionItem, len(sugg))
	for i, sg := range sugg {
		items[i] = suggestionItem{Text: sg.Text, Type: sg.Kind, ID: sg.ID}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "suggestions": items})
}

type popularItem struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Popular handles GET /api/search/popular.
func (s *Server) Popular(w http.ResponseWriter, r *http.Request) {
	var dropped param.Dropped
	limit := intParam(r.URL.Query(), param.Limit, &dropped)
	if !s.checkDropped(w, r, dropped) {
		return
	}

	top, err := s.search.Popular(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "searches": popularItems(top)})
}

func popularItems(top []result.Popular) []popularItem {
	out := make([]popularItem, len(top))
	for i, p := range top {
		out[i] = popularItem{Query: p.Query, Count: p.Count}
	}
	return out
}

// Discover handles GET /api/startups/discover.
func (s *Server) Discover(w http.ResponseWriter, r *http.Request) {
	f := filter.Normalize(r.URL.Query())
	if !s.checkDropped(w, r, f.Dropped) {
		return
	}

	sess := auth.FromContext(r.Context())
	listing, err := s.discovery.Discover(r.Context(), sess, f)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"items":   s.shaper.Startups(r.Context(), listing.Items, sess.UserID),
		"total":   listing.Total,
		"limit":   listing.Page.Limit(),
		"offset":  listing.Page.Offset(),
	})
}

// Recommendations handles GET /api/startups/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	var dropped param.Dropped
	limit := rankedLimit(intParam(r.URL.Query(), param.Limit, &dropped))
	if !s.checkDropped(w, r, dropped) {
		return
	}

	sess := auth.FromContext(r.Context())
	ranked, err := s.discovery.Recommend(r.Context(), sess, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"startups": s.shaper.Ranked(r.Context(), ranked, sess.UserID),
		"limit":    limit,
	})
}

// Trending handles GET /api/startups/trending.
func (s *Server) Trending(w http.ResponseWriter, r *http.Request) {
	var dropped param.Dropped
	limit := rankedLimit(intParam(r.URL.Query(), param.Limit, &dropped))
	if !s.checkDropped(w, r, dropped) {
		return
	}

	ranked, err := s.discovery.Trending(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	sess := auth.FromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"startups": s.shaper.Ranked(r.Context(), ranked, sess.UserID),
		"limit":    limit,
	})
}

// Analytics handles GET /api/startups/analytics.
func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.discovery.Analytics(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analytics": s.shaper.Analytics(&a)})
}

// CertificateLogos handles GET /api/certificates/logos.
func (s *Server) CertificateLogos(w http.ResponseWriter, r *http.Request) {
	logos := map[string]string{}
	if s.logos != nil {
		loaded, err := s.logos.Get(r.Context())
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		logos = loaded
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "logos": logos})
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: report.Status, Checks: report.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

// checkDropped enforces strict mode. Returns false when the response has been written.
func (s *Server) checkDropped(w http.ResponseWriter, r *http.Request, dropped []string) bool {
	if !s.strict {
		return true
	}
	if err := domain.NewInvalidParams(dropped); err != nil {
		s.handleDomainError(w, r, err)
		return false
	}
	return true
}

// intParam reads an optional integer; absent or malformed values yield 0.
func intParam(values url.Values, name string, dropped *param.Dropped) int {
	v, _ := param.Int(values, name, dropped)
	return int(v)
}

func rankedLimit(limit int) int {
	return page.Clamp(limit, 0, discoveryuc.DefaultRankedLimit, discoveryuc.MaxRankedLimit).Limit()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrUnauthenticated,
		domain.ErrForbidden,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// invalidParamsHandler names the offending parameters, which are safe to echo.
func invalidParamsHandler(w http.ResponseWriter, err error, _ string) bool {
	var ipe *domain.InvalidParamsError
	if !errors.As(err, &ipe) {
		return false
	}
	writeError(w, http.StatusBadRequest, ipe.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
