// Package search implements global search across job offers, companies, people and courses,
// plus prefix suggestions and popular queries.
package search

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/talentbridge/internal/domain"
	"github.com/kailas-cloud/talentbridge/internal/domain/page"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/kind"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/request"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/result"
	"github.com/kailas-cloud/talentbridge/internal/metrics"
)

var tracer = otel.Tracer("github.com/kailas-cloud/talentbridge/internal/usecase/search")

// Suggestion and popular list limits.
const (
	DefaultSuggestLimit = 5
	MaxSuggestLimit     = 20
	DefaultPopularLimit = 10
	MaxPopularLimit     = 50

	DefaultPopularKey        = "talentbridge:popular_searches"
	DefaultPopularMaxEntries = 1000
)

// FailurePolicy decides how a failed source lookup affects the whole search.
type FailurePolicy string

// Failure policies.
const (
	// AllOrNothing fails the request when any source fails.
	AllOrNothing FailurePolicy = "all_or_nothing"
	// Partial returns the sources that succeeded and reports the rest.
	Partial FailurePolicy = "partial"
)

// IsValid checks if the policy is known.
func (p FailurePolicy) IsValid() bool { return p == AllOrNothing || p == Partial }

// Config tunes the search service.
type Config struct {
	FailurePolicy     FailurePolicy
	PopularKey        string
	PopularMaxEntries int
}

// Response is one page of merged results.
type Response struct {
	Results []result.Result
	// Total is the merged result count before pagination.
	Total int
	// FailedSources lists kinds whose lookup failed under the Partial policy.
	FailedSources []kind.Kind
}

// Service coordinates global search.
type Service struct {
	repo   Repository
	ranks  RankStore
	scorer Scorer
	cfg    Config
	logger *zap.Logger
}

// New creates a search service. ranks and scorer can be nil: popular searches are then
// neither recorded nor listed, and results keep type priority order.
func New(repo Repository, ranks RankStore, scorer Scorer, cfg Config, logger *zap.Logger) *Service {
	if !cfg.FailurePolicy.IsValid() {
		cfg.FailurePolicy = AllOrNothing
	}
	if cfg.PopularKey == "" {
		cfg.PopularKey = DefaultPopularKey
	}
	if cfg.PopularMaxEntries <= 0 {
		cfg.PopularMaxEntries = DefaultPopularMaxEntries
	}
	return &Service{repo: repo, ranks: ranks, scorer: scorer, cfg: cfg, logger: logger}
}

// Search looks up every requested kind in parallel and returns one page of the merged results.
// Queries shorter than request.MinQueryLength return an empty response without touching the store.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	if req.IsTooShort() {
		metrics.SearchShortCircuitTotal.Inc()
		return Response{Results: []result.Result{}}, nil
	}

	kinds := req.Kinds()
	perSource := make([][]result.Result, len(kinds))
	failures := make([]error, len(kinds))
	// Each source must supply enough leading results to fill the requested window on its own.
	bound := req.Page().End()

	if err := s.fanOut(ctx, kinds, func(ctx context.Context, i int) error {
		res, err := s.lookup(ctx, kinds[i], req, bound)
		perSource[i], failures[i] = res, err
		return err
	}); err != nil {
		return Response{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	var (
		merged []result.Result
		failed []kind.Kind
	)
	for i, k := range kinds {
		if failures[i] != nil {
			failed = append(failed, k)
			s.logger.Warn("Search source failed", zap.String("source", string(k)), zap.Error(failures[i]))
			continue
		}
		merged = append(merged, perSource[i]...)
	}
	if len(failed) == len(kinds) {
		return Response{}, fmt.Errorf("%w: every source failed: %w", domain.ErrSourceUnavailable, errors.Join(failures...))
	}

	merged = s.rank(ctx, req.Query(), merged)

	from, to := req.Page().Slice(len(merged))
	s.recordPopular(ctx, req.Query())

	return Response{Results: merged[from:to], Total: len(merged), FailedSources: failed}, nil
}

// fanOut runs fn for every kind concurrently. Under AllOrNothing the first failure cancels
// the rest and is returned; under Partial failures are left for the caller to inspect.
func (s *Service) fanOut(ctx context.Context, kinds []kind.Kind, fn func(ctx context.Context, i int) error) error {
	if s.cfg.FailurePolicy == AllOrNothing {
		g, gctx := errgroup.WithContext(ctx)
		for i := range kinds {
			g.Go(func() error { return fn(gctx, i) })
		}
		return g.Wait() //nolint:wrapcheck // wrapped by caller
	}

	var g errgroup.Group
	for i := range kinds {
		g.Go(func() error {
			_ = fn(ctx, i)
			return nil
		})
	}
	return g.Wait() //nolint:wrapcheck // always nil
}

func (s *Service) lookup(ctx context.Context, k kind.Kind, req *request.Request, limit int) ([]result.Result, error) {
	ctx, span := tracer.Start(ctx, "search.lookup")
	span.SetAttributes(attribute.String("search.source", string(k)), attribute.Int("search.limit", limit))
	defer span.End()

	start := time.Now()
	var (
		out []result.Result
		err error
	)
	switch k {
	case kind.Job:
		recs, e := s.repo.Jobs(ctx, req, limit)
		out, err = tagJobs(recs), e
	case kind.Company:
		recs, e := s.repo.Companies(ctx, req, limit)
		out, err = tagCompanies(recs), e
	case kind.Person:
		recs, e := s.repo.People(ctx, req, limit)
		out, err = tagPeople(recs), e
	case kind.Course:
		recs, e := s.repo.Courses(ctx, req, limit)
		out, err = tagCourses(recs), e
	default:
		err = fmt.Errorf("unknown source %q", k)
	}

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
	}
	metrics.SearchSourceDuration.WithLabelValues(string(k), status).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%s lookup: %w", k, err)
	}
	span.SetAttributes(attribute.Int("search.results", len(out)))
	return out, nil
}

// rank applies the configured scorer and stable-sorts by score. A scorer failure keeps
// type priority order.
func (s *Service) rank(ctx context.Context, query string, merged []result.Result) []result.Result {
	if s.scorer == nil || len(merged) == 0 {
		return merged
	}
	scored, err := s.scorer.Score(ctx, query, merged)
	if err != nil {
		metrics.ScorerFallbackTotal.WithLabelValues(s.scorer.Name()).Inc()
		s.logger.Warn("Scorer failed, keeping priority order", zap.String("scorer", s.scorer.Name()), zap.Error(err))
		return merged
	}
	slices.SortStableFunc(scored, func(a, b result.Result) int {
		return cmp.Compare(b.Score(), a.Score())
	})
	return scored
}

// recordPopular counts the query in the popular searches ranking. Failures are logged, never returned.
func (s *Service) recordPopular(ctx context.Context, query string) {
	if s.ranks == nil {
		return
	}
	member := strings.ToLower(strings.TrimSpace(query))
	if err := s.ranks.Incr(ctx, s.cfg.PopularKey, member, 1, s.cfg.PopularMaxEntries); err != nil {
		metrics.PopularRecordErrorsTotal.Inc()
		s.logger.Warn("Failed to record popular search", zap.Error(err))
	}
}

// Suggest returns prefix completions over job titles, company names and course titles.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < request.MinQueryLength {
		metrics.SearchShortCircuitTotal.Inc()
		return []result.Suggestion{}, nil
	}
	limit = page.Clamp(limit, 0, DefaultSuggestLimit, MaxSuggestLimit).Limit()

	out, err := s.repo.Suggestions(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: suggestions: %w", domain.ErrSourceUnavailable, err)
	}
	if out == nil {
		out = []result.Suggestion{}
	}
	return out, nil
}

// Popular returns the most searched queries, most frequent first.
func (s *Service) Popular(ctx context.Context, limit int) ([]result.Popular, error) {
	if s.ranks == nil {
		return []result.Popular{}, nil
	}
	limit = page.Clamp(limit, 0, DefaultPopularLimit, MaxPopularLimit).Limit()

	top, err := s.ranks.Top(ctx, s.cfg.PopularKey, limit)
	if err != nil {
		return nil, fmt.Errorf("popular searches: %w", err)
	}
	out := make([]result.Popular, len(top))
	for i, m := range top {
		out[i] = result.Popular{Query: m.Member, Count: int64(m.Score)}
	}
	return out, nil
}
