// Package discovery implements faceted startup discovery, recommendations, trending and analytics.
package discovery

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/talentbridge/internal/domain/auth"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery/filter"
	"github.com/kailas-cloud/talentbridge/internal/domain/page"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
)

// Ranked list limits for recommendations and trending.
const (
	DefaultRankedLimit = 10
	MaxRankedLimit     = 50
)

// Config tunes ranking.
type Config struct {
	Weights            discovery.Weights
	CategoryBoost      float64
	TrendingWindowDays int
}

// Service coordinates startup discovery.
type Service struct {
	repo Repository
	cfg  Config
	now  func() time.Time
}

// New creates a discovery service.
func New(repo Repository, cfg Config) *Service {
	if cfg.Weights == (discovery.Weights{}) {
		cfg.Weights = discovery.DefaultWeights()
	}
	if cfg.TrendingWindowDays <= 0 {
		cfg.TrendingWindowDays = discovery.DefaultTrendingWindowDays
	}
	return &Service{repo: repo, cfg: cfg, now: time.Now}
}

// ScopeFor derives the visibility scope of a session.
func ScopeFor(s auth.Session) discovery.Scope {
	return discovery.Scope{RequesterID: s.UserID, ViewAll: auth.Authorize(s, auth.StartupsViewAll)}
}

// Discover returns one page of startups matching f and the total match count.
func (s *Service) Discover(ctx context.Context, sess auth.Session, f filter.Filter) (discovery.Listing, error) {
	scope := ScopeFor(sess)

	var (
		items []record.Startup
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.Find(gctx, &f, scope)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, &f, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return discovery.Listing{}, fmt.Errorf("discover: %w", err)
	}

	// Page and count run as separate statements; a row inserted between them must not
	// leave total below what the client has already seen.
	if seen := f.Page.Offset() + len(items); total < seen {
		total = seen
	}
	if items == nil {
		items = []record.Startup{}
	}
	return discovery.Listing{Items: items, Total: total, Page: f.Page}, nil
}

// Recommend ranks visible startups not owned by the requester, boosting the categories
// the requester already works in.
func (s *Service) Recommend(ctx context.Context, sess auth.Session, limit int) ([]discovery.Scored, error) {
	limit = clampLimit(limit)

	var preferred []string
	if sess.UserID != "" {
		cats, err := s.repo.OwnedCategories(ctx, sess.UserID)
		if err != nil {
			return nil, fmt.Errorf("recommend: %w", err)
		}
		preferred = cats
	}

	candidates, err := s.repo.FindCandidates(ctx, discovery.CandidateQuery{
		ExcludeOwner: sess.UserID,
		Weights:      s.cfg.Weights,
		Preferred:    preferred,
		Boost:        s.cfg.CategoryBoost,
		Limit:        discovery.PoolSize(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	scored := make([]discovery.Scored, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		score := s.cfg.Weights.Score(c)
		if slices.Contains(preferred, c.Category) {
			score += s.cfg.CategoryBoost
		}
		scored = append(scored, discovery.Scored{Startup: *c, Score: score})
	}
	return discovery.Rank(scored, limit), nil
}

// Trending ranks visible startups active within the trending window by engagement.
func (s *Service) Trending(ctx context.Context, limit int) ([]discovery.Scored, error) {
	limit = clampLimit(limit)
	since := discovery.TrendingSince(s.now(), s.cfg.TrendingWindowDays)

	candidates, err := s.repo.FindCandidates(ctx, discovery.CandidateQuery{
		Since:   &since,
		Weights: s.cfg.Weights,
		Limit:   discovery.PoolSize(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}

	scored := make([]discovery.Scored, 0, len(candidates))
	for i := range candidates {
		scored = append(scored, discovery.Scored{Startup: candidates[i], Score: s.cfg.Weights.Score(&candidates[i])})
	}
	return discovery.Rank(scored, limit), nil
}

// Analytics returns the aggregate snapshot over all startups.
func (s *Service) Analytics(ctx context.Context) (discovery.Analytics, error) {
	a, err := s.repo.Analytics(ctx)
	if err != nil {
		return discovery.Analytics{}, fmt.Errorf("analytics: %w", err)
	}
	return a, nil
}

func clampLimit(limit int) int {
	return page.Clamp(limit, 0, DefaultRankedLimit, MaxRankedLimit).Limit()
}
