// Package discovery holds the value types produced by startup discovery: listings,
// engagement ranking and the admin analytics snapshot.
package discovery

import (
	"cmp"
	"slices"
	"time"

	"github.com/kailas-cloud/talentbridge/internal/domain/page"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
)

// Ranking defaults.
const (
	DefaultViewsWeight        = 1
	DefaultLikesWeight        = 3
	DefaultSharesWeight       = 5
	DefaultCategoryBoost      = 10
	DefaultTrendingWindowDays = 30

	// CandidatePoolFactor multiplies the requested limit when sampling ranking candidates.
	CandidatePoolFactor = 5
	// MaxCandidatePool caps the number of rows fetched for ranking.
	MaxCandidatePool = 200
)

// Weights turn interaction counters into an engagement score.
type Weights struct {
	Views  int
	Likes  int
	Shares int
}

// DefaultWeights returns the stock engagement weights.
func DefaultWeights() Weights {
	return Weights{Views: DefaultViewsWeight, Likes: DefaultLikesWeight, Shares: DefaultSharesWeight}
}

// Score computes the engagement score of a startup.
func (w Weights) Score(s *record.Startup) float64 {
	return float64(s.Views*int64(w.Views) + s.Likes*int64(w.Likes) + s.Shares*int64(w.Shares))
}

// Scope bounds which startups a requester may see.
type Scope struct {
	// RequesterID widens the public/active scope with the requester's own startups.
	RequesterID string
	// ViewAll replaces the fixed public/active scope with the filter's isPublic/isActive values.
	ViewAll bool
}

// CandidateQuery selects public, active startups for ranking.
type CandidateQuery struct {
	// ExcludeOwner drops startups owned by this user.
	ExcludeOwner string
	// Since keeps only startups updated at or after this instant.
	Since *time.Time
	// Weights order the pool by engagement so the sample keeps the strongest candidates.
	Weights Weights
	// Preferred categories add Boost to the ordering score, matching the in-memory ranking.
	Preferred []string
	Boost     float64
	Limit     int
}

// Listing is one page of discovered startups with the total match count.
type Listing struct {
	Items []record.Startup
	Total int
	Page  page.Page
}

// Scored pairs a startup with its ranking score.
type Scored struct {
	Startup record.Startup
	Score   float64
}

// Rank sorts candidates by score descending; ties go to the newer record, then to the lower id.
// The input slice is sorted in place and truncated to limit.
func Rank(items []Scored, limit int) []Scored {
	slices.SortStableFunc(items, func(a, b Scored) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := b.Startup.CreatedAt.Compare(a.Startup.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Startup.ID, b.Startup.ID)
	})
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// PoolSize returns how many candidates to sample for a ranked list of limit entries.
func PoolSize(limit int) int {
	return min(limit*CandidatePoolFactor, MaxCandidatePool)
}

// TrendingSince returns the start of the trending window ending at now.
func TrendingSince(now time.Time, days int) time.Time {
	if days <= 0 {
		days = DefaultTrendingWindowDays
	}
	return now.AddDate(0, 0, -days)
}

// Bucket is a group-by count.
type Bucket struct {
	Key   string `db:"key"`
	Count int64  `db:"count"`
}

// Totals are the headline startup counters.
type Totals struct {
	All          int64   `db:"total"`
	Public       int64   `db:"public"`
	Active       int64   `db:"active"`
	AvgEmployees float64 `db:"avg_employees"`
	TotalRevenue int64   `db:"total_revenue"`
}

// Analytics is the admin aggregate view over all startups.
type Analytics struct {
	Totals          Totals
	ByCategory      []Bucket
	ByBusinessStage []Bucket
	ByDepartment    []Bucket
}
