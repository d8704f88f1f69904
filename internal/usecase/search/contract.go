package search

import (
	"context"

	"github.com/kailas-cloud/talentbridge/internal/db"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/request"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/result"
)

// Repository defines the storage contract for global search.
type Repository interface {
	Jobs(ctx context.Context, req *request.Request, limit int) ([]record.JobOffer, error)
	Companies(ctx context.Context, req *request.Request, limit int) ([]record.Company, error)
	People(ctx context.Context, req *request.Request, limit int) ([]record.Person, error)
	Courses(ctx context.Context, req *request.Request, limit int) ([]record.Course, error)
	Suggestions(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error)
}

// RankStore counts popular queries.
type RankStore interface {
	Incr(ctx context.Context, key, member string, by float64, keep int) error
	Top(ctx context.Context, key string, n int) ([]db.ScoredMember, error)
}

// Scorer assigns relevance scores to merged results. Results are returned in input order.
type Scorer interface {
	Name() string
	Score(ctx context.Context, query string, results []result.Result) ([]result.Result, error)
}
