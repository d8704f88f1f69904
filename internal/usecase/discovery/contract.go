package discovery

import (
	"context"

	"github.com/kailas-cloud/talentbridge/internal/domain/discovery"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery/filter"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
)

// Repository defines the storage contract for startup discovery.
type Repository interface {
	Find(ctx context.Context, f *filter.Filter, s discovery.Scope) ([]record.Startup, error)
	Count(ctx context.Context, f *filter.Filter, s discovery.Scope) (int, error)
	FindCandidates(ctx context.Context, c discovery.CandidateQuery) ([]record.Startup, error)
	OwnedCategories(ctx context.Context, ownerID string) ([]string, error)
	Analytics(ctx context.Context) (discovery.Analytics, error)
}
