// Package startup reads startup listings for discovery, ranking and analytics.
package startup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/talentbridge/internal/db"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery/filter"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
)

// Repo implements usecase/discovery.Repository.
type Repo struct {
	q db.Querier
}

// New creates a startup repository.
func New(q db.Querier) *Repo {
	return &Repo{q: q}
}

// Find returns one page of startups matching the filter within scope.
func (r *Repo) Find(ctx context.Context, f *filter.Filter, s discovery.Scope) ([]record.Startup, error) {
	q, err := db.Select(columns...).
		From(table).
		Where(predicates(f, s)...).
		OrderBy(order(f.Sort)...).
		Page(f.Page.Limit(), f.Page.Offset()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("compose discover: %w", err)
	}

	var items []record.Startup
	if err := r.q.Select(ctx, &items, q); err != nil {
		return nil, fmt.Errorf("discover startups: %w", err)
	}
	return items, nil
}

// Count returns the number of startups matching the filter within scope, ignoring paging.
func (r *Repo) Count(ctx context.Context, f *filter.Filter, s discovery.Scope) (int, error) {
	q, err := db.Select("id").From(table).Where(predicates(f, s)...).BuildCount()
	if err != nil {
		return 0, fmt.Errorf("compose count: %w", err)
	}

	var n int
	if err := r.q.Get(ctx, &n, q); err != nil {
		return 0, fmt.Errorf("count startups: %w", err)
	}
	return n, nil
}

// FindCandidates returns public, active startups for ranking.
func (r *Repo) FindCandidates(ctx context.Context, c discovery.CandidateQuery) ([]record.Startup, error) {
	preds := []db.Predicate{db.IsTrue("is_public"), db.IsTrue("is_active")}
	if c.ExcludeOwner != "" {
		preds = append(preds, db.Ne("owner_id", c.ExcludeOwner))
	}
	if c.Since != nil {
		preds = append(preds, db.Gte("updated_at", *c.Since))
	}

	q, err := db.Select(columns...).
		From(table).
		Where(preds...).
		OrderBy(
			candidateScore(c),
			db.Order{Column: "created_at", Desc: true},
			db.Order{Column: "id"},
		).
		Page(c.Limit, 0).
		Build()
	if err != nil {
		return nil, fmt.Errorf("compose candidates: %w", err)
	}

	var items []record.Startup
	if err := r.q.Select(ctx, &items, q); err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	return items, nil
}

// OwnedCategories returns the distinct categories of startups owned by ownerID.
func (r *Repo) OwnedCategories(ctx context.Context, ownerID string) ([]string, error) {
	q, err := db.Select("DISTINCT category").From(table).Where(db.Eq("owner_id", ownerID)).Build()
	if err != nil {
		return nil, fmt.Errorf("compose owned categories: %w", err)
	}

	var cats []string
	if err := r.q.Select(ctx, &cats, q); err != nil {
		return nil, fmt.Errorf("select owned categories: %w", err)
	}
	return cats, nil
}

// Analytics aggregates counters over every startup. Aggregates return no rows of entity data,
// so they are the one place a statement runs without a visibility predicate.
func (r *Repo) Analytics(ctx context.Context) (discovery.Analytics, error) {
	var a discovery.Analytics

	totals := db.Query{SQL: "SELECT COUNT(*) AS total," +
		" COUNT(*) FILTER (WHERE is_public) AS public," +
		" COUNT(*) FILTER (WHERE is_active) AS active," +
		" COALESCE(AVG(employee_count), 0)::float8 AS avg_employees," +
		" COALESCE(SUM(annual_revenue), 0)::bigint AS total_revenue" +
		" FROM " + table}
	if err := r.q.Get(ctx, &a.Totals, totals); err != nil {
		return discovery.Analytics{}, fmt.Errorf("analytics totals: %w", err)
	}

	for _, g := range []struct {
		col  string
		dest *[]discovery.Bucket
	}{
		{"category", &a.ByCategory},
		{"business_stage", &a.ByBusinessStage},
		{"department", &a.ByDepartment},
	} {
		q := db.Query{SQL: "SELECT " + g.col + " AS key, COUNT(*) AS count FROM " + table +
			" GROUP BY " + g.col + " ORDER BY count DESC, key"}
		if err := r.q.Select(ctx, g.dest, q); err != nil {
			return discovery.Analytics{}, fmt.Errorf("analytics by %s: %w", g.col, err)
		}
	}
	return a, nil
}

// engagementExpr renders the weighted engagement score. Weights are integers from configuration.
// candidateScore orders the pool by the same score Recommend ranks by, so the sample
// keeps boosted categories whose raw engagement is lower.
func candidateScore(c discovery.CandidateQuery) db.Order {
	expr := engagementExpr(c.Weights)
	if len(c.Preferred) == 0 || c.Boost == 0 {
		return db.Order{Column: expr, Desc: true}
	}
	return db.Order{Expr: db.Boost(expr, "category", c.Preferred, c.Boost), Desc: true}
}

func engagementExpr(w discovery.Weights) string {
	return "(views * " + strconv.Itoa(w.Views) +
		" + likes * " + strconv.Itoa(w.Likes) +
		" + shares * " + strconv.Itoa(w.Shares) + ")"
}
