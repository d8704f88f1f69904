// Package search reads job offers, companies, people and courses for global search and suggestions.
package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/talentbridge/internal/db"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/kind"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/request"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/result"
)

// Repo implements usecase/search.Repository.
type Repo struct {
	q db.Querier
}

// New creates a search repository.
func New(q db.Querier) *Repo {
	return &Repo{q: q}
}

// Jobs returns up to limit visible job offers matching the request, featured first.
func (r *Repo) Jobs(ctx context.Context, req *request.Request, limit int) ([]record.JobOffer, error) {
	var out []record.JobOffer
	err := r.lookup(ctx, kind.Job, &out, db.Select(jobCols).From(jobFrom).
		Where(jobPredicates(req)...).
		OrderBy(
			db.Order{Column: "j.is_featured", Desc: true},
			db.Order{Column: "j.created_at", Desc: true},
			db.Order{Column: "j.id"},
		).
		Page(limit, 0))
	return out, err
}

// Companies returns up to limit approved, active companies matching the request.
func (r *Repo) Companies(ctx context.Context, req *request.Request, limit int) ([]record.Company, error) {
	var out []record.Company
	err := r.lookup(ctx, kind.Company, &out, db.Select(companyCols).From(companyFrom).
		Where(companyPredicates(req)...).
		OrderBy(db.Order{Column: "c.name"}, db.Order{Column: "c.id"}).
		Page(limit, 0))
	return out, err
}

// People returns up to limit public, active profiles matching the request.
func (r *Repo) People(ctx context.Context, req *request.Request, limit int) ([]record.Person, error) {
	var out []record.Person
	err := r.lookup(ctx, kind.Person, &out, db.Select(personCols).From(personFrom).
		Where(personPredicates(req)...).
		OrderBy(db.Order{Column: "p.full_name"}, db.Order{Column: "p.id"}).
		Page(limit, 0))
	return out, err
}

// Courses returns up to limit published, active courses matching the request.
func (r *Repo) Courses(ctx context.Context, req *request.Request, limit int) ([]record.Course, error) {
	var out []record.Course
	err := r.lookup(ctx, kind.Course, &out, db.Select(courseCols).From(courseFrom).
		Where(coursePredicates(req)...).
		OrderBy(db.Order{Column: "co.created_at", Desc: true}, db.Order{Column: "co.id"}).
		Page(limit, 0))
	return out, err
}

func (r *Repo) lookup(ctx context.Context, k kind.Kind, dest any, b *db.SelectBuilder) error {
	q, err := b.Build()
	if err != nil {
		return fmt.Errorf("compose %s lookup: %w", k, err)
	}
	if err := r.q.Select(ctx, dest, q); err != nil {
		return fmt.Errorf("%s lookup: %w", k, err)
	}
	return nil
}

// Suggestions returns up to limit titles and names starting with prefix: job titles,
// then company names, then course titles. One statement covers every source.
func (r *Repo) Suggestions(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	parts := []*db.SelectBuilder{
		db.Select("j.id AS id", "j.title AS text", "'job' AS kind").From(jobFrom).
			Where(append(jobVisible(), db.HasPrefix("j.title", prefix))...),
		db.Select("c.id AS id", "c.name AS text", "'company' AS kind").From(companyFrom).
			Where(append(companyVisible(), db.HasPrefix("c.name", prefix))...),
		db.Select("co.id AS id", "co.title AS text", "'course' AS kind").From(courseFrom).
			Where(append(courseVisible(), db.HasPrefix("co.title", prefix))...),
	}

	built := make([]db.Query, len(parts))
	for i, b := range parts {
		q, err := b.Page(limit, 0).Build()
		if err != nil {
			return nil, fmt.Errorf("compose suggestions: %w", err)
		}
		built[i] = q
	}

	union := db.Union(built, "")
	var args db.Args
	for _, v := range union.Args {
		args.Add(v)
	}
	q := db.Query{
		SQL: "SELECT id, text, kind FROM (" + union.SQL + ") s" +
			" ORDER BY CASE kind WHEN 'job' THEN 0 WHEN 'company' THEN 1 ELSE 2 END, text, id" +
			" LIMIT " + args.Add(limit),
	}
	q.Args = args.Values()

	var out []result.Suggestion
	if err := r.q.Select(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return out, nil
}
