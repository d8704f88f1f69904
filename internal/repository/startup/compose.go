package startup

import (
	"github.com/kailas-cloud/talentbridge/internal/db"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery/filter"
)

const table = "startups"

var columns = []string{
	"id", "owner_id", "name", "description", "category", "subcategory", "business_stage",
	"municipality", "department", "address", "employee_count", "annual_revenue", "monthly_revenue",
	"founded_at", "is_public", "is_active", "website", "social_links", "logo_key",
	"views", "likes", "shares", "created_at", "updated_at",
}

// sortColumns maps client sort fields onto trusted column names.
var sortColumns = map[filter.SortField]string{
	filter.SortCreatedAt:     "created_at",
	filter.SortName:          "name",
	filter.SortFoundedAt:     "founded_at",
	filter.SortEmployeeCount: "employee_count",
	filter.SortAnnualRevenue: "annual_revenue",
	filter.SortViews:         "views",
}

// visibility renders the scope predicate. It is always present, so no discovery query is unbounded.
func visibility(s discovery.Scope, f *filter.Filter) db.Predicate {
	if s.ViewAll {
		return db.And(db.Eq("is_public", f.IsPublic), db.Eq("is_active", f.IsActive))
	}
	visible := db.And(db.IsTrue("is_public"), db.IsTrue("is_active"))
	if s.RequesterID != "" {
		return db.Or(visible, db.Eq("owner_id", s.RequesterID))
	}
	return visible
}

// predicates maps a normalized filter onto the conjunction, visibility first.
func predicates(f *filter.Filter, s discovery.Scope) []db.Predicate {
	preds := []db.Predicate{visibility(s, f)}

	if f.Search != "" {
		preds = append(preds, db.ContainsAny(f.Search, "name", "description"))
	}
	for _, eq := range []struct{ col, v string }{
		{"category", f.Category},
		{"subcategory", f.Subcategory},
		{"business_stage", f.BusinessStage},
		{"municipality", f.Municipality},
		{"department", f.Department},
		{"owner_id", f.OwnerID},
	} {
		if eq.v != "" {
			preds = append(preds, db.Eq(eq.col, eq.v))
		}
	}
	preds = appendRange(preds, "employee_count", f.Employees)
	preds = appendRange(preds, "annual_revenue", f.Revenue)
	if f.Founded.After != nil {
		preds = append(preds, db.Gte("founded_at", *f.Founded.After))
	}
	if f.Founded.Before != nil {
		preds = append(preds, db.Lte("founded_at", *f.Founded.Before))
	}
	if f.HasWebsite {
		preds = append(preds, db.NonEmpty("website"))
	}
	if f.HasSocialMedia {
		preds = append(preds, db.NonEmptyArray("social_links"))
	}
	return preds
}

func appendRange(preds []db.Predicate, col string, r filter.Range) []db.Predicate {
	if r.Min != nil {
		preds = append(preds, db.Gte(col, *r.Min))
	}
	if r.Max != nil {
		preds = append(preds, db.Lte(col, *r.Max))
	}
	return preds
}

// order returns the whitelisted sort column followed by an id tiebreak in the same direction.
func order(s filter.Sort) []db.Order {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = sortColumns[filter.DefaultSort().Field]
	}
	desc := s.Direction != filter.Asc
	return []db.Order{{Column: col, Desc: desc}, {Column: "id", Desc: desc}}
}
