package search

import (
	"github.com/kailas-cloud/talentbridge/internal/db"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/request"
)

// Per-kind table expressions and projections. Joined names are aliased to the record's db tags.
const (
	jobFrom = "job_offers j JOIN companies c ON c.id = j.company_id"
	jobCols = "j.id, j.company_id, c.name AS company_name, j.title, j.description, j.location," +
		" j.contract_type, j.category, j.salary_min, j.salary_max, j.salary_currency, j.skills," +
		" j.experience_level, j.education_level, j.deadline, j.is_active, j.is_featured, j.created_at"

	companyFrom = "companies c"
	companyCols = "c.id, c.owner_id, c.name, c.description, c.sector, c.address, c.logo_key," +
		" c.status, c.is_active, c.created_at"

	personFrom = "profiles p"
	personCols = "p.id, p.user_id, p.full_name, p.headline, p.bio, p.location, p.skills," +
		" p.is_public, p.is_active, p.created_at"

	courseFrom = "courses co JOIN institutions i ON i.id = co.institution_id"
	courseCols = "co.id, co.institution_id, i.name AS institution_name, co.title, co.description," +
		" co.category, co.modality, co.location, co.status, co.is_active, co.created_at"
)

// Visibility predicates per kind. Every lookup starts from one of these.
func jobVisible() []db.Predicate {
	return []db.Predicate{
		db.IsTrue("j.is_active"),
		db.Raw("(j.deadline IS NULL OR j.deadline >= now())"),
		db.Eq("c.status", record.CompanyApproved),
	}
}

func companyVisible() []db.Predicate {
	return []db.Predicate{db.Eq("c.status", record.CompanyApproved), db.IsTrue("c.is_active")}
}

func personVisible() []db.Predicate {
	return []db.Predicate{db.IsTrue("p.is_public"), db.IsTrue("p.is_active")}
}

func courseVisible() []db.Predicate {
	return []db.Predicate{db.Eq("co.status", record.CoursePublished), db.IsTrue("co.is_active")}
}

func jobPredicates(r *request.Request) []db.Predicate {
	preds := append(jobVisible(), db.ContainsAny(r.Query(), "j.title", "j.description", "c.name"))
	if r.Location() != "" {
		preds = append(preds, db.ContainsAny(r.Location(), "j.location"))
	}
	if r.Category() != "" {
		preds = append(preds, db.Eq("j.category", r.Category()))
	}
	if len(r.Skills()) > 0 {
		preds = append(preds, db.Overlaps("j.skills", r.Skills()))
	}
	if r.Experience() != "" {
		preds = append(preds, db.Eq("j.experience_level", r.Experience()))
	}
	// Salary bounds match offers whose band overlaps the requested one.
	if v := r.SalaryMin(); v != nil {
		preds = append(preds, db.Gte("j.salary_max", *v))
	}
	if v := r.SalaryMax(); v != nil {
		preds = append(preds, db.Lte("j.salary_min", *v))
	}
	return preds
}

func companyPredicates(r *request.Request) []db.Predicate {
	preds := append(companyVisible(), db.ContainsAny(r.Query(), "c.name", "c.description", "c.sector"))
	if r.Location() != "" {
		preds = append(preds, db.ContainsAny(r.Location(), "c.address"))
	}
	if r.Category() != "" {
		preds = append(preds, db.Eq("c.sector", r.Category()))
	}
	return preds
}

func personPredicates(r *request.Request) []db.Predicate {
	preds := append(personVisible(), db.ContainsAny(r.Query(), "p.full_name", "p.headline", "p.bio"))
	if r.Location() != "" {
		preds = append(preds, db.ContainsAny(r.Location(), "p.location"))
	}
	if len(r.Skills()) > 0 {
		preds = append(preds, db.Overlaps("p.skills", r.Skills()))
	}
	return preds
}

func coursePredicates(r *request.Request) []db.Predicate {
	preds := append(courseVisible(), db.ContainsAny(r.Query(), "co.title", "co.description", "i.name"))
	if r.Location() != "" {
		preds = append(preds, db.ContainsAny(r.Location(), "co.location"))
	}
	if r.Category() != "" {
		preds = append(preds, db.Eq("co.category", r.Category()))
	}
	return preds
}
