package search

import (
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/kind"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/result"
)

func tagJobs(in []record.JobOffer) []result.Result {
	out := make([]result.Result, len(in))
	for i := range in {
		j := &in[i]
		out[i] = result.New(j.ID, kind.Job, j.Title, joinNonEmpty(j.CompanyName, j.Location), "/jobs/"+j.ID, j)
	}
	return out
}

func tagCompanies(in []record.Company) []result.Result {
	out := make([]result.Result, len(in))
	for i := range in {
		c := &in[i]
		out[i] = result.New(c.ID, kind.Company, c.Name, c.Sector.String, "/companies/"+c.ID, c)
	}
	return out
}

func tagPeople(in []record.Person) []result.Result {
	out := make([]result.Result, len(in))
	for i := range in {
		p := &in[i]
		out[i] = result.New(p.ID, kind.Person, p.FullName, p.Headline.String, "/profiles/"+p.ID, p)
	}
	return out
}

func tagCourses(in []record.Course) []result.Result {
	out := make([]result.Result, len(in))
	for i := range in {
		c := &in[i]
		out[i] = result.New(c.ID, kind.Course, c.Title, c.InstitutionName, "/courses/"+c.ID, c)
	}
	return out
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " - " + b
}
