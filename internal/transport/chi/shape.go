package chi

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/domain/discovery"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/result"
)

// DefaultLogoURLTTL is the lifetime of presigned logo URLs when none is configured.
const DefaultLogoURLTTL = 15 * time.Minute

// LogoSigner presigns download URLs for stored logos.
type LogoSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Shaper turns persisted records into client payloads. Internal ownership fields never
// leave this layer; logo keys become presigned URLs.
type Shaper struct {
	signer LogoSigner
	ttl    time.Duration
	logger *zap.Logger
}

// NewShaper creates a shaper. A nil signer leaves every logoUrl empty.
func NewShaper(signer LogoSigner, ttl time.Duration, logger *zap.Logger) *Shaper {
	if ttl <= 0 {
		ttl = DefaultLogoURLTTL
	}
	return &Shaper{signer: signer, ttl: ttl, logger: logger}
}

// Engagement is the interaction counters of a startup.
type Engagement struct {
	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
	Shares int64 `json:"shares"`
}

// Startup is the client view of a startup.
type Startup struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Subcategory    *string    `json:"subcategory"`
	BusinessStage  string     `json:"businessStage"`
	Location       *string    `json:"location"`
	Municipality   string     `json:"municipality"`
	Department     string     `json:"department"`
	EmployeeCount  int        `json:"employeeCount"`
	AnnualRevenue  int64      `json:"annualRevenue"`
	FoundedAt      *string    `json:"foundedAt"`
	Website        *string    `json:"website"`
	SocialLinks    []string   `json:"socialLinks"`
	HasWebsite     bool       `json:"hasWebsite"`
	HasSocialMedia bool       `json:"hasSocialMedia"`
	IsPublic       bool       `json:"isPublic"`
	IsOwner        bool       `json:"isOwner"`
	LogoURL        string     `json:"logoUrl"`
	Engagement     Engagement `json:"engagement"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// RankedStartup is a startup with its ranking score.
type RankedStartup struct {
	Startup
	Score float64 `json:"score"`
}

// Salary is a job's pay band.
type Salary struct {
	Min      int64   `json:"min"`
	Max      int64   `json:"max"`
	Currency *string `json:"currency"`
}

// CompanyRef names the company behind a job offer.
type CompanyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Job is the client view of a job offer.
type Job struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Company         CompanyRef `json:"company"`
	Location        string     `json:"location"`
	ContractType    string     `json:"contractType"`
	Category        *string    `json:"category"`
	Skills          []string   `json:"skills"`
	ExperienceLevel *string    `json:"experienceLevel"`
	EducationLevel  *string    `json:"educationLevel"`
	Deadline        *time.Time `json:"deadline"`
	Featured        bool       `json:"featured"`
	Salary          *Salary    `json:"salary,omitempty"`
}

// Company is the client view of a company.
type Company struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Sector      *string `json:"sector"`
	Location    *string `json:"location"`
	LogoURL     string  `json:"logoUrl"`
}

// Person is the client view of a candidate profile.
type Person struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Headline *string  `json:"headline"`
	Location *string  `json:"location"`
	Skills   []string `json:"skills"`
}

// InstitutionRef names the institution behind a course.
type InstitutionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Course is the client view of a course.
type Course struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Institution InstitutionRef `json:"institution"`
	Category    *string        `json:"category"`
	Modality    *string        `json:"modality"`
	Location    *string        `json:"location"`
}

// SearchResult is one tagged global search hit.
type SearchResult struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	URL      string  `json:"url"`
	Score    float64 `json:"score"`
	Data     any     `json:"data,omitempty"`
}

// Bucket is one group of an analytics breakdown.
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Analytics is the client view of the admin snapshot.
type Analytics struct {
	Total           int64    `json:"total"`
	Public          int64    `json:"public"`
	Active          int64    `json:"active"`
	AvgEmployees    float64  `json:"avgEmployees"`
	TotalRevenue    int64    `json:"totalRevenue"`
	ByCategory      []Bucket `json:"byCategory"`
	ByBusinessStage []Bucket `json:"byBusinessStage"`
	ByDepartment    []Bucket `json:"byDepartment"`
}

// Startup shapes a startup for requesterID, who may be empty.
func (s *Shaper) Startup(ctx context.Context, st *record.Startup, requesterID string) Startup {
	links := []string(st.SocialLinks)
	if links == nil {
		links = []string{}
	}
	return Startup{
		ID:             st.ID,
		Name:           st.Name,
		Description:    st.Description,
		Category:       st.Category,
		Subcategory:    nullString(st.Subcategory),
		BusinessStage:  st.BusinessStage,
		Location:       nullString(st.Address),
		Municipality:   st.Municipality,
		Department:     st.Department,
		EmployeeCount:  st.EmployeeCount,
		AnnualRevenue:  st.AnnualRevenue,
		FoundedAt:      nullDate(st.FoundedAt),
		Website:        nullString(st.Website),
		SocialLinks:    links,
		HasWebsite:     st.HasWebsite(),
		HasSocialMedia: st.HasSocialMedia(),
		IsPublic:       st.IsPublic,
		IsOwner:        requesterID != "" && st.OwnerID == requesterID,
		LogoURL:        s.logoURL(ctx, st.LogoKey),
		Engagement:     Engagement{Views: st.Views, Likes: st.Likes, Shares: st.Shares},
		CreatedAt:      st.CreatedAt,
	}
}

// Startups shapes a listing page.
func (s *Shaper) Startups(ctx context.Context, items []record.Startup, requesterID string) []Startup {
	out := make([]Startup, len(items))
	for i := range items {
		out[i] = s.Startup(ctx, &items[i], requesterID)
	}
	return out
}

// Ranked shapes a ranked list, keeping scores.
func (s *Shaper) Ranked(ctx context.Context, items []discovery.Scored, requesterID string) []RankedStartup {
	out := make([]RankedStartup, len(items))
	for i := range items {
		out[i] = RankedStartup{Startup: s.Startup(ctx, &items[i].Startup, requesterID), Score: items[i].Score}
	}
	return out
}

// Job shapes a job offer. The salary band is reported only when both bounds are known.
func (s *Shaper) Job(j *record.JobOffer) Job {
	out := Job{
		ID:              j.ID,
		Title:           j.Title,
		Company:         CompanyRef{ID: j.CompanyID, Name: j.CompanyName},
		Location:        j.Location,
		ContractType:    j.ContractType,
		Category:        nullString(j.Category),
		Skills:          stringsOrEmpty(j.Skills),
		ExperienceLevel: nullString(j.ExperienceLevel),
		EducationLevel:  nullString(j.EducationLevel),
		Featured:        j.IsFeatured,
	}
	if j.Deadline.Valid {
		d := j.Deadline.Time
		out.Deadline = &d
	}
	if j.SalaryMin.Valid && j.SalaryMax.Valid {
		out.Salary = &Salary{Min: j.SalaryMin.Int64, Max: j.SalaryMax.Int64, Currency: nullString(j.SalaryCurrency)}
	}
	return out
}

// Company shapes a company.
func (s *Shaper) Company(ctx context.Context, c *record.Company) Company {
	return Company{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Sector:      nullString(c.Sector),
		Location:    nullString(c.Address),
		LogoURL:     s.logoURL(ctx, c.LogoKey),
	}
}

// Person shapes a candidate profile.
func (s *Shaper) Person(p *record.Person) Person {
	return Person{
		ID:       p.ID,
		FullName: p.FullName,
		Headline: nullString(p.Headline),
		Location: nullString(p.Location),
		Skills:   stringsOrEmpty(p.Skills),
	}
}

// Course shapes a course.
func (s *Shaper) Course(c *record.Course) Course {
	return Course{
		ID:          c.ID,
		Title:       c.Title,
		Institution: InstitutionRef{ID: c.InstitutionID, Name: c.InstitutionName},
		Category:    nullString(c.Category),
		Modality:    nullString(c.Modality),
		Location:    nullString(c.Location),
	}
}

// Results shapes tagged search hits, attaching the shaped record as data.
func (s *Shaper) Results(ctx context.Context, in []result.Result) []SearchResult {
	out := make([]SearchResult, len(in))
	for i := range in {
		r := &in[i]
		out[i] = SearchResult{
			ID:       r.ID(),
			Type:     string(r.Kind()),
			Title:    r.Title(),
			Subtitle: r.Subtitle(),
			URL:      r.URL(),
			Score:    r.Score(),
			Data:     s.data(ctx, r.Record()),
		}
	}
	return out
}

func (s *Shaper) data(ctx context.Context, rec any) any {
	switch v := rec.(type) {
	case *record.JobOffer:
		return s.Job(v)
	case *record.Company:
		return s.Company(ctx, v)
	case *record.Person:
		return s.Person(v)
	case *record.Course:
		return s.Course(v)
	default:
		return nil
	}
}

// Analytics shapes the admin snapshot.
func (s *Shaper) Analytics(a *discovery.Analytics) Analytics {
	return Analytics{
		Total:           a.Totals.All,
		Public:          a.Totals.Public,
		Active:          a.Totals.Active,
		AvgEmployees:    a.Totals.AvgEmployees,
		TotalRevenue:    a.Totals.TotalRevenue,
		ByCategory:      buckets(a.ByCategory),
		ByBusinessStage: buckets(a.ByBusinessStage),
		ByDepartment:    buckets(a.ByDepartment),
	}
}

// logoURL never fails: a presign error leaves the URL empty.
func (s *Shaper) logoURL(ctx context.Context, key sql.NullString) string {
	if s.signer == nil || !key.Valid || key.String == "" {
		return ""
	}
	url, err := s.signer.PresignGet(ctx, key.String, s.ttl)
	if err != nil {
		s.logger.Warn("Failed to presign logo", zap.String("key", key.String), zap.Error(err))
		return ""
	}
	return url
}

func buckets(in []discovery.Bucket) []Bucket {
	out := make([]Bucket, len(in))
	for i, b := range in {
		out[i] = Bucket{Key: b.Key, Count: b.Count}
	}
	return out
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullDate(v sql.NullTime) *string {
	if !v.Valid {
		return nil
	}
	d := v.Time.Format(time.DateOnly)
	return &d
}

func stringsOrEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
