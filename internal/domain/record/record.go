// Package record holds the persisted projections read by discovery and search.
// Records are owned by the CRUD side of the platform; this service only reads them.
package record

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Startup is an entrepreneurship listing.
type Startup struct {
	ID             string         `db:"id"`
	OwnerID        string         `db:"owner_id"`
	Name           string         `db:"name"`
	Description    string         `db:"description"`
	Category       string         `db:"category"`
	Subcategory    sql.NullString `db:"subcategory"`
	BusinessStage  string         `db:"business_stage"`
	Municipality   string         `db:"municipality"`
	Department     string         `db:"department"`
	Address        sql.NullString `db:"address"`
	EmployeeCount  int            `db:"employee_count"`
	AnnualRevenue  int64          `db:"annual_revenue"`
	MonthlyRevenue int64          `db:"monthly_revenue"`
	FoundedAt      sql.NullTime   `db:"founded_at"`
	IsPublic       bool           `db:"is_public"`
	IsActive       bool           `db:"is_active"`
	Website        sql.NullString `db:"website"`
	SocialLinks    pq.StringArray `db:"social_links"`
	LogoKey        sql.NullString `db:"logo_key"`
	Views          int64          `db:"views"`
	Likes          int64          `db:"likes"`
	Shares         int64          `db:"shares"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// HasWebsite reports whether the startup lists a website.
func (s *Startup) HasWebsite() bool { return s.Website.Valid && s.Website.String != "" }

// HasSocialMedia reports whether the startup lists at least one social profile.
func (s *Startup) HasSocialMedia() bool { return len(s.SocialLinks) > 0 }

// JobOffer is a published job posting joined with its company name.
type JobOffer struct {
	ID              string         `db:"id"`
	CompanyID       string         `db:"company_id"`
	CompanyName     string         `db:"company_name"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	Location        string         `db:"location"`
	ContractType    string         `db:"contract_type"`
	Category        sql.NullString `db:"category"`
	SalaryMin       sql.NullInt64  `db:"salary_min"`
	SalaryMax       sql.NullInt64  `db:"salary_max"`
	SalaryCurrency  sql.NullString `db:"salary_currency"`
	Skills          pq.StringArray `db:"skills"`
	ExperienceLevel sql.NullString `db:"experience_level"`
	EducationLevel  sql.NullString `db:"education_level"`
	Deadline        sql.NullTime   `db:"deadline"`
	IsActive        bool           `db:"is_active"`
	IsFeatured      bool           `db:"is_featured"`
	CreatedAt       time.Time      `db:"created_at"`
}

// Company approval states.
const (
	CompanyPending  = "PENDING"
	CompanyApproved = "APPROVED"
	CompanyRejected = "REJECTED"
)

// Company is an employer account.
type Company struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"owner_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Sector      sql.NullString `db:"sector"`
	Address     sql.NullString `db:"address"`
	LogoKey     sql.NullString `db:"logo_key"`
	Status      string         `db:"status"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Person is a candidate profile.
type Person struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	FullName  string         `db:"full_name"`
	Headline  sql.NullString `db:"headline"`
	Bio       sql.NullString `db:"bio"`
	Location  sql.NullString `db:"location"`
	Skills    pq.StringArray `db:"skills"`
	IsPublic  bool           `db:"is_public"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
}

// Course publication states.
const (
	CourseDraft     = "DRAFT"
	CoursePublished = "PUBLISHED"
	CourseArchived  = "ARCHIVED"
)

// Course is an institution's course offering joined with the institution name.
type Course struct {
	ID              string         `db:"id"`
	InstitutionID   string         `db:"institution_id"`
	InstitutionName string         `db:"institution_name"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	Category        sql.NullString `db:"category"`
	Modality        sql.NullString `db:"modality"`
	Location        sql.NullString `db:"location"`
	Status          string         `db:"status"`
	IsActive        bool           `db:"is_active"`
	CreatedAt       time.Time      `db:"created_at"`
}
