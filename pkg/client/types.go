package client

import "time"

// SearchParams are global search inputs. Zero values are omitted.
type SearchParams struct {
	Query      string
	Types      []string // job, company, person, course; empty means all
	Location   string
	Category   string
	Skills     []string
	Experience string
	SalaryMin  *int64
	SalaryMax  *int64
	Limit      int
	Offset     int
}

// SearchResult is one tagged hit. Data holds the raw shaped record.
type SearchResult struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	URL      string         `json:"url"`
	Score    float64        `json:"score"`
	Data     map[string]any `json:"data"`
}

// SearchResponse is one page of global search results.
type SearchResponse struct {
	Results       []SearchResult `json:"results"`
	Total         int            `json:"total"`
	Query         string         `json:"query"`
	Filters       map[string]any `json:"filters"`
	FailedSources []string       `json:"failedSources"`
}

// Suggestion is an autocomplete entry.
type Suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PopularSearch is a frequently searched query.
type PopularSearch struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// DiscoverParams are startup discovery inputs. Zero values are omitted.
type DiscoverParams struct {
	Search         string
	Category       string
	Subcategory    string
	BusinessStage  string
	Municipality   string
	Department     string
	OwnerID        string
	MinEmployees   *int64
	MaxEmployees   *int64
	MinRevenue     *int64
	MaxRevenue     *int64
	FoundedAfter   string // YYYY-MM-DD or RFC 3339
	FoundedBefore  string
	HasWebsite     bool
	HasSocialMedia bool
	SortBy         string
	SortOrder      string
	Limit          int
	Offset         int
}

// Engagement is the interaction counters of a startup.
type Engagement struct {
	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
	Shares int64 `json:"shares"`
}

// Startup is a discovered startup.
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
	// Score is set on recommendations and trending only.
	Score float64 `json:"score"`
}

// DiscoverResponse is one page of discovered startups.
type DiscoverResponse struct {
	Items  []Startup `json:"items"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// Bucket is one group of an analytics breakdown.
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Analytics is the admin snapshot over all startups.
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
