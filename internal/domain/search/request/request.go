package request

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/talentbridge/internal/domain/page"
	"github.com/kailas-cloud/talentbridge/internal/domain/param"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/kind"
)

// Search parameter limits.
const (
	// MinQueryLength is the shortest query (in characters) that reaches the store.
	MinQueryLength = 2
	// MaxQueryLength is the longest accepted query; longer input is truncated.
	MaxQueryLength = 256
)

// Query parameter names accepted by Normalize.
const (
	ParamQuery      = "q"
	ParamType       = "type"
	ParamLocation   = "location"
	ParamCategory   = "category"
	ParamSkills     = "skills"
	ParamExperience = "experience"
	ParamSalaryMin  = "salaryMin"
	ParamSalaryMax  = "salaryMax"
)

// typeAll selects every kind.
const typeAll = "all"

// Request is a normalized global search query.
type Request struct {
	query      string
	kinds      []kind.Kind
	location   string
	category   string
	skills     []string
	experience string
	salaryMin  *int64
	salaryMax  *int64
	page       page.Page
	dropped    []string
}

// Normalize parses raw query parameters into a Request. Malformed optional values are
// dropped and reported by Dropped; it never fails.
func Normalize(values url.Values) Request {
	var dropped param.Dropped

	r := Request{
		query:      truncate(param.String(values, ParamQuery), MaxQueryLength),
		location:   param.String(values, ParamLocation),
		category:   param.String(values, ParamCategory),
		skills:     param.List(values, ParamSkills),
		experience: param.String(values, ParamExperience),
	}
	r.kinds = parseKinds(values.Get(ParamType), &dropped)

	if v, ok := param.Int(values, ParamSalaryMin, &dropped); ok {
		r.salaryMin = &v
	}
	if v, ok := param.Int(values, ParamSalaryMax, &dropped); ok {
		r.salaryMax = &v
	}
	if r.salaryMin != nil && r.salaryMax != nil && *r.salaryMin > *r.salaryMax {
		dropped.Add(ParamSalaryMin, ParamSalaryMax)
		r.salaryMin, r.salaryMax = nil, nil
	}

	r.page = param.Page(values, page.DefaultLimit, page.MaxLimit, &dropped)
	r.dropped = dropped
	return r
}

// New builds a request programmatically with default filters.
func New(query string, p page.Page, kinds ...kind.Kind) Request {
	if len(kinds) == 0 {
		kinds = kind.Priority
	}
	return Request{query: truncate(strings.TrimSpace(query), MaxQueryLength), kinds: kinds, page: p}
}

// parseKinds accepts "all", a single kind or a comma-separated list, returned in priority order.
func parseKinds(raw string, dropped *param.Dropped) []kind.Kind {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == typeAll {
		return kind.Priority
	}
	selected := make(map[kind.Kind]bool)
	for _, part := range strings.Split(raw, ",") {
		k := kind.Kind(strings.TrimSpace(part))
		if k.IsValid() {
			selected[k] = true
		}
	}
	if len(selected) == 0 {
		dropped.Add(ParamType)
		return kind.Priority
	}
	out := make([]kind.Kind, 0, len(selected))
	for _, k := range kind.Priority {
		if selected[k] {
			out = append(out, k)
		}
	}
	return out
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return string([]rune(s)[:maxRunes])
}

// Query returns the trimmed search text.
func (r *Request) Query() string { return r.query }

// IsTooShort reports whether the query is below MinQueryLength characters.
func (r *Request) IsTooShort() bool { return utf8.RuneCountInString(r.query) < MinQueryLength }

// Kinds returns the selected entity types in priority order.
func (r *Request) Kinds() []kind.Kind { return r.kinds }

// Location returns the location constraint.
func (r *Request) Location() string { return r.location }

// Category returns the category constraint.
func (r *Request) Category() string { return r.category }

// Skills returns the skill constraint.
func (r *Request) Skills() []string { return r.skills }

// Experience returns the experience level constraint.
func (r *Request) Experience() string { return r.experience }

// SalaryMin returns the lower salary bound.
func (r *Request) SalaryMin() *int64 { return r.salaryMin }

// SalaryMax returns the upper salary bound.
func (r *Request) SalaryMax() *int64 { return r.salaryMax }

// Page returns the requested result window.
func (r *Request) Page() page.Page { return r.page }

// Dropped lists parameters that were present but malformed.
func (r *Request) Dropped() []string { return r.dropped }

// Filters returns the applied filters keyed by parameter name, for echoing back to clients.
func (r *Request) Filters() map[string]any {
	out := map[string]any{}
	if len(r.kinds) != len(kind.Priority) {
		out[ParamType] = r.kinds
	} else {
		out[ParamType] = typeAll
	}
	if r.location != "" {
		out[ParamLocation] = r.location
	}
	if r.category != "" {
		out[ParamCategory] = r.category
	}
	if len(r.skills) > 0 {
		out[ParamSkills] = r.skills
	}
	if r.experience != "" {
		out[ParamExperience] = r.experience
	}
	if r.salaryMin != nil {
		out[ParamSalaryMin] = *r.salaryMin
	}
	if r.salaryMax != nil {
		out[ParamSalaryMax] = *r.salaryMax
	}
	out[param.Limit] = r.page.Limit()
	out[param.Offset] = r.page.Offset()
	return out
}
