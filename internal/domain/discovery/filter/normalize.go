package filter

import (
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/talentbridge/internal/domain/page"
	"github.com/kailas-cloud/talentbridge/internal/domain/param"
)

// Query parameter names accepted by Normalize.
const (
	ParamSearch         = "search"
	ParamCategory       = "category"
	ParamSubcategory    = "subcategory"
	ParamBusinessStage  = "businessStage"
	ParamMunicipality   = "municipality"
	ParamDepartment     = "department"
	ParamOwnerID        = "ownerId"
	ParamMinEmployees   = "minEmployees"
	ParamMaxEmployees   = "maxEmployees"
	ParamMinRevenue     = "minRevenue"
	ParamMaxRevenue     = "maxRevenue"
	ParamFoundedAfter   = "foundedAfter"
	ParamFoundedBefore  = "foundedBefore"
	ParamHasWebsite     = "hasWebsite"
	ParamHasSocialMedia = "hasSocialMedia"
	ParamIsPublic       = "isPublic"
	ParamIsActive       = "isActive"
	ParamSortBy         = "sortBy"
	ParamSortOrder      = "sortOrder"
)

const dateLayout = "2006-01-02"

// Normalize parses raw query parameters into a Filter.
// Malformed optional values are dropped and recorded in Filter.Dropped; it never fails.
func Normalize(values url.Values) Filter {
	f := Default()
	var dropped param.Dropped

	f.Search = param.String(values, ParamSearch)
	f.Category = param.String(values, ParamCategory)
	f.Subcategory = param.String(values, ParamSubcategory)
	f.BusinessStage = param.String(values, ParamBusinessStage)
	f.Municipality = param.String(values, ParamMunicipality)
	f.Department = param.String(values, ParamDepartment)
	f.OwnerID = param.String(values, ParamOwnerID)

	f.Employees = parseRange(values, ParamMinEmployees, ParamMaxEmployees, &dropped)
	f.Revenue = parseRange(values, ParamMinRevenue, ParamMaxRevenue, &dropped)
	f.Founded = parseDateRange(values, &dropped)

	f.HasWebsite = param.True(values, ParamHasWebsite)
	f.HasSocialMedia = param.True(values, ParamHasSocialMedia)
	f.IsPublic = param.NotFalse(values, ParamIsPublic)
	f.IsActive = param.NotFalse(values, ParamIsActive)

	if raw := values.Get(ParamSortBy); raw != "" {
		if field := SortField(raw); field.IsValid() {
			f.Sort.Field = field
		} else {
			dropped.Add(ParamSortBy)
		}
	}
	if raw := values.Get(ParamSortOrder); raw != "" {
		if dir := Direction(strings.ToLower(raw)); dir.IsValid() {
			f.Sort.Direction = dir
		} else {
			dropped.Add(ParamSortOrder)
		}
	}

	f.Page = param.Page(values, page.DefaultLimit, page.MaxLimit, &dropped)
	f.Dropped = dropped
	return f
}

// parseRange reads a min/max pair. An inverted pair is malformed and both bounds are dropped.
func parseRange(values url.Values, minName, maxName string, dropped *param.Dropped) Range {
	var r Range
	if v, ok := param.Int(values, minName, dropped); ok {
		r.Min = &v
	}
	if v, ok := param.Int(values, maxName, dropped); ok {
		r.Max = &v
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		dropped.Add(minName, maxName)
		return Range{}
	}
	return r
}

func parseDateRange(values url.Values, dropped *param.Dropped) DateRange {
	var r DateRange
	if raw := values.Get(ParamFoundedAfter); raw != "" {
		if t, ok := parseDate(raw, false); ok {
			r.After = &t
		} else {
			dropped.Add(ParamFoundedAfter)
		}
	}
	if raw := values.Get(ParamFoundedBefore); raw != "" {
		if t, ok := parseDate(raw, true); ok {
			r.Before = &t
		} else {
			dropped.Add(ParamFoundedBefore)
		}
	}
	if r.After != nil && r.Before != nil && r.After.After(*r.Before) {
		dropped.Add(ParamFoundedAfter, ParamFoundedBefore)
		return DateRange{}
	}
	return r
}

// parseDate accepts YYYY-MM-DD or RFC 3339. A date-only upper bound covers the whole day.
func parseDate(raw string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Microsecond)
		}
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
