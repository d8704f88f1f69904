package filter

import (
	"net/url"
	"slices"
	"testing"
	"time"

	"github.com/kailas-cloud/talentbridge/internal/domain/page"
)

func TestNormalize_Defaults(t *testing.T) {
	f := Normalize(url.Values{})

	if !f.IsPublic || !f.IsActive {
		t.Error("isPublic and isActive must default to true")
	}
	if f.Sort != DefaultSort() {
		t.Errorf("expected default sort, got %+v", f.Sort)
	}
	if f.Page.Limit() != page.DefaultLimit || f.Page.Offset() != 0 {
		t.Errorf("expected default page, got limit=%d offset=%d", f.Page.Limit(), f.Page.Offset())
	}
	if f.Employees.IsSet() || f.Revenue.IsSet() || f.Founded.IsSet() {
		t.Error("ranges must be absent")
	}
	if f.HasWebsite || f.HasSocialMedia {
		t.Error("presence filters must be absent")
	}
	if len(f.Dropped) != 0 {
		t.Errorf("unexpected dropped: %v", f.Dropped)
	}
}

func TestNormalize_AllFields(t *testing.T) {
	f := Normalize(url.Values{
		"search":         {"  agro  "},
		"category":       {"TECH"},
		"subcategory":    {"SAAS"},
		"businessStage":  {"GROWTH"},
		"municipality":   {"Medellin"},
		"department":     {"Antioquia"},
		"minEmployees":   {"5"},
		"maxEmployees":   {"50"},
		"minRevenue":     {"1000"},
		"maxRevenue":     {"900000"},
		"foundedAfter":   {"2020-01-01"},
		"foundedBefore":  {"2023-12-31"},
		"hasWebsite":     {"true"},
		"hasSocialMedia": {"true"},
		"isPublic":       {"false"},
		"isActive":       {"false"},
		"sortBy":         {"name"},
		"sortOrder":      {"ASC"},
		"limit":          {"10"},
		"offset":         {"30"},
	})

	if f.Search != "agro" {
		t.Errorf("search = %q", f.Search)
	}
	if f.Category != "TECH" || f.Subcategory != "SAAS" || f.BusinessStage != "GROWTH" {
		t.Errorf("enum fields: %+v", f)
	}
	if f.Municipality != "Medellin" || f.Department != "Antioquia" {
		t.Errorf("location fields: %+v", f)
	}
	if *f.Employees.Min != 5 || *f.Employees.Max != 50 {
		t.Errorf("employees = %d..%d", *f.Employees.Min, *f.Employees.Max)
	}
	if *f.Revenue.Min != 1000 || *f.Revenue.Max != 900000 {
		t.Errorf("revenue = %d..%d", *f.Revenue.Min, *f.Revenue.Max)
	}
	wantAfter := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if !f.Founded.After.Equal(wantAfter) {
		t.Errorf("foundedAfter = %v", f.Founded.After)
	}
	wantBefore := time.Date(2023, 12, 31, 23, 59, 59, 999999000, time.UTC)
	if !f.Founded.Before.Equal(wantBefore) {
		t.Errorf("foundedBefore = %v, want %v", f.Founded.Before, wantBefore)
	}
	if !f.HasWebsite || !f.HasSocialMedia {
		t.Error("presence filters must be set")
	}
	if f.IsPublic || f.IsActive {
		t.Error("explicit false must be honored")
	}
	if f.Sort.Field != SortName || f.Sort.Direction != Asc {
		t.Errorf("sort = %+v", f.Sort)
	}
	if f.Page.Limit() != 10 || f.Page.Offset() != 30 {
		t.Errorf("page = %d/%d", f.Page.Limit(), f.Page.Offset())
	}
	if len(f.Dropped) != 0 {
		t.Errorf("unexpected dropped: %v", f.Dropped)
	}
}

func TestNormalize_MalformedDropped(t *testing.T) {
	f := Normalize(url.Values{
		"minEmployees":  {"five"},
		"maxEmployees":  {"50"},
		"foundedAfter":  {"yesterday"},
		"sortBy":        {"password"},
		"sortOrder":     {"sideways"},
		"limit":         {"lots"},
		"offset":        {"-5"},
		"hasWebsite":    {"yes"},
		"isPublic":      {"no"},
		"foundedBefore": {"2024-02-30"},
	})

	if f.Employees.Min != nil {
		t.Error("malformed minEmployees must be absent")
	}
	if f.Employees.Max == nil || *f.Employees.Max != 50 {
		t.Error("valid maxEmployees must survive")
	}
	if f.Founded.IsSet() {
		t.Error("malformed dates must be absent")
	}
	if f.Sort != DefaultSort() {
		t.Errorf("invalid sort must fall back to default, got %+v", f.Sort)
	}
	if f.Page.Limit() != page.DefaultLimit || f.Page.Offset() != 0 {
		t.Errorf("page must fall back to defaults, got %d/%d", f.Page.Limit(), f.Page.Offset())
	}
	if f.HasWebsite {
		t.Error("hasWebsite is true only for the literal \"true\"")
	}
	if !f.IsPublic {
		t.Error("isPublic is false only for the literal \"false\"")
	}

	for _, name := range []string{"minEmployees", "foundedAfter", "foundedBefore", "sortBy", "sortOrder", "limit"} {
		if !slices.Contains(f.Dropped, name) {
			t.Errorf("expected %s in dropped %v", name, f.Dropped)
		}
	}
}

func TestNormalize_InvertedRangeDropped(t *testing.T) {
	f := Normalize(url.Values{"minRevenue": {"500"}, "maxRevenue": {"100"}})

	if f.Revenue.IsSet() {
		t.Error("inverted range must be dropped entirely")
	}
	if !slices.Contains(f.Dropped, "minRevenue") || !slices.Contains(f.Dropped, "maxRevenue") {
		t.Errorf("expected both bounds dropped, got %v", f.Dropped)
	}
}

func TestNormalize_InvertedDatesDropped(t *testing.T) {
	f := Normalize(url.Values{"foundedAfter": {"2024-01-01"}, "foundedBefore": {"2023-01-01"}})

	if f.Founded.IsSet() {
		t.Error("inverted date range must be dropped")
	}
}

func TestNormalize_SameDayDates(t *testing.T) {
	f := Normalize(url.Values{"foundedAfter": {"2024-05-01"}, "foundedBefore": {"2024-05-01"}})

	if f.Founded.After == nil || f.Founded.Before == nil {
		t.Fatal("same-day bounds must be kept")
	}
	if !f.Founded.Before.After(*f.Founded.After) {
		t.Error("date-only upper bound must cover the whole day")
	}
}

func TestNormalize_RFC3339(t *testing.T) {
	f := Normalize(url.Values{"foundedAfter": {"2021-06-01T12:00:00+02:00"}})

	want := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	if f.Founded.After == nil || !f.Founded.After.Equal(want) {
		t.Errorf("foundedAfter = %v, want %v", f.Founded.After, want)
	}
}

func TestNormalize_LimitCapped(t *testing.T) {
	f := Normalize(url.Values{"limit": {"100000"}})
	if f.Page.Limit() != page.MaxLimit {
		t.Errorf("limit = %d, want %d", f.Page.Limit(), page.MaxLimit)
	}
}

func TestRange_Contains(t *testing.T) {
	lo, hi := int64(5), int64(50)
	r := Range{Min: &lo, Max: &hi}

	for v, want := range map[int64]bool{4: false, 5: true, 20: true, 50: true, 51: false} {
		if got := r.Contains(v); got != want {
			t.Errorf("Contains(%d) = %v, want %v", v, got, want)
		}
	}
	if !(Range{}).Contains(-1) {
		t.Error("open range must contain everything")
	}
}
