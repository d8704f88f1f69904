// Package filter defines the discovery filter for startup listings and its normalizer.
package filter

import (
	"time"

	"github.com/kailas-cloud/talentbridge/internal/domain/page"
)

// SortField is a client-facing sortable attribute.
type SortField string

// Sortable fields.
const (
	SortCreatedAt     SortField = "createdAt"
	SortName          SortField = "name"
	SortFoundedAt     SortField = "foundedAt"
	SortEmployeeCount SortField = "employeeCount"
	SortAnnualRevenue SortField = "annualRevenue"
	SortViews         SortField = "views"
)

// IsValid checks if the field is sortable.
func (f SortField) IsValid() bool {
	switch f {
	case SortCreatedAt, SortName, SortFoundedAt, SortEmployeeCount, SortAnnualRevenue, SortViews:
		return true
	}
	return false
}

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is asc or desc.
func (d Direction) IsValid() bool { return d == Asc || d == Desc }

// Sort is a sort directive.
type Sort struct {
	Field     SortField
	Direction Direction
}

// DefaultSort orders newest first.
func DefaultSort() Sort { return Sort{Field: SortCreatedAt, Direction: Desc} }

// Range is an inclusive integer range; nil bounds are open.
type Range struct {
	Min *int64
	Max *int64
}

// IsSet reports whether at least one bound is present.
func (r Range) IsSet() bool { return r.Min != nil || r.Max != nil }

// Contains reports whether v lies within the range.
func (r Range) Contains(v int64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// DateRange is an inclusive time range; nil bounds are open.
type DateRange struct {
	After  *time.Time
	Before *time.Time
}

// IsSet reports whether at least one bound is present.
func (r DateRange) IsSet() bool { return r.After != nil || r.Before != nil }

// Filter is the normalized discovery request. Zero-valued optional fields mean "no constraint".
type Filter struct {
	Search        string
	Category      string
	Subcategory   string
	BusinessStage string
	Municipality  string
	Department    string
	OwnerID       string

	Employees Range
	Revenue   Range
	Founded   DateRange

	// HasWebsite and HasSocialMedia constrain only when true.
	HasWebsite     bool
	HasSocialMedia bool

	// IsPublic and IsActive are honored verbatim for administrators only.
	IsPublic bool
	IsActive bool

	Sort Sort
	Page page.Page

	// Dropped lists parameters that were present but malformed and therefore ignored.
	Dropped []string
}

// Default returns a filter with no optional constraints.
func Default() Filter {
	return Filter{
		IsPublic: true,
		IsActive: true,
		Sort:     DefaultSort(),
		Page:     page.Clamp(0, 0, page.DefaultLimit, page.MaxLimit),
	}
}
