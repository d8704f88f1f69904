// Package param coerces raw query string values into typed request fields.
package param

import (
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/talentbridge/internal/domain/page"
)

// Pagination parameter names.
const (
	Limit  = "limit"
	Offset = "offset"
)

// Dropped collects the names of parameters that were present but malformed.
type Dropped []string

// Add records a malformed parameter.
func (d *Dropped) Add(names ...string) { *d = append(*d, names...) }

// Int binds an optional integer parameter. Absent values return ok=false silently;
// malformed values return ok=false and are recorded.
func Int(values url.Values, name string, dropped *Dropped) (int64, bool) {
	if values.Get(name) == "" {
		return 0, false
	}
	var v int64
	if err := runtime.BindQueryParameter("form", true, false, name, values, &v); err != nil {
		dropped.Add(name)
		return 0, false
	}
	return v, true
}

// String returns the trimmed value of an optional parameter.
func String(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

// True reports whether the parameter is exactly "true".
func True(values url.Values, name string) bool { return values.Get(name) == "true" }

// NotFalse reports whether the parameter is anything but exactly "false".
func NotFalse(values url.Values, name string) bool { return values.Get(name) != "false" }

// Page reads limit and offset; malformed values fall back to defaults. An offset beyond
// page.MaxOffset is recorded as dropped and ignored.
func Page(values url.Values, def, maxLimit int, dropped *Dropped) page.Page {
	var limit, offset int
	if v, ok := Int(values, Limit, dropped); ok {
		limit = int(min(v, int64(maxLimit)))
	}
	if v, ok := Int(values, Offset, dropped); ok {
		if v > page.MaxOffset {
			dropped.Add(Offset)
		} else {
			offset = int(v)
		}
	}
	return page.Clamp(limit, offset, def, maxLimit)
}

// List splits a comma-separated parameter, dropping empty items.
func List(values url.Values, name string) []string {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
