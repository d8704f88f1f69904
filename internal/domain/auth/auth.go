// Package auth models authenticated sessions and capability-based authorization.
package auth

import (
	"context"
	"strings"
)

// Role is a platform role carried by a session.
type Role string

// Platform roles.
const (
	RoleAdmin        Role = "ADMIN"
	RoleCompany      Role = "COMPANY"
	RoleInstitution  Role = "INSTITUTION"
	RoleEntrepreneur Role = "ENTREPRENEUR"
	RoleStudent      Role = "STUDENT"
)

// ParseRole normalizes a role claim. Unknown roles return ok=false.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := roleCapabilities[r]; !ok {
		return "", false
	}
	return r, true
}

// Capability is a permission checked at the route boundary.
type Capability string

// Capabilities.
const (
	SearchRead        Capability = "search:read"
	StartupsDiscover  Capability = "startups:discover"
	StartupsRecommend Capability = "startups:recommend"
	StartupsAnalytics Capability = "startups:analytics"
	// StartupsViewAll lifts the public/active visibility scope in discovery.
	StartupsViewAll  Capability = "startups:view_all"
	CertificatesRead Capability = "certificates:read"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		SearchRead, StartupsDiscover, StartupsRecommend, StartupsAnalytics, StartupsViewAll, CertificatesRead,
	},
	RoleCompany:      {SearchRead, StartupsDiscover, CertificatesRead},
	RoleInstitution:  {SearchRead, StartupsDiscover, CertificatesRead},
	RoleEntrepreneur: {SearchRead, StartupsDiscover, StartupsRecommend, CertificatesRead},
	RoleStudent:      {SearchRead, StartupsDiscover, StartupsRecommend, CertificatesRead},
}

// RouteCapabilities maps each protected route to the capability it requires.
var RouteCapabilities = map[string]Capability{
	"/api/search":                   SearchRead,
	"/api/search/suggestions":       SearchRead,
	"/api/search/popular":           SearchRead,
	"/api/startups/discover":        StartupsDiscover,
	"/api/startups/recommendations": StartupsRecommend,
	"/api/startups/trending":        StartupsDiscover,
	"/api/startups/analytics":       StartupsAnalytics,
	"/api/certificates/logos":       CertificatesRead,
}

// Session is an authenticated requester.
type Session struct {
	UserID string
	Role   Role
}

// IsZero reports whether the session is absent.
func (s Session) IsZero() bool { return s.UserID == "" }

// Authorize reports whether the session holds the capability. A zero session holds none.
func Authorize(s Session, c Capability) bool {
	if s.IsZero() {
		return false
	}
	for _, granted := range roleCapabilities[s.Role] {
		if granted == c {
			return true
		}
	}
	return false
}

type ctxKey struct{}

// ContextWithSession stores a session in the context.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session. Returns the zero session if none is present.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(ctxKey{}).(Session); ok {
		return s
	}
	return Session{}
}
