package auth

import (
	"context"
	"testing"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		c    Capability
		want bool
	}{
		{"admin analytics", Session{UserID: "u1", Role: RoleAdmin}, StartupsAnalytics, true},
		{"student analytics", Session{UserID: "u2", Role: RoleStudent}, StartupsAnalytics, false},
		{"company search", Session{UserID: "u3", Role: RoleCompany}, SearchRead, true},
		{"company recommend", Session{UserID: "u3", Role: RoleCompany}, StartupsRecommend, false},
		{"entrepreneur view all", Session{UserID: "u4", Role: RoleEntrepreneur}, StartupsViewAll, false},
		{"zero session", Session{}, SearchRead, false},
		{"unknown role", Session{UserID: "u5", Role: "GUEST"}, SearchRead, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.s, tc.c); got != tc.want {
				t.Errorf("Authorize = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" admin "); !ok || r != RoleAdmin {
		t.Errorf("ParseRole(admin) = %q,%v", r, ok)
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Error("unknown role must not parse")
	}
}

func TestContext(t *testing.T) {
	if !FromContext(context.Background()).IsZero() {
		t.Error("empty context must yield zero session")
	}
	s := Session{UserID: "u1", Role: RoleStudent}
	if got := FromContext(ContextWithSession(context.Background(), s)); got != s {
		t.Errorf("got %+v, want %+v", got, s)
	}
}
