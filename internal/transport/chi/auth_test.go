package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/domain/auth"
)

type stubVerifier struct {
	sessions map[string]auth.Session
}

func (v *stubVerifier) Verify(_ context.Context, raw string) (auth.Session, error) {
	if s, ok := v.sessions[raw]; ok {
		return s, nil
	}
	return auth.Session{}, errors.New("bad token")
}

func sessionEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := auth.FromContext(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{"user": s.UserID, "role": string(s.Role)})
	})
}

func authHandler() http.Handler {
	tokens := map[string]StaticToken{"svc-secret": {Name: "indexer", Role: auth.RoleAdmin}}
	verifier := &stubVerifier{sessions: map[string]auth.Session{
		"student-token": {UserID: "s1", Role: auth.RoleStudent},
		"company-token": {UserID: "c1", Role: auth.RoleCompany},
	}}
	return AuthMiddleware(tokens, verifier, zap.NewNop())(sessionEcho())
}

func doAuth(t *testing.T, h http.Handler, path, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware_ExemptPaths(t *testing.T) {
	h := authHandler()
	for _, p := range []string{"/health", "/metrics"} {
		if rr := doAuth(t, h, p, ""); rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", p, rr.Code)
		}
	}
}

func TestAuthMiddleware_MissingHeader_401(t *testing.T) {
	rr := doAuth(t, authHandler(), "/api/search", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestAuthMiddleware_WrongScheme_401(t *testing.T) {
	if rr := doAuth(t, authHandler(), "/api/search", "Basic abc"); rr.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_InvalidToken_401(t *testing.T) {
	if rr := doAuth(t, authHandler(), "/api/search", "Bearer nope"); rr.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_MissingCapability_403(t *testing.T) {
	rr := doAuth(t, authHandler(), "/api/startups/analytics", "Bearer company-token")
	if rr.Code != http.StatusForbidden {
		t.Errorf("got %d, want 403", rr.Code)
	}
}

func TestAuthMiddleware_VerifiedSessionInContext(t *testing.T) {
	rr := doAuth(t, authHandler(), "/api/startups/recommendations", "Bearer student-token")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["user"] != "s1" || body["role"] != "STUDENT" {
		t.Errorf("unexpected session: %v", body)
	}
}

func TestAuthMiddleware_StaticToken(t *testing.T) {
	rr := doAuth(t, authHandler(), "/api/startups/analytics", "Bearer svc-secret")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["user"] != "token:indexer" || body["role"] != "ADMIN" {
		t.Errorf("unexpected session: %v", body)
	}
}

func TestAuthMiddleware_NoVerifier(t *testing.T) {
	h := AuthMiddleware(nil, nil, zap.NewNop())(sessionEcho())
	if rr := doAuth(t, h, "/api/search", "Bearer student-token"); rr.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_UnknownRoutePassesThrough(t *testing.T) {
	if rr := doAuth(t, authHandler(), "/api/unknown", ""); rr.Code != http.StatusOK {
		t.Errorf("got %d, want 200 from next handler", rr.Code)
	}
}
