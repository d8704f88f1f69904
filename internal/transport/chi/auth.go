package chi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/domain/auth"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// SessionVerifier turns a bearer ID token into a session.
type SessionVerifier interface {
	Verify(ctx context.Context, raw string) (auth.Session, error)
}

// StaticToken is a machine credential bound to a fixed role.
type StaticToken struct {
	Name string
	Role auth.Role
}

// AuthMiddleware resolves the request session and enforces auth.RouteCapabilities.
// Static tokens are checked first, then the verifier (which may be nil).
// Routes missing from the capability map are passed through so the router can answer 404/405.
func AuthMiddleware(tokens map[string]StaticToken, verifier SessionVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			required, protected := auth.RouteCapabilities[r.URL.Path]
			if !protected {
				next.ServeHTTP(w, r)
				return
			}

			sess, ok := authenticate(r, tokens, verifier, logger)
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !auth.Authorize(sess, required) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithSession(r.Context(), sess)))
		})
	}
}

func authenticate(
	r *http.Request,
	tokens map[string]StaticToken,
	verifier SessionVerifier,
	logger *zap.Logger,
) (auth.Session, bool) {
	header := r.Header.Get("Authorization")
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(header, bearerPrefix) {
		return auth.Session{}, false
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	if raw == "" {
		return auth.Session{}, false
	}

	if t, ok := tokens[raw]; ok {
		return auth.Session{UserID: "token:" + t.Name, Role: t.Role}, true
	}
	if verifier == nil {
		return auth.Session{}, false
	}

	sess, err := verifier.Verify(r.Context(), raw)
	if err != nil {
		logger.Debug("token rejected", zap.Error(err))
		return auth.Session{}, false
	}
	return sess, !sess.IsZero()
}
