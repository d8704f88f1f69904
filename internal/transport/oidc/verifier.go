// Package oidc verifies bearer ID tokens issued by an external OpenID Connect provider
// and turns their claims into sessions.
package oidc

import (
	"context"
	"fmt"
	"strings"

	gooidc "github.com/coreos/go-oidc/v3/oidc"

	"github.com/kailas-cloud/talentbridge/internal/domain"
	"github.com/kailas-cloud/talentbridge/internal/domain/auth"
)

// DefaultRoleClaim is the claim holding the platform role when none is configured.
const DefaultRoleClaim = "role"

// Config holds provider settings.
type Config struct {
	IssuerURL string
	ClientID  string
	RoleClaim string
}

// Verifier checks ID token signatures and claims against the provider.
type Verifier struct {
	verifier  *gooidc.IDTokenVerifier
	roleClaim string
}

// NewVerifier discovers the provider and builds a verifier for its signing keys.
func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	if cfg.IssuerURL == "" {
		return nil, fmt.Errorf("issuer url is required")
	}
	provider, err := gooidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}
	return newVerifier(provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}), cfg.RoleClaim), nil
}

func newVerifier(v *gooidc.IDTokenVerifier, roleClaim string) *Verifier {
	if roleClaim == "" {
		roleClaim = DefaultRoleClaim
	}
	return &Verifier{verifier: v, roleClaim: roleClaim}
}

// Verify validates raw and returns the session it carries. Any failure, including a
// missing subject or an unknown role, is reported as domain.ErrUnauthenticated.
func (v *Verifier) Verify(ctx context.Context, raw string) (auth.Session, error) {
	tok, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return auth.Session{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	var claims map[string]any
	if err := tok.Claims(&claims); err != nil {
		return auth.Session{}, fmt.Errorf("%w: parse claims: %w", domain.ErrUnauthenticated, err)
	}
	return sessionFromClaims(tok.Subject, claims, v.roleClaim)
}

func sessionFromClaims(subject string, claims map[string]any, roleClaim string) (auth.Session, error) {
	if strings.TrimSpace(subject) == "" {
		return auth.Session{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}
	raw, _ := claims[roleClaim].(string)
	role, ok := auth.ParseRole(raw)
	if !ok {
		return auth.Session{}, fmt.Errorf("%w: unknown role %q", domain.ErrUnauthenticated, raw)
	}
	return auth.Session{UserID: subject, Role: role}, nil
}
