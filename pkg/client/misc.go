package client

import (
	"context"
	"net/url"
)

// CertificateLogos returns the certificate logo URLs keyed by certificate name.
func (c *Client) CertificateLogos(ctx context.Context) (map[string]string, error) {
	var out struct {
		Logos map[string]string `json:"logos"`
	}
	if err := c.get(ctx, "certificate_logos", "/api/certificates/logos", url.Values{}, &out); err != nil {
		return nil, err
	}
	return out.Logos, nil
}

// HealthStatus is the service health report.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health returns the service health report. An unhealthy service answers 503,
// which is returned as *APIError matching ErrServer.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "health", "/health", url.Values{}, &out); err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}
