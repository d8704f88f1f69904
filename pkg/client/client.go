package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client calls the talentbridge HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	obs     *observer
}

// New creates a client for the API served at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("talentbridge: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("talentbridge: base url must be absolute, got %q", baseURL)
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = http.DefaultClient
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{baseURL: u, http: cfg.httpClient, token: cfg.token, obs: obs}, nil
}

// get performs a GET and decodes the JSON body into out. Non-2xx responses become *APIError.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("talentbridge: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("talentbridge: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &body) != nil || body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("talentbridge: decode %s response: %w", op, err)
	}
	return nil
}

// params builds a query string, skipping zero values.
type params url.Values

func (p params) str(name, v string) {
	if v != "" {
		url.Values(p).Set(name, v)
	}
}

func (p params) list(name string, v []string) {
	if len(v) > 0 {
		url.Values(p).Set(name, strings.Join(v, ","))
	}
}

func (p params) num(name string, v int) {
	if v != 0 {
		url.Values(p).Set(name, strconv.Itoa(v))
	}
}

func (p params) num64(name string, v *int64) {
	if v != nil {
		url.Values(p).Set(name, strconv.FormatInt(*v, 10))
	}
}

func (p params) flag(name string, v bool) {
	if v {
		url.Values(p).Set(name, "true")
	}
}
