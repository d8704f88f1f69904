package client

import (
	"context"
	"net/url"
)

// Search runs a global search across job offers, companies, people and courses.
func (c *Client) Search(ctx context.Context, in SearchParams) (SearchResponse, error) {
	q := params{}
	q.str("q", in.Query)
	q.list("type", in.Types)
	q.str("location", in.Location)
	q.str("category", in.Category)
	q.list("skills", in.Skills)
	q.str("experience", in.Experience)
	q.num64("salaryMin", in.SalaryMin)
	q.num64("salaryMax", in.SalaryMax)
	q.num("limit", in.Limit)
	q.num("offset", in.Offset)

	var out SearchResponse
	if err := c.get(ctx, "search", "/api/search", url.Values(q), &out); err != nil {
		return SearchResponse{}, err
	}
	return out, nil
}

// Suggestions returns prefix completions. limit <= 0 uses the server default.
func (c *Client) Suggestions(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	q := params{}
	q.str("q", prefix)
	q.num("limit", limit)

	var out struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := c.get(ctx, "suggestions", "/api/search/suggestions", url.Values(q), &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

// Popular returns the most searched queries. limit <= 0 uses the server default.
func (c *Client) Popular(ctx context.Context, limit int) ([]PopularSearch, error) {
	q := params{}
	q.num("limit", limit)

	var out struct {
		Searches []PopularSearch `json:"searches"`
	}
	if err := c.get(ctx, "popular", "/api/search/popular", url.Values(q), &out); err != nil {
		return nil, err
	}
	return out.Searches, nil
}
