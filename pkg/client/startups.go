package client

import (
	"context"
	"net/url"
)

// Discover returns one page of startups matching the filter.
func (c *Client) Discover(ctx context.Context, in DiscoverParams) (DiscoverResponse, error) {
	q := params{}
	q.str("search", in.Search)
	q.str("category", in.Category)
	q.str("subcategory", in.Subcategory)
	q.str("businessStage", in.BusinessStage)
	q.str("municipality", in.Municipality)
	q.str("department", in.Department)
	q.str("ownerId", in.OwnerID)
	q.num64("minEmployees", in.MinEmployees)
	q.num64("maxEmployees", in.MaxEmployees)
	q.num64("minRevenue", in.MinRevenue)
	q.num64("maxRevenue", in.MaxRevenue)
	q.str("foundedAfter", in.FoundedAfter)
	q.str("foundedBefore", in.FoundedBefore)
	q.flag("hasWebsite", in.HasWebsite)
	q.flag("hasSocialMedia", in.HasSocialMedia)
	q.str("sortBy", in.SortBy)
	q.str("sortOrder", in.SortOrder)
	q.num("limit", in.Limit)
	q.num("offset", in.Offset)

	var out DiscoverResponse
	if err := c.get(ctx, "discover", "/api/startups/discover", url.Values(q), &out); err != nil {
		return DiscoverResponse{}, err
	}
	return out, nil
}

// Recommendations returns startups ranked for the calling user.
func (c *Client) Recommendations(ctx context.Context, limit int) ([]Startup, error) {
	return c.ranked(ctx, "recommendations", "/api/startups/recommendations", limit)
}

// Trending returns startups ranked by recent engagement.
func (c *Client) Trending(ctx context.Context, limit int) ([]Startup, error) {
	return c.ranked(ctx, "trending", "/api/startups/trending", limit)
}

func (c *Client) ranked(ctx context.Context, op, path string, limit int) ([]Startup, error) {
	q := params{}
	q.num("limit", limit)

	var out struct {
		Startups []Startup `json:"startups"`
	}
	if err := c.get(ctx, op, path, url.Values(q), &out); err != nil {
		return nil, err
	}
	return out.Startups, nil
}

// Analytics returns the admin snapshot. Requires an administrator token.
func (c *Client) Analytics(ctx context.Context) (Analytics, error) {
	var out struct {
		Analytics Analytics `json:"analytics"`
	}
	if err := c.get(ctx, "analytics", "/api/startups/analytics", url.Values{}, &out); err != nil {
		return Analytics{}, err
	}
	return out.Analytics, nil
}
