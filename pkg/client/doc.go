// Package client is a Go HTTP client for the talentbridge discovery and search API.
//
//	c, _ := client.New("https://api.example.com", client.WithToken(token))
//	res, _ := c.Search(ctx, client.SearchParams{Query: "golang", Types: []string{"job", "company"}})
//	page, _ := c.Discover(ctx, client.DiscoverParams{Category: "TECH", Limit: 20})
//
// Every call can be observed with zap logging and Prometheus counters:
//
//	c, _ := client.New(baseURL, client.WithLogger(logger), client.WithPrometheus(prometheus.DefaultRegisterer))
package client
