// Package db defines the persistence gateway contracts and the SQL composition primitives
// used by repositories.
package db

import (
	"context"
	"time"
)

// Gateway is the read-only facade over the relational store.
type Gateway interface {
	Pinger
	Querier
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Querier runs composed queries and scans rows into db-tagged structs.
type Querier interface {
	// Select scans all rows into dest, a pointer to a slice.
	Select(ctx context.Context, dest any, q Query) error
	// Get scans exactly one row into dest. Returns ErrNoRows if the query returned nothing.
	Get(ctx context.Context, dest any, q Query) error
}

// ScoredMember is a sorted-set entry.
type ScoredMember struct {
	Member string
	Score  float64
}

// RankStore keeps counters ranked by score.
type RankStore interface {
	Pinger
	// Incr adds by to member's score and trims the set to keep the highest entries.
	Incr(ctx context.Context, key, member string, by float64, keep int) error
	// Top returns up to n members with the highest scores, highest first.
	Top(ctx context.Context, key string, n int) ([]ScoredMember, error)
	Close()
}

// Entry is a key-value pair written to a Cache.
type Entry struct {
	Key   string
	Value []byte
}

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// MGet returns one value per key, nil where the key is missing.
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	// SetMany stores entries that expire after ttl.
	SetMany(ctx context.Context, entries []Entry, ttl time.Duration) error
}
