// Package redis implements db.RankStore via rueidis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/talentbridge/internal/db"
)

// Compile-time check: Store implements db.RankStore.
var _ db.RankStore = (*Store)(nil)

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Store implements db.RankStore via rueidis for Redis and Valkey.
type Store struct {
	client rueidis.Client
}

// NewStore creates a Redis store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// NewStoreForTest creates a Store with the provided rueidis client (test-only).
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for redis: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Incr adds by to member's score and, when keep > 0, trims the set to the keep highest members.
// Both commands go out in a single round trip.
func (s *Store) Incr(ctx context.Context, key, member string, by float64, keep int) error {
	cmds := rueidis.Commands{
		s.client.B().Zincrby().Key(key).Increment(by).Member(member).Build(),
	}
	if keep > 0 {
		// Ranks are ascending: drop everything below the top `keep`.
		cmds = append(cmds, s.client.B().Zremrangebyrank().Key(key).Start(0).Stop(int64(-keep-1)).Build())
	}

	for _, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpZIncrBy, Err: err}
		}
	}
	return nil
}

// Top returns up to n members with the highest scores, highest first.
func (s *Store) Top(ctx context.Context, key string, n int) ([]db.ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}
	cmd := s.client.B().Zrevrange().Key(key).Start(0).Stop(int64(n - 1)).Withscores().Build()
	scores, err := s.client.Do(ctx, cmd).AsZScores()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, &db.Error{Op: db.OpZRevRange, Err: err}
	}

	out := make([]db.ScoredMember, len(scores))
	for i, z := range scores {
		out[i] = db.ScoredMember{Member: z.Member, Score: z.Score}
	}
	return out, nil
}
