package discovery

import (
	"testing"
	"time"

	"github.com/kailas-cloud/talentbridge/internal/domain/record"
)

func TestWeights_Score(t *testing.T) {
	s := &record.Startup{Views: 10, Likes: 2, Shares: 1}
	if got := DefaultWeights().Score(s); got != 21 {
		t.Errorf("score = %v, want 21", got)
	}
	custom := Weights{Views: 0, Likes: 1, Shares: 0}
	if got := custom.Score(s); got != 2 {
		t.Errorf("custom score = %v, want 2", got)
	}
}

func TestRank_TieBreaks(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := old.Add(time.Hour)
	items := []Scored{
		{Startup: record.Startup{ID: "c", CreatedAt: old}, Score: 5},
		{Startup: record.Startup{ID: "b", CreatedAt: old}, Score: 5},
		{Startup: record.Startup{ID: "a", CreatedAt: newer}, Score: 5},
		{Startup: record.Startup{ID: "z", CreatedAt: old}, Score: 9},
	}

	got := Rank(items, 10)
	want := []string{"z", "a", "b", "c"}
	for i, id := range want {
		if got[i].Startup.ID != id {
			t.Fatalf("position %d = %s, want %s (full: %v)", i, got[i].Startup.ID, id, ids(got))
		}
	}
}

func TestRank_Truncates(t *testing.T) {
	items := []Scored{{Score: 1}, {Score: 2}, {Score: 3}}
	if got := Rank(items, 2); len(got) != 2 || got[0].Score != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestPoolSize(t *testing.T) {
	if PoolSize(10) != 50 {
		t.Errorf("PoolSize(10) = %d", PoolSize(10))
	}
	if PoolSize(100) != MaxCandidatePool {
		t.Errorf("PoolSize(100) = %d", PoolSize(100))
	}
}

func TestTrendingSince(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	if got := TrendingSince(now, 0); !got.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("default window start = %v", got)
	}
	if got := TrendingSince(now, 7); !got.Equal(time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("7-day window start = %v", got)
	}
}

func ids(items []Scored) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Startup.ID
	}
	return out
}
