package discovery

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/kailas-cloud/talentbridge/internal/domain/auth"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery/filter"
	"github.com/kailas-cloud/talentbridge/internal/domain/record"
)

// --- Mocks ---

type mockRepo struct {
	items      []record.Startup
	total      int
	findErr    error
	candidates []record.Startup
	categories []string
	analytics  discovery.Analytics

	gotScope     discovery.Scope
	gotCandidate discovery.CandidateQuery
	ownedCalls   int
}

func (m *mockRepo) Find(_ context.Context, _ *filter.Filter, s discovery.Scope) ([]record.Startup, error) {
	m.gotScope = s
	return m.items, m.findErr
}

func (m *mockRepo) Count(_ context.Context, _ *filter.Filter, _ discovery.Scope) (int, error) {
	return m.total, nil
}

func (m *mockRepo) FindCandidates(_ context.Context, c discovery.CandidateQuery) ([]record.Startup, error) {
	m.gotCandidate = c
	return m.candidates, nil
}

func (m *mockRepo) OwnedCategories(_ context.Context, _ string) ([]string, error) {
	m.ownedCalls++
	return m.categories, nil
}

func (m *mockRepo) Analytics(_ context.Context) (discovery.Analytics, error) {
	return m.analytics, nil
}

var (
	admin   = auth.Session{UserID: "admin-1", Role: auth.RoleAdmin}
	student = auth.Session{UserID: "stu-1", Role: auth.RoleStudent}
	base    = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func startup(id, category string, views, likes, shares int64, created time.Time) record.Startup {
	return record.Startup{ID: id, Category: category, Views: views, Likes: likes, Shares: shares, CreatedAt: created}
}

// --- Tests ---

func TestDiscover_ScopeByRole(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, Config{})

	if _, err := svc.Discover(context.Background(), student, filter.Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotScope.ViewAll || repo.gotScope.RequesterID != "stu-1" {
		t.Errorf("student scope = %+v", repo.gotScope)
	}

	if _, err := svc.Discover(context.Background(), admin, filter.Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.gotScope.ViewAll {
		t.Error("admin must see every startup")
	}
}

func TestDiscover_TotalNeverBelowSeen(t *testing.T) {
	repo := &mockRepo{
		items: []record.Startup{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		total: 21,
	}
	f := filter.Normalize(url.Values{"offset": {"20"}})

	got, err := New(repo, Config{}).Discover(context.Background(), student, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Total != 23 {
		t.Errorf("total = %d, want 23", got.Total)
	}
	if got.Page.Offset() != 20 || got.Page.Limit() != 20 {
		t.Errorf("page = %d/%d", got.Page.Limit(), got.Page.Offset())
	}
}

func TestDiscover_FilteredTotalMatchesCount(t *testing.T) {
	items := make([]record.Startup, 7)
	for i := range items {
		items[i] = record.Startup{ID: string(rune('a' + i)), Category: "TECH", EmployeeCount: 5 + i}
	}
	repo := &mockRepo{items: items, total: 7}
	f := filter.Normalize(url.Values{
		"category": {"TECH"}, "minEmployees": {"5"}, "maxEmployees": {"50"}, "limit": {"10"},
	})

	got, err := New(repo, Config{}).Discover(context.Background(), auth.Session{}, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Total != 7 || len(got.Items) != 7 {
		t.Errorf("total = %d items = %d, want 7/7", got.Total, len(got.Items))
	}
	if got.Page.Limit() != 10 || got.Page.Offset() != 0 {
		t.Errorf("page = %d/%d", got.Page.Limit(), got.Page.Offset())
	}
}

func TestDiscover_EmptyItemsNotNil(t *testing.T) {
	got, err := New(&mockRepo{}, Config{}).Discover(context.Background(), auth.Session{}, filter.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Items == nil {
		t.Error("items must be an empty slice")
	}
}

func TestDiscover_Error(t *testing.T) {
	repo := &mockRepo{findErr: errors.New("db down")}
	if _, err := New(repo, Config{}).Discover(context.Background(), student, filter.Default()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecommend_CategoryBoostAndExclusion(t *testing.T) {
	repo := &mockRepo{
		categories: []string{"AGRO"},
		candidates: []record.Startup{
			startup("tech-popular", "TECH", 20, 0, 0, base),
			startup("agro-quiet", "AGRO", 5, 0, 0, base),
			startup("agro-newer", "AGRO", 5, 0, 0, base.Add(time.Hour)),
		},
	}
	svc := New(repo, Config{CategoryBoost: 100})

	got, err := svc.Recommend(context.Background(), student, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotCandidate.ExcludeOwner != "stu-1" {
		t.Errorf("requester's own startups must be excluded, got %+v", repo.gotCandidate)
	}
	if repo.gotCandidate.Limit != 10 {
		t.Errorf("pool = %d, want 10", repo.gotCandidate.Limit)
	}
	if c := repo.gotCandidate; len(c.Preferred) != 1 || c.Preferred[0] != "AGRO" || c.Boost != 100 {
		t.Errorf("pool must be ordered by the boosted score, got %+v", c)
	}
	if len(got) != 2 || got[0].Startup.ID != "agro-newer" || got[1].Startup.ID != "agro-quiet" {
		t.Errorf("ranking = %+v", got)
	}
	if got[0].Score != 105 {
		t.Errorf("score = %v, want 105", got[0].Score)
	}
}

func TestRecommend_AnonymousSkipsOwnedCategories(t *testing.T) {
	repo := &mockRepo{}
	if _, err := New(repo, Config{}).Recommend(context.Background(), auth.Session{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.ownedCalls != 0 {
		t.Error("anonymous requests have no owned categories")
	}
	if repo.gotCandidate.Preferred != nil {
		t.Errorf("no boost expected, got %v", repo.gotCandidate.Preferred)
	}
	if repo.gotCandidate.Limit != DefaultRankedLimit*discovery.CandidatePoolFactor {
		t.Errorf("pool = %d", repo.gotCandidate.Limit)
	}
}

func TestTrending_WindowAndWeights(t *testing.T) {
	repo := &mockRepo{
		candidates: []record.Startup{
			startup("viewed", "TECH", 10, 0, 0, base),
			startup("shared", "TECH", 0, 0, 3, base),
			startup("liked", "TECH", 0, 4, 0, base),
		},
	}
	svc := New(repo, Config{})
	svc.now = func() time.Time { return base }

	got, err := svc.Trending(context.Background(), 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotCandidate.Since == nil || !repo.gotCandidate.Since.Equal(base.AddDate(0, 0, -30)) {
		t.Errorf("since = %v", repo.gotCandidate.Since)
	}
	if repo.gotCandidate.Limit != discovery.MaxCandidatePool {
		t.Errorf("pool = %d", repo.gotCandidate.Limit)
	}
	want := []string{"shared", "liked", "viewed"}
	for i, id := range want {
		if got[i].Startup.ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].Startup.ID, id)
		}
	}
}

func TestAnalytics(t *testing.T) {
	repo := &mockRepo{analytics: discovery.Analytics{Totals: discovery.Totals{All: 3}}}
	got, err := New(repo, Config{}).Analytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Totals.All != 3 {
		t.Errorf("total = %d", got.Totals.All)
	}
}
