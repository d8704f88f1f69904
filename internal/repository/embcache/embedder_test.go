package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/domain"
)

func TestBatchEmbed_ColdThenWarm(t *testing.T) {
	inner := &mockEmbedder{}
	store := newMockCache()
	ce := newTestCachedEmbedder(t, inner, store)
	ctx := context.Background()

	first, err := ce.BatchEmbed(ctx, []string{"go", "rust"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalTokens != 2 || first.Embeddings[1][0] != 4 {
		t.Fatalf("unexpected result: %+v", first)
	}
	if store.ttl != time.Hour || len(store.data) != 2 {
		t.Fatalf("expected 2 entries with 1h ttl, got %d / %v", len(store.data), store.ttl)
	}

	second, err := ce.BatchEmbed(ctx, []string{"rust", "python", "go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.calls) != 2 || len(inner.calls[1]) != 1 || inner.calls[1][0] != "python" {
		t.Fatalf("expected only the miss to be embedded, calls: %v", inner.calls)
	}
	want := []float32{4, 6, 2}
	for i, w := range want {
		if second.Embeddings[i][0] != w {
			t.Errorf("embedding[%d] = %v, want %v", i, second.Embeddings[i], w)
		}
	}
	if second.TotalTokens != 1 {
		t.Errorf("TotalTokens = %d, want 1 (misses only)", second.TotalTokens)
	}
}

func TestBatchEmbed_AllHitsSkipsProvider(t *testing.T) {
	inner := &mockEmbedder{}
	store := newMockCache()
	ce := newTestCachedEmbedder(t, inner, store)
	store.data[ce.cacheKey("go")] = vectorToCacheBytes([]float32{0.5, 0.25})

	res, err := ce.BatchEmbed(context.Background(), []string{"go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.calls) != 0 {
		t.Fatalf("provider must not be called, calls: %v", inner.calls)
	}
	if res.Embeddings[0][1] != 0.25 || res.TotalTokens != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestBatchEmbed_CacheReadFailureFallsThrough(t *testing.T) {
	inner := &mockEmbedder{}
	store := newMockCache()
	store.getErr = errors.New("connection refused")
	ce := newTestCachedEmbedder(t, inner, store)

	res, err := ce.BatchEmbed(context.Background(), []string{"a", "bb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 2 || len(inner.calls[0]) != 2 {
		t.Fatalf("expected full inner call, got %+v / %v", res, inner.calls)
	}
}

func TestBatchEmbed_CacheWriteFailureIgnored(t *testing.T) {
	store := newMockCache()
	store.setErr = errors.New("OOM")
	ce := newTestCachedEmbedder(t, &mockEmbedder{}, store)

	if _, err := ce.BatchEmbed(context.Background(), []string{"a"}); err != nil {
		t.Fatalf("write failure must not fail the call: %v", err)
	}
}

func TestBatchEmbed_CorruptEntryReEmbedded(t *testing.T) {
	inner := &mockEmbedder{}
	store := newMockCache()
	ce := newTestCachedEmbedder(t, inner, store)
	store.data[ce.cacheKey("abc")] = []byte{1, 2, 3}

	res, err := ce.BatchEmbed(context.Background(), []string{"abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.calls) != 1 || res.Embeddings[0][0] != 3 {
		t.Fatalf("expected re-embed, got %+v / %v", res, inner.calls)
	}
}

func TestBatchEmbed_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("provider down")}
	ce := newTestCachedEmbedder(t, inner, newMockCache())

	if _, err := ce.BatchEmbed(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestBatchEmbed_Empty(t *testing.T) {
	inner := &mockEmbedder{}
	ce := newTestCachedEmbedder(t, inner, newMockCache())

	res, err := ce.BatchEmbed(context.Background(), nil)
	if err != nil || res.Embeddings != nil || len(inner.calls) != 0 {
		t.Fatalf("expected no-op, got %+v, %v", res, err)
	}
}

func TestBatchEmbed_ShortProviderResponse(t *testing.T) {
	ce := New(shortEmbedder{}, newMockCache(), Config{}, nil, zap.NewNop())

	_, err := ce.BatchEmbed(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

type shortEmbedder struct{}

func (shortEmbedder) BatchEmbed(context.Context, []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchEmbeddingResult{Embeddings: [][]float32{{1}}}, nil
}

func TestBatchEmbed_CacheMetrics(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	store := newMockCache()
	ce := New(&mockEmbedder{}, store, Config{Model: "m"}, counter, zap.NewNop())
	ctx := context.Background()

	_, _ = ce.BatchEmbed(ctx, []string{"a", "b"})
	_, _ = ce.BatchEmbed(ctx, []string{"a", "c"})

	if got := testutil.ToFloat64(counter.WithLabelValues("hit")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 3 {
		t.Errorf("misses = %v, want 3", got)
	}
}

func TestCacheKey_ScopedByModel(t *testing.T) {
	a := New(nil, nil, Config{KeyPrefix: "tb:", Model: "m1"}, nil, zap.NewNop())
	b := New(nil, nil, Config{KeyPrefix: "tb:", Model: "m2"}, nil, zap.NewNop())

	ka, kb := a.cacheKey("golang"), b.cacheKey("golang")
	if ka == kb {
		t.Fatal("keys must differ across models")
	}
	if !strings.HasPrefix(ka, "tb:emb_cache:") {
		t.Errorf("unexpected key %q", ka)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0, -1.5, 3.25}
	out, err := bytesToVector(vectorToCacheBytes(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("got %v, want %v", out, in)
		}
	}
	if _, err := bytesToVector([]byte{1}); err == nil {
		t.Error("expected error for truncated data")
	}
}
