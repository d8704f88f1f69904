package embcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/db"
	"github.com/kailas-cloud/talentbridge/internal/domain"
)

// mockEmbedder returns {len(text)} for each input and records what it was asked for.
type mockEmbedder struct {
	err   error
	calls [][]string
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls = append(m.calls, texts)
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t))}
	}
	return domain.BatchEmbeddingResult{Embeddings: out, PromptTokens: len(texts), TotalTokens: len(texts)}, nil
}

// mockCache is an in-memory db.Cache.
type mockCache struct {
	data   map[string][]byte
	getErr error
	setErr error
	ttl    time.Duration
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *mockCache) SetMany(_ context.Context, entries []db.Entry, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.ttl = ttl
	for _, e := range entries {
		m.data[e.Key] = e.Value
	}
	return nil
}

func newTestCachedEmbedder(t *testing.T, inner *mockEmbedder, store *mockCache) *CachedEmbedder {
	t.Helper()
	return New(inner, store, Config{KeyPrefix: "tb:", Model: "m1", TTL: time.Hour}, nil, zap.NewNop())
}
