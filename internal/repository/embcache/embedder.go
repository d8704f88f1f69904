// Package embcache caches text embeddings in a key-value store so repeated result titles
// are not re-embedded on every search.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/db"
	"github.com/kailas-cloud/talentbridge/internal/domain"
)

// Config holds cache key namespacing and entry lifetime.
type Config struct {
	// KeyPrefix is prepended to every cache key.
	KeyPrefix string
	// Model scopes entries so a model change never serves stale vectors.
	Model string
	TTL   time.Duration
}

// CachedEmbedder caches embeddings in a key-value store.
type CachedEmbedder struct {
	inner      domain.BatchEmbedder
	store      db.Cache
	cfg        Config
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.BatchEmbedder,
	store db.Cache,
	cfg Config,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedEmbedder {
	return &CachedEmbedder{
		inner:      inner,
		store:      store,
		cfg:        cfg,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// BatchEmbed serves cached vectors and embeds only the misses, in one inner call.
// Token usage counts the misses only. Cache failures degrade to a full inner call.
func (c *CachedEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = c.cacheKey(t)
	}

	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	c.fill(ctx, keys, out.Embeddings)

	var (
		missIdx   []int
		missTexts []string
	)
	for i, vec := range out.Embeddings {
		if vec == nil {
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, texts[i])
		}
	}
	c.incCache("hit", len(texts)-len(missIdx))
	c.incCache("miss", len(missIdx))
	if len(missIdx) == 0 {
		return out, nil
	}

	res, err := c.inner.BatchEmbed(ctx, missTexts)
	if err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("embed misses: %w", err)
	}
	if len(res.Embeddings) != len(missTexts) {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("expected %d embeddings, got %d: %w",
			len(missTexts), len(res.Embeddings), domain.ErrEmbeddingProviderError)
	}

	entries := make([]db.Entry, len(missIdx))
	for j, i := range missIdx {
		out.Embeddings[i] = res.Embeddings[j]
		entries[j] = db.Entry{Key: keys[i], Value: vectorToCacheBytes(res.Embeddings[j])}
	}
	out.PromptTokens = res.PromptTokens
	out.TotalTokens = res.TotalTokens

	if err := c.store.SetMany(ctx, entries, c.cfg.TTL); err != nil {
		c.logger.Warn("Failed to cache embeddings", zap.Int("count", len(entries)), zap.Error(err))
	}
	return out, nil
}

// fill copies cached vectors into dst. Unreadable entries stay nil and are re-embedded.
func (c *CachedEmbedder) fill(ctx context.Context, keys []string, dst [][]float32) {
	vals, err := c.store.MGet(ctx, keys)
	if err != nil {
		c.logger.Warn("Failed to read cached embeddings", zap.Error(err))
		return
	}
	for i, data := range vals {
		if i >= len(dst) || len(data) == 0 {
			continue
		}
		vec, err := bytesToVector(data)
		if err != nil {
			c.logger.Warn("Failed to parse cached embedding", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		dst[i] = vec
	}
}

func (c *CachedEmbedder) incCache(result string, n int) {
	if c.cacheTotal != nil && n > 0 {
		c.cacheTotal.WithLabelValues(result).Add(float64(n))
	}
}

func (c *CachedEmbedder) cacheKey(text string) string {
	h := sha256.Sum256([]byte(c.cfg.Model + "\x00" + text))
	return c.cfg.KeyPrefix + "emb_cache:" + hex.EncodeToString(h[:])
}

func vectorToCacheBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
