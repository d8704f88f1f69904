// Package embedding adapts embedding providers for the relevance scorer.
package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/domain"
)

// DefaultMaxBatchSize is the largest number of texts sent in one provider request.
const DefaultMaxBatchSize = 256

// ChunkedEmbedder splits large batches into provider-sized requests and logs each call.
// Providers without a native batch call are embedded one text at a time.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai.
type ChunkedEmbedder struct {
	inner    domain.Embedder
	provider string
	model    string
	maxBatch int
	logger   *zap.Logger
}

// NewChunkedEmbedder wraps an embedder. maxBatch <= 0 uses DefaultMaxBatchSize.
func NewChunkedEmbedder(
	inner domain.Embedder, provider, model string,
	maxBatch int, logger *zap.Logger,
) *ChunkedEmbedder {
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatchSize
	}
	return &ChunkedEmbedder{
		inner:    inner,
		provider: provider,
		model:    model,
		maxBatch: maxBatch,
		logger:   logger,
	}
}

// BatchEmbed embeds texts chunk by chunk, preserving input order. The first failing chunk
// aborts the call.
func (p *ChunkedEmbedder) BatchEmbed(
	ctx context.Context, texts []string,
) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	start := time.Now()
	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, 0, len(texts))}

	for offset := 0; offset < len(texts); offset += p.maxBatch {
		chunk := texts[offset:min(offset+p.maxBatch, len(texts))]

		res, err := p.embedInner(ctx, chunk)
		if err != nil {
			p.logger.Error("Batch embedding request failed",
				zap.String("provider", p.provider),
				zap.String("model", p.model),
				zap.Int("chunk_offset", offset),
				zap.Int("chunk_size", len(chunk)),
				zap.Error(err),
			)
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed (chunk %d): %w", offset, err)
		}
		if len(res.Embeddings) != len(chunk) {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("chunk %d: expected %d embeddings, got %d: %w",
				offset, len(chunk), len(res.Embeddings), domain.ErrEmbeddingProviderError)
		}

		out.Embeddings = append(out.Embeddings, res.Embeddings...)
		out.PromptTokens += res.PromptTokens
		out.TotalTokens += res.TotalTokens
	}

	p.logger.Debug("Batch embedding completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("batch_size", len(texts)),
		zap.Int("prompt_tokens", out.PromptTokens),
		zap.Int("total_tokens", out.TotalTokens),
	)

	return out, nil
}

func (p *ChunkedEmbedder) embedInner(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := p.inner.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts) //nolint:wrapcheck // wrapped by caller
	}
	return domain.BatchFallback(ctx, p.inner, texts)
}
