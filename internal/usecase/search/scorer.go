package search

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/kailas-cloud/talentbridge/internal/domain"
	"github.com/kailas-cloud/talentbridge/internal/domain/search/result"
)

// Scorer names accepted in configuration.
const (
	ScorerPriority  = "priority"
	ScorerLexical   = "lexical"
	ScorerEmbedding = "embedding"
)

// NewScorer resolves a configured scorer name. The priority scorer is represented by nil:
// results keep their type priority order.
func NewScorer(name string, embedder domain.BatchEmbedder) (Scorer, error) {
	switch name {
	case "", ScorerPriority:
		return nil, nil
	case ScorerLexical:
		return LexicalScorer{}, nil
	case ScorerEmbedding:
		if embedder == nil {
			return nil, fmt.Errorf("%s scorer requires an embedding provider", ScorerEmbedding)
		}
		return &EmbeddingScorer{embedder: embedder}, nil
	}
	return nil, fmt.Errorf("unknown scorer %q", name)
}

// LexicalScorer scores results by the share of query tokens found in the title (weight 2)
// and subtitle (weight 1).
type LexicalScorer struct{}

// Name implements Scorer.
func (LexicalScorer) Name() string { return ScorerLexical }

// Score implements Scorer.
func (LexicalScorer) Score(_ context.Context, query string, results []result.Result) ([]result.Result, error) {
	terms := tokenize(query)
	out := make([]result.Result, len(results))
	for i, r := range results {
		if len(terms) == 0 {
			out[i] = r.WithScore(0)
			continue
		}
		title := tokenSet(r.Title())
		subtitle := tokenSet(r.Subtitle())
		var hits float64
		for _, t := range terms {
			if title[t] {
				hits += 2
			}
			if subtitle[t] {
				hits++
			}
		}
		out[i] = r.WithScore(hits / float64(3*len(terms)))
	}
	return out, nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tokenize(s) {
		set[t] = true
	}
	return set
}

// EmbeddingScorer scores results by cosine similarity between the query embedding and
// each result's title and subtitle embedding. One provider call covers the whole page.
type EmbeddingScorer struct {
	embedder domain.BatchEmbedder
}

// Name implements Scorer.
func (*EmbeddingScorer) Name() string { return ScorerEmbedding }

// Score implements Scorer.
func (s *EmbeddingScorer) Score(ctx context.Context, query string, results []result.Result) ([]result.Result, error) {
	texts := make([]string, 0, len(results)+1)
	texts = append(texts, query)
	for _, r := range results {
		texts = append(texts, strings.TrimSpace(r.Title()+" "+r.Subtitle()))
	}

	emb, err := s.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed results: %w", err)
	}
	if len(emb.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d: %w",
			len(texts), len(emb.Embeddings), domain.ErrEmbeddingProviderError)
	}

	q := emb.Embeddings[0]
	out := make([]result.Result, len(results))
	for i, r := range results {
		out[i] = r.WithScore(cosine(q, emb.Embeddings[i+1]))
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
