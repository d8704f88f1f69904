package domain

import (
	"context"
	"errors"
	"testing"
)

type stubEmbedder struct {
	calls []string
	err   error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.calls = append(s.calls, text)
	if s.err != nil {
		return EmbeddingResult{}, s.err
	}
	return EmbeddingResult{Embedding: []float32{float32(len(text))}, PromptTokens: 2, TotalTokens: 3}, nil
}

func TestBatchFallback_PreservesOrderAndSumsUsage(t *testing.T) {
	inner := &stubEmbedder{}

	res, err := BatchFallback(context.Background(), inner, []string{"go", "python", "sql"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 3 || res.Embeddings[1][0] != 6 {
		t.Errorf("embeddings = %v", res.Embeddings)
	}
	if res.PromptTokens != 6 || res.TotalTokens != 9 {
		t.Errorf("usage = %d/%d", res.PromptTokens, res.TotalTokens)
	}
}

func TestBatchFallback_StopsOnError(t *testing.T) {
	inner := &stubEmbedder{err: errors.New("provider down")}

	_, err := BatchFallback(context.Background(), inner, []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(inner.calls) != 1 {
		t.Errorf("expected to stop after first failure, got %d calls", len(inner.calls))
	}
}

func TestNewInvalidParams(t *testing.T) {
	if NewInvalidParams(nil) != nil {
		t.Error("no params must yield nil")
	}
	err := NewInvalidParams([]string{"minRevenue", "sortBy"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err.Error() != "invalid parameter(s): minRevenue, sortBy" {
		t.Errorf("message = %q", err.Error())
	}
}
