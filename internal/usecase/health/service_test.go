package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}).With(Redis, &mockPinger{}).With(Storage, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{Database, Redis, Storage} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_DatabaseDownIsUnhealthy(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}).With(Redis, &mockPinger{err: errors.New("down")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[Database] != CheckError || r.Checks[Redis] != CheckError {
		t.Errorf("checks = %v", r.Checks)
	}
}

func TestCheck_OptionalDownIsDegraded(t *testing.T) {
	svc := New(&mockPinger{}).With(Storage, PingerFunc(func(context.Context) error { return errors.New("403") }))
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[Storage] != CheckError {
		t.Errorf("expected storage %q, got %q", CheckError, r.Checks[Storage])
	}
}

func TestCheck_NilOptionalSkipped(t *testing.T) {
	svc := New(&mockPinger{}).With(Embedding, nil)
	r := svc.Check(context.Background())

	if _, ok := r.Checks[Embedding]; ok {
		t.Error("unconfigured component must not be reported")
	}
	if len(r.Checks) != 1 {
		t.Errorf("checks = %v", r.Checks)
	}
}
