package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestNewResource(t *testing.T) {
	res := newResource(Config{ServiceName: "talentbridge", ServiceVersion: "1.2.3"})

	got := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value.AsString()
	}
	if got["service.name"] != "talentbridge" || got["service.version"] != "1.2.3" {
		t.Errorf("attributes = %v", got)
	}
}
