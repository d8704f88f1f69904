// Package certificate serves the institution logos embedded into generated certificates.
package certificate

import (
	"context"
	"encoding/base64"
	"fmt"
	"maps"
	"mime"
	"path"
	"slices"
	"sync"

	"github.com/kailas-cloud/talentbridge/internal/storage/s3"
)

const fallbackContentType = "image/png"

// ObjectGetter downloads stored objects.
type ObjectGetter interface {
	Get(ctx context.Context, key string) (s3.Object, error)
}

// Logos loads every configured logo once and serves it as a data URI for the life of the process.
// Only a successful load is kept; a failed one is retried by the next caller.
type Logos struct {
	store ObjectGetter
	keys  map[string]string

	mu    sync.Mutex
	logos map[string]string
}

// NewLogos creates a lazy logo set. keys maps a logo name to its object key.
func NewLogos(store ObjectGetter, keys map[string]string) *Logos {
	return &Logos{store: store, keys: maps.Clone(keys)}
}

// Get returns logo name to data URI. Concurrent callers wait for one load; once it
// succeeds, later calls share the result.
func (l *Logos) Get(ctx context.Context) (map[string]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logos == nil {
		// The load outlives the request that happens to trigger it.
		logos, err := l.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.logos = logos
	}
	return maps.Clone(l.logos), nil
}

func (l *Logos) load(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(l.keys))
	for _, name := range slices.Sorted(maps.Keys(l.keys)) {
		key := l.keys[name]
		obj, err := l.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load logo %s: %w", name, err)
		}
		out[name] = dataURI(obj, key)
	}
	return out, nil
}

func dataURI(obj s3.Object, key string) string {
	ct := obj.ContentType
	if ct == "" || ct == "binary/octet-stream" || ct == "application/octet-stream" {
		ct = mime.TypeByExtension(path.Ext(key))
	}
	if ct == "" {
		ct = fallbackContentType
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(obj.Data)
}
