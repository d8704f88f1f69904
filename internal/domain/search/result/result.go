package result

import "github.com/kailas-cloud/talentbridge/internal/domain/search/kind"

// Result is a single global search hit, tagged with its source entity type.
type Result struct {
	id       string
	kind     kind.Kind
	title    string
	subtitle string
	url      string
	score    float64
	record   any
}

// New creates a search result. record is the raw persisted record the hit was built from.
func New(id string, k kind.Kind, title, subtitle, url string, record any) Result {
	return Result{id: id, kind: k, title: title, subtitle: subtitle, url: url, record: record}
}

// ID returns the entity identifier.
func (r *Result) ID() string { return r.id }

// Kind returns the source entity type.
func (r *Result) Kind() kind.Kind { return r.kind }

// Title returns the display title.
func (r *Result) Title() string { return r.title }

// Subtitle returns the secondary display line.
func (r *Result) Subtitle() string { return r.subtitle }

// URL returns the client route of the entity.
func (r *Result) URL() string { return r.url }

// Score returns the relevance score (0 when no scorer ran).
func (r *Result) Score() float64 { return r.score }

// WithScore returns a copy of r carrying score.
func (r Result) WithScore(score float64) Result {
	r.score = score
	return r
}

// Record returns the raw persisted record.
func (r *Result) Record() any { return r.record }

// Suggestion is an autocomplete entry.
type Suggestion struct {
	ID   string    `db:"id"`
	Text string    `db:"text"`
	Kind kind.Kind `db:"kind"`
}

// Popular is a frequently searched query.
type Popular struct {
	Query string
	Count int64
}
