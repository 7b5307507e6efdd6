// Package dedupe drops repeated prospect identities from a roster load.
package dedupe

import (
	"context"
	"sync"

	"github.com/okian/prospectboard/internal/domain/model"
)

// Deduper records seen identities so each one is kept at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool
}

// Identity is the default normalizer. See model.Identity.
func Identity(name string) string { return model.Identity(name) }

type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	expected int
}

// NewInMemoryDeduper creates an unbounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		expected: 16,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.expected)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	key := Identity(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Roster keeps the first prospect for each identity and returns the rest as
// dropped, both in source order. A fresh deduper is used per call.
func Roster(ctx context.Context, in model.Roster, opts ...Option) (kept, dropped model.Roster) {
	d := NewInMemoryDeduper(append([]Option{WithExpectedSize(len(in))}, opts...)...)
	kept = make(model.Roster, 0, len(in))
	for _, p := range in {
		if d.SeenAndRecord(ctx, p.Name) {
			dropped = append(dropped, p)
			continue
		}
		kept = append(kept, p)
	}
	return kept, dropped
}
