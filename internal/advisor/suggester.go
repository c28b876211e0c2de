package advisor

import (
	"context"
	"sync"

	"github.com/finsight/finsight/internal/model"
)

// categorySource is the slice of the gateway the Suggester needs.
type categorySource interface {
	SuggestCategory(ctx context.Context, description string) model.Category
}

// Suggester issues asynchronous category suggestions for a form field. Each
// request supersedes the previous one: a result is applied only if the
// description it was requested for is still the latest, so a slow response
// can never clobber a newer edit.
type Suggester struct {
	source     categorySource
	generation uint64
	mu         sync.Mutex
}

// NewSuggester creates a suggester backed by the given gateway.
func NewSuggester(source categorySource) *Suggester {
	return &Suggester{source: source}
}

// Request asks for a suggestion for description and calls apply with the
// result, unless a newer Request has been issued in the meantime. apply runs
// on the suggestion goroutine.
func (s *Suggester) Request(ctx context.Context, description string, apply func(model.Category)) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	go func() {
		category := s.source.SuggestCategory(ctx, description)

		s.mu.Lock()
		stale := gen != s.generation
		s.mu.Unlock()
		if stale {
			return
		}
		apply(category)
	}()
}
