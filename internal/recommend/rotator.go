// Package recommend cycles through the backend's paginated recommendations.
package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// Source serves pages of recommendations. *api.Client implements it.
type Source interface {
	Recommendations(ctx context.Context, page, size int) (models.RecommendationPage, error)
}

// Rotator walks recommendations one at a time, loading the next page when
// the current one runs out and wrapping to the first page after the last.
type Rotator struct {
	source Source
	size   int

	mu     sync.Mutex
	page   models.RecommendationPage
	index  int
	loaded bool
}

func NewRotator(source Source, size int) *Rotator {
	if size <= 0 {
		size = constants.DefaultRecommendationPageSize
	}
	return &Rotator{source: source, size: size}
}

// Current returns the recommendation under the cursor, loading the first
// page if needed. ok is false when there is nothing to recommend.
func (r *Rotator) Current(ctx context.Context) (rec models.Recommendation, ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		if err := r.load(ctx, 0); err != nil {
			return models.Recommendation{}, false, err
		}
	}
	return r.current()
}

// Next advances the cursor and returns the new current recommendation. On a
// fetch failure the cursor does not move.
func (r *Rotator) Next(ctx context.Context) (rec models.Recommendation, ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		if err := r.load(ctx, 0); err != nil {
			return models.Recommendation{}, false, err
		}
		return r.current()
	}

	if r.index+1 < len(r.page.Items) {
		r.index++
		return r.current()
	}

	next := r.page.Page + 1
	if next >= r.page.TotalPages {
		next = 0
	}
	if err := r.load(ctx, next); err != nil {
		return models.Recommendation{}, false, err
	}
	if len(r.page.Items) == 0 && next != 0 {
		if err := r.load(ctx, 0); err != nil {
			return models.Recommendation{}, false, err
		}
	}
	return r.current()
}

// Reset drops the loaded page; the next call starts again from page 0
func (r *Rotator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.page = models.RecommendationPage{}
	r.index = 0
	r.loaded = false
}

// Resume loads page and places the cursor at index. A position that no
// longer exists falls back to the start of page 0.
func (r *Rotator) Resume(ctx context.Context, page, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if page < 0 || index < 0 {
		page, index = 0, 0
	}
	if err := r.load(ctx, page); err != nil {
		return err
	}
	if index < len(r.page.Items) {
		r.index = index
		return nil
	}
	if page == 0 {
		return nil
	}
	return r.load(ctx, 0)
}

// Position reports the loaded page and the cursor within it
func (r *Rotator) Position() (page, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page.Page, r.index
}

// load must be called with mu held
func (r *Rotator) load(ctx context.Context, page int) error {
	p, err := r.source.Recommendations(ctx, page, r.size)
	if err != nil {
		return fmt.Errorf("failed to load recommendations page %d: %w", page, err)
	}
	p.Page = page
	r.page = p
	r.index = 0
	r.loaded = true
	logger.Debug("recommendations loaded", "page", page, "items", len(p.Items), "total_pages", p.TotalPages)
	return nil
}

// current must be called with mu held
func (r *Rotator) current() (models.Recommendation, bool, error) {
	if r.index >= len(r.page.Items) {
		return models.Recommendation{}, false, nil
	}
	return r.page.Items[r.index], true, nil
}
