package emotion

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/storage"
)

// Suppression is the set of dates whose remote record is treated as absent
type Suppression interface {
	Hide(date string) error
	Unhide(date string) error
	IsHidden(date string) (bool, error)
}

// PersistentSuppression keeps the set as a JSON array of dates under
// constants.KeyDeletedEmotionDates in the local store. The set is read
// lazily and written through on every change.
type PersistentSuppression struct {
	store storage.Provider

	mu     sync.Mutex
	dates  map[string]struct{}
	loaded bool
}

func NewPersistentSuppression(store storage.Provider) *PersistentSuppression {
	return &PersistentSuppression{store: store}
}

func (p *PersistentSuppression) Hide(date string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(); err != nil {
		return err
	}
	if _, ok := p.dates[date]; ok {
		return nil
	}
	p.dates[date] = struct{}{}
	if err := p.save(); err != nil {
		delete(p.dates, date)
		return err
	}
	return nil
}

func (p *PersistentSuppression) Unhide(date string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(); err != nil {
		return err
	}
	if _, ok := p.dates[date]; !ok {
		return nil
	}
	delete(p.dates, date)
	if err := p.save(); err != nil {
		p.dates[date] = struct{}{}
		return err
	}
	return nil
}

func (p *PersistentSuppression) IsHidden(date string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(); err != nil {
		return false, err
	}
	_, ok := p.dates[date]
	return ok, nil
}

// Dates returns the hidden dates in ascending order
func (p *PersistentSuppression) Dates() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(); err != nil {
		return nil, err
	}
	return p.sorted(), nil
}

func (p *PersistentSuppression) load() error {
	if p.loaded {
		return nil
	}
	p.dates = map[string]struct{}{}

	raw, err := p.store.GetValue(constants.KeyDeletedEmotionDates)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			p.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read suppressed dates: %w", err)
	}

	var list []string
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return fmt.Errorf("failed to parse suppressed dates: %w", err)
		}
	}
	for _, d := range list {
		p.dates[d] = struct{}{}
	}
	p.loaded = true
	return nil
}

func (p *PersistentSuppression) save() error {
	data, err := json.Marshal(p.sorted())
	if err != nil {
		return fmt.Errorf("failed to encode suppressed dates: %w", err)
	}
	if err := p.store.SetValue(constants.KeyDeletedEmotionDates, string(data)); err != nil {
		return fmt.Errorf("failed to persist suppressed dates: %w", err)
	}
	return nil
}

func (p *PersistentSuppression) sorted() []string {
	out := make([]string, 0, len(p.dates))
	for d := range p.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
