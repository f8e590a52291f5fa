package emotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// ErrAbsent means the date has no visible record
var ErrAbsent = errors.New("no record for date")

// ErrStillHidden means the remote write succeeded but the date could not be
// removed from the suppression set
var ErrStillHidden = errors.New("record saved but still hidden locally")

// Source is a remote-backed record accessor. *api.Client implements it.
type Source interface {
	GetRecord(ctx context.Context, date string) (models.EmotionRecord, error)
	PutRecord(ctx context.Context, rec models.EmotionRecord) (models.EmotionRecord, error)
}

// SuppressedSource hides suppressed dates from the wrapped source. The
// backend has no delete endpoint; once it does, this layer can be dropped.
type SuppressedSource struct {
	next        Source
	suppression Suppression
}

func NewSuppressedSource(next Source, suppression Suppression) *SuppressedSource {
	return &SuppressedSource{next: next, suppression: suppression}
}

// GetRecord returns ErrAbsent for hidden dates without asking the remote
func (s *SuppressedSource) GetRecord(ctx context.Context, date string) (models.EmotionRecord, error) {
	hidden, err := s.suppression.IsHidden(date)
	if err != nil {
		return models.EmotionRecord{}, err
	}
	if hidden {
		return models.EmotionRecord{}, fmt.Errorf("%w: %s is suppressed", ErrAbsent, date)
	}

	rec, err := s.next.GetRecord(ctx, date)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return models.EmotionRecord{}, fmt.Errorf("%w: %s", ErrAbsent, date)
		}
		return models.EmotionRecord{}, err
	}
	if rec.IsEmpty() {
		return models.EmotionRecord{}, fmt.Errorf("%w: %s", ErrAbsent, date)
	}
	if rec.Date == "" {
		rec.Date = date
	}
	return rec, nil
}

// PutRecord writes through and makes the date visible again
func (s *SuppressedSource) PutRecord(ctx context.Context, rec models.EmotionRecord) (models.EmotionRecord, error) {
	saved, err := s.next.PutRecord(ctx, rec)
	if err != nil {
		return models.EmotionRecord{}, err
	}
	if err := s.suppression.Unhide(rec.Date); err != nil {
		logger.Warn("failed to clear suppression after save", "date", rec.Date, "error", err)
		return saved, fmt.Errorf("%w: %s: %v", ErrStillHidden, rec.Date, err)
	}
	return saved, nil
}
