// Package emotion is the per-date mood record store with its soft-delete
// overlay.
package emotion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// ErrInvalidRecord is returned before any request for a malformed record
var ErrInvalidRecord = fmt.Errorf("%w: emotion record", apperrors.ErrValidation)

// Store reads and writes emotion records through the suppression overlay
type Store struct {
	remote      Source
	source      *SuppressedSource
	suppression Suppression
	concurrency int
}

// Option configures a Store
type Option func(*Store)

// WithConcurrency caps the number of in-flight day lookups in FetchRange
func WithConcurrency(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewStore(remote Source, suppression Suppression, opts ...Option) *Store {
	s := &Store{
		remote:      remote,
		source:      NewSuppressedSource(remote, suppression),
		suppression: suppression,
		concurrency: constants.DefaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateDate checks the YYYY-MM-DD format
func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidRecord, date)
	}
	return nil
}

// ValidateMood checks the 1..5 range
func ValidateMood(mood int) error {
	if mood < constants.MinMoodLevel || mood > constants.MaxMoodLevel {
		return fmt.Errorf("%w: mood level %d, want %d..%d", ErrInvalidRecord, mood, constants.MinMoodLevel, constants.MaxMoodLevel)
	}
	return nil
}

// Get returns the visible record for date. ok is false when the date was
// never recorded or is suppressed.
func (s *Store) Get(ctx context.Context, date string) (rec models.EmotionRecord, ok bool, err error) {
	if err := ValidateDate(date); err != nil {
		return models.EmotionRecord{}, false, err
	}
	rec, err = s.source.GetRecord(ctx, date)
	if err != nil {
		if errors.Is(err, ErrAbsent) {
			return models.EmotionRecord{}, false, nil
		}
		return models.EmotionRecord{}, false, err
	}
	return rec, true, nil
}

// Save upserts the record for date and clears any suppression for it
func (s *Store) Save(ctx context.Context, date string, mood int, keywords []string, memo string) (models.EmotionRecord, error) {
	if err := ValidateDate(date); err != nil {
		return models.EmotionRecord{}, err
	}
	if err := ValidateMood(mood); err != nil {
		return models.EmotionRecord{}, err
	}

	rec := models.EmotionRecord{
		Date:      date,
		MoodLevel: mood,
		Keywords:  cleanKeywords(keywords),
		Memo:      memo,
	}
	saved, err := s.source.PutRecord(ctx, rec)
	if errors.Is(err, ErrStillHidden) {
		return saved, fmt.Errorf("record for %s was saved but could not be un-hidden; run 'moodlit doctor': %w", date, err)
	}
	if err != nil {
		return models.EmotionRecord{}, fmt.Errorf("failed to save record for %s: %w", date, err)
	}
	logger.Info("emotion record saved", "date", date, "mood", mood)
	return saved, nil
}

// FetchRange looks up every day of the month concurrently. A failed day is
// reported as absent; the batch never fails because of one day.
func (s *Store) FetchRange(ctx context.Context, year int, month time.Month) (map[string]models.EmotionRecord, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidRecord, month)
	}

	days := MonthDates(year, month)
	out := make(map[string]models.EmotionRecord, len(days))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, date := range days {
		g.Go(func() error {
			rec, err := s.source.GetRecord(ctx, date)
			if err != nil {
				if !errors.Is(err, ErrAbsent) {
					logger.Debug("day lookup failed", "date", date, "error", err)
				}
				return nil
			}
			mu.Lock()
			out[date] = rec
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete clears the remote record on a best-effort basis and hides the
// date locally. Only a failure to persist the local hide is returned.
func (s *Store) SoftDelete(ctx context.Context, date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}

	cleared := models.EmotionRecord{
		Date:      date,
		MoodLevel: constants.DefaultMoodLevel,
		Keywords:  []string{},
	}
	if _, err := s.remote.PutRecord(ctx, cleared); err != nil {
		logger.Warn("remote clear failed, hiding locally", "date", date, "error", err)
	}

	if err := s.suppression.Hide(date); err != nil {
		return fmt.Errorf("failed to hide %s: %w", date, err)
	}
	logger.Info("emotion record hidden", "date", date)
	return nil
}

// MoodOrDefault returns the mood for date, or the default mood when the
// record is absent or cannot be read.
func (s *Store) MoodOrDefault(ctx context.Context, date string) int {
	rec, ok, err := s.Get(ctx, date)
	if err != nil {
		logger.Debug("mood lookup failed, using default", "date", date, "error", err)
		return constants.DefaultMoodLevel
	}
	if !ok || rec.MoodLevel == 0 {
		return constants.DefaultMoodLevel
	}
	return rec.MoodLevel
}

// MonthDates lists every date of the month in order
func MonthDates(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var out []string
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(constants.DateFormat))
	}
	return out
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
