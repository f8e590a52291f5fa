package mission

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// RoadmapRemote is the backend surface for roadmap missions
type RoadmapRemote interface {
	RoadmapMissions(ctx context.Context) ([]models.RoadmapMission, error)
	SubmitReview(ctx context.Context, sub models.ReviewSubmission) (models.RoadmapMission, error)
}

// RoadmapBoard tracks roadmap missions. Only none -> pending happens here;
// approval arrives through Refresh.
type RoadmapBoard struct {
	remote RoadmapRemote

	mu       sync.Mutex
	missions []models.RoadmapMission
}

func NewRoadmapBoard(remote RoadmapRemote) *RoadmapBoard {
	return &RoadmapBoard{remote: remote}
}

// ValidateReview checks review text length and photo count
func ValidateReview(text string, photos []models.Photo) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < constants.MinReviewLength {
		return fmt.Errorf("%w: review needs at least %d characters, has %d", apperrors.ErrValidation, constants.MinReviewLength, n)
	}
	if len(photos) < constants.MinReviewPhotos {
		return fmt.Errorf("%w: review needs at least %d photo", apperrors.ErrValidation, constants.MinReviewPhotos)
	}
	return nil
}

// CanSubmit reports whether a review would pass the guard
func CanSubmit(text string, photos []models.Photo) bool {
	return ValidateReview(text, photos) == nil
}

func (b *RoadmapBoard) Refresh(ctx context.Context) ([]models.RoadmapMission, error) {
	missions, err := b.remote.RoadmapMissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roadmap: %w", err)
	}
	b.mu.Lock()
	b.missions = append([]models.RoadmapMission(nil), missions...)
	b.mu.Unlock()
	return b.Missions(), nil
}

func (b *RoadmapBoard) Missions() []models.RoadmapMission {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.RoadmapMission, len(b.missions))
	copy(out, b.missions)
	return out
}

// SubmitReview moves a mission from none to pending. A review that fails the
// guard, or a mission that is not in none, is a no-op: submitted is false
// and no request is sent.
func (b *RoadmapBoard) SubmitReview(ctx context.Context, id int64, text string, photos []models.Photo) (submitted bool, err error) {
	if !CanSubmit(text, photos) {
		return false, nil
	}

	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return false, fmt.Errorf("%w: roadmap mission %d", ErrMissionNotFound, id)
	}
	status := b.missions[idx].Status
	b.mu.Unlock()

	if status != models.RoadmapNone {
		return false, nil
	}

	res, err := b.remote.SubmitReview(ctx, models.ReviewSubmission{
		MissionID: id,
		Review:    strings.TrimSpace(text),
		Photos:    photos,
	})
	if err != nil {
		return false, fmt.Errorf("failed to submit review for %d: %w", id, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexOf(id); i >= 0 {
		next := models.RoadmapPending
		if res.ID == id && res.Status == models.RoadmapApproved {
			next = models.RoadmapApproved
		}
		b.missions[i].Status = next
	}
	logger.Info("roadmap review submitted", "id", id, "photos", len(photos))
	return true, nil
}

// indexOf must be called with mu held
func (b *RoadmapBoard) indexOf(id int64) int {
	for i, m := range b.missions {
		if m.ID == id {
			return i
		}
	}
	return -1
}
