// Package mission holds daily and roadmap mission state.
package mission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// ErrMissionNotFound is returned for an id that is not on the board
var ErrMissionNotFound = errors.New("mission not found")

// DailyRemote is the backend surface for daily missions
type DailyRemote interface {
	TodayMissions(ctx context.Context) ([]models.Mission, error)
	GenerateDailyMissions(ctx context.Context) ([]models.Mission, error)
	CompleteMission(ctx context.Context, id int64) (models.CompletionResult, error)
}

// DailyBoard is today's mission list plus the character progress the server
// last reported
type DailyBoard struct {
	remote DailyRemote

	mu       sync.Mutex
	missions []models.Mission
	progress models.Progress
}

func NewDailyBoard(remote DailyRemote) *DailyBoard {
	return &DailyBoard{remote: remote}
}

// Refresh replaces the board with today's missions
func (b *DailyBoard) Refresh(ctx context.Context) ([]models.Mission, error) {
	missions, err := b.remote.TodayMissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's missions: %w", err)
	}
	b.set(missions)
	return b.Missions(), nil
}

// Generate asks the backend for today's missions and replaces the board
func (b *DailyBoard) Generate(ctx context.Context) ([]models.Mission, error) {
	missions, err := b.remote.GenerateDailyMissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate missions: %w", err)
	}
	b.set(missions)
	logger.Info("daily missions generated", "count", len(missions))
	return b.Missions(), nil
}

// Seed loads missions and progress already fetched elsewhere (the dashboard)
func (b *DailyBoard) Seed(missions []models.Mission, progress models.Progress) {
	b.set(missions)
	b.mu.Lock()
	b.progress = progress
	b.mu.Unlock()
}

// Missions returns a copy of the board
func (b *DailyBoard) Missions() []models.Mission {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Mission, len(b.missions))
	copy(out, b.missions)
	return out
}

func (b *DailyBoard) Progress() models.Progress {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

// Complete moves a pending mission to COMPLETED. A mission that is already
// completed is left alone and no request is sent; applied reports whether the
// backend was asked.
func (b *DailyBoard) Complete(ctx context.Context, id int64) (res models.CompletionResult, applied bool, err error) {
	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return models.CompletionResult{}, false, fmt.Errorf("%w: %d", ErrMissionNotFound, id)
	}
	current := b.missions[idx]
	progress := b.progress
	b.mu.Unlock()

	if current.IsCompleted() {
		return models.CompletionResult{Mission: current, Progress: progress}, false, nil
	}

	res, err = b.remote.CompleteMission(ctx, id)
	if err != nil {
		return models.CompletionResult{}, false, fmt.Errorf("failed to complete mission %d: %w", id, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// the server's copy wins; it may silently refuse the completion
	updated := current
	updated.Status = models.MissionCompleted
	if res.Mission.ID == id && res.Mission.Status != "" {
		updated = res.Mission
	}
	if i := b.indexOf(id); i >= 0 {
		b.missions[i] = updated
	}
	b.progress = res.Progress
	res.Mission = updated

	logger.Info("mission completed", "id", id, "level", res.Progress.Level, "experience", res.Progress.Experience, "level_up", res.LevelUp)
	return res, true, nil
}

func (b *DailyBoard) set(missions []models.Mission) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.missions = append(b.missions[:0:0], missions...)
}

// indexOf must be called with mu held
func (b *DailyBoard) indexOf(id int64) int {
	for i, m := range b.missions {
		if m.ID == id {
			return i
		}
	}
	return -1
}
