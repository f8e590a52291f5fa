package mission

import "github.com/julianstephens/moodlit/internal/models"

const (
	baseThreshold     = 100
	thresholdPerLevel = 50
)

// LevelThreshold is the experience needed to leave level
func LevelThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	return baseThreshold + (level-1)*thresholdPerLevel
}

// ApplyReward adds reward experience and carries overflow into levels. This
// is the backend's arithmetic; the client only reflects what the server
// reports, and the mock backend uses it directly.
func ApplyReward(p models.Progress, reward int) (models.Progress, bool) {
	if p.Level < 1 {
		p.Level = 1
	}
	if reward > 0 {
		p.Experience += reward
	}

	levelUp := false
	for p.Experience >= LevelThreshold(p.Level) {
		p.Experience -= LevelThreshold(p.Level)
		p.Level++
		levelUp = true
	}
	return p, levelUp
}
