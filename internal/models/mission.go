package models

import "time"

// MissionStatus is the lifecycle of a daily mission
type MissionStatus string

const (
	MissionPending   MissionStatus = "PENDING"
	MissionCompleted MissionStatus = "COMPLETED"
)

// Mission is a same-day task that awards experience on completion
type Mission struct {
	ID      int64         `json:"missionId"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Theme   string        `json:"theme,omitempty"`
	Theory  string        `json:"theory,omitempty"`
	Reward  int           `json:"reward"`
	Status  MissionStatus `json:"status"`
}

// IsCompleted reports whether the mission reached its terminal state
func (m Mission) IsCompleted() bool {
	return m.Status == MissionCompleted
}

// Progress is the character's experience and level as reported by the server
type Progress struct {
	Level      int `json:"level"`
	Experience int `json:"experience"`
}

// CompletionResult is the backend answer to a mission completion
type CompletionResult struct {
	Mission  Mission  `json:"mission"`
	Progress Progress `json:"progress"`
	LevelUp  bool     `json:"levelUp"`
}

// RoadmapStatus is the lifecycle of a proof-gated roadmap mission.
// The zero value is "none".
type RoadmapStatus string

const (
	RoadmapNone     RoadmapStatus = ""
	RoadmapPending  RoadmapStatus = "pending"
	RoadmapApproved RoadmapStatus = "approved"
)

// String renders the zero value as "none"
func (s RoadmapStatus) String() string {
	if s == RoadmapNone {
		return "none"
	}
	return string(s)
}

// RoadmapMission is a multi-day mission that needs a review and photo proof
type RoadmapMission struct {
	ID     int64         `json:"missionId"`
	Day    int           `json:"day"`
	Title  string        `json:"title"`
	Status RoadmapStatus `json:"status"`
}

// Photo is an attachment submitted as roadmap proof
type Photo struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"` // base64 on the wire
}

// ReviewSubmission is the body of a roadmap review
type ReviewSubmission struct {
	MissionID int64   `json:"missionId"`
	Review    string  `json:"review"`
	Photos    []Photo `json:"photos"`
}

// Submission is a roadmap proof awaiting admin review
type Submission struct {
	ID          string        `json:"submissionId"`
	MissionID   int64         `json:"missionId"`
	UserID      string        `json:"userId"`
	Nickname    string        `json:"nickname"`
	Review      string        `json:"review"`
	PhotoNames  []string      `json:"photoNames"`
	Status      RoadmapStatus `json:"status"`
	SubmittedAt time.Time     `json:"submittedAt"`
}

// ApprovalDecision is the admin verdict for a submission
type ApprovalDecision struct {
	SubmissionID string `json:"submissionId"`
	Approved     bool   `json:"approved"`
}
