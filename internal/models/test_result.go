package models

// TestSubmission carries the 12 quiz answers to the backend
type TestSubmission struct {
	Answers []int `json:"answers"`
}

// ServerTestResult is the backend's authoritative scoring response. Trait
// values may be on a 1..5 grade scale or already percentages.
type ServerTestResult struct {
	ResultID      string   `json:"resultId"`
	CharacterType string   `json:"characterType"`
	EnergyLevel   int      `json:"energylevel"`
	Adaptability  int      `json:"adaptability"`
	Resilience    int      `json:"resilience"`
	Keywords      []string `json:"keywords"`
	Description   string   `json:"description"`
}

// Gauges holds the three trait percentages (20..100)
type Gauges struct {
	EnergyLevel  int `json:"energylevel"`
	Adaptability int `json:"adaptability"`
	Resilience   int `json:"resilience"`
}

// ArchetypeResult is what the client displays after a quiz
type ArchetypeResult struct {
	ResultID    string   `json:"resultId,omitempty"`
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Gauges      Gauges   `json:"gauges"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Offline     bool     `json:"offline,omitempty"`
}
