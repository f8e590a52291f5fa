package models

// EmotionRecord is one day's mood entry. Date is the unique key.
type EmotionRecord struct {
	Date      string   `json:"date"`      // YYYY-MM-DD
	MoodLevel int      `json:"moodLevel"` // 1..5
	Keywords  []string `json:"keywords"`  // display order, not semantically ordered
	Memo      string   `json:"memo,omitempty"`
}

// IsEmpty reports whether the record carries no user content. The backend
// answers a cleared day with an empty record rather than a 404.
func (r EmotionRecord) IsEmpty() bool {
	return len(r.Keywords) == 0 && r.Memo == "" && r.MoodLevel == 0
}

// MonthSummary aggregates the visible records of one calendar month
type MonthSummary struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	Count       int      `json:"count"`
	AverageMood float64  `json:"averageMood"`
	MedianMood  float64  `json:"medianMood"`
	TopKeywords []string `json:"topKeywords"`
}
