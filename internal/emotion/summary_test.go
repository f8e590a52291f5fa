package emotion

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/moodlit/internal/models"
)

func TestSummarize(t *testing.T) {
	records := map[string]models.EmotionRecord{
		"2024-05-01": {Date: "2024-05-01", MoodLevel: 1, Keywords: []string{"tired", "rain"}},
		"2024-05-02": {Date: "2024-05-02", MoodLevel: 4, Keywords: []string{"calm"}},
		"2024-05-03": {Date: "2024-05-03", MoodLevel: 4, Keywords: []string{"calm", "tired"}},
		"2024-05-04": {Date: "2024-05-04", MoodLevel: 5, Keywords: []string{"sun", "calm"}},
	}

	got := Summarize(2024, time.May, records)
	want := models.MonthSummary{
		Year:        2024,
		Month:       5,
		Count:       4,
		AverageMood: 3.5,
		MedianMood:  4,
		TopKeywords: []string{"calm", "tired", "rain"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(2024, time.June, nil)
	want := models.MonthSummary{Year: 2024, Month: 6, TopKeywords: []string{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}
