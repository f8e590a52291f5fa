package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/models"
)

func TestShift(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		selected  int
		delta     int
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{"forward", 2024, time.May, 10, 1, 2024, time.June, 10},
		{"into next year", 2024, time.December, 5, 1, 2025, time.January, 5},
		{"into previous year", 2024, time.January, 5, -1, 2023, time.December, 5},
		{"clamps to leap february", 2024, time.January, 31, 1, 2024, time.February, 29},
		{"clamps to short month", 2023, time.March, 31, -1, 2023, time.February, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.year, tt.month)
			m.Selected = tt.selected
			m.Records["x"] = models.EmotionRecord{}
			m.Shift(tt.delta)

			if m.Year != tt.wantYear || m.Month != tt.wantMonth || m.Selected != tt.wantDay {
				t.Errorf("Shift(%d) = %d-%s day %d, want %d-%s day %d",
					tt.delta, m.Year, m.Month, m.Selected, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
			if len(m.Records) != 0 || !m.Loading {
				t.Error("Shift() kept the previous month's records")
			}
		})
	}
}

func TestMoveDayStaysInMonth(t *testing.T) {
	m := New(2024, time.April)
	m.MoveDay(-3)
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	m.MoveDay(100)
	if m.Selected != 30 {
		t.Errorf("Selected = %d, want 30", m.Selected)
	}
	if m.SelectedDate() != "2024-04-30" {
		t.Errorf("SelectedDate() = %s", m.SelectedDate())
	}
}

func TestView(t *testing.T) {
	m := New(2024, time.May)
	m.SetRecords(map[string]models.EmotionRecord{
		"2024-05-01": {Date: "2024-05-01", MoodLevel: 4, Keywords: []string{"calm"}, Memo: "tea"},
	})

	out := m.View()
	for _, want := range []string{"May 2024", "Su", "31", "mood 4", "calm", "tea"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}

	m.MoveDay(1)
	if !strings.Contains(m.View(), "2024-05-02  no record") {
		t.Errorf("View() for empty day:\n%s", m.View())
	}
}
