package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	emptyDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	// moodColors is indexed by mood level
	moodColors = map[int]lipgloss.Color{
		1: lipgloss.Color("196"),
		2: lipgloss.Color("208"),
		3: lipgloss.Color("226"),
		4: lipgloss.Color("118"),
		5: lipgloss.Color("42"),
	}
)

const cellWidth = 4

// Model renders one month as a grid with each recorded day colored by mood
type Model struct {
	Year     int
	Month    time.Month
	Records  map[string]models.EmotionRecord
	Selected int // day of month, 1-based
	Loading  bool
}

func New(year int, month time.Month) Model {
	return Model{Year: year, Month: month, Selected: 1, Records: map[string]models.EmotionRecord{}}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Shift moves the visible month by delta months and clears the records
func (m *Model) Shift(delta int) {
	first := time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	m.Year, m.Month = first.Year(), first.Month()
	m.Records = map[string]models.EmotionRecord{}
	if n := daysIn(m.Year, m.Month); m.Selected > n {
		m.Selected = n
	}
	m.Loading = true
}

// MoveDay moves the selection, staying inside the month
func (m *Model) MoveDay(delta int) {
	day := m.Selected + delta
	if day < 1 {
		day = 1
	}
	if n := daysIn(m.Year, m.Month); day > n {
		day = n
	}
	m.Selected = day
}

// SetRecords installs the fetch result for the visible month
func (m *Model) SetRecords(records map[string]models.EmotionRecord) {
	if records == nil {
		records = map[string]models.EmotionRecord{}
	}
	m.Records = records
	m.Loading = false
}

// SelectedDate is the selected day as YYYY-MM-DD
func (m Model) SelectedDate() string {
	return time.Date(m.Year, m.Month, m.Selected, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d", m.Month, m.Year)))
	if m.Loading {
		b.WriteString("  loading…")
	}
	b.WriteString("\n\n")

	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(weekdayStyle.Render(fmt.Sprintf("%-*s", cellWidth, wd)))
	}
	b.WriteString("\n")

	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	b.WriteString(strings.Repeat(" ", offset*cellWidth))

	n := daysIn(m.Year, m.Month)
	for day := 1; day <= n; day++ {
		date := time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
		cell := fmt.Sprintf("%2d", day)

		style := emptyDayStyle
		if rec, ok := m.Records[date]; ok {
			style = lipgloss.NewStyle().Foreground(moodColors[rec.MoodLevel]).Bold(true)
		}
		if day == m.Selected {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(cell))
		b.WriteString(strings.Repeat(" ", cellWidth-2))

		if (offset+day)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	if rec, ok := m.Records[m.SelectedDate()]; ok {
		b.WriteString(fmt.Sprintf("%s  mood %d  %s", m.SelectedDate(), rec.MoodLevel, strings.Join(rec.Keywords, ", ")))
		if rec.Memo != "" {
			b.WriteString("\n" + rec.Memo)
		}
	} else {
		b.WriteString(m.SelectedDate() + "  no record")
	}
	return b.String()
}
