package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/mission"
)

const gaugeWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = m.viewDashboard()
	case StateCalendar:
		content = m.viewCalendar()
	case StateMissions:
		content = m.missions.View()
	case StatePicks:
		content = m.viewPicks()
	case StateEditing:
		content = m.form.View()
	}

	var banner string
	switch {
	case m.errMsg != "":
		banner = dangerStyle.Render(m.errMsg)
	case m.status != "":
		banner = mutedStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		docStyle.Render(content),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == StateEditing {
		active = StateCalendar
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	if m.dashboard == nil {
		return mutedStyle.Render("Loading…")
	}
	d := m.dashboard
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hi, "+d.Nickname) + "\n\n")

	if d.Character.Name != "" {
		b.WriteString(d.Character.Name + "\n")
	}
	threshold := mission.LevelThreshold(d.Character.Level)
	b.WriteString(fmt.Sprintf("Level %d  %s %d/%d xp\n\n",
		d.Character.Level, Gauge(d.Character.Experience, threshold), d.Character.Experience, threshold))

	done := 0
	for _, ms := range d.TodayMissions {
		if ms.IsCompleted() {
			done++
		}
	}
	b.WriteString(fmt.Sprintf("Today's missions: %d/%d done\n", done, len(d.TodayMissions)))

	if r := d.RecentRecord; r != nil {
		b.WriteString(fmt.Sprintf("Last entry: %s  mood %d  %s\n", r.Date, r.MoodLevel, strings.Join(r.Keywords, ", ")))
	} else {
		b.WriteString(mutedStyle.Render("No entries yet. Open the calendar and press 'e'.") + "\n")
	}
	return b.String()
}

func (m Model) viewCalendar() string {
	var b strings.Builder
	b.WriteString(m.calendar.View())
	if s := m.summary; s.Count > 0 && s.Year == m.calendar.Year && s.Month == int(m.calendar.Month) {
		b.WriteString(fmt.Sprintf("\n\n%d entries  avg %.2f  median %.1f", s.Count, s.AverageMood, s.MedianMood))
		if len(s.TopKeywords) > 0 {
			b.WriteString("  top: " + strings.Join(s.TopKeywords, ", "))
		}
	}
	return b.String()
}

func (m Model) viewPicks() string {
	if m.pick == nil {
		return mutedStyle.Render("No recommendations right now.")
	}
	p := m.pick
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title) + "  " + mutedStyle.Render(string(p.Kind)) + "\n\n")
	b.WriteString(p.Description + "\n")
	if p.Location != "" {
		b.WriteString("\n📍 " + p.Location + "\n")
	}
	return b.String()
}

// Gauge renders value/limit as a fixed-width bar
func Gauge(value, limit int) string {
	if limit <= 0 {
		limit = 1
	}
	filled := value * gaugeWidth / limit
	if filled < 0 {
		filled = 0
	}
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	return gaugeFillStyle.Render(strings.Repeat("█", filled)) +
		gaugeRestStyle.Render(strings.Repeat("░", gaugeWidth-filled))
}
