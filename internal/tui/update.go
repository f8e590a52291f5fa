package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/emotion"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/tui/components/missionlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// fetch results land even while the record form is open
	if next, cmd, ok := m.handleData(msg); ok {
		return next, cmd
	}
	if m.state == StateEditing {
		return m.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	if m.state == StateMissions {
		var cmd tea.Cmd
		m.missions, cmd = m.missions.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleData(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.missions.SetSize(msg.Width-4, msg.Height-6)
		if m.form != nil {
			form, cmd := m.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.form = f
			}
			return m, cmd, true
		}
		return m, nil, true

	case dashboardMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil, true
		}
		dash := msg.dash
		m.dashboard = &dash
		return m, nil, true

	case monthMsg:
		if msg.year != m.calendar.Year || msg.month != m.calendar.Month {
			logger.Debug("discarding month fetch for a month no longer shown",
				"fetched", fmt.Sprintf("%d-%02d", msg.year, msg.month),
				"shown", fmt.Sprintf("%d-%02d", m.calendar.Year, m.calendar.Month))
			return m, nil, true
		}
		if msg.err != nil {
			m.calendar.SetRecords(nil)
			m.setError(msg.err)
			return m, nil, true
		}
		m.calendar.SetRecords(msg.records)
		m.summary = emotion.Summarize(msg.year, msg.month, msg.records)
		return m, nil, true

	case missionsMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil, true
		}
		m.missions.SetMissions(msg.missions)
		return m, nil, true

	case missionlist.CompleteMissionMsg:
		return m, m.completeMission(msg.ID), true

	case completedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil, true
		}
		m.missions.SetMissions(m.deps.Daily.Missions())
		if msg.applied {
			if m.dashboard != nil {
				m.dashboard.Character.Progress = msg.res.Progress
			}
			m.status = fmt.Sprintf("Mission complete: %s", msg.res.Mission.Title)
			if msg.res.LevelUp {
				m.status = fmt.Sprintf("Level up! You reached level %d", msg.res.Progress.Level)
			}
		}
		return m, nil, true

	case pickMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil, true
		}
		if msg.ok {
			rec := msg.rec
			m.pick = &rec
		} else {
			m.pick = nil
		}
		return m, nil, true

	case savedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil, true
		}
		m.status = "Saved " + msg.date
		m.calendar.Loading = true
		return m, tea.Batch(m.loadMonth(m.calendar.Year, m.calendar.Month), m.loadDashboard()), true
	}
	return m, nil, false
}

func (m *Model) setError(err error) {
	logger.Warn("tui request failed", "error", err)
	m.errMsg = apperrors.UserMessage(err)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = SessionState((int(m.state) + 1) % len(tabTitles))
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = SessionState((int(m.state) + len(tabTitles) - 1) % len(tabTitles))
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.errMsg, m.status = "", ""
		m.calendar.Loading = true
		return m, m.Init()
	}

	switch m.state {
	case StateCalendar:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.calendar.Shift(-1)
			return m, m.loadMonth(m.calendar.Year, m.calendar.Month)
		case key.Matches(msg, m.keys.Right):
			m.calendar.Shift(1)
			return m, m.loadMonth(m.calendar.Year, m.calendar.Month)
		case key.Matches(msg, m.keys.Up):
			m.calendar.MoveDay(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.calendar.MoveDay(1)
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			return m.openRecordForm()
		}
	case StateMissions:
		if key.Matches(msg, m.keys.Generate) {
			return m, m.generateMissions()
		}
		var cmd tea.Cmd
		m.missions, cmd = m.missions.Update(msg)
		return m, cmd
	case StatePicks:
		if key.Matches(msg, m.keys.Next) {
			return m, m.loadPick(true)
		}
	}
	return m, nil
}

// openRecordForm seeds the form from the shown month, so it waits until
// that month has loaded
func (m Model) openRecordForm() (tea.Model, tea.Cmd) {
	if m.calendar.Loading {
		m.status = "Still loading this month; try again in a moment"
		return m, nil
	}
	date := m.calendar.SelectedDate()
	f := &RecordFormModel{Mood: constants.DefaultMoodLevel}
	if rec, ok := m.calendar.Records[date]; ok {
		f.Mood = rec.MoodLevel
		f.Keywords = strings.Join(rec.Keywords, ", ")
		f.Memo = rec.Memo
	}

	m.recordForm = f
	m.editDate = date
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Mood on "+date).
				Options(MoodOptions()...).
				Value(&f.Mood),
			huh.NewInput().
				Title("Keywords").
				Description("Comma separated").
				Value(&f.Keywords),
			huh.NewText().
				Title("Memo").
				Value(&f.Memo),
		),
	)
	m.state = StateEditing
	return m, m.form.Init()
}

// MoodOptions are the 1..5 mood choices shared by the record forms
func MoodOptions() []huh.Option[int] {
	labels := []string{"awful", "low", "okay", "good", "great"}
	opts := make([]huh.Option[int], len(labels))
	for i, l := range labels {
		opts[i] = huh.NewOption(fmt.Sprintf("%d %s", i+1, l), i+1)
	}
	return opts
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateCalendar
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateCalendar
		values := *m.recordForm
		m.form, m.recordForm = nil, nil
		return m, tea.Batch(cmd, m.saveRecord(m.editDate, values))
	case huh.StateAborted:
		m.state = StateCalendar
		m.form, m.recordForm = nil, nil
		return m, cmd
	}
	return m, cmd
}
