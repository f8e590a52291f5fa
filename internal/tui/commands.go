package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/models"
)

type dashboardMsg struct {
	dash models.Dashboard
	err  error
}

// monthMsg carries the month it was fetched for so a result that arrives
// after the user navigated away can be dropped
type monthMsg struct {
	year    int
	month   time.Month
	records map[string]models.EmotionRecord
	err     error
}

type missionsMsg struct {
	missions []models.Mission
	err      error
}

type completedMsg struct {
	res     models.CompletionResult
	applied bool
	err     error
}

type pickMsg struct {
	rec models.Recommendation
	ok  bool
	err error
}

type savedMsg struct {
	date string
	err  error
}

func (m Model) loadDashboard() tea.Cmd {
	if m.deps.Dashboards == nil {
		return nil
	}
	ctx, src := m.ctx, m.deps.Dashboards
	return func() tea.Msg {
		dash, err := src.Dashboard(ctx)
		return dashboardMsg{dash: dash, err: err}
	}
}

func (m Model) loadMonth(year int, month time.Month) tea.Cmd {
	if m.deps.Records == nil {
		return nil
	}
	ctx, records := m.ctx, m.deps.Records
	return func() tea.Msg {
		got, err := records.FetchRange(ctx, year, month)
		return monthMsg{year: year, month: month, records: got, err: err}
	}
}

func (m Model) loadMissions() tea.Cmd {
	if m.deps.Daily == nil {
		return nil
	}
	ctx, board := m.ctx, m.deps.Daily
	return func() tea.Msg {
		missions, err := board.Refresh(ctx)
		return missionsMsg{missions: missions, err: err}
	}
}

func (m Model) generateMissions() tea.Cmd {
	if m.deps.Daily == nil {
		return nil
	}
	ctx, board := m.ctx, m.deps.Daily
	return func() tea.Msg {
		missions, err := board.Generate(ctx)
		return missionsMsg{missions: missions, err: err}
	}
}

func (m Model) completeMission(id int64) tea.Cmd {
	if m.deps.Daily == nil {
		return nil
	}
	ctx, board := m.ctx, m.deps.Daily
	return func() tea.Msg {
		res, applied, err := board.Complete(ctx, id)
		return completedMsg{res: res, applied: applied, err: err}
	}
}

func (m Model) loadPick(advance bool) tea.Cmd {
	if m.deps.Picks == nil {
		return nil
	}
	ctx, picks := m.ctx, m.deps.Picks
	return func() tea.Msg {
		var (
			rec models.Recommendation
			ok  bool
			err error
		)
		if advance {
			rec, ok, err = picks.Next(ctx)
		} else {
			rec, ok, err = picks.Current(ctx)
		}
		return pickMsg{rec: rec, ok: ok, err: err}
	}
}

func (m Model) saveRecord(date string, form RecordFormModel) tea.Cmd {
	if m.deps.Records == nil {
		return nil
	}
	ctx, records := m.ctx, m.deps.Records
	return func() tea.Msg {
		_, err := records.Save(ctx, date, form.Mood, splitKeywords(form.Keywords), form.Memo)
		return savedMsg{date: date, err: err}
	}
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
