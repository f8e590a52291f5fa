// Package tui is the interactive terminal client: dashboard, mood calendar,
// daily missions and recommendations.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/mission"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/tui/components/calendar"
	"github.com/julianstephens/moodlit/internal/tui/components/missionlist"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateCalendar
	StateMissions
	StatePicks
	StateEditing
)

var tabTitles = []string{"Home", "Calendar", "Missions", "Picks"}

// Dashboards loads the main screen. *api.Client implements it.
type Dashboards interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

// Records is the emotion store surface the calendar needs. *emotion.Store
// implements it.
type Records interface {
	FetchRange(ctx context.Context, year int, month time.Month) (map[string]models.EmotionRecord, error)
	Save(ctx context.Context, date string, mood int, keywords []string, memo string) (models.EmotionRecord, error)
}

// Picks cycles recommendations. *recommend.Rotator implements it.
type Picks interface {
	Current(ctx context.Context) (models.Recommendation, bool, error)
	Next(ctx context.Context) (models.Recommendation, bool, error)
}

// Deps are the services the TUI drives
type Deps struct {
	Dashboards Dashboards
	Records    Records
	Daily      *mission.DailyBoard
	Picks      Picks
	// Now defaults to time.Now
	Now func() time.Time
}

type RecordFormModel struct {
	Mood     int
	Keywords string
	Memo     string
}

type Model struct {
	ctx  context.Context
	deps Deps

	state    SessionState
	keys     KeyMap
	help     help.Model
	calendar calendar.Model
	missions missionlist.Model

	dashboard  *models.Dashboard
	summary    models.MonthSummary
	pick       *models.Recommendation
	form       *huh.Form
	recordForm *RecordFormModel
	editDate   string

	status   string
	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	now := deps.Now()
	cal := calendar.New(now.Year(), now.Month())
	cal.Selected = now.Day()
	cal.Loading = true

	return Model{
		ctx:      ctx,
		deps:     deps,
		state:    StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		calendar: cal,
		missions: missionlist.New(nil, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	switch m.state {
	case StateCalendar:
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.Edit)
	case StateMissions:
		keys = append(keys, m.keys.Enter, m.keys.Generate)
	case StatePicks:
		keys = append(keys, m.keys.Next)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case StateCalendar:
		actions = []key.Binding{m.keys.Edit}
	case StateMissions:
		actions = []key.Binding{m.keys.Enter, m.keys.Generate}
	case StatePicks:
		actions = []key.Binding{m.keys.Next}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadDashboard(),
		m.loadMonth(m.calendar.Year, m.calendar.Month),
		m.loadMissions(),
		m.loadPick(false),
	)
}

// State reports the active view
func (m Model) State() SessionState {
	return m.state
}

// Calendar exposes the calendar component for inspection
func (m Model) Calendar() calendar.Model {
	return m.calendar
}
