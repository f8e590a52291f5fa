package missionlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/models"
)

// CompleteMissionMsg asks the parent model to complete a mission
type CompleteMissionMsg struct {
	ID int64
}

type Item struct {
	Mission models.Mission
}

func (i Item) Title() string {
	if i.Mission.IsCompleted() {
		return "✓ " + i.Mission.Title
	}
	return i.Mission.Title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("+%d xp", i.Mission.Reward)
	if i.Mission.Theme != "" {
		desc += " | " + i.Mission.Theme
	}
	if i.Mission.IsCompleted() {
		desc += " | done"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Mission.Title }

type KeyMap struct {
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "complete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(missions []models.Mission, width, height int) Model {
	l := list.New(items(missions), list.NewDefaultDelegate(), width, height)
	l.Title = "Today's missions"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}
	return Model{list: l, keys: keys}
}

func items(missions []models.Mission) []list.Item {
	out := make([]list.Item, len(missions))
	for i, m := range missions {
		out[i] = Item{Mission: m}
	}
	return out
}

// SetMissions replaces the list, keeping the cursor where possible
func (m *Model) SetMissions(missions []models.Mission) {
	idx := m.list.Index()
	m.list.SetItems(items(missions))
	if idx < len(missions) {
		m.list.Select(idx)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Complete) {
		if i, ok := m.list.SelectedItem().(Item); ok && !i.Mission.IsCompleted() {
			id := i.Mission.ID
			return m, func() tea.Msg { return CompleteMissionMsg{ID: id} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No missions for today.\n  Press 'g' to generate them."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
