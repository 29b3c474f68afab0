package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	focusdto "focusflow/internal/modules/focus/dto"
	"focusflow/internal/ui/theme"
	"focusflow/internal/ui/views"
)

type Port interface {
	Sessions(ctx context.Context) ([]focusdto.SessionOutput, error)
	Delete(ctx context.Context, id string) error
}

type LoadedMsg struct {
	Sessions []focusdto.SessionOutput
	Err      error
}

type DeletedMsg struct{ Err error }

type sessionItem struct{ s focusdto.SessionOutput }

func (i sessionItem) Title() string {
	return i.s.StartDate.Local().Format("Mon Jan 2 15:04")
}

func (i sessionItem) Description() string {
	result := fmt.Sprintf("+%d coins", i.s.CoinsDelta)
	if i.s.Failed {
		result = fmt.Sprintf("failed, %d coins", i.s.CoinsDelta)
	}
	return fmt.Sprintf("%s of %s  %s", i.s.ActualDuration.Round(time.Second), i.s.PlannedDuration, result)
}

func (i sessionItem) FilterValue() string { return i.Title() }

type Model struct {
	port   Port
	list   list.Model
	err    error
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port, list: views.NewList("Sessions")}
}

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd { return m.LoadCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{s: s}
		}
		return m, m.list.SetItems(items)

	case DeletedMsg:
		m.err = msg.Err
		return m, m.LoadCmd()

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == "x" {
			if it, ok := m.list.SelectedItem().(sessionItem); ok {
				return m, m.deleteCmd(it.s.ID)
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	out := m.list.View()
	if m.err != nil {
		out += "\n" + theme.Bad.Render(m.err.Error())
	} else {
		out += "\n" + theme.Muted.Render("x: delete session")
	}
	return out
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.port.Sessions(context.Background())
		return LoadedMsg{Sessions: s, Err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return DeletedMsg{Err: m.port.Delete(context.Background(), id)}
	}
}
