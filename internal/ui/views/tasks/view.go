package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tasksdto "focusflow/internal/modules/tasks/dto"
	"focusflow/internal/ui/theme"
	"focusflow/internal/ui/views"
)

type Port interface {
	Add(ctx context.Context, name, due, estimate string) (tasksdto.TaskOutput, error)
	List(ctx context.Context) ([]tasksdto.TaskOutput, error)
	Toggle(ctx context.Context, id string) (tasksdto.TaskOutput, error)
	Delete(ctx context.Context, id string) error
	Reminders(ctx context.Context) []tasksdto.ReminderOutput
}

// LoadedMsg carries both columns; reminders are empty when access is off.
type LoadedMsg struct {
	Tasks     []tasksdto.TaskOutput
	Reminders []tasksdto.ReminderOutput
	Err       error
}

type changedMsg struct{ err error }

type taskItem struct{ t tasksdto.TaskOutput }

func (i taskItem) Title() string { return i.t.Name }

func (i taskItem) Description() string {
	var parts []string
	if !i.t.DueDate.IsZero() {
		parts = append(parts, "due "+i.t.DueDate.Local().Format("Jan 2 15:04"))
	}
	if i.t.EstimatedDuration > 0 {
		parts = append(parts, "about "+i.t.EstimatedDuration.String())
	}
	return strings.Join(parts, "  ")
}

func (i taskItem) FilterValue() string { return i.t.Name }

type reminderItem struct{ r tasksdto.ReminderOutput }

func (i reminderItem) Title() string {
	if i.r.Completed {
		return "✓ " + i.r.Title
	}
	return i.r.Title
}

func (i reminderItem) Description() string {
	if i.r.DueDate.IsZero() {
		return i.r.Notes
	}
	return "due " + i.r.DueDate.Local().Format(time.DateOnly)
}

func (i reminderItem) FilterValue() string { return i.r.Title }

type Model struct {
	port      Port
	tasks     list.Model
	reminders list.Model
	input     textinput.Model
	adding    bool
	err       error
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "task name"
	ti.CharLimit = 200
	return Model{port: port, tasks: views.NewList("Tasks"), reminders: views.NewList("Reminders"), input: ti}
}

// Capturing reports whether typed keys belong to this view.
func (m Model) Capturing() bool {
	return m.adding || m.tasks.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd { return m.LoadCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		half := msg.Width / 2
		m.tasks.SetSize(half-1, msg.Height-2)
		m.reminders.SetSize(msg.Width-half-1, msg.Height-2)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		taskItems := make([]list.Item, len(msg.Tasks))
		for i, t := range msg.Tasks {
			taskItems[i] = taskItem{t: t}
		}
		reminderItems := make([]list.Item, len(msg.Reminders))
		for i, r := range msg.Reminders {
			reminderItems[i] = reminderItem{r: r}
		}
		return m, tea.Batch(m.tasks.SetItems(taskItems), m.reminders.SetItems(reminderItems))

	case changedMsg:
		m.err = msg.err
		return m, m.LoadCmd()

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "enter":
				name := strings.TrimSpace(m.input.Value())
				m.adding = false
				m.input.Blur()
				m.input.SetValue("")
				if name == "" {
					return m, nil
				}
				return m, m.AddCmd(name)
			case "esc":
				m.adding = false
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if m.tasks.FilterState() != list.Filtering {
			it, ok := m.tasks.SelectedItem().(taskItem)
			switch msg.String() {
			case "a":
				m.adding = true
				return m, m.input.Focus()
			case " ", "enter":
				if ok {
					return m, m.change(func(ctx context.Context) error {
						_, err := m.port.Toggle(ctx, it.t.ID)
						return err
					})
				}
			case "x":
				if ok {
					return m, m.change(func(ctx context.Context) error { return m.port.Delete(ctx, it.t.ID) })
				}
			}
		}
	}
	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.tasks.View(), "  ", m.reminders.View())
	footer := theme.Muted.Render("a: add  space: complete  x: delete")
	if m.adding {
		footer = "New task: " + m.input.View()
	}
	if m.err != nil {
		footer = theme.Bad.Render(m.err.Error())
	}
	return body + "\n" + footer
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := m.port.List(ctx)
		return LoadedMsg{Tasks: tasks, Reminders: m.port.Reminders(ctx), Err: err}
	}
}

func (m Model) AddCmd(name string) tea.Cmd {
	return m.change(func(ctx context.Context) error {
		_, err := m.port.Add(ctx, name, "", "")
		return err
	})
}

func (m Model) change(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg { return changedMsg{err: fn(context.Background())} }
}
