package settings

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notifydto "focusflow/internal/modules/notify/dto"
	tasksdto "focusflow/internal/modules/tasks/dto"
	"focusflow/internal/ui/theme"
)

// NotifyPort is what this view needs from the notify use-case.
type NotifyPort interface {
	Test(ctx context.Context) (notifydto.ProbeOutput, error)
	Plugins(ctx context.Context) ([]notifydto.PluginOutput, error)
	Doctor(ctx context.Context) ([]notifydto.DoctorCheckOutput, error)
}

type RemindersPort interface {
	Access(ctx context.Context) (tasksdto.AccessOutput, error)
	Grant(ctx context.Context) (tasksdto.AccessOutput, error)
	Revoke(ctx context.Context) (tasksdto.AccessOutput, error)
	ReminderLists(ctx context.Context) ([]tasksdto.ReminderListOutput, error)
	Select(ctx context.Context, name string) (tasksdto.AccessOutput, error)
}

// LoadedMsg is the whole settings page in one round trip.
type LoadedMsg struct {
	Access  tasksdto.AccessOutput
	Lists   []tasksdto.ReminderListOutput
	Plugins []notifydto.PluginOutput
	Checks  []notifydto.DoctorCheckOutput
	Err     error
}

type ProbeMsg struct {
	Out notifydto.ProbeOutput
	Err error
}

// AccessChangedMsg lets the root model refresh the tasks tab.
type AccessChangedMsg struct{ Err error }

type Model struct {
	notify    NotifyPort
	reminders RemindersPort
	page      LoadedMsg
	probe     string
	loading   bool
	output    viewport.Model
	spinner   spinner.Model
}

func New(notify NotifyPort, reminders RemindersPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{notify: notify, reminders: reminders, output: vp, spinner: sp}
}

func (m Model) Init() tea.Cmd { return m.LoadCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.output.Width = msg.Width
		m.output.Height = max(3, msg.Height-1)
		m.output.SetContent(m.render())
		return m, nil

	case LoadedMsg:
		m.page = msg
		m.output.SetContent(m.render())
		return m, nil

	case ProbeMsg:
		m.loading = false
		switch {
		case msg.Err != nil:
			m.probe = theme.Bad.Render(msg.Err.Error())
		case msg.Out.OK:
			m.probe = theme.Good.Render(msg.Out.Message)
		default:
			m.probe = theme.Bad.Render(msg.Out.Message)
		}
		m.output.SetContent(m.render())
		return m, nil

	case AccessChangedMsg:
		if msg.Err != nil {
			m.probe = theme.Bad.Render(msg.Err.Error())
		}
		return m, m.LoadCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			cmd := m.TestCmd()
			return m, cmd
		case "g":
			return m, m.AccessCmd(true)
		case "G":
			return m, m.AccessCmd(false)
		case "n":
			return m, m.nextListCmd()
		}
	}
	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

// TestCmd sends a probe through the Slack channel.
func (m *Model) TestCmd() tea.Cmd {
	m.loading = true
	probe := func() tea.Msg {
		out, err := m.notify.Test(context.Background())
		return ProbeMsg{Out: out, Err: err}
	}
	return tea.Batch(probe, m.spinner.Tick)
}

func (m Model) View() string {
	out := m.output.View() + "\n"
	if m.loading {
		return out + m.spinner.View() + " sending test message"
	}
	return out + theme.Muted.Render("t: test slack  g/G: grant/revoke reminders  n: next list")
}

func (m Model) render() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Reminders") + "\n")
	if m.page.Err != nil {
		sb.WriteString(theme.Bad.Render(m.page.Err.Error()) + "\n")
	}
	if !m.page.Access.Granted {
		sb.WriteString(theme.Muted.Render("  access not granted") + "\n")
	}
	for _, l := range m.page.Lists {
		mark := "  "
		if l.Selected {
			mark = theme.Hot.Render("> ")
		}
		sb.WriteString(mark + l.Title + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Slack") + "\n")
	if m.probe != "" {
		sb.WriteString("  " + m.probe + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("  press t to send a test message") + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Plugins") + "\n")
	if len(m.page.Plugins) == 0 {
		sb.WriteString(theme.Muted.Render("  none configured") + "\n")
	}
	for _, p := range m.page.Plugins {
		state := theme.Good.Render("enabled")
		if !p.Enabled {
			state = theme.Muted.Render("disabled")
		}
		sb.WriteString("  " + p.Name + " " + p.Version + "  " + state + "  " + strings.Join(p.Capabilities, ",") + "\n")
	}
	for _, c := range m.page.Checks {
		mark := theme.Good.Render("ok ")
		if !c.Healthy {
			mark = theme.Bad.Render("bad")
		}
		sb.WriteString("  " + mark + " " + c.Name + "  " + theme.Muted.Render(c.Message) + "\n")
	}
	return sb.String()
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var page LoadedMsg
		page.Access, page.Err = m.reminders.Access(ctx)
		if page.Access.Granted {
			page.Lists, _ = m.reminders.ReminderLists(ctx)
		}
		if plugins, err := m.notify.Plugins(ctx); err == nil {
			page.Plugins = plugins
		} else if page.Err == nil {
			page.Err = err
		}
		if checks, err := m.notify.Doctor(ctx); err == nil {
			page.Checks = checks
		}
		return page
	}
}

func (m Model) AccessCmd(grant bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if grant {
			_, err = m.reminders.Grant(context.Background())
		} else {
			_, err = m.reminders.Revoke(context.Background())
		}
		return AccessChangedMsg{Err: err}
	}
}

func (m Model) SelectCmd(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.reminders.Select(context.Background(), name)
		return AccessChangedMsg{Err: err}
	}
}

// nextListCmd moves the selection one list down, wrapping around.
func (m Model) nextListCmd() tea.Cmd {
	lists := m.page.Lists
	if len(lists) == 0 {
		return nil
	}
	next := 0
	for i, l := range lists {
		if l.Selected {
			next = (i + 1) % len(lists)
		}
	}
	return m.SelectCmd(lists[next].ID)
}
