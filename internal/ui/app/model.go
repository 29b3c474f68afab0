package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "focusflow/internal/modules/focus/dto"
	"focusflow/internal/ui/components"
	"focusflow/internal/ui/theme"
	buildview "focusflow/internal/ui/views/build"
	homeview "focusflow/internal/ui/views/home"
	sessionsview "focusflow/internal/ui/views/sessions"
	settingsview "focusflow/internal/ui/views/settings"
	storeview "focusflow/internal/ui/views/store"
	tasksview "focusflow/internal/ui/views/tasks"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// FocusPort is the focus use-case surface the TUI drives, including the
// periodic tick.
type FocusPort interface {
	homeview.FocusPort
	sessionsview.Port
	Tick(ctx context.Context) (focusdto.OutcomeOutput, error)
}

type Ports struct {
	Focus     FocusPort
	Wallet    homeview.WalletPort
	Store     storeview.Port
	Tasks     tasksview.Port
	Build     buildview.Port
	Notify    settingsview.NotifyPort
	Reminders settingsview.RemindersPort
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabHome tabID = iota
	tabSessions
	tabStore
	tabTasks
	tabBuild
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{"Focus", "Sessions", "Store", "Tasks", "Build", "Settings"}

// tickInterval drives the countdown and lets the engine resolve completion.
const tickInterval = time.Second

type tickMsg time.Time

// ─── keys ────────────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Palette   key.Binding
	Quit      key.Binding
	Start     key.Binding
	Interrupt key.Binding
	Return    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start focus")),
		Interrupt: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "simulate leaving")),
		Return:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "return")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Palette, k.Help, k.Quit},
		{k.Start, k.Interrupt, k.Return},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	focus FocusPort

	activeTab tabID
	width     int
	height    int
	status    string
	showHelp  bool

	home     homeview.Model
	sessions sessionsview.Model
	store    storeview.Model
	tasks    tasksview.Model
	build    buildview.Model
	settings settingsview.Model

	palette components.Palette
	help    help.Model
	keys    keyMap
}

func NewModel(p Ports) Model {
	return Model{
		focus:    p.Focus,
		status:   "ready",
		home:     homeview.New(p.Focus, p.Wallet),
		sessions: sessionsview.New(p.Focus),
		store:    storeview.New(p.Store),
		tasks:    tasksview.New(p.Tasks),
		build:    buildview.New(p.Build),
		settings: settingsview.New(p.Notify, p.Reminders),
		palette:  components.NewPalette(),
		help:     help.New(),
		keys:     defaultKeys(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.home.Init(),
		m.sessions.Init(),
		m.store.Init(),
		m.tasks.Init(),
		m.build.Init(),
		m.settings.Init(),
		tick(),
	)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Lifecycle and async results are handled whether or not the palette is
	// open; only keys are captured by it.
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.tickCmd(), tick())

	case tea.BlurMsg:
		if m.home.Phase() == "running" {
			m.status = "focus lost"
			return m, m.home.InterruptCmd()
		}
		return m, nil

	case tea.FocusMsg:
		// The cached phase can lag an interrupt still in flight. Return is a
		// noop outside the grace window, so it is always sent.
		if m.home.Phase() == "failing" {
			m.status = "welcome back"
		}
		return m, m.home.ReturnCmd()

	case homeview.StatusMsg:
		var cmd tea.Cmd
		m.home, cmd = m.home.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else if msg.Outcome != nil && resolves(msg.Outcome.Outcome) {
			m.status = "session " + msg.Outcome.Outcome
			cmds = append(cmds, m.sessions.LoadCmd(), m.store.LoadCmd(), m.build.LoadCmd())
		}
		return m, tea.Batch(cmds...)

	case homeview.SummaryMsg:
		var cmd tea.Cmd
		m.home, cmd = m.home.Update(msg)
		return m, cmd

	case sessionsview.LoadedMsg, sessionsview.DeletedMsg:
		var cmd tea.Cmd
		m.sessions, cmd = m.sessions.Update(msg)
		return m, tea.Batch(cmd, m.home.SummaryCmd())

	case storeview.LoadedMsg:
		var cmd tea.Cmd
		m.store, cmd = m.store.Update(msg)
		return m, cmd

	case storeview.PurchasedMsg:
		var cmd tea.Cmd
		m.store, cmd = m.store.Update(msg)
		return m, tea.Batch(cmd, m.home.SummaryCmd())

	case tasksview.LoadedMsg:
		var cmd tea.Cmd
		m.tasks, cmd = m.tasks.Update(msg)
		return m, cmd

	case buildview.LoadedMsg:
		var cmd tea.Cmd
		m.build, cmd = m.build.Update(msg)
		return m, cmd

	case settingsview.LoadedMsg, settingsview.ProbeMsg:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case settingsview.AccessChangedMsg:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, tea.Batch(cmd, m.tasks.LoadCmd())
	}

	// The palette intercepts all remaining input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while it owns the keyboard.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Everything else goes to the active tab.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabHome:
		m.home, tabCmd = m.home.Update(msg)
	case tabSessions:
		m.sessions, tabCmd = m.sessions.Update(msg)
	case tabStore:
		m.store, tabCmd = m.store.Update(msg)
	case tabTasks:
		m.tasks, tabCmd = m.tasks.Update(msg)
	case tabBuild:
		m.build, tabCmd = m.build.Update(msg)
	case tabSettings:
		m.settings, tabCmd = m.settings.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// resolves reports whether an outcome changed more than the countdown.
func resolves(outcome string) bool {
	switch outcome {
	case "completed", "failed", "redeemed":
		return true
	}
	return false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSessions:
		return m.sessions.View()
	case tabStore:
		return m.store.View()
	case tabTasks:
		return m.tasks.View()
	case tabBuild:
		return m.build.View()
	case tabSettings:
		return m.settings.View()
	default:
		return m.home.View()
	}
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusflow  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	switch m.home.Phase() {
	case "running":
		left = theme.Good.Render("● focusing") + "  " + left
	case "failing":
		left = theme.Bad.Render("● away") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette ─────────────────────────────────────────────────────────────────

// executePalette must stay in sync with the hints in components/palette.go.
func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		m.status = "ready"
		return m, nil
	}
	args := fields[1:]
	switch fields[0] {
	case "focus:start":
		if len(args) < 1 {
			m.status = "usage: focus:start <minutes> [task-id]"
			return m, nil
		}
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			m.status = "minutes must be a number"
			return m, nil
		}
		taskID := ""
		if len(args) > 1 {
			taskID = args[1]
		}
		m.activeTab = tabHome
		return m, m.home.StartCmd(minutes, taskID)

	case "focus:interrupt":
		return m, m.home.InterruptCmd()

	case "focus:return":
		return m, m.home.ReturnCmd()

	case "store:buy":
		if len(args) < 1 {
			m.status = "usage: store:buy <item-id> [quantity]"
			return m, nil
		}
		quantity := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				m.status = "quantity must be a number"
				return m, nil
			}
			quantity = n
		}
		m.activeTab = tabStore
		return m, m.store.BuyCmd(args[0], quantity)

	case "task:add":
		if len(args) < 1 {
			m.status = "usage: task:add <name>"
			return m, nil
		}
		m.activeTab = tabTasks
		return m, m.tasks.AddCmd(strings.Join(args, " "))

	case "reminders:grant":
		return m, m.settings.AccessCmd(true)

	case "reminders:revoke":
		return m, m.settings.AccessCmd(false)

	case "reminders:select":
		if len(args) < 1 {
			m.status = "usage: reminders:select <list>"
			return m, nil
		}
		return m, m.settings.SelectCmd(strings.Join(args, " "))

	case "build:color":
		if len(args) < 3 {
			m.status = "usage: build:color <#RRGGBB> <width> <height>"
			return m, nil
		}
		w, errW := strconv.ParseFloat(args[1], 64)
		h, errH := strconv.ParseFloat(args[2], 64)
		if errW != nil || errH != nil {
			m.status = "width and height must be numbers"
			return m, nil
		}
		m.activeTab = tabBuild
		return m, m.build.PlaceColorCmd(args[0], w, h)

	case "build:clear":
		m.activeTab = tabBuild
		return m, m.build.ClearCmd()

	case "notify:test":
		m.activeTab = tabSettings
		cmd := m.settings.TestCmd()
		return m, cmd
	}
	m.status = fmt.Sprintf("unknown command: %s", fields[0])
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabHome:
		return m.home.Editing()
	case tabSessions:
		return m.sessions.Filtering()
	case tabStore:
		return m.store.Filtering()
	case tabTasks:
		return m.tasks.Capturing()
	case tabBuild:
		return m.build.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	contentH := max(1, m.height-4)
	size := tea.WindowSizeMsg{Width: m.width, Height: contentH}
	m.home, _ = m.home.Update(size)
	m.sessions, _ = m.sessions.Update(size)
	m.store, _ = m.store.Update(size)
	m.tasks, _ = m.tasks.Update(size)
	m.build, _ = m.build.Update(size)
	m.settings, _ = m.settings.Update(size)
}

func (m Model) tickCmd() tea.Cmd {
	return func() tea.Msg {
		return homeview.TickMsg(m.focus.Tick(context.Background()))
	}
}
