package home

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "focusflow/internal/modules/focus/dto"
	walletdto "focusflow/internal/modules/wallet/dto"
	"focusflow/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type FocusPort interface {
	Start(ctx context.Context, minutes int, taskID string) (focusdto.OutcomeOutput, error)
	Interrupt(ctx context.Context) (focusdto.OutcomeOutput, error)
	Return(ctx context.Context) (focusdto.OutcomeOutput, error)
	Status(ctx context.Context) (focusdto.StatusOutput, error)
	Last(ctx context.Context) (focusdto.SessionOutput, error)
}

type WalletPort interface {
	Balance(ctx context.Context) (walletdto.BalanceOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// StatusMsg carries a fresh engine status, with the outcome that produced it
// when there was one.
type StatusMsg struct {
	Outcome *focusdto.OutcomeOutput
	Status  focusdto.StatusOutput
	Err     error
}

type SummaryMsg struct {
	Coins   int64
	Last    focusdto.SessionOutput
	HasLast bool
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	focus   FocusPort
	wallet  WalletPort
	status  focusdto.StatusOutput
	coins   int64
	last    focusdto.SessionOutput
	hasLast bool
	note    string
	minutes textinput.Model
	editing bool
	bar     progress.Model
	width   int
	height  int
}

func New(focus FocusPort, wallet WalletPort) Model {
	ti := textinput.New()
	ti.Placeholder = "minutes"
	ti.CharLimit = 4
	ti.SetValue("30")

	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))

	return Model{focus: focus, wallet: wallet, minutes: ti, bar: bar, status: focusdto.StatusOutput{Phase: "idle"}}
}

// Editing reports whether the minutes input owns the keyboard.
func (m Model) Editing() bool { return m.editing }

// Phase is the engine phase last seen by the view.
func (m Model) Phase() string { return m.status.Phase }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.RefreshCmd(), m.SummaryCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-8, 60))

	case StatusMsg:
		if msg.Err != nil {
			m.note = theme.Bad.Render(msg.Err.Error())
			return m, nil
		}
		m.status = msg.Status
		if msg.Outcome != nil {
			if note := describe(*msg.Outcome); note != "" {
				m.note = note
			}
			if msg.Outcome.Session != nil {
				return m, m.SummaryCmd()
			}
		}

	case SummaryMsg:
		m.coins = msg.Coins
		m.last = msg.Last
		m.hasLast = msg.HasLast

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "enter":
				m.editing = false
				m.minutes.Blur()
				n, err := strconv.Atoi(strings.TrimSpace(m.minutes.Value()))
				if err != nil {
					m.note = theme.Bad.Render("minutes must be a number")
					return m, nil
				}
				return m, m.StartCmd(n, "")
			case "esc":
				m.editing = false
				m.minutes.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.minutes, cmd = m.minutes.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "s":
			if m.status.Phase == "idle" {
				m.editing = true
				return m, m.minutes.Focus()
			}
		case "i":
			return m, m.InterruptCmd()
		case "r":
			return m, m.ReturnCmd()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus") + "  " + theme.Coin.Render(fmt.Sprintf("%d coins", m.coins)) + "\n\n")

	switch m.status.Phase {
	case "idle":
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("Ready for %s.", clock(m.status.Configured))) + "\n\n")
		if m.editing {
			sb.WriteString("Focus for " + m.minutes.View() + "\n")
		} else {
			sb.WriteString(theme.Muted.Render("s: start") + "\n")
		}
	case "running":
		sb.WriteString(theme.Good.Render(clock(m.status.Remaining)) + theme.Muted.Render(" left, until "+m.status.EndsAt.Local().Format(time.Kitchen)) + "\n\n")
		sb.WriteString(m.bar.ViewAs(m.status.Progress) + "\n\n")
		if m.status.AccumulatedDistraction > 0 {
			sb.WriteString(theme.Muted.Render("forgiven distraction: "+clock(m.status.AccumulatedDistraction)) + "\n")
		}
		sb.WriteString(theme.Muted.Render("leaving the terminal counts as losing focus") + "\n")
	case "failing":
		sb.WriteString(theme.Bad.Render("Focus lost since "+m.status.FailingSince.Local().Format(time.Kitchen)) + "\n\n")
		sb.WriteString(m.bar.ViewAs(m.status.Progress) + "\n\n")
		sb.WriteString(theme.Muted.Render("r: return and try a break pass") + "\n")
	}

	if m.hasLast {
		sb.WriteString("\n" + theme.Muted.Render("last session: ") + sessionLine(m.last) + "\n")
	}
	if m.note != "" {
		sb.WriteString("\n" + m.note + "\n")
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) RefreshCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.focus.Status(context.Background())
		return StatusMsg{Status: st, Err: err}
	}
}

func (m Model) SummaryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := SummaryMsg{}
		if bal, err := m.wallet.Balance(ctx); err == nil {
			out.Coins = bal.Coins
		}
		if last, err := m.focus.Last(ctx); err == nil {
			out.Last = last
			out.HasLast = true
		}
		return out
	}
}

func (m Model) StartCmd(minutes int, taskID string) tea.Cmd {
	return m.transition(func(ctx context.Context) (focusdto.OutcomeOutput, error) {
		return m.focus.Start(ctx, minutes, taskID)
	})
}

func (m Model) InterruptCmd() tea.Cmd { return m.transition(m.focus.Interrupt) }

func (m Model) ReturnCmd() tea.Cmd { return m.transition(m.focus.Return) }

func (m Model) transition(fn func(context.Context) (focusdto.OutcomeOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := fn(context.Background())
		if err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Outcome: &out, Status: out.Status}
	}
}

// TickMsg wraps an engine tick so the root model can reschedule.
func TickMsg(out focusdto.OutcomeOutput, err error) StatusMsg {
	if err != nil {
		return StatusMsg{Err: err}
	}
	return StatusMsg{Outcome: &out, Status: out.Status}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func describe(out focusdto.OutcomeOutput) string {
	switch out.Outcome {
	case "started":
		return theme.Good.Render("Focus started.")
	case "completed":
		if out.Session != nil {
			return theme.Good.Render(fmt.Sprintf("Completed! +%d coins", out.Session.CoinsDelta))
		}
	case "redeemed":
		return theme.Coin.Render("Break pass " + out.Pass + " covered your absence.")
	case "failed":
		if out.Session != nil {
			return theme.Bad.Render(fmt.Sprintf("Session failed. %d coins", out.Session.CoinsDelta))
		}
	case "interrupted":
		return theme.Hot.Render("Focus lost. Come back soon.")
	}
	return ""
}

func sessionLine(s focusdto.SessionOutput) string {
	result := theme.Good.Render(fmt.Sprintf("+%d", s.CoinsDelta))
	if s.Failed {
		result = theme.Bad.Render(fmt.Sprintf("%d", s.CoinsDelta))
	}
	return fmt.Sprintf("%s  %s of %s  %s", s.StartDate.Local().Format("Jan 2 15:04"), clock(s.ActualDuration), clock(s.PlannedDuration), result)
}

// clock renders d as m:ss, or h:mm:ss past an hour.
func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	h, m, s := secs/3600, (secs/60)%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
