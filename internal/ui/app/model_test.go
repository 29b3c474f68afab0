package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	focusdto "focusflow/internal/modules/focus/dto"
	"focusflow/internal/ui/components"
	homeview "focusflow/internal/ui/views/home"
)

type fakeFocus struct {
	calls []string
}

func (f *fakeFocus) record(name, phase string) (focusdto.OutcomeOutput, error) {
	f.calls = append(f.calls, name)
	return focusdto.OutcomeOutput{Outcome: name, Status: focusdto.StatusOutput{Phase: phase}}, nil
}

func (f *fakeFocus) Start(context.Context, int, string) (focusdto.OutcomeOutput, error) {
	return f.record("started", "running")
}
func (f *fakeFocus) Interrupt(context.Context) (focusdto.OutcomeOutput, error) {
	return f.record("interrupted", "failing")
}
func (f *fakeFocus) Return(context.Context) (focusdto.OutcomeOutput, error) {
	return f.record("redeemed", "running")
}
func (f *fakeFocus) Tick(context.Context) (focusdto.OutcomeOutput, error) {
	return f.record("ticked", "running")
}
func (f *fakeFocus) Status(context.Context) (focusdto.StatusOutput, error) {
	return focusdto.StatusOutput{Phase: "idle"}, nil
}
func (f *fakeFocus) Last(context.Context) (focusdto.SessionOutput, error) {
	return focusdto.SessionOutput{}, nil
}
func (f *fakeFocus) Sessions(context.Context) ([]focusdto.SessionOutput, error) { return nil, nil }
func (f *fakeFocus) Delete(context.Context, string) error                     { return nil }

func withPhase(t *testing.T, m Model, phase string) Model {
	t.Helper()
	next, _ := m.Update(homeview.StatusMsg{Status: focusdto.StatusOutput{Phase: phase}})
	return next.(Model)
}

func TestBlurInterruptsRunningSession(t *testing.T) {
	t.Parallel()
	focus := &fakeFocus{}
	m := withPhase(t, NewModel(Ports{Focus: focus}), "running")

	_, cmd := m.Update(tea.BlurMsg{})
	if cmd == nil {
		t.Fatalf("expected an interrupt command")
	}
	msg, ok := cmd().(homeview.StatusMsg)
	if !ok || msg.Status.Phase != "failing" {
		t.Fatalf("unexpected message %#v", msg)
	}
	if len(focus.calls) != 1 || focus.calls[0] != "interrupted" {
		t.Fatalf("calls = %v", focus.calls)
	}
}

func TestBlurWhileIdleDoesNothing(t *testing.T) {
	t.Parallel()
	focus := &fakeFocus{}
	m := withPhase(t, NewModel(Ports{Focus: focus}), "idle")
	if _, cmd := m.Update(tea.BlurMsg{}); cmd != nil {
		t.Fatalf("idle blur should not produce a command")
	}
}

func TestFocusReturnsFromFailing(t *testing.T) {
	t.Parallel()
	focus := &fakeFocus{}
	m := withPhase(t, NewModel(Ports{Focus: focus}), "failing")

	_, cmd := m.Update(tea.FocusMsg{})
	if cmd == nil {
		t.Fatalf("expected a return command")
	}
	cmd()
	if len(focus.calls) != 1 || focus.calls[0] != "redeemed" {
		t.Fatalf("calls = %v", focus.calls)
	}
}

func TestFocusReturnsEvenBeforeInterruptResultArrives(t *testing.T) {
	t.Parallel()
	focus := &fakeFocus{}
	m := withPhase(t, NewModel(Ports{Focus: focus}), "running")

	next, interrupt := m.Update(tea.BlurMsg{})
	_, cmd := next.(Model).Update(tea.FocusMsg{})
	if cmd == nil {
		t.Fatalf("expected a return command while the interrupt is in flight")
	}
	interrupt()
	cmd()
	if len(focus.calls) != 2 || focus.calls[0] != "interrupted" || focus.calls[1] != "redeemed" {
		t.Fatalf("calls = %v", focus.calls)
	}
}

func TestPaletteStartValidatesMinutes(t *testing.T) {
	t.Parallel()
	m := NewModel(Ports{Focus: &fakeFocus{}})

	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "focus:start soon"})
	if cmd != nil {
		t.Fatalf("invalid minutes should not start anything")
	}
	if got := next.(Model).status; got != "minutes must be a number" {
		t.Fatalf("status = %q", got)
	}

	next, _ = m.Update(components.PaletteSubmitMsg{Input: "nope"})
	if got := next.(Model).status; got != "unknown command: nope" {
		t.Fatalf("status = %q", got)
	}
}

func TestPaletteStartSwitchesToFocusTab(t *testing.T) {
	t.Parallel()
	focus := &fakeFocus{}
	m := NewModel(Ports{Focus: focus})
	m.activeTab = tabStore

	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "focus:start 25"})
	if next.(Model).activeTab != tabHome {
		t.Fatalf("expected the focus tab")
	}
	cmd()
	if len(focus.calls) != 1 || focus.calls[0] != "started" {
		t.Fatalf("calls = %v", focus.calls)
	}
}
