package domain

import (
	"testing"
	"time"
)

func TestCoinsWonRoundsUp(t *testing.T) {
	t.Parallel()
	cases := map[time.Duration]int64{
		0:                  0,
		time.Second:        1,
		59 * time.Second:   1,
		60 * time.Second:   1,
		61 * time.Second:   2,
		1755 * time.Second: 30,
		1800 * time.Second: 30,
		-30 * time.Second:  0,
	}
	for focus, want := range cases {
		if got := CoinsWon(focus); got != want {
			t.Fatalf("CoinsWon(%s) = %d, want %d", focus, got, want)
		}
	}
}

func TestCoinsLostFavoursTheHouse(t *testing.T) {
	t.Parallel()
	cases := map[int64]int64{
		100: 51,
		99:  50,
		1:   1,
		0:   1,
		-1:  0,
		-10: 0,
	}
	for balance, want := range cases {
		if got := CoinsLost(balance); got != want {
			t.Fatalf("CoinsLost(%d) = %d, want %d", balance, got, want)
		}
	}
}

func TestSelectPassChecksShortWindowFirst(t *testing.T) {
	t.Parallel()
	both := func(string) bool { return true }
	onlyLong := func(kind string) bool { return kind == PassLong }

	if kind, ok := SelectPass(45*time.Second, both); !ok || kind != PassShort {
		t.Fatalf("expected short pass, got %q %v", kind, ok)
	}
	if kind, ok := SelectPass(45*time.Second, onlyLong); !ok || kind != PassLong {
		t.Fatalf("expected long pass, got %q %v", kind, ok)
	}
	if _, ok := SelectPass(301*time.Second, both); ok {
		t.Fatalf("no pass covers 301s")
	}
}

func TestDistractionStopsAtPlannedEnd(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	run := Run{TimerStart: start, Configured: 30 * time.Minute}.Interrupted(start.Add(29 * time.Minute))
	if got := run.DistractionLength(start.Add(29*time.Minute + 30*time.Second)); got != 30*time.Second {
		t.Fatalf("expected 30s, got %s", got)
	}
	if got := run.DistractionLength(start.Add(2 * time.Hour)); got != time.Minute {
		t.Fatalf("expected the distraction capped at 1m, got %s", got)
	}
	if run.Phase() != PhaseFailingGrace || !run.TimerStart.IsZero() {
		t.Fatalf("unexpected interrupted run %+v", run)
	}
}
