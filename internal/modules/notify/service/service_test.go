package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focusflow/internal/modules/notify/domain"
)

type fakeSink struct {
	name  string
	err   error
	block chan struct{}

	mu    sync.Mutex
	notes []domain.Note
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Deliver(ctx context.Context, note domain.Note) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()
	return s.err
}

func (s *fakeSink) delivered() []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Note(nil), s.notes...)
}

type countingRecorder struct {
	mu     sync.Mutex
	ok     map[string]int
	failed map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{ok: map[string]int{}, failed: map[string]int{}}
}

func (r *countingRecorder) NotificationSent(sink string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed[sink]++
		return
	}
	r.ok[sink]++
}

func TestDispatcherFansOutAndSwallowsFailures(t *testing.T) {
	t.Parallel()
	good := &fakeSink{name: "good"}
	bad := &fakeSink{name: "bad", err: errors.New("offline")}
	recorder := newCountingRecorder()
	d := NewDispatcher([]Sink{good, bad}, recorder, nil, time.Second)

	d.Publish(domain.Event{Kind: domain.EventCompleted, Actual: 10 * time.Minute, Coins: 10})
	d.Publish(domain.Event{Kind: "noise"})
	d.Drain(context.Background())

	require.Len(t, good.delivered(), 1)
	require.Len(t, bad.delivered(), 1)
	require.Equal(t, domain.EventCompleted, good.delivered()[0].Kind)
	require.Equal(t, 1, recorder.ok["good"])
	require.Equal(t, 1, recorder.failed["bad"])
}

func TestDispatcherDrainStopsAtDeadline(t *testing.T) {
	t.Parallel()
	stuck := &fakeSink{name: "stuck", block: make(chan struct{})}
	d := NewDispatcher([]Sink{stuck}, nil, nil, time.Minute)
	d.Publish(domain.Event{Kind: domain.EventStarted, Planned: time.Minute, EndsAt: time.Now()})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	d.Drain(ctx)
	require.Less(t, time.Since(start), 5*time.Second)

	close(stuck.block)
	d.Drain(context.Background())
	require.Len(t, stuck.delivered(), 1)
}

type messengerCall struct {
	op         string
	text       string
	expiration time.Time
}

type fakeMessenger struct {
	calls    []messengerCall
	response func(op string) (*domain.Response, error)
}

func (m *fakeMessenger) reply(op string) (*domain.Response, error) {
	if m.response == nil {
		return &domain.Response{OK: true}, nil
	}
	return m.response(op)
}

func (m *fakeMessenger) PostMessage(_ context.Context, text string) (*domain.Response, error) {
	m.calls = append(m.calls, messengerCall{op: "post", text: text})
	return m.reply("post")
}

func (m *fakeMessenger) SetStatus(_ context.Context, text string, expiration time.Time) (*domain.Response, error) {
	m.calls = append(m.calls, messengerCall{op: "status", text: text, expiration: expiration})
	return m.reply("status")
}

func (m *fakeMessenger) ClearStatus(_ context.Context) (*domain.Response, error) {
	m.calls = append(m.calls, messengerCall{op: "clear"})
	return m.reply("clear")
}

func TestSlackSinkPostsThenUpdatesStatus(t *testing.T) {
	t.Parallel()
	ends := time.Unix(1_800_000_000, 0)
	m := &fakeMessenger{}
	sink := NewSlackSink(m)

	require.NoError(t, sink.Deliver(context.Background(), domain.Note{Kind: domain.EventStarted, Text: "go", Status: domain.FocusStatus, StatusExpiration: ends}))
	require.NoError(t, sink.Deliver(context.Background(), domain.Note{Kind: domain.EventFailed, Text: "lost"}))

	require.Equal(t, []messengerCall{
		{op: "post", text: "go"},
		{op: "status", text: domain.FocusStatus, expiration: ends},
		{op: "post", text: "lost"},
		{op: "clear"},
	}, m.calls)
}

func TestSlackSinkSkipsDisabledHalvesAndJoinsErrors(t *testing.T) {
	t.Parallel()
	disabled := &fakeMessenger{response: func(string) (*domain.Response, error) { return nil, nil }}
	require.NoError(t, NewSlackSink(disabled).Deliver(context.Background(), domain.Note{Kind: domain.EventCompleted, Text: "done"}))

	broken := &fakeMessenger{response: func(op string) (*domain.Response, error) {
		if op == "post" {
			return nil, errors.New("dial failed")
		}
		return &domain.Response{Error: "invalid_auth"}, nil
	}}
	err := NewSlackSink(broken).Deliver(context.Background(), domain.Note{Kind: domain.EventCompleted, Text: "done"})
	require.ErrorContains(t, err, "post message: dial failed")
	require.ErrorIs(t, err, domain.ErrAPI)
	require.Len(t, broken.calls, 2)
}

func TestSlackSinkProbe(t *testing.T) {
	t.Parallel()
	ok := &fakeMessenger{}
	require.NoError(t, NewSlackSink(ok).Probe(context.Background()))
	require.Equal(t, "TEST", ok.calls[0].text)

	disabled := &fakeMessenger{response: func(string) (*domain.Response, error) { return nil, nil }}
	require.ErrorIs(t, NewSlackSink(disabled).Probe(context.Background()), domain.ErrNoResponse)

	offline := &fakeMessenger{response: func(string) (*domain.Response, error) { return nil, errors.New("timeout") }}
	require.ErrorIs(t, NewSlackSink(offline).Probe(context.Background()), domain.ErrNoResponse)

	rejected := &fakeMessenger{response: func(string) (*domain.Response, error) {
		return &domain.Response{Error: "not_in_channel"}, nil
	}}
	err := NewSlackSink(rejected).Probe(context.Background())
	require.Equal(t, "The Slack API call failed with error: not_in_channel.", domain.Describe(err))
}

type staticManifests []domain.Manifest

func (s staticManifests) Load(context.Context) ([]domain.Manifest, error) {
	return append([]domain.Manifest(nil), s...), nil
}

type fakeHost struct {
	mu        sync.Mutex
	notified  map[string][]domain.Note
	notifyErr error
	lifeErr   error
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return h.lifeErr }

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version, Capabilities: m.Capabilities}, nil
}

func (h *fakeHost) Notify(_ context.Context, m domain.Manifest, note domain.Note) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.notified == nil {
		h.notified = map[string][]domain.Note{}
	}
	h.notified[m.Name] = append(h.notified[m.Name], note)
	return h.notifyErr
}

func writeBinary(t *testing.T, dir, name string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := []byte("#!/bin/sh\necho " + name + "\n")
	require.NoError(t, os.WriteFile(path, payload, 0o755))
	sum := sha256.Sum256(payload)
	return path, hex.EncodeToString(sum[:])
}

func TestPluginServiceDeliversToEnabledPlugins(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logBin, logSum := writeBinary(t, dir, "log")
	statusBin, statusSum := writeBinary(t, dir, "status")
	offBin, offSum := writeBinary(t, dir, "off")

	host := &fakeHost{}
	svc := NewPluginService(staticManifests{
		{Name: "log", Version: "1", Binary: logBin, SHA256: logSum, Enabled: true, Capabilities: []domain.Capability{domain.CapabilityMessage}},
		{Name: "status", Version: "1", Binary: statusBin, SHA256: statusSum, Enabled: true, Capabilities: []domain.Capability{domain.CapabilityStatus}},
		{Name: "off", Version: "1", Binary: offBin, SHA256: offSum, Enabled: false, Capabilities: []domain.Capability{domain.CapabilityMessage}},
	}, host, nil)

	note := domain.Note{Kind: domain.EventStarted, Text: "go", Status: domain.FocusStatus}
	require.NoError(t, svc.Deliver(context.Background(), note))

	require.Equal(t, []domain.Note{{Kind: domain.EventStarted, Text: "go"}}, host.notified["log"])
	require.Equal(t, []domain.Note{{Kind: domain.EventStarted, Status: domain.FocusStatus}}, host.notified["status"])
	require.NotContains(t, host.notified, "off")
}

func TestPluginServiceRejectsTamperedBinary(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bin, _ := writeBinary(t, dir, "log")
	host := &fakeHost{}
	svc := NewPluginService(staticManifests{
		{Name: "log", Version: "1", Binary: bin, SHA256: "0000000000000000000000000000000000000000000000000000000000000000", Enabled: true, Capabilities: []domain.Capability{domain.CapabilityMessage}},
	}, host, nil)

	err := svc.Deliver(context.Background(), domain.Note{Kind: domain.EventCompleted, Text: "done"})
	require.ErrorIs(t, err, domain.ErrChecksumMismatch)
	require.Empty(t, host.notified)
}

func TestPluginServiceDoctor(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	goodBin, goodSum := writeBinary(t, dir, "good")
	offBin, offSum := writeBinary(t, dir, "off")

	svc := NewPluginService(staticManifests{
		{Name: "good", Version: "1", Binary: goodBin, SHA256: goodSum, Enabled: true, Capabilities: []domain.Capability{domain.CapabilityMessage}},
		{Name: "missing", Version: "1", Binary: filepath.Join(dir, "nope"), SHA256: goodSum, Enabled: true, Capabilities: []domain.Capability{domain.CapabilityMessage}},
		{Name: "off", Version: "1", Binary: offBin, SHA256: offSum, Enabled: false, Capabilities: []domain.Capability{domain.CapabilityMessage}},
		{Name: "broken"},
	}, &fakeHost{}, nil)

	results, err := svc.Doctor(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	require.True(t, results[0].LifecycleOK)
	require.Empty(t, results[0].Error)

	require.False(t, results[1].BinaryReachable)
	require.Contains(t, results[1].Error, "binary does not exist")

	require.True(t, results[2].ChecksumValid)
	require.False(t, results[2].LifecycleOK)
	require.Equal(t, domain.ErrPluginDisabled.Error(), results[2].Error)

	require.Equal(t, "plugin version is required", results[3].Error)
}
