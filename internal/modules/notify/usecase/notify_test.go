package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"focusflow/internal/modules/notify/domain"
	"focusflow/internal/modules/notify/dto"
	"focusflow/internal/modules/notify/service"
)

type messengerStub struct {
	mu    sync.Mutex
	posts []string
	reply *domain.Response
}

func (m *messengerStub) PostMessage(_ context.Context, text string) (*domain.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, text)
	return m.reply, nil
}

func (m *messengerStub) SetStatus(context.Context, string, time.Time) (*domain.Response, error) {
	return m.reply, nil
}

func (m *messengerStub) ClearStatus(context.Context) (*domain.Response, error) {
	return m.reply, nil
}

func (m *messengerStub) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.posts...)
}

type noManifests struct{}

func (noManifests) Load(context.Context) ([]domain.Manifest, error) { return nil, nil }

func newInteractor(m *messengerStub) *Interactor {
	slack := service.NewSlackSink(m)
	plugins := service.NewPluginService(noManifests{}, nil, nil)
	dispatcher := service.NewDispatcher([]service.Sink{slack, plugins}, nil, nil, time.Second)
	return NewInteractor(dispatcher, slack, plugins).(*Interactor)
}

func TestPublishRendersAndDrains(t *testing.T) {
	t.Parallel()
	m := &messengerStub{reply: &domain.Response{OK: true}}
	uc := newInteractor(m)

	uc.Publish(dto.Event{Kind: dto.EventFailed, Actual: 2 * time.Minute, Coins: -3})
	uc.Drain(context.Background())

	got := m.sent()
	if len(got) != 1 || got[0] != "Lost focus after 2 minutes and lost 3 coins." {
		t.Fatalf("unexpected posts: %v", got)
	}
}

func TestProbeWordsTheOutcome(t *testing.T) {
	t.Parallel()
	ok, err := newInteractor(&messengerStub{reply: &domain.Response{OK: true}}).Test(context.Background())
	if err != nil || !ok.OK || ok.Message != "Success!" {
		t.Fatalf("unexpected probe result: %+v err=%v", ok, err)
	}

	off, err := newInteractor(&messengerStub{}).Test(context.Background())
	if err == nil || off.OK || off.Message != "The API call failed." {
		t.Fatalf("disabled messenger must fail the probe: %+v err=%v", off, err)
	}
}

func TestPluginQueriesWithEmptyManifest(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&messengerStub{})
	plugins, err := uc.ListPlugins(context.Background())
	if err != nil || len(plugins) != 0 {
		t.Fatalf("expected no plugins, got %v err=%v", plugins, err)
	}
	checks, err := uc.Doctor(context.Background())
	if err != nil || len(checks) != 0 {
		t.Fatalf("expected no checks, got %v err=%v", checks, err)
	}
}
