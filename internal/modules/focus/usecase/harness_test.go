package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	focusout "focusflow/internal/modules/focus/adapter/out"
	"focusflow/internal/modules/focus/domain"
	focusin "focusflow/internal/modules/focus/port/in"
	"focusflow/internal/modules/focus/service"
	"focusflow/internal/modules/focus/usecase"
	walletout "focusflow/internal/modules/wallet/adapter/out"
	walletservice "focusflow/internal/modules/wallet/service"
	walletusecase "focusflow/internal/modules/wallet/usecase"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/logging"
	"focusflow/internal/platform/settings"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}

type seqID struct {
	mu sync.Mutex
	n  int
}

func (g *seqID) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("sess-%d", g.n)
}

type memorySessions struct {
	mu       sync.Mutex
	sessions []domain.FocusSession
	failList bool
}

func (m *memorySessions) Insert(_ context.Context, s domain.FocusSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sessions {
		if s.ID == id {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *memorySessions) Get(_ context.Context, id string) (domain.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.FocusSession{}, apperrors.ErrNotFound
}

func (m *memorySessions) List(_ context.Context, limit int) ([]domain.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errors.New("disk on fire")
	}
	out := append([]domain.FocusSession(nil), m.sessions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memorySessions) all() []domain.FocusSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FocusSession(nil), m.sessions...)
}

// fakePasses holds owned pass ids per kind in insertion order.
type fakePasses struct {
	mu          sync.Mutex
	owned       map[string][]string
	consumed    []string
	failConsume bool
}

func newFakePasses() *fakePasses {
	return &fakePasses{owned: map[string][]string{}}
}

func (p *fakePasses) give(kind string, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < n; i++ {
		p.owned[kind] = append(p.owned[kind], fmt.Sprintf("%s#%d", kind, len(p.owned[kind])+1))
	}
}

func (p *fakePasses) count(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.owned[kind])
}

func (p *fakePasses) Passes(_ context.Context, kind string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.owned[kind]...), nil
}

func (p *fakePasses) Consume(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failConsume {
		p.failConsume = false
		return errors.New("ledger locked")
	}
	for kind, ids := range p.owned {
		for i, owned := range ids {
			if owned == id {
				p.owned[kind] = append(ids[:i:i], ids[i+1:]...)
				p.consumed = append(p.consumed, id)
				return nil
			}
		}
	}
	return apperrors.ErrNotFound
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) add(e string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) Started(domain.Run)            { n.add("started") }
func (n *recordingNotifier) Completed(domain.FocusSession) { n.add("completed") }
func (n *recordingNotifier) Failed(domain.FocusSession)    { n.add("failed") }

func (n *recordingNotifier) seen() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type fakeBuild struct{ requested int }

func (b *fakeBuild) RequestClear(context.Context) error {
	b.requested++
	return nil
}

type noopRecorder struct{}

func (noopRecorder) CoinsMoved(string, int64) {}

// flakyStore fails the next write of one key.
type flakyStore struct {
	settings.Store
	mu  sync.Mutex
	key string
}

func (f *flakyStore) failNext(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.key = key
}

func (f *flakyStore) trip(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.key != "" && f.key == key {
		f.key = ""
		return errors.New("disk full")
	}
	return nil
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if err := f.trip(key); err != nil {
		return err
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if err := f.trip(key); err != nil {
		return err
	}
	return f.Store.Delete(ctx, key)
}

type engine struct {
	clock    *fakeClock
	backend  *flakyStore
	settings *settings.Settings
	sessions *memorySessions
	passes   *fakePasses
	notifier *recordingNotifier
	build    *fakeBuild
	uc       focusin.Usecase
}

func newEngine(t testing.TB) *engine {
	t.Helper()
	backend := &flakyStore{Store: settings.NewMemoryStore()}
	e := &engine{
		clock:    &fakeClock{now: t0},
		backend:  backend,
		settings: settings.New(backend),
		sessions: &memorySessions{},
		passes:   newFakePasses(),
		notifier: &recordingNotifier{},
		build:    &fakeBuild{},
	}
	e.uc = e.interactor()
	return e
}

// interactor builds a fresh engine over the same persisted state.
func (e *engine) interactor() focusin.Usecase {
	wallet := walletusecase.NewInteractor(walletservice.NewWalletService(walletout.NewSettingsBalanceStore(e.settings), noopRecorder{}))
	svc := service.NewLifecycleService(e.clock, &seqID{}, focusout.NewSettingsRunStateStore(e.settings), e.sessions)
	return usecase.NewInteractor(svc, focusout.NewWalletAdapter(wallet), e.passes, e.notifier, e.build, nil, logging.Discard())
}

func (e *engine) at(offset time.Duration) {
	e.clock.Set(t0.Add(offset))
}

func (e *engine) balance(t testing.TB) int64 {
	t.Helper()
	coins, err := e.settings.Int(context.Background(), "coins")
	if err != nil {
		t.Fatalf("read balance: %v", err)
	}
	return coins
}

func (e *engine) setBalance(t testing.TB, coins int64) {
	t.Helper()
	if err := e.settings.SetInt(context.Background(), "coins", coins); err != nil {
		t.Fatalf("set balance: %v", err)
	}
}
