package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusflow/internal/modules/focus/domain"
	"focusflow/internal/modules/focus/dto"
	focusin "focusflow/internal/modules/focus/port/in"
	focusout "focusflow/internal/modules/focus/port/out"
	"focusflow/internal/modules/focus/service"
	apperrors "focusflow/internal/platform/errors"
)

// Interactor drives the run state machine. Transitions are serialized so a
// tick racing a focus change cannot resolve the same run twice.
type Interactor struct {
	mu       sync.Mutex
	svc      *service.LifecycleService
	wallet   focusout.Wallet
	passes   focusout.PassLedger
	notifier focusout.Notifier
	build    focusout.BuildClearer
	recorder focusout.Recorder
	logger   hclog.Logger
}

func NewInteractor(
	svc *service.LifecycleService,
	wallet focusout.Wallet,
	passes focusout.PassLedger,
	notifier focusout.Notifier,
	build focusout.BuildClearer,
	recorder focusout.Recorder,
	logger hclog.Logger,
) focusin.Usecase {
	if notifier == nil {
		notifier = silentNotifier{}
	}
	if build == nil {
		build = noBuild{}
	}
	if recorder == nil {
		recorder = noRecorder{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{
		svc:      svc,
		wallet:   wallet,
		passes:   passes,
		notifier: notifier,
		build:    build,
		recorder: recorder,
		logger:   logger,
	}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.OutcomeOutput, error) {
	if err := domain.ValidateDuration(input.Duration); err != nil {
		return dto.OutcomeOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	run, err := i.svc.Run(ctx)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	if run.Phase() != domain.PhaseIdle {
		return dto.OutcomeOutput{}, apperrors.ErrActiveSessionExists
	}
	now := i.svc.Now()
	next := domain.Run{TimerStart: now, Configured: input.Duration, TaskID: input.TaskID}
	if err := i.svc.SaveRun(ctx, next); err != nil {
		return dto.OutcomeOutput{}, err
	}
	i.logger.Info("session started", "duration", input.Duration, "task", input.TaskID)
	i.notifier.Started(next)
	return toOutcome(domain.Outcome{Kind: domain.OutcomeStarted, Phase: domain.PhaseRunning, Run: next}, now), nil
}

func (i *Interactor) Tick(ctx context.Context) (dto.OutcomeOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	run, err := i.svc.Run(ctx)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	now := i.svc.Now()
	outcome, err := i.tick(ctx, run, now)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	return toOutcome(outcome, now), nil
}

func (i *Interactor) Interrupt(ctx context.Context) (dto.OutcomeOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	run, err := i.svc.Run(ctx)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	now := i.svc.Now()
	if run.Phase() != domain.PhaseRunning {
		return toOutcome(noop(run), now), nil
	}
	outcome, err := i.tick(ctx, run, now)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	if outcome.Resolved() {
		return toOutcome(outcome, now), nil
	}
	next := run.Interrupted(now)
	if err := i.svc.SaveRun(ctx, next); err != nil {
		return dto.OutcomeOutput{}, err
	}
	i.logger.Debug("session interrupted", "at", now)
	return toOutcome(domain.Outcome{Kind: domain.OutcomeInterrupted, Phase: domain.PhaseFailingGrace, Run: next}, now), nil
}

func (i *Interactor) Return(ctx context.Context) (dto.OutcomeOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	run, err := i.svc.Run(ctx)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	now := i.svc.Now()
	if run.Phase() != domain.PhaseFailingGrace {
		return toOutcome(noop(run), now), nil
	}

	distraction := run.DistractionLength(now)
	kind, ownedID, err := i.selectPass(ctx, distraction)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	if kind == "" {
		outcome, err := i.fail(ctx, run)
		if err != nil {
			return dto.OutcomeOutput{}, err
		}
		return toOutcome(outcome, now), nil
	}

	next := run.Redeemed(distraction)
	if err := i.svc.SaveRun(ctx, next); err != nil {
		return dto.OutcomeOutput{}, err
	}
	if err := i.passes.Consume(ctx, ownedID); err != nil {
		i.restore(ctx, run)
		return dto.OutcomeOutput{}, fmt.Errorf("consume %s: %w", kind, err)
	}
	i.recorder.PassRedeemed(kind)
	i.logger.Info("break pass redeemed", "kind", kind, "distraction", distraction)

	outcome, err := i.tick(ctx, next, now)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	if !outcome.Resolved() {
		outcome = domain.Outcome{Kind: domain.OutcomeRedeemed, Phase: domain.PhaseRunning, Run: next}
	}
	outcome.Pass = kind
	return toOutcome(outcome, now), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	run, err := i.svc.Run(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(run, i.svc.Now()), nil
}

// LastSession reports ErrNotFound both when there is no history and when the
// history cannot be read.
func (i *Interactor) LastSession(ctx context.Context) (dto.SessionOutput, error) {
	sessions, err := i.svc.Sessions(ctx, 1)
	if err != nil {
		i.logger.Warn("query last session", "error", err)
		return dto.SessionOutput{}, apperrors.ErrNotFound
	}
	if len(sessions) == 0 {
		return dto.SessionOutput{}, apperrors.ErrNotFound
	}
	return toSession(sessions[0]), nil
}

func (i *Interactor) ListSessions(ctx context.Context) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.Sessions(ctx, 0)
	if err != nil {
		i.logger.Warn("query sessions", "error", err)
		return []dto.SessionOutput{}, nil
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSession(s))
	}
	return out, nil
}

func (i *Interactor) GetSession(ctx context.Context, id string) (dto.SessionOutput, error) {
	if id == "" {
		return dto.SessionOutput{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	s, err := i.svc.Session(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSession(s), nil
}

func (i *Interactor) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	return i.svc.Forget(ctx, id)
}

func (i *Interactor) tick(ctx context.Context, run domain.Run, now time.Time) (domain.Outcome, error) {
	if run.Phase() != domain.PhaseRunning {
		return noop(run), nil
	}
	if !run.Expired(now) {
		return domain.Outcome{Kind: domain.OutcomeTicked, Phase: domain.PhaseRunning, Run: run}, nil
	}
	return i.complete(ctx, run)
}

// complete and fail commit the idle run state before any history or coins
// move. A later failure puts the resolved run back so the next call can
// settle it once.
func (i *Interactor) complete(ctx context.Context, run domain.Run) (domain.Outcome, error) {
	actual := run.CompletedFocus()
	coins := domain.CoinsWon(actual)
	idle := run.Idle()
	if err := i.svc.SaveRun(ctx, idle); err != nil {
		return domain.Outcome{}, err
	}
	session, err := i.svc.Record(ctx, run.TimerStart, run, actual, coins, false)
	if err != nil {
		i.restore(ctx, run)
		return domain.Outcome{}, fmt.Errorf("record completed session: %w", err)
	}
	if _, err := i.wallet.Credit(ctx, coins); err != nil {
		i.undo(ctx, session)
		i.restore(ctx, run)
		return domain.Outcome{}, fmt.Errorf("credit reward: %w", err)
	}
	i.recorder.SessionResolved(string(domain.OutcomeCompleted))
	i.logger.Info("session completed", "id", session.ID, "coins", coins, "focus", actual)
	i.notifier.Completed(session)
	return domain.Outcome{Kind: domain.OutcomeCompleted, Phase: domain.PhaseResolved, Run: idle, Session: &session}, nil
}

func (i *Interactor) fail(ctx context.Context, run domain.Run) (domain.Outcome, error) {
	balance, err := i.wallet.Balance(ctx)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("read balance: %w", err)
	}
	lost := domain.CoinsLost(balance)
	actual := run.FailedFocus()
	idle := run.Idle()
	if err := i.svc.SaveRun(ctx, idle); err != nil {
		return domain.Outcome{}, err
	}
	session, err := i.svc.Record(ctx, run.FailingSessionStart, run, actual, -lost, true)
	if err != nil {
		i.restore(ctx, run)
		return domain.Outcome{}, fmt.Errorf("record failed session: %w", err)
	}
	if _, err := i.wallet.Debit(ctx, lost); err != nil {
		i.undo(ctx, session)
		i.restore(ctx, run)
		return domain.Outcome{}, fmt.Errorf("debit penalty: %w", err)
	}
	if err := i.build.RequestClear(ctx); err != nil {
		i.logger.Warn("flag build for clearing", "error", err)
	}
	i.recorder.SessionResolved(string(domain.OutcomeFailed))
	i.logger.Info("session failed", "id", session.ID, "lost", lost, "focus", actual)
	i.notifier.Failed(session)
	return domain.Outcome{Kind: domain.OutcomeFailed, Phase: domain.PhaseResolved, Run: idle, Session: &session}, nil
}

// selectPass returns the owned pass to consume for distraction, or an empty
// kind when none applies.
func (i *Interactor) selectPass(ctx context.Context, distraction time.Duration) (string, string, error) {
	var lookupErr error
	first := map[string]string{}
	owned := func(kind string) bool {
		if lookupErr != nil {
			return false
		}
		ids, err := i.passes.Passes(ctx, kind)
		if err != nil {
			lookupErr = fmt.Errorf("list %s passes: %w", kind, err)
			return false
		}
		if len(ids) == 0 {
			return false
		}
		first[kind] = ids[0]
		return true
	}
	kind, ok := domain.SelectPass(distraction, owned)
	if lookupErr != nil {
		return "", "", lookupErr
	}
	if !ok {
		return "", "", nil
	}
	return kind, first[kind], nil
}

func (i *Interactor) undo(ctx context.Context, session domain.FocusSession) {
	if err := i.svc.Forget(ctx, session.ID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		i.logger.Error("remove unsettled session", "id", session.ID, "error", err)
	}
}

func (i *Interactor) restore(ctx context.Context, run domain.Run) {
	if err := i.svc.SaveRun(ctx, run); err != nil {
		i.logger.Error("restore run state", "phase", run.Phase().String(), "error", err)
	}
}

func noop(run domain.Run) domain.Outcome {
	return domain.Outcome{Kind: domain.OutcomeNoop, Phase: run.Phase(), Run: run}
}

func toOutcome(o domain.Outcome, now time.Time) dto.OutcomeOutput {
	out := dto.OutcomeOutput{
		Outcome: string(o.Kind),
		Phase:   o.Phase.String(),
		Pass:    o.Pass,
		Status:  toStatus(o.Run, now),
	}
	if o.Session != nil {
		s := toSession(*o.Session)
		out.Session = &s
	}
	return out
}

func toStatus(run domain.Run, now time.Time) dto.StatusOutput {
	return dto.StatusOutput{
		Phase:                  run.Phase().String(),
		Configured:             run.Configured,
		AccumulatedDistraction: run.AccumulatedDistraction,
		Remaining:              run.Remaining(now),
		EndsAt:                 run.EndsAt(),
		Progress:               run.Progress(now),
		FailingSince:           run.FailingInstant,
		TaskID:                 run.TaskID,
	}
}

func toSession(s domain.FocusSession) dto.SessionOutput {
	return dto.SessionOutput{
		ID:              s.ID,
		StartDate:       s.StartDate,
		PlannedDuration: s.PlannedDuration,
		ActualDuration:  s.ActualDuration,
		CoinsDelta:      s.CoinsDelta,
		Failed:          s.Failed,
		TaskID:          s.TaskID,
	}
}

type silentNotifier struct{}

func (silentNotifier) Started(domain.Run)            {}
func (silentNotifier) Completed(domain.FocusSession) {}
func (silentNotifier) Failed(domain.FocusSession)    {}

type noBuild struct{}

func (noBuild) RequestClear(context.Context) error { return nil }

type noRecorder struct{}

func (noRecorder) SessionResolved(string) {}
func (noRecorder) PassRedeemed(string)    {}
