package service

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusflow/internal/modules/notify/domain"
	notifyout "focusflow/internal/modules/notify/port/out"
)

// Sink delivers one rendered note somewhere outside the app.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, note domain.Note) error
}

// Dispatcher fans notes out to its sinks in the background. Failures are
// logged and counted, never returned.
type Dispatcher struct {
	sinks    []Sink
	recorder notifyout.Recorder
	logger   hclog.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(sinks []Sink, recorder notifyout.Recorder, logger hclog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{sinks: sinks, recorder: recorder, logger: logger, timeout: timeout}
}

func (d *Dispatcher) Publish(event domain.Event) {
	note, err := domain.Render(event)
	if err != nil {
		d.logger.Warn("drop notification", "error", err)
		return
	}
	for _, sink := range d.sinks {
		d.wg.Add(1)
		go d.deliver(sink, note)
	}
}

func (d *Dispatcher) deliver(sink Sink, note domain.Note) {
	defer d.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	err := sink.Deliver(ctx, note)
	if d.recorder != nil {
		d.recorder.NotificationSent(sink.Name(), err)
	}
	if err != nil {
		d.logger.Debug("notification not delivered", "sink", sink.Name(), "event", note.Kind, "error", err)
		return
	}
	d.logger.Trace("notification delivered", "sink", sink.Name(), "event", note.Kind)
}

// Drain blocks until in-flight deliveries finish or ctx is done.
func (d *Dispatcher) Drain(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Debug("stopped waiting for notifications", "error", ctx.Err())
	}
}
