package service

import (
	"context"
	"errors"
	"fmt"

	"focusflow/internal/modules/notify/domain"
	notifyout "focusflow/internal/modules/notify/port/out"
)

type SlackSink struct {
	messenger notifyout.Messenger
}

func NewSlackSink(messenger notifyout.Messenger) *SlackSink {
	return &SlackSink{messenger: messenger}
}

func (s *SlackSink) Name() string { return "slack" }

// Deliver posts the message and then updates the status. A disabled half is
// skipped silently.
func (s *SlackSink) Deliver(ctx context.Context, note domain.Note) error {
	var errs []error
	if note.Text != "" {
		if err := skipDisabled(s.messenger.PostMessage(ctx, note.Text)); err != nil {
			errs = append(errs, fmt.Errorf("post message: %w", err))
		}
	}
	switch {
	case note.Status != "":
		if err := skipDisabled(s.messenger.SetStatus(ctx, note.Status, note.StatusExpiration)); err != nil {
			errs = append(errs, fmt.Errorf("set status: %w", err))
		}
	case note.ClearsStatus():
		if err := skipDisabled(s.messenger.ClearStatus(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("clear status: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Probe posts the settings screen's test message. Unlike Deliver it reports
// a disabled messenger as ErrNoResponse.
func (s *SlackSink) Probe(ctx context.Context) error {
	resp, err := s.messenger.PostMessage(ctx, "TEST")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNoResponse, err)
	}
	return resp.Err()
}

func skipDisabled(resp *domain.Response, err error) error {
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	return resp.Err()
}
