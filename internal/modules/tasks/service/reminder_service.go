package service

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"focusflow/internal/modules/tasks/domain"
	tasksout "focusflow/internal/modules/tasks/port/out"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/slug"
)

// ReminderService gates the external reminders behind the permission flag.
type ReminderService struct {
	access tasksout.ReminderAccess
	source tasksout.ReminderSource
	logger hclog.Logger
}

func NewReminderService(access tasksout.ReminderAccess, source tasksout.ReminderSource, logger hclog.Logger) *ReminderService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ReminderService{access: access, source: source, logger: logger}
}

// Reminders lists the selected list. Every failure degrades to an empty
// slice.
func (s *ReminderService) Reminders(ctx context.Context) []domain.Reminder {
	granted, err := s.access.Granted(ctx)
	if err != nil {
		s.logger.Warn("read reminder permission", "error", err)
		return []domain.Reminder{}
	}
	if !granted {
		return []domain.Reminder{}
	}
	listID, err := s.access.SelectedList(ctx)
	if err != nil {
		s.logger.Warn("read selected reminder list", "error", err)
		return []domain.Reminder{}
	}
	if listID == "" {
		return []domain.Reminder{}
	}
	reminders, err := s.source.Reminders(ctx, listID)
	if err != nil {
		s.logger.Warn("read reminders", "list", listID, "error", err)
		return []domain.Reminder{}
	}
	return reminders
}

func (s *ReminderService) Lists(ctx context.Context) ([]domain.ReminderList, error) {
	if err := s.requireAccess(ctx); err != nil {
		return nil, err
	}
	return s.source.Lists(ctx)
}

func (s *ReminderService) Grant(ctx context.Context) error {
	return s.access.SetGranted(ctx, true)
}

// Revoke keeps the selected list so a later grant picks up where it left off.
func (s *ReminderService) Revoke(ctx context.Context) error {
	return s.access.SetGranted(ctx, false)
}

// Select matches name against list ids and titles, ignoring case and
// punctuation.
func (s *ReminderService) Select(ctx context.Context, name string) (string, error) {
	lists, err := s.Lists(ctx)
	if err != nil {
		return "", err
	}
	want := slug.Make(name)
	for _, list := range lists {
		if list.ID == name || (want != "" && (slug.Make(list.ID) == want || slug.Make(list.Title) == want)) {
			if err := s.access.SelectList(ctx, list.ID); err != nil {
				return "", err
			}
			return list.ID, nil
		}
	}
	return "", fmt.Errorf("%w: reminder list %q", apperrors.ErrNotFound, name)
}

func (s *ReminderService) Access(ctx context.Context) (bool, string, error) {
	granted, err := s.access.Granted(ctx)
	if err != nil {
		return false, "", err
	}
	listID, err := s.access.SelectedList(ctx)
	if err != nil {
		return false, "", err
	}
	return granted, listID, nil
}

func (s *ReminderService) requireAccess(ctx context.Context) error {
	granted, err := s.access.Granted(ctx)
	if err != nil {
		return err
	}
	if !granted {
		return fmt.Errorf("%w: reminders", apperrors.ErrPermissionDenied)
	}
	return nil
}
