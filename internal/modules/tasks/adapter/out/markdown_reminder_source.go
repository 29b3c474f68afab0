package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"focusflow/internal/modules/tasks/domain"
	tasksout "focusflow/internal/modules/tasks/port/out"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/markdown"
)

// MarkdownReminderSource reads reminders from <dir>/<list>/*.md. Each note
// carries title, due, completed and notes in its frontmatter; the body is
// used as notes when the field is absent.
type MarkdownReminderSource struct {
	dir string
}

func NewMarkdownReminderSource(dir string) tasksout.ReminderSource {
	return &MarkdownReminderSource{dir: dir}
}

func (s *MarkdownReminderSource) Lists(_ context.Context) ([]domain.ReminderList, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.ReminderList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reminders dir: %w", err)
	}
	out := []domain.ReminderList{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		out = append(out, domain.ReminderList{ID: entry.Name(), Title: titleFromDir(entry.Name())})
	}
	return out, nil
}

func (s *MarkdownReminderSource) Reminders(_ context.Context, listID string) ([]domain.Reminder, error) {
	if listID == "" || strings.ContainsAny(listID, `/\`) || listID == ".." {
		return nil, fmt.Errorf("%w: reminder list %q", apperrors.ErrInvalidInput, listID)
	}
	listDir := filepath.Join(s.dir, listID)
	if _, err := os.Stat(listDir); err != nil {
		return nil, fmt.Errorf("%w: reminder list %s", apperrors.ErrNotFound, listID)
	}
	matches, err := filepath.Glob(filepath.Join(listDir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob reminders: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Reminder, 0, len(matches))
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		meta, body, err := markdown.SplitFrontmatter(string(content))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		reminder, err := fromFrontmatter(meta, body)
		if err != nil {
			return nil, fmt.Errorf("decode reminder %s: %w", path, err)
		}
		reminder.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		reminder.ListID = listID
		if reminder.Title == "" {
			reminder.Title = reminder.ID
		}
		out = append(out, reminder)
	}
	return out, nil
}

func fromFrontmatter(meta map[string]any, body string) (domain.Reminder, error) {
	due, err := asTime(meta["due"])
	if err != nil {
		return domain.Reminder{}, err
	}
	notes := asString(meta["notes"])
	if notes == "" {
		notes = strings.TrimSpace(body)
	}
	completed, _ := meta["completed"].(bool)
	return domain.Reminder{
		Title:     asString(meta["title"]),
		Notes:     notes,
		DueDate:   due,
		Completed: completed,
	}, nil
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// asTime accepts RFC 3339 instants and bare dates.
func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case string:
		if t == "" {
			return time.Time{}, nil
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, nil
		}
		parsed, err := time.Parse(time.DateOnly, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("due %q is not a date", t)
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("due has unsupported type %T", v)
	}
}

func titleFromDir(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}
