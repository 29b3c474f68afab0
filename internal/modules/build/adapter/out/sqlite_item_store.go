package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusflow/internal/modules/build/domain"
	buildout "focusflow/internal/modules/build/port/out"
	apperrors "focusflow/internal/platform/errors"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteItemStore struct {
	db *sql.DB
}

func NewSQLiteItemStore(db *sql.DB) buildout.ItemStore {
	return &SQLiteItemStore{db: db}
}

func (s *SQLiteItemStore) Insert(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO build_items (id, content_kind, content_name, width, height, offset_x, offset_y, z_index, placed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		item.ID,
		string(item.Kind),
		item.Name,
		item.Width,
		item.Height,
		item.OffsetX,
		item.OffsetY,
		item.ZIndex,
		item.PlacedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert build item: %w", err)
	}
	return nil
}

func (s *SQLiteItemStore) Move(ctx context.Context, id string, x, y float64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE build_items SET offset_x = ?, offset_y = ? WHERE id = ?`, x, y, id)
	if err != nil {
		return fmt.Errorf("move build item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("move build item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: build item %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteItemStore) Get(ctx context.Context, id string) (domain.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, selectItems+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, fmt.Errorf("%w: build item %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("get build item: %w", err)
	}
	return item, nil
}

func (s *SQLiteItemStore) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItems+` ORDER BY z_index, placed_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list build items: %w", err)
	}
	defer rows.Close()

	out := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list build items: %w", err)
	}
	return out, nil
}

func (s *SQLiteItemStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM build_items`); err != nil {
		return fmt.Errorf("clear build items: %w", err)
	}
	return nil
}

const selectItems = `SELECT id, content_kind, content_name, width, height, offset_x, offset_y, z_index, placed_at FROM build_items`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (domain.Item, error) {
	var (
		item   domain.Item
		kind   string
		placed string
	)
	if err := row.Scan(&item.ID, &kind, &item.Name, &item.Width, &item.Height, &item.OffsetX, &item.OffsetY, &item.ZIndex, &placed); err != nil {
		return domain.Item{}, err
	}
	placedAt, err := time.Parse(timeLayout, placed)
	if err != nil {
		return domain.Item{}, fmt.Errorf("parse placed at %q: %w", placed, err)
	}
	item.Kind = domain.ContentKind(kind)
	item.PlacedAt = placedAt
	return item, nil
}
