// Package settings is the process-wide key/value store. Values are kept as
// strings by the backends; Settings layers typed accessors on top.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Change announces that key was written or deleted. Receivers re-read the
// store; the notification carries no value.
type Change struct {
	Key string
}

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Subscribe returns a channel that receives a Change whenever key is
	// modified, by this process or another one sharing the backend.
	Subscribe(key string) (<-chan Change, func())
}

type Settings struct {
	store Store
}

func New(store Store) *Settings {
	return &Settings{store: store}
}

func (s *Settings) Store() Store { return s.store }

func (s *Settings) String(ctx context.Context, key string) (string, error) {
	v, _, err := s.store.Get(ctx, key)
	return v, err
}

func (s *Settings) SetString(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, key, value)
}

// Int returns 0 for a missing key.
func (s *Settings) Int(ctx context.Context, key string) (int64, error) {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok || v == "" {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s is not an integer: %w", key, err)
	}
	return n, nil
}

func (s *Settings) SetInt(ctx context.Context, key string, value int64) error {
	return s.store.Set(ctx, key, strconv.FormatInt(value, 10))
}

// Bool returns false for a missing key.
func (s *Settings) Bool(ctx context.Context, key string) (bool, error) {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok || v == "" {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("setting %s is not a boolean: %w", key, err)
	}
	return b, nil
}

func (s *Settings) SetBool(ctx context.Context, key string, value bool) error {
	return s.store.Set(ctx, key, strconv.FormatBool(value))
}

// Time returns the zero time for a missing key.
func (s *Settings) Time(ctx context.Context, key string) (time.Time, error) {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("setting %s is not an instant: %w", key, err)
	}
	return t, nil
}

// SetTime deletes the key when value is zero.
func (s *Settings) SetTime(ctx context.Context, key string, value time.Time) error {
	if value.IsZero() {
		return s.store.Delete(ctx, key)
	}
	return s.store.Set(ctx, key, value.UTC().Format(time.RFC3339Nano))
}

func (s *Settings) Bytes(ctx context.Context, key string) ([]byte, error) {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	return []byte(v), nil
}

func (s *Settings) SetBytes(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, key, string(value))
}

func (s *Settings) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

func (s *Settings) Subscribe(key string) (<-chan Change, func()) {
	return s.store.Subscribe(key)
}
