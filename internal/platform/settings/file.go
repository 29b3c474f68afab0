package settings

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileStore keeps settings in a single YAML document. Writes from other
// processes are picked up by Watch, which polls the file's modification
// stamp and announces the keys whose values differ.
type FileStore struct {
	path    string
	hub     *hub
	replace func(from, to string) error

	mu     sync.Mutex
	values map[string]string
	stamp  fileStamp
}

type fileStamp struct {
	modTime time.Time
	size    int64
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, hub: newHub(), replace: os.Rename, values: map[string]string{}}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.refresh(); err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if err := s.mutate(func(values map[string]string) { values[key] = value }); err != nil {
		return err
	}
	s.hub.publish(key)
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := s.mutate(func(values map[string]string) { delete(values, key) }); err != nil {
		return err
	}
	s.hub.publish(key)
	return nil
}

func (s *FileStore) Subscribe(key string) (<-chan Change, func()) {
	return s.hub.subscribe(key)
}

// Watch polls until ctx is done.
func (s *FileStore) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			changed, err := s.refresh()
			s.mu.Unlock()
			if err != nil {
				continue
			}
			for _, key := range changed {
				s.hub.publish(key)
			}
		}
	}
}

func (s *FileStore) mutate(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.refresh(); err != nil {
		return err
	}
	next := maps.Clone(s.values)
	fn(next)
	if err := s.write(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// refresh re-reads the file when its stamp moved and returns the keys whose
// values changed. Caller holds mu.
func (s *FileStore) refresh() ([]string, error) {
	stamp, err := s.readStamp()
	if err != nil {
		return nil, err
	}
	if stamp == s.stamp {
		return nil, nil
	}
	before := s.values
	if err := s.reload(); err != nil {
		return nil, err
	}
	return diffKeys(before, s.values), nil
}

func (s *FileStore) reload() error {
	stamp, err := s.readStamp()
	if err != nil {
		return err
	}
	values := map[string]string{}
	raw, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read settings: %w", err)
	}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &values); err != nil {
			return fmt.Errorf("decode settings: %w", err)
		}
	}
	s.values = values
	s.stamp = stamp
	return nil
}

// write replaces the file with values. The cache is left to the caller.
func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	raw, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("create settings temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close settings temp file: %w", err)
	}
	if err := s.replace(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace settings: %w", err)
	}
	stamp, err := s.readStamp()
	if err != nil {
		return err
	}
	s.stamp = stamp
	return nil
}

func (s *FileStore) readStamp() (fileStamp, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileStamp{}, nil
		}
		return fileStamp{}, fmt.Errorf("stat settings: %w", err)
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, nil
}

func diffKeys(before, after map[string]string) []string {
	var keys []string
	for k, v := range after {
		if old, ok := before[k]; !ok || old != v {
			keys = append(keys, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
