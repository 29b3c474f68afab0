package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"focusflow/internal/modules/notify/domain"
	notifyout "focusflow/internal/modules/notify/port/out"
)

// PluginService runs the notifier plugins declared in the manifest store.
// It doubles as a Sink that forwards each note to every enabled plugin.
type PluginService struct {
	store  notifyout.ManifestStore
	host   notifyout.Host
	logger hclog.Logger
}

func NewPluginService(store notifyout.ManifestStore, host notifyout.Host, logger hclog.Logger) *PluginService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PluginService{store: store, host: host, logger: logger}
}

func (s *PluginService) Name() string { return "plugins" }

func (s *PluginService) Deliver(ctx context.Context, note domain.Note) error {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		restricted, ok := m.Restrict(note)
		if !ok {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.host.Notify(ctx, m, restricted); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %s", domain.ErrPluginTimeout, m.Name)
			}
			errs = append(errs, fmt.Errorf("plugin %s: %w", m.Name, err))
			continue
		}
		s.logger.Trace("plugin notified", "plugin", m.Name, "event", note.Kind)
	}
	return errors.Join(errs...)
}

func (s *PluginService) List(ctx context.Context) ([]domain.Manifest, error) {
	return s.loadValidated(ctx)
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

func (s *PluginService) Doctor(ctx context.Context) ([]DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		switch {
		case !result.BinaryReachable:
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		case !result.ChecksumValid:
			result.Error = "checksum mismatch"
		case !m.Enabled:
			result.Error = domain.ErrPluginDisabled.Error()
		case s.host != nil:
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
