package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"focusflow/internal/modules/notify/domain"
	notifyout "focusflow/internal/modules/notify/port/out"
)

// FileManifestStore reads plugins/plugins.json. A missing or blank file
// means no notifier plugins are installed.
type FileManifestStore struct {
	path string
}

func NewFileManifestStore(path string) notifyout.ManifestStore {
	return &FileManifestStore{path: path}
}

// notifierRecord is one entry of the file. Capabilities are matched case
// insensitively and must name something a notifier can deliver.
type notifierRecord struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Binary       string   `json:"binary"`
	SHA256       string   `json:"sha256"`
	Enabled      bool     `json:"enabled"`
	Capabilities []string `json:"capabilities"`
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read notifier manifests: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.Manifest{}, nil
	}
	var records []notifierRecord
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode notifier manifests: %w", err)
	}

	dir := filepath.Dir(s.path)
	manifests := make([]domain.Manifest, 0, len(records))
	for n, r := range records {
		capabilities, err := notifierCapabilities(r.Capabilities)
		if err != nil {
			return nil, fmt.Errorf("notifier manifest %d (%s): %w", n, r.Name, err)
		}
		binary := r.Binary
		if binary != "" && !filepath.IsAbs(binary) {
			binary = filepath.Join(dir, binary)
		}
		manifests = append(manifests, domain.Manifest{
			Name:         strings.TrimSpace(r.Name),
			Version:      r.Version,
			Binary:       binary,
			SHA256:       strings.ToLower(r.SHA256),
			Enabled:      r.Enabled,
			Capabilities: capabilities,
		})
	}
	return manifests, nil
}

// notifierCapabilities leaves an empty list for Validate to report so doctor
// can still show the entry.
func notifierCapabilities(raw []string) ([]domain.Capability, error) {
	out := make([]domain.Capability, 0, len(raw))
	for _, name := range raw {
		capability := domain.Capability(strings.ToLower(strings.TrimSpace(name)))
		if err := capability.Validate(); err != nil {
			return nil, err
		}
		out = append(out, capability)
	}
	return out, nil
}
