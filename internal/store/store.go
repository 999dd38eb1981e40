package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Per-profile document filenames.
const (
	trackerFile   = "tracker.json"
	goalsFile     = "goals.json"
	resourcesFile = "resources.json"
	radarFile     = "radar.json"
	dailyPlanFile = "dailyplan.json"
)

// Global document filenames.
const (
	registryFile = "profiles.json"
	settingsFile = "settings.json"
)

// Store reads and writes one JSON document per concern. Per-profile
// documents live under <root>/profiles/<id>/; the registry and settings are
// global. Every write replaces the whole document atomically. Load methods
// always return a usable document: when a file is unreadable or corrupt the
// default document is returned alongside a *StorageError so the caller can
// warn without crashing.
type Store struct {
	root string
}

// New opens (or creates) the data directory at root.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "profiles"), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the data root directory.
func (s *Store) Root() string { return s.root }

// Startup runs the maintenance every launch performs: guarantee the default
// profile, heal a dangling active id, drop orphaned profile directories and
// archive goal months that have elapsed.
func (s *Store) Startup() error {
	if err := s.EnsureDefaultProfile(); err != nil {
		return err
	}
	if _, err := s.CleanupOrphanedDirs(); err != nil {
		return err
	}
	reg, err := s.Registry()
	if err != nil {
		return err
	}
	for _, p := range reg.Profiles {
		if err := s.AutoArchivePastMonths(p.ID, CurrentMonth()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) profilesDir() string {
	return filepath.Join(s.root, "profiles")
}

func (s *Store) profileDir(id string) string {
	return filepath.Join(s.profilesDir(), id)
}

func (s *Store) profileDoc(id, name string) string {
	return filepath.Join(s.profileDir(id), name)
}

func (s *Store) globalDoc(name string) string {
	return filepath.Join(s.root, name)
}

// loadDoc unmarshals the document at path into v. A missing file is not an
// error: v is left untouched and found=false is returned. Unreadable or
// corrupt documents yield a *StorageError.
func loadDoc(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StorageError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &StorageError{Op: "read", Path: path, Err: err}
	}
	return true, nil
}

// saveDoc writes v as indented JSON via a temp file and rename so a failed
// write never truncates the previous document.
func saveDoc(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// DefaultDataDir returns ~/.config/lingua (platform equivalent).
func DefaultDataDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "lingua"), nil
}
