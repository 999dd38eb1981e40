package store

import (
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxProfiles caps the registry size.
	MaxProfiles = 50
	// MinProfileNameLen and MaxProfileNameLen bound display names.
	MinProfileNameLen = 1
	MaxProfileNameLen = 30
	// DefaultProfileID always exists and can never be deleted.
	DefaultProfileID = "default"
)

// Directory names that can never become profile ids.
var reservedIDs = []string{"settings", "profiles", "temp", "backup"}

func defaultRegistry() Registry {
	now := time.Now().Format(time.RFC3339)
	return Registry{
		ActiveProfile: DefaultProfileID,
		Profiles: []Profile{{
			ID:          DefaultProfileID,
			DisplayName: "Default",
			CreatedAt:   now,
			LastUsed:    now,
		}},
		Version: "1.0",
	}
}

// Registry loads the global profiles document, substituting the default
// registry when missing or unreadable.
func (s *Store) Registry() (Registry, error) {
	var reg Registry
	found, err := loadDoc(s.globalDoc(registryFile), &reg)
	if err != nil || !found {
		return defaultRegistry(), err
	}
	if len(reg.Profiles) == 0 {
		return defaultRegistry(), nil
	}
	return reg, nil
}

func (s *Store) saveRegistry(reg Registry) error {
	return saveDoc(s.globalDoc(registryFile), reg)
}

// ActiveProfileID returns the active profile, falling back to the first
// registered profile when the stored id is dangling.
func (s *Store) ActiveProfileID() (string, error) {
	reg, err := s.Registry()
	if err != nil {
		return DefaultProfileID, err
	}
	for _, p := range reg.Profiles {
		if p.ID == reg.ActiveProfile {
			return reg.ActiveProfile, nil
		}
	}
	return reg.Profiles[0].ID, nil
}

// ProfileExists reports whether id is registered.
func (s *Store) ProfileExists(id string) bool {
	reg, _ := s.Registry()
	for _, p := range reg.Profiles {
		if p.ID == id {
			return true
		}
	}
	return false
}

// slugify converts a display name to a filesystem-safe id: lowercase,
// unsafe characters stripped, whitespace runs collapsed to single hyphens.
func slugify(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxProfileNameLen {
		name = string(r[:MaxProfileNameLen])
	}
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		case strings.ContainsRune(`/\:*?"<>|.`, r):
			// drop filesystem-unsafe characters and dots (no traversal)
		default:
			b.WriteRune(r)
			lastHyphen = false
		}
	}
	return strings.Trim(b.String(), "-")
}

func validateProfileName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinProfileNameLen {
		return ValidationError{Field: "name", Reason: "profile name is too short"}
	}
	if utf8.RuneCountInString(name) > MaxProfileNameLen {
		return ValidationError{Field: "name", Reason: "profile name must be 30 characters or less"}
	}
	return nil
}

// CreateProfile registers a new profile and creates its empty document set.
// The id is derived from the name; collisions get a numeric suffix.
func (s *Store) CreateProfile(displayName string) (Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if err := validateProfileName(displayName); err != nil {
		return Profile{}, err
	}

	reg, err := s.Registry()
	if err != nil {
		return Profile{}, err
	}
	if len(reg.Profiles) >= MaxProfiles {
		return Profile{}, InvalidOperationError{
			Op:     "create profile",
			Reason: "maximum of 50 profiles reached",
		}
	}

	base := slugify(displayName)
	if base == "" {
		return Profile{}, ValidationError{Field: "name", Reason: "name contains only invalid characters"}
	}
	for _, r := range reservedIDs {
		if base == r {
			return Profile{}, ValidationError{Field: "name", Reason: "'" + displayName + "' is a reserved name"}
		}
	}

	taken := make(map[string]bool, len(reg.Profiles))
	for _, p := range reg.Profiles {
		taken[p.ID] = true
	}
	id := base
	for n := 1; taken[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}

	if err := s.initProfileDocs(id); err != nil {
		return Profile{}, err
	}

	now := time.Now().Format(time.RFC3339)
	p := Profile{ID: id, DisplayName: displayName, CreatedAt: now, LastUsed: now}
	reg.Profiles = append(reg.Profiles, p)
	if err := s.saveRegistry(reg); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// initProfileDocs writes the default document set for a fresh profile.
func (s *Store) initProfileDocs(id string) error {
	docs := map[string]any{
		trackerFile:   TrackerLog{},
		goalsFile:     map[string]MonthGoals{},
		resourcesFile: []Resource{},
		radarFile:     RadarLog{},
		dailyPlanFile: DailyPlan{},
	}
	for name, doc := range docs {
		if err := saveDoc(s.profileDoc(id, name), doc); err != nil {
			return err
		}
	}
	return nil
}

// RenameProfile changes the display name only; the id and every file
// location stay put.
func (s *Store) RenameProfile(id, newName string) error {
	newName = strings.TrimSpace(newName)
	if err := validateProfileName(newName); err != nil {
		return err
	}
	reg, err := s.Registry()
	if err != nil {
		return err
	}
	for i := range reg.Profiles {
		if reg.Profiles[i].ID == id {
			reg.Profiles[i].DisplayName = newName
			return s.saveRegistry(reg)
		}
	}
	return InvalidOperationError{Op: "rename profile", Reason: "profile '" + id + "' does not exist"}
}

// DeleteProfile removes a profile and its entire document directory. The
// active profile and the default profile are protected.
func (s *Store) DeleteProfile(id string) error {
	if id == DefaultProfileID {
		return InvalidOperationError{Op: "delete profile", Reason: "cannot delete the default profile"}
	}
	active, err := s.ActiveProfileID()
	if err != nil {
		return err
	}
	if id == active {
		return InvalidOperationError{Op: "delete profile", Reason: "cannot delete the active profile; switch first"}
	}

	reg, err := s.Registry()
	if err != nil {
		return err
	}
	kept := reg.Profiles[:0]
	removed := false
	for _, p := range reg.Profiles {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return InvalidOperationError{Op: "delete profile", Reason: "profile '" + id + "' does not exist"}
	}
	reg.Profiles = kept
	if err := s.saveRegistry(reg); err != nil {
		return err
	}
	if err := os.RemoveAll(s.profileDir(id)); err != nil {
		return &StorageError{Op: "write", Path: s.profileDir(id), Err: err}
	}
	return nil
}

// SetActiveProfile switches the active profile, stamps last_used and
// mirrors the id into the global settings for the next launch.
func (s *Store) SetActiveProfile(id string) error {
	reg, err := s.Registry()
	if err != nil {
		return err
	}
	found := false
	now := time.Now().Format(time.RFC3339)
	for i := range reg.Profiles {
		if reg.Profiles[i].ID == id {
			reg.Profiles[i].LastUsed = now
			found = true
			break
		}
	}
	if !found {
		return InvalidOperationError{Op: "switch profile", Reason: "profile '" + id + "' does not exist"}
	}
	reg.ActiveProfile = id
	if err := s.saveRegistry(reg); err != nil {
		return err
	}

	cfg, _ := s.Settings()
	cfg.LastActiveProfile = id
	return s.SaveSettings(cfg)
}

// EnsureDefaultProfile guarantees the registry and the default profile
// exist on disk, healing a dangling active id along the way.
func (s *Store) EnsureDefaultProfile() error {
	reg, _ := s.Registry()
	hasDefault := false
	activeOK := false
	for _, p := range reg.Profiles {
		if p.ID == DefaultProfileID {
			hasDefault = true
		}
		if p.ID == reg.ActiveProfile {
			activeOK = true
		}
	}
	if !hasDefault {
		now := time.Now().Format(time.RFC3339)
		reg.Profiles = append(reg.Profiles, Profile{
			ID:          DefaultProfileID,
			DisplayName: "Default",
			CreatedAt:   now,
			LastUsed:    now,
		})
	}
	if !activeOK {
		reg.ActiveProfile = DefaultProfileID
	}
	if err := s.saveRegistry(reg); err != nil {
		return err
	}
	if _, err := os.Stat(s.profileDoc(DefaultProfileID, trackerFile)); os.IsNotExist(err) {
		return s.initProfileDocs(DefaultProfileID)
	}
	return nil
}

// CleanupOrphanedDirs removes profile directories the registry no longer
// references and returns how many were dropped.
func (s *Store) CleanupOrphanedDirs() (int, error) {
	reg, err := s.Registry()
	if err != nil {
		return 0, err
	}
	registered := make(map[string]bool, len(reg.Profiles))
	for _, p := range reg.Profiles {
		registered[p.ID] = true
	}

	entries, err := os.ReadDir(s.profilesDir())
	if err != nil {
		return 0, &StorageError{Op: "read", Path: s.profilesDir(), Err: err}
	}
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || registered[e.Name()] {
			continue
		}
		if err := os.RemoveAll(s.profileDir(e.Name())); err != nil {
			continue
		}
		removed++
	}
	return removed, nil
}
