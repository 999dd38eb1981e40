package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okanerden/lingua/internal/store"
)

// Snapshot gathers everything one profile owns for a full export.
type Snapshot struct {
	Profile    string             `json:"profile"`
	ExportedAt string             `json:"exported_at"`
	Tracker    store.TrackerLog   `json:"tracker"`
	Goals      []store.MonthGoals `json:"goals"`
	Resources  []store.Resource   `json:"resources"`
	Radar      store.RadarLog     `json:"radar"`
	Plan       store.DailyPlan    `json:"daily_plan"`
}

// Gather collects one profile's documents into a Snapshot.
func Gather(s *store.Store, profile string) (Snapshot, error) {
	snap := Snapshot{
		Profile:    profile,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	var err error
	if snap.Tracker, err = s.Tracker(profile); err != nil {
		return snap, err
	}
	if snap.Goals, err = s.AllGoals(profile); err != nil {
		return snap, err
	}
	if snap.Resources, err = s.Resources(profile); err != nil {
		return snap, err
	}
	if snap.Radar, err = s.Snapshots(profile); err != nil {
		return snap, err
	}
	if snap.Plan, err = s.Plan(profile); err != nil {
		return snap, err
	}
	return snap, nil
}

// ToJSON writes the full profile snapshot as indented JSON.
func ToJSON(snap Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
