package tui

import (
	"strings"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTracker
	viewGoals
	viewResources
	viewRadar
	viewProfiles
	viewSettings
)

var viewNames = []string{"Dashboard", "Tracker", "Goals", "Resources", "Radar", "Profiles", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// profileSwitchedMsg tells the app to rebuild every view for the new id.
type profileSwitchedMsg struct {
	id string
}

type settingsSavedMsg struct {
	theme string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errStatus(err error) statusMsg {
	return statusMsg{text: err.Error(), isError: true}
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// monthLabel renders a 2006-01 key as "January 2006"; bad keys pass through.
func monthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

func shiftMonth(month string, delta int) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.AddDate(0, delta, 0).Format("2006-01")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, w int) string {
	if w <= 0 || len(s) <= w {
		return s
	}
	if w <= 1 {
		return s[:w]
	}
	return s[:w-1] + "…"
}
