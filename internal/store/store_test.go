package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Startup(); err != nil {
		t.Fatalf("startup: %v", err)
	}
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewCreatesLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "profiles")); err != nil {
		t.Fatalf("profiles dir not created: %v", err)
	}
	if s.Root() != dir {
		t.Fatalf("root = %q, want %q", s.Root(), dir)
	}
}

func TestStartupCreatesDefaultProfile(t *testing.T) {
	s := newTestStore(t)

	if !s.ProfileExists(DefaultProfileID) {
		t.Fatal("default profile not registered")
	}
	if _, err := os.Stat(s.profileDoc(DefaultProfileID, trackerFile)); err != nil {
		t.Fatalf("default profile docs missing: %v", err)
	}
	id, err := s.ActiveProfileID()
	if err != nil {
		t.Fatal(err)
	}
	if id != DefaultProfileID {
		t.Fatalf("active profile = %q, want default", id)
	}
}

func TestDefaultDataDir(t *testing.T) {
	path, err := DefaultDataDir()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestCorruptDocReturnsDefaultAndError(t *testing.T) {
	s := newTestStore(t)

	path := s.profileDoc(DefaultProfileID, trackerFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := s.Tracker(DefaultProfileID)
	if err == nil {
		t.Fatal("expected error for corrupt document")
	}
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %T: %v", err, err)
	}
	if log == nil {
		t.Fatal("expected usable empty log alongside the error")
	}
}

// ============================================================
// Profiles
// ============================================================

func TestCreateProfile(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreateProfile("Spanish")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "spanish" || p.DisplayName != "Spanish" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.CreatedAt == "" || p.LastUsed == "" {
		t.Fatal("expected timestamps to be set")
	}
	if _, err := os.Stat(s.profileDoc("spanish", goalsFile)); err != nil {
		t.Fatalf("profile docs not initialized: %v", err)
	}
}

func TestCreateProfileNameBounds(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateProfile(""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.CreateProfile("   "); err == nil {
		t.Fatal("expected error for whitespace name")
	}

	long := ""
	for i := 0; i < 31; i++ {
		long += "a"
	}
	_, err := s.CreateProfile(long)
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for 31-char name, got %v", err)
	}

	// Exactly 30 characters is fine.
	if _, err := s.CreateProfile(long[:30]); err != nil {
		t.Fatalf("30-char name rejected: %v", err)
	}
}

func TestCreateProfileSlugCollision(t *testing.T) {
	s := newTestStore(t)

	p1, err := s.CreateProfile("Spanish")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.CreateProfile("Spanish")
	if err != nil {
		t.Fatal(err)
	}
	p3, err := s.CreateProfile("SPANISH")
	if err != nil {
		t.Fatal(err)
	}
	if p1.ID != "spanish" || p2.ID != "spanish-1" || p3.ID != "spanish-2" {
		t.Fatalf("ids = %q, %q, %q", p1.ID, p2.ID, p3.ID)
	}
}

func TestCreateProfileReservedName(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"settings", "Profiles", "TEMP", "backup"} {
		if _, err := s.CreateProfile(name); err == nil {
			t.Fatalf("expected %q to be rejected as reserved", name)
		}
	}
}

func TestCreateProfileCap(t *testing.T) {
	s := newTestStore(t)

	// Default profile already exists, so 49 more fill the registry.
	for i := 0; i < MaxProfiles-1; i++ {
		if _, err := s.CreateProfile("Lang " + string(rune('A'+i%26)) + string(rune('a'+i/26))); err != nil {
			t.Fatalf("profile %d: %v", i, err)
		}
	}
	_, err := s.CreateProfile("One Too Many")
	var ioe InvalidOperationError
	if !errors.As(err, &ioe) {
		t.Fatalf("expected InvalidOperationError at cap, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Spanish":             "spanish",
		"  Brazilian   Port ": "brazilian-port",
		"a/b\\c:d*e":          "abcde",
		"snake_case_name":     "snake-case-name",
		"..":                  "",
		"Ünïcode Náme":        "ünïcode-náme",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenameProfileKeepsID(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProfile("Spanish")

	if err := s.RenameProfile(p.ID, "Castilian Spanish"); err != nil {
		t.Fatal(err)
	}
	reg, _ := s.Registry()
	for _, row := range reg.Profiles {
		if row.ID == p.ID && row.DisplayName != "Castilian Spanish" {
			t.Fatalf("display name = %q", row.DisplayName)
		}
	}
	if !s.ProfileExists("spanish") {
		t.Fatal("id changed on rename")
	}
}

func TestDeleteProfileGuards(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProfile("Spanish")

	var ioe InvalidOperationError
	if err := s.DeleteProfile(DefaultProfileID); !errors.As(err, &ioe) {
		t.Fatalf("expected InvalidOperationError deleting default, got %v", err)
	}

	if err := s.SetActiveProfile(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteProfile(p.ID); !errors.As(err, &ioe) {
		t.Fatalf("expected InvalidOperationError deleting active, got %v", err)
	}
}

func TestDeleteProfileRemovesDir(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProfile("Spanish")

	if err := s.DeleteProfile(p.ID); err != nil {
		t.Fatal(err)
	}
	if s.ProfileExists(p.ID) {
		t.Fatal("profile still registered")
	}
	if _, err := os.Stat(s.profileDir(p.ID)); !os.IsNotExist(err) {
		t.Fatal("profile dir still on disk")
	}
}

func TestSetActiveProfile(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProfile("Spanish")

	if err := s.SetActiveProfile(p.ID); err != nil {
		t.Fatal(err)
	}
	id, _ := s.ActiveProfileID()
	if id != p.ID {
		t.Fatalf("active = %q, want %q", id, p.ID)
	}
	cfg, _ := s.Settings()
	if cfg.LastActiveProfile != p.ID {
		t.Fatalf("settings mirror = %q", cfg.LastActiveProfile)
	}

	if err := s.SetActiveProfile("nope"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestActiveProfileFallsBackWhenDangling(t *testing.T) {
	s := newTestStore(t)
	reg, _ := s.Registry()
	reg.ActiveProfile = "ghost"
	if err := s.saveRegistry(reg); err != nil {
		t.Fatal(err)
	}

	id, err := s.ActiveProfileID()
	if err != nil {
		t.Fatal(err)
	}
	if id != DefaultProfileID {
		t.Fatalf("fallback = %q, want default", id)
	}
}

func TestCleanupOrphanedDirs(t *testing.T) {
	s := newTestStore(t)
	s.CreateProfile("Spanish")

	orphan := s.profileDir("ghost")
	if err := os.MkdirAll(orphan, 0o755); err != nil {
		t.Fatal(err)
	}

	removed, err := s.CleanupOrphanedDirs()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(orphan); !os.IsNotExist(err) {
		t.Fatal("orphan dir survived")
	}
	if _, err := os.Stat(s.profileDir("spanish")); err != nil {
		t.Fatal("registered dir was removed")
	}
}

// ============================================================
// Tracker
// ============================================================

func TestSetSkillDone(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSkillDone(DefaultProfileID, "2026-08-10", SkillReading, true); err != nil {
		t.Fatal(err)
	}
	log, err := s.Tracker(DefaultProfileID)
	if err != nil {
		t.Fatal(err)
	}
	if !log["2026-08-10"][SkillReading] {
		t.Fatal("skill not recorded")
	}

	// Toggling off keeps the day entry readable.
	if err := s.SetSkillDone(DefaultProfileID, "2026-08-10", SkillReading, false); err != nil {
		t.Fatal(err)
	}
	log, _ = s.Tracker(DefaultProfileID)
	if log["2026-08-10"][SkillReading] {
		t.Fatal("skill still set after toggle off")
	}
}

func TestSetSkillDoneValidation(t *testing.T) {
	s := newTestStore(t)

	var ve ValidationError
	if err := s.SetSkillDone(DefaultProfileID, "2026-08-10", "juggling", true); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown skill, got %v", err)
	}
	if err := s.SetSkillDone(DefaultProfileID, "Aug 10", SkillReading, true); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad date, got %v", err)
	}
}

func TestDayActive(t *testing.T) {
	if DayActive(DayRecord{}) {
		t.Fatal("empty record should be inactive")
	}
	if DayActive(nil) {
		t.Fatal("nil record should be inactive")
	}
	if !DayActive(DayRecord{SkillWriting: true}) {
		t.Fatal("record with one skill should be active")
	}
	if DayActive(DayRecord{SkillWriting: false, SkillReading: false}) {
		t.Fatal("all-false record should be inactive")
	}
}

func TestComputeMonthStats(t *testing.T) {
	log := TrackerLog{
		"2026-02-01": {SkillReading: true},
		"2026-02-02": {SkillReading: true, SkillSpeaking: true},
		"2026-02-03": {SkillListening: true},
		// gap on the 4th
		"2026-02-05": {SkillReading: true},
		// out-of-month noise must be ignored
		"2026-01-31": {SkillReading: true},
	}

	stats := ComputeMonthStats(log, 2026, time.February)
	if stats.DaysInMonth != 28 {
		t.Fatalf("days in month = %d", stats.DaysInMonth)
	}
	if stats.ActiveDays != 4 {
		t.Fatalf("active days = %d, want 4", stats.ActiveDays)
	}
	if stats.LongestStreak != 3 {
		t.Fatalf("longest streak = %d, want 3", stats.LongestStreak)
	}
	// The trailing streak is broken well before the 28th.
	if stats.CurrentStreak != 0 {
		t.Fatalf("current streak = %d, want 0", stats.CurrentStreak)
	}
	if stats.SkillPercent[SkillReading] != 100*3/28 {
		t.Fatalf("reading percent = %d", stats.SkillPercent[SkillReading])
	}
}

func TestComputeMonthStatsTrailingStreak(t *testing.T) {
	log := TrackerLog{
		"2026-02-27": {SkillReading: true},
		"2026-02-28": {SkillReading: true},
	}
	stats := ComputeMonthStats(log, 2026, time.February)
	if stats.CurrentStreak != 2 {
		t.Fatalf("current streak = %d, want 2", stats.CurrentStreak)
	}
}

func TestWeekConsistency(t *testing.T) {
	today := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	log := TrackerLog{
		"2026-08-10": {SkillReading: true},
		"2026-08-08": {SkillWriting: true},
		"2026-08-04": {SkillSpeaking: true},
		"2026-08-03": {SkillSpeaking: true}, // outside the window
	}
	percent, active := WeekConsistency(log, today)
	if active != 3 {
		t.Fatalf("active days = %d, want 3", active)
	}
	if percent != 100*3/7 {
		t.Fatalf("percent = %d", percent)
	}
}

// ============================================================
// Goals
// ============================================================

func TestGoalsForMonthDefaults(t *testing.T) {
	s := newTestStore(t)

	g, err := s.GoalsForMonth(DefaultProfileID, "2099-01")
	if err != nil {
		t.Fatal(err)
	}
	if g.Month != "2099-01" {
		t.Fatalf("month = %q", g.Month)
	}
	if len(g.Goals) != 3 {
		t.Fatalf("slots = %d", len(g.Goals))
	}
	for i, goal := range g.Goals {
		if goal.Category != DefaultGoalCategory {
			t.Fatalf("slot %d category = %q", i, goal.Category)
		}
		if goal.Title != "" || goal.Done {
			t.Fatalf("slot %d not empty: %+v", i, goal)
		}
	}
}

func TestSaveGoalsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	month := CurrentMonth()

	g, _ := s.GoalsForMonth(DefaultProfileID, month)
	g.Goals[0].Title = "Finish graded reader"
	g.Goals[0].Category = "Reading"
	g.Goals[0].Subtasks = []Subtask{{Text: "chapters 1-3"}, {Text: "chapters 4-6", Done: true}}
	g.Notes = "focus month"
	if err := s.SaveGoalsForMonth(DefaultProfileID, g); err != nil {
		t.Fatal(err)
	}

	got, err := s.GoalsForMonth(DefaultProfileID, month)
	if err != nil {
		t.Fatal(err)
	}
	if got.Goals[0].Title != "Finish graded reader" || got.Notes != "focus month" {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if len(got.Goals[0].Subtasks) != 2 || !got.Goals[0].Subtasks[1].Done {
		t.Fatalf("subtasks lost: %+v", got.Goals[0].Subtasks)
	}
}

func TestSaveGoalsRejectsPastMonth(t *testing.T) {
	s := newTestStore(t)

	g := MonthGoals{Month: "2001-01"}
	err := s.SaveGoalsForMonth(DefaultProfileID, g)
	var ioe InvalidOperationError
	if !errors.As(err, &ioe) {
		t.Fatalf("expected InvalidOperationError, got %v", err)
	}

	// Reading a past month still works.
	if _, err := s.GoalsForMonth(DefaultProfileID, "2001-01"); err != nil {
		t.Fatalf("read of past month failed: %v", err)
	}
}

func TestMarkGoalDoneTimestampWrittenOnce(t *testing.T) {
	g := MonthGoals{Month: "2026-08"}
	first := time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	MarkGoalDone(&g, 0, true, first)
	if !g.Goals[0].Done {
		t.Fatal("goal not marked done")
	}
	want := first.Format(time.RFC3339)
	if g.Goals[0].CompletedAt != want {
		t.Fatalf("completed_at = %q", g.Goals[0].CompletedAt)
	}

	// Un-complete and re-complete: the original timestamp survives.
	MarkGoalDone(&g, 0, false, later)
	MarkGoalDone(&g, 0, true, later)
	if g.Goals[0].CompletedAt != want {
		t.Fatalf("completed_at changed to %q", g.Goals[0].CompletedAt)
	}

	// Out-of-range slots are a no-op.
	MarkGoalDone(&g, 7, true, later)
	MarkGoalDone(&g, -1, true, later)
}

func TestAutoArchivePastMonths(t *testing.T) {
	s := newTestStore(t)

	// Write docs directly so past months exist without tripping the guard.
	all := map[string]MonthGoals{
		"2020-01": {Month: "2020-01"},
		"2020-02": {Month: "2020-02", Archived: true},
		"2099-12": {Month: "2099-12"},
	}
	if err := saveDoc(s.profileDoc(DefaultProfileID, goalsFile), all); err != nil {
		t.Fatal(err)
	}

	if err := s.AutoArchivePastMonths(DefaultProfileID, "2026-08"); err != nil {
		t.Fatal(err)
	}

	g, _ := s.GoalsForMonth(DefaultProfileID, "2020-01")
	if !g.Archived {
		t.Fatal("past month not archived")
	}
	g, _ = s.GoalsForMonth(DefaultProfileID, "2099-12")
	if g.Archived {
		t.Fatal("future month archived")
	}
}

func TestAllGoalsSorted(t *testing.T) {
	s := newTestStore(t)
	all := map[string]MonthGoals{
		"2026-09": {Month: "2026-09"},
		"2020-01": {Month: "2020-01"},
		"2024-06": {Month: "2024-06"},
	}
	if err := saveDoc(s.profileDoc(DefaultProfileID, goalsFile), all); err != nil {
		t.Fatal(err)
	}

	months, err := s.AllGoals(DefaultProfileID)
	if err != nil {
		t.Fatal(err)
	}
	if len(months) != 3 {
		t.Fatalf("len = %d", len(months))
	}
	if months[0].Month != "2020-01" || months[2].Month != "2026-09" {
		t.Fatalf("order: %q, %q, %q", months[0].Month, months[1].Month, months[2].Month)
	}
}

// ============================================================
// Resources
// ============================================================

func TestAddResourceAssignsID(t *testing.T) {
	s := newTestStore(t)

	r, err := s.AddResource(DefaultProfileID, Resource{
		Title:  "Dreaming Spanish",
		Type:   "Website",
		URL:    "https://example.com",
		Status: "In Progress",
		Tags:   "input,video",
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.ID == "" {
		t.Fatal("no id assigned")
	}

	items, _ := s.Resources(DefaultProfileID)
	if len(items) != 1 || items[0].ID != r.ID {
		t.Fatalf("stored items: %+v", items)
	}
}

func TestResourceValidation(t *testing.T) {
	s := newTestStore(t)
	var ve ValidationError

	_, err := s.AddResource(DefaultProfileID, Resource{Title: "   "})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for blank title, got %v", err)
	}

	_, err = s.AddResource(DefaultProfileID, Resource{Title: "x", URL: "ftp://host/file"})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for non-http url, got %v", err)
	}

	_, err = s.AddResource(DefaultProfileID, Resource{Title: "x", Type: "Scroll"})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown type, got %v", err)
	}

	_, err = s.AddResource(DefaultProfileID, Resource{Title: "x", Status: "Maybe"})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}

	// URL is optional.
	if _, err := s.AddResource(DefaultProfileID, Resource{Title: "Paper dictionary", Type: "Book"}); err != nil {
		t.Fatalf("optional url rejected: %v", err)
	}
}

func TestUpdateAndDeleteResource(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.AddResource(DefaultProfileID, Resource{Title: "Pimsleur", Type: "Course", Status: "Planned"})

	r.Status = "Completed"
	if err := s.UpdateResource(DefaultProfileID, r); err != nil {
		t.Fatal(err)
	}
	items, _ := s.Resources(DefaultProfileID)
	if items[0].Status != "Completed" {
		t.Fatalf("status = %q", items[0].Status)
	}

	var ioe InvalidOperationError
	if err := s.UpdateResource(DefaultProfileID, Resource{ID: "missing", Title: "x"}); !errors.As(err, &ioe) {
		t.Fatalf("expected InvalidOperationError, got %v", err)
	}

	if err := s.DeleteResource(DefaultProfileID, r.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = s.Resources(DefaultProfileID)
	if len(items) != 0 {
		t.Fatalf("items after delete: %+v", items)
	}
	if err := s.DeleteResource(DefaultProfileID, r.ID); !errors.As(err, &ioe) {
		t.Fatalf("expected InvalidOperationError, got %v", err)
	}
}

// ============================================================
// Radar
// ============================================================

func TestSaveSnapshotValidation(t *testing.T) {
	s := newTestStore(t)
	var ve ValidationError

	err := s.SaveSnapshot(DefaultProfileID, "August", RadarSnapshot{3, 3, 3, 3})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad month, got %v", err)
	}
	err = s.SaveSnapshot(DefaultProfileID, "2026-08", RadarSnapshot{0, 3, 3, 3})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for rating 0, got %v", err)
	}
	err = s.SaveSnapshot(DefaultProfileID, "2026-08", RadarSnapshot{3, 3, 3, 6})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for rating 6, got %v", err)
	}
}

func TestSaveSnapshotOverwritesSingleMonth(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveSnapshot(DefaultProfileID, "2026-07", RadarSnapshot{2, 2, 2, 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(DefaultProfileID, "2026-08", RadarSnapshot{3, 3, 3, 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(DefaultProfileID, "2026-08", RadarSnapshot{4, 4, 4, 4}); err != nil {
		t.Fatal(err)
	}

	log, err := s.Snapshots(DefaultProfileID)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Fatalf("months stored = %d", len(log))
	}
	if log["2026-08"].Reading != 4 {
		t.Fatalf("overwrite lost: %+v", log["2026-08"])
	}
	if log["2026-07"].Reading != 2 {
		t.Fatalf("other month touched: %+v", log["2026-07"])
	}
}

func TestBalanceIndex(t *testing.T) {
	if got := BalanceIndex(RadarSnapshot{5, 5, 5, 5}); got != 100 {
		t.Fatalf("even ratings = %d, want 100", got)
	}
	if got := BalanceIndex(RadarSnapshot{1, 1, 1, 1}); got != 100 {
		t.Fatalf("even low ratings = %d, want 100", got)
	}
	if got := BalanceIndex(RadarSnapshot{1, 5, 1, 5}); got != 0 {
		t.Fatalf("max spread = %d, want 0", got)
	}
	if got := BalanceIndex(RadarSnapshot{3, 3, 3, 5}); got <= 0 || got >= 100 {
		t.Fatalf("mild spread = %d, want strictly between 0 and 100", got)
	}
}

func TestBalanceIndexIgnoresSkillOrder(t *testing.T) {
	a := BalanceIndex(RadarSnapshot{Reading: 1, Listening: 2, Speaking: 4, Writing: 5})
	b := BalanceIndex(RadarSnapshot{Reading: 5, Listening: 4, Speaking: 2, Writing: 1})
	if a != b {
		t.Fatalf("permutation changed score: %d vs %d", a, b)
	}
}

func TestTrends(t *testing.T) {
	cur := RadarSnapshot{Reading: 4, Listening: 2, Speaking: 3, Writing: 3}
	prev := RadarSnapshot{Reading: 3, Listening: 3, Speaking: 3, Writing: 3}

	trends := Trends(cur, prev, true)
	if trends[SkillReading] != TrendImproved {
		t.Fatalf("reading = %q", trends[SkillReading])
	}
	if trends[SkillListening] != TrendDeclined {
		t.Fatalf("listening = %q", trends[SkillListening])
	}
	if trends[SkillSpeaking] != TrendStable {
		t.Fatalf("speaking = %q", trends[SkillSpeaking])
	}

	// No previous snapshot reads stable across the board.
	trends = Trends(cur, RadarSnapshot{}, false)
	for skill, tr := range trends {
		if tr != TrendStable {
			t.Fatalf("%s = %q without previous", skill, tr)
		}
	}
}

func TestPreviousMonth(t *testing.T) {
	if got := PreviousMonth("2026-01"); got != "2025-12" {
		t.Fatalf("got %q", got)
	}
	if got := PreviousMonth("not-a-month"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestDaysSinceLastSnapshot(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.DaysSinceLastSnapshot(DefaultProfileID, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false with no snapshots")
	}

	if err := s.SaveSnapshot(DefaultProfileID, "2026-07", RadarSnapshot{3, 3, 3, 3}); err != nil {
		t.Fatal(err)
	}
	today := time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC)
	days, ok, err := s.DaysSinceLastSnapshot(DefaultProfileID, today)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if days != 10 {
		t.Fatalf("days = %d, want 10", days)
	}
}

// ============================================================
// Daily plan
// ============================================================

func TestPlanRoundTrip(t *testing.T) {
	s := newTestStore(t)

	plan := DailyPlan{
		Tasks:         [4]string{"shadow a podcast", "", "10 new cards", ""},
		ShowOnStartup: true,
	}
	if err := s.SavePlan(DefaultProfileID, plan); err != nil {
		t.Fatal(err)
	}
	got, err := s.Plan(DefaultProfileID)
	if err != nil {
		t.Fatal(err)
	}
	if got != plan {
		t.Fatalf("round trip: %+v", got)
	}
}

func TestPlanSeedsLegacyKeys(t *testing.T) {
	s := newTestStore(t)

	legacy := []byte(`{"morning":"review","afternoon":"listen","evening":"write","show_on_startup":true}`)
	if err := os.WriteFile(s.profileDoc(DefaultProfileID, dailyPlanFile), legacy, 0o644); err != nil {
		t.Fatal(err)
	}

	plan, err := s.Plan(DefaultProfileID)
	if err != nil {
		t.Fatal(err)
	}
	want := [4]string{"review", "listen", "write", ""}
	if plan.Tasks != want {
		t.Fatalf("tasks = %v", plan.Tasks)
	}
	if !plan.ShowOnStartup {
		t.Fatal("show_on_startup lost")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "auto" || cfg.FontSize != 14 || cfg.OpenOnStartup {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	s := newTestStore(t)
	var ve ValidationError

	if err := s.SaveSettings(Settings{Theme: "neon", FontSize: 14}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for theme, got %v", err)
	}
	if err := s.SaveSettings(Settings{Theme: "dark", FontSize: 7}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for small font, got %v", err)
	}
	if err := s.SaveSettings(Settings{Theme: "dark", FontSize: 25}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for large font, got %v", err)
	}

	if err := s.SaveSettings(Settings{Theme: "japanese_pastel", FontSize: 16}); err != nil {
		t.Fatal(err)
	}
	cfg, _ := s.Settings()
	if cfg.Theme != "japanese_pastel" || cfg.FontSize != 16 {
		t.Fatalf("saved: %+v", cfg)
	}
}

func TestSettingsSanitizesStoredGarbage(t *testing.T) {
	s := newTestStore(t)

	raw := []byte(`{"theme":"vaporwave","font_size":99}`)
	if err := os.WriteFile(s.globalDoc(settingsFile), raw, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "auto" || cfg.FontSize != 14 {
		t.Fatalf("sanitized: %+v", cfg)
	}
}

// ============================================================
// Per-profile isolation
// ============================================================

func TestProfilesIsolateDocuments(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProfile("Spanish")

	if err := s.SetSkillDone(DefaultProfileID, "2026-08-10", SkillReading, true); err != nil {
		t.Fatal(err)
	}
	other, err := s.Tracker(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("profile %q sees foreign data: %v", p.ID, other)
	}
}
