package store

// The four fixed practice skills. Tracker days, radar snapshots and goal
// categories all refer to this set.
const (
	SkillReading   = "reading"
	SkillListening = "listening"
	SkillSpeaking  = "speaking"
	SkillWriting   = "writing"
)

// Skills lists the fixed skill set in display order.
var Skills = []string{SkillReading, SkillListening, SkillSpeaking, SkillWriting}

type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
	LastUsed    string `json:"last_used"`
}

// Registry is the global profiles document.
type Registry struct {
	ActiveProfile string    `json:"active_profile"`
	Profiles      []Profile `json:"profiles"`
	Version       string    `json:"version"`
}

// DayRecord maps a skill name to whether it was practiced that day.
type DayRecord map[string]bool

// TrackerLog maps ISO dates (2006-01-02) to day records.
type TrackerLog map[string]DayRecord

// MonthStats aggregates a single calendar month of tracker data.
type MonthStats struct {
	ActiveDays    int
	DaysInMonth   int
	LongestStreak int
	CurrentStreak int
	SkillPercent  map[string]int
}

type Subtask struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Goal struct {
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Done        bool      `json:"done"`
	Reflection  string    `json:"reflection"`
	Subtasks    []Subtask `json:"subtasks"`
	CreatedAt   string    `json:"created_at"`
	CompletedAt string    `json:"completed_at"`
}

// MonthGoals holds the fixed three goal slots for one month.
type MonthGoals struct {
	Month    string  `json:"month"` // 2006-01
	Goals    [3]Goal `json:"goals"`
	Notes    string  `json:"notes"`
	Archived bool    `json:"archived"`
}

type Resource struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
	Tags   string `json:"tags"`
}

// RadarSnapshot is one month of self-assessed skill ratings, each 1-5.
type RadarSnapshot struct {
	Reading   int `json:"reading"`
	Listening int `json:"listening"`
	Speaking  int `json:"speaking"`
	Writing   int `json:"writing"`
}

// RadarLog maps months (2006-01) to snapshots.
type RadarLog map[string]RadarSnapshot

// DailyPlan is a small, date-free list of exactly four task slots.
type DailyPlan struct {
	Tasks         [4]string `json:"tasks"`
	ShowOnStartup bool      `json:"show_on_startup"`
}

// Settings is the single global settings document shared by all profiles.
type Settings struct {
	Theme             string `json:"theme"`
	FontSize          int    `json:"font_size"`
	OpenOnStartup     bool   `json:"open_on_startup"`
	LastActiveProfile string `json:"last_active_profile"`
}
