package store

import (
	"time"
)

const dateLayout = "2006-01-02"

// Tracker loads the per-day practice log for a profile.
func (s *Store) Tracker(profile string) (TrackerLog, error) {
	log := TrackerLog{}
	_, err := loadDoc(s.profileDoc(profile, trackerFile), &log)
	if err != nil {
		return TrackerLog{}, err
	}
	if log == nil {
		log = TrackerLog{}
	}
	return log, nil
}

// SaveTracker persists the whole log document.
func (s *Store) SaveTracker(profile string, log TrackerLog) error {
	return saveDoc(s.profileDoc(profile, trackerFile), log)
}

// SetSkillDone records one skill for one day and persists immediately.
func (s *Store) SetSkillDone(profile, date, skill string, done bool) error {
	if !validSkill(skill) {
		return ValidationError{Field: "skill", Reason: "unknown skill '" + skill + "'"}
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ValidationError{Field: "date", Reason: "date must be YYYY-MM-DD"}
	}
	log, err := s.Tracker(profile)
	if err != nil {
		return err
	}
	rec := log[date]
	if rec == nil {
		rec = DayRecord{}
	}
	rec[skill] = done
	log[date] = rec
	return s.SaveTracker(profile, log)
}

func validSkill(skill string) bool {
	for _, s := range Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// DayActive reports whether at least one skill was practiced that day.
func DayActive(rec DayRecord) bool {
	for _, s := range Skills {
		if rec[s] {
			return true
		}
	}
	return false
}

// ComputeMonthStats walks one calendar month of the log: active days,
// longest and trailing streaks, and per-skill completion percentages.
func ComputeMonthStats(log TrackerLog, year int, month time.Month) MonthStats {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	stats := MonthStats{
		DaysInMonth:  daysInMonth,
		SkillPercent: make(map[string]int, len(Skills)),
	}
	counts := make(map[string]int, len(Skills))

	streak := 0
	for day := 1; day <= daysInMonth; day++ {
		rec := log[time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateLayout)]
		if DayActive(rec) {
			stats.ActiveDays++
			streak++
			if streak > stats.LongestStreak {
				stats.LongestStreak = streak
			}
		} else {
			streak = 0
		}
		for _, skill := range Skills {
			if rec[skill] {
				counts[skill]++
			}
		}
	}
	stats.CurrentStreak = streak
	for _, skill := range Skills {
		stats.SkillPercent[skill] = 100 * counts[skill] / daysInMonth
	}
	return stats
}

// WeekConsistency returns the share of the last seven days (ending today)
// with any activity, as a percentage, plus the raw active-day count.
func WeekConsistency(log TrackerLog, today time.Time) (percent, activeDays int) {
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, -i).Format(dateLayout)
		if DayActive(log[day]) {
			activeDays++
		}
	}
	return 100 * activeDays / 7, activeDays
}
