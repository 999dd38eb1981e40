package store

import (
	"sort"
	"time"
)

const monthLayout = "2006-01"

// GoalCategories are the selectable goal categories: the four skills plus
// the extra study areas.
var GoalCategories = []string{
	"General", "Reading", "Listening", "Speaking", "Writing", "Vocabulary", "Grammar",
}

// DefaultGoalCategory is applied to empty slots and unknown stored values.
const DefaultGoalCategory = "General"

// CurrentMonth returns the current calendar month as 2006-01.
func CurrentMonth() string {
	return time.Now().Format(monthLayout)
}

func (s *Store) loadGoals(profile string) (map[string]MonthGoals, error) {
	all := map[string]MonthGoals{}
	_, err := loadDoc(s.profileDoc(profile, goalsFile), &all)
	if err != nil {
		return map[string]MonthGoals{}, err
	}
	if all == nil {
		all = map[string]MonthGoals{}
	}
	return all, nil
}

// GoalsForMonth loads one month of goals, default-filled so callers always
// see exactly three slots with a category set.
func (s *Store) GoalsForMonth(profile, month string) (MonthGoals, error) {
	all, err := s.loadGoals(profile)
	g, ok := all[month]
	if !ok {
		g = MonthGoals{Month: month}
	}
	g.Month = month
	for i := range g.Goals {
		if g.Goals[i].Category == "" {
			g.Goals[i].Category = DefaultGoalCategory
		}
	}
	return g, err
}

// SaveGoalsForMonth persists one month of goals. Months before the current
// calendar month are archived and reject writes; reads stay available.
func (s *Store) SaveGoalsForMonth(profile string, g MonthGoals) error {
	if g.Month < CurrentMonth() {
		return InvalidOperationError{
			Op:     "save goals",
			Reason: "month " + g.Month + " is archived and read-only",
		}
	}
	all, err := s.loadGoals(profile)
	if err != nil {
		return err
	}
	all[g.Month] = g
	return saveDoc(s.profileDoc(profile, goalsFile), all)
}

// MarkGoalDone flips a goal slot's completion. The completion timestamp is
// written once, the first time the goal completes, and never changes after.
func MarkGoalDone(g *MonthGoals, slot int, done bool, now time.Time) {
	if slot < 0 || slot >= len(g.Goals) {
		return
	}
	g.Goals[slot].Done = done
	if done && g.Goals[slot].CompletedAt == "" {
		g.Goals[slot].CompletedAt = now.Format(time.RFC3339)
	}
}

// AllGoals returns every stored month, oldest first.
func (s *Store) AllGoals(profile string) ([]MonthGoals, error) {
	all, err := s.loadGoals(profile)
	if err != nil {
		return nil, err
	}
	months := make([]string, 0, len(all))
	for m := range all {
		months = append(months, m)
	}
	sort.Strings(months)
	out := make([]MonthGoals, 0, len(months))
	for _, m := range months {
		g, _ := s.GoalsForMonth(profile, m)
		out = append(out, g)
	}
	return out, nil
}

// AutoArchivePastMonths flags every month before currentMonth as archived.
// Current and future months are untouched.
func (s *Store) AutoArchivePastMonths(profile, currentMonth string) error {
	all, err := s.loadGoals(profile)
	if err != nil {
		return err
	}
	changed := false
	for m, g := range all {
		if m < currentMonth && !g.Archived {
			g.Archived = true
			all[m] = g
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return saveDoc(s.profileDoc(profile, goalsFile), all)
}
