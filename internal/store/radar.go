package store

import (
	"math"
	"time"
)

// Trend compares a skill rating against the previous month's snapshot.
type Trend string

const (
	TrendImproved Trend = "improved"
	TrendDeclined Trend = "declined"
	TrendStable   Trend = "stable"
)

// Ratings returns the snapshot values in Skills order.
func (r RadarSnapshot) Ratings() [4]int {
	return [4]int{r.Reading, r.Listening, r.Speaking, r.Writing}
}

// Snapshots loads every stored radar snapshot for a profile.
func (s *Store) Snapshots(profile string) (RadarLog, error) {
	log := RadarLog{}
	_, err := loadDoc(s.profileDoc(profile, radarFile), &log)
	if err != nil {
		return RadarLog{}, err
	}
	if log == nil {
		log = RadarLog{}
	}
	return log, nil
}

// SaveSnapshot stores the ratings for one month, overwriting any previous
// snapshot for that month and leaving all others alone.
func (s *Store) SaveSnapshot(profile, month string, snap RadarSnapshot) error {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return ValidationError{Field: "month", Reason: "month must be YYYY-MM"}
	}
	for _, v := range snap.Ratings() {
		if v < 1 || v > 5 {
			return ValidationError{Field: "rating", Reason: "ratings must be between 1 and 5"}
		}
	}
	log, err := s.Snapshots(profile)
	if err != nil {
		return err
	}
	log[month] = snap
	return saveDoc(s.profileDoc(profile, radarFile), log)
}

// BalanceIndex scores how evenly the four ratings sit, 0-100. It is the
// mean absolute deviation from the mean, mapped so zero deviation gives 100
// and a deviation of 2.0 (the spread of ratings like 1,5,1,5) gives 0. The
// value is never persisted; it is recomputed from the ratings on every read
// so the formula can evolve without rewriting history.
func BalanceIndex(snap RadarSnapshot) int {
	const maxDeviation = 2.0

	ratings := snap.Ratings()
	sum := 0.0
	for _, v := range ratings {
		sum += float64(v)
	}
	mean := sum / float64(len(ratings))

	dev := 0.0
	for _, v := range ratings {
		dev += math.Abs(float64(v) - mean)
	}
	dev /= float64(len(ratings))

	score := 100.0 * (1.0 - math.Min(dev, maxDeviation)/maxDeviation)
	idx := int(math.Round(score))
	if idx < 0 {
		return 0
	}
	if idx > 100 {
		return 100
	}
	return idx
}

// Trends compares the current snapshot per skill against the previous one.
// Without a previous snapshot every skill reads stable.
func Trends(current RadarSnapshot, previous RadarSnapshot, hasPrevious bool) map[string]Trend {
	cur := current.Ratings()
	prev := previous.Ratings()
	out := make(map[string]Trend, len(Skills))
	for i, skill := range Skills {
		switch {
		case !hasPrevious || cur[i] == prev[i]:
			out[skill] = TrendStable
		case cur[i] > prev[i]:
			out[skill] = TrendImproved
		default:
			out[skill] = TrendDeclined
		}
	}
	return out
}

// PreviousMonth returns the month key immediately before month.
func PreviousMonth(month string) string {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return ""
	}
	return t.AddDate(0, -1, 0).Format(monthLayout)
}

// DaysSinceLastSnapshot reports how many days have passed since the first
// day of the most recent snapshot month. ok is false with no snapshots.
func (s *Store) DaysSinceLastSnapshot(profile string, today time.Time) (days int, ok bool, err error) {
	log, err := s.Snapshots(profile)
	if len(log) == 0 {
		return 0, false, err
	}
	last := ""
	for m := range log {
		if m > last {
			last = m
		}
	}
	t, perr := time.Parse(monthLayout, last)
	if perr != nil {
		return 0, false, err
	}
	return int(today.Sub(t).Hours() / 24), true, err
}
