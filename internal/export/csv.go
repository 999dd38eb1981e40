package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/okanerden/lingua/internal/store"
)

// ToCSV writes the tracker log as one row per recorded day, oldest first.
func ToCSV(log store.TrackerLog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Date", "Reading", "Listening", "Speaking", "Writing", "Active"}
	if err := w.Write(header); err != nil {
		return err
	}

	dates := make([]string, 0, len(log))
	for d := range log {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		rec := log[d]
		row := []string{d}
		for _, skill := range store.Skills {
			row = append(row, yesNo(rec[skill]))
		}
		row = append(row, yesNo(store.DayActive(rec)))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
