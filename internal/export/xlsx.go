package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/okanerden/lingua/internal/store"
	"github.com/xuri/excelize/v2"
)

// ToXLSX writes a workbook with one sheet each for the tracker log, the
// resource library and the radar snapshots.
func ToXLSX(snap Snapshot, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTrackerSheet(f, snap.Tracker); err != nil {
		return err
	}
	if err := writeResourcesSheet(f, snap.Resources); err != nil {
		return err
	}
	if err := writeRadarSheet(f, snap.Radar); err != nil {
		return err
	}

	// The default sheet was replaced by Tracker.
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx file: %w", err)
	}
	return nil
}

func writeTrackerSheet(f *excelize.File, log store.TrackerLog) error {
	const sheet = "Tracker"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Date", "Reading", "Listening", "Speaking", "Writing", "Active"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	dates := make([]string, 0, len(log))
	for d := range log {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for i, d := range dates {
		rec := log[d]
		row := []any{d}
		for _, skill := range store.Skills {
			row = append(row, yesNo(rec[skill]))
		}
		row = append(row, yesNo(store.DayActive(rec)))
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeResourcesSheet(f *excelize.File, items []store.Resource) error {
	const sheet = "Resources"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := []any{"Title", "Type", "Status", "Link", "Tags", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range items {
		row := []any{r.Title, r.Type, r.Status, r.URL, r.Tags, r.Notes}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeRadarSheet(f *excelize.File, log store.RadarLog) error {
	const sheet = "Radar"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := []any{"Month", "Reading", "Listening", "Speaking", "Writing", "Balance Index"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	months := make([]string, 0, len(log))
	for m := range log {
		months = append(months, m)
	}
	sort.Strings(months)

	for i, m := range months {
		snap := log[m]
		row := []any{m, snap.Reading, snap.Listening, snap.Speaking, snap.Writing, store.BalanceIndex(snap)}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
