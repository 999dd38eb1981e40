package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanerden/lingua/internal/store"
)

// One toggle key per skill, in store.Skills order.
var skillKeys = []string{"r", "l", "s", "w"}

type trackerModel struct {
	store   *store.Store
	profile string
	width   int
	height  int

	log   store.TrackerLog
	stats store.MonthStats

	year   int
	month  time.Month
	cursor int // day of month
}

func newTrackerModel(s *store.Store, profile string) trackerModel {
	now := time.Now()
	return trackerModel{
		store:   s,
		profile: profile,
		year:    now.Year(),
		month:   now.Month(),
		cursor:  now.Day(),
	}
}

func (t *trackerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type trackerDataMsg struct {
	log   store.TrackerLog
	stats store.MonthStats
}

func (t trackerModel) refresh() tea.Cmd {
	return func() tea.Msg {
		log, err := t.store.Tracker(t.profile)
		if err != nil {
			return errStatus(err)
		}
		return trackerDataMsg{
			log:   log,
			stats: store.ComputeMonthStats(log, t.year, t.month),
		}
	}
}

func (t trackerModel) daysInMonth() int {
	return time.Date(t.year, t.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

func (t trackerModel) cursorDate() string {
	return time.Date(t.year, t.month, t.cursor, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

func (t trackerModel) update(msg tea.Msg) (trackerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trackerDataMsg:
		t.log = msg.log
		t.stats = msg.stats
		return t, nil

	case tea.KeyMsg:
		// Skill toggles take priority over h/l movement.
		for i, k := range skillKeys {
			if msg.String() == k {
				return t.toggleSkill(store.Skills[i])
			}
		}

		switch {
		case key.Matches(msg, keys.PrevMonth):
			return t.shift(-1)
		case key.Matches(msg, keys.NextMonth):
			return t.shift(1)
		case key.Matches(msg, keys.Left):
			if t.cursor > 1 {
				t.cursor--
			}
		case key.Matches(msg, keys.Right):
			if t.cursor < t.daysInMonth() {
				t.cursor++
			}
		case key.Matches(msg, keys.Up):
			if t.cursor > 7 {
				t.cursor -= 7
			}
		case key.Matches(msg, keys.Down):
			if t.cursor+7 <= t.daysInMonth() {
				t.cursor += 7
			}
		}
	}
	return t, nil
}

func (t trackerModel) shift(months int) (trackerModel, tea.Cmd) {
	d := time.Date(t.year, t.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	t.year = d.Year()
	t.month = d.Month()
	if t.cursor > t.daysInMonth() {
		t.cursor = t.daysInMonth()
	}
	return t, t.refresh()
}

func (t trackerModel) toggleSkill(skill string) (trackerModel, tea.Cmd) {
	date := t.cursorDate()
	done := !t.log[date][skill]
	err := t.store.SetSkillDone(t.profile, date, skill, done)
	if err != nil {
		return t, func() tea.Msg { return errStatus(err) }
	}
	return t, t.refresh()
}

func (t trackerModel) view() string {
	w := t.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Tracker"), "  ",
		highlightStyle.Render(fmt.Sprintf("%s %d", t.month, t.year)),
	)

	grid := t.renderCalendar()
	statsPanel := t.renderStats()
	legend := t.renderLegend()
	nav := mutedStyle.Render("  ←→↑↓: move  r/l/s/w: toggle skill  [ ]: month")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", grid, "", legend, "", statsPanel, "", nav),
	)
}

// skillColors is rebuilt per call so theme switches take effect.
func skillColors() []lipgloss.Color {
	return []lipgloss.Color{colorPrimary, colorSecondary, colorWarning, colorAccent}
}

func (t trackerModel) renderCalendar() string {
	first := time.Date(t.year, t.month, 1, 0, 0, 0, 0, time.UTC)
	// Monday-first column for the 1st of the month.
	lead := (int(first.Weekday()) + 6) % 7
	days := t.daysInMonth()

	head := mutedStyle.Render("  Mo      Tu      We      Th      Fr      Sa      Su")
	var rows []string
	rows = append(rows, head)

	var line []string
	for i := 0; i < lead; i++ {
		line = append(line, strings.Repeat(" ", 7))
	}
	for day := 1; day <= days; day++ {
		line = append(line, t.renderDayCell(day))
		if len(line) == 7 {
			rows = append(rows, strings.Join(line, " "))
			line = nil
		}
	}
	if len(line) > 0 {
		rows = append(rows, strings.Join(line, " "))
	}
	return strings.Join(rows, "\n")
}

func (t trackerModel) renderDayCell(day int) string {
	date := time.Date(t.year, t.month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	rec := t.log[date]

	colors := skillColors()
	var dots strings.Builder
	for i, skill := range store.Skills {
		if rec[skill] {
			dots.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render("●"))
		} else {
			dots.WriteString(mutedStyle.Render("·"))
		}
	}

	num := fmt.Sprintf("%2d", day)
	if day == t.cursor {
		num = selectedItemStyle.Render(num)
	} else if store.DayActive(rec) {
		num = successStyle.Render(num)
	} else {
		num = normalItemStyle.Render(num)
	}
	return num + " " + dots.String()
}

func (t trackerModel) renderLegend() string {
	colors := skillColors()
	var items []string
	for i, skill := range store.Skills {
		dot := lipgloss.NewStyle().Foreground(colors[i]).Render("●")
		items = append(items, fmt.Sprintf("%s %s (%s)", dot, titleCase(skill), skillKeys[i]))
	}
	return "  " + strings.Join(items, "  ")
}

func (t trackerModel) renderStats() string {
	var rows []string
	rows = append(rows, titleStyle.Render("This Month"))
	rows = append(rows, fmt.Sprintf("  Active days:    %s",
		highlightStyle.Render(fmt.Sprintf("%d / %d", t.stats.ActiveDays, t.stats.DaysInMonth))))
	rows = append(rows, fmt.Sprintf("  Longest streak: %s",
		highlightStyle.Render(fmt.Sprintf("%d days", t.stats.LongestStreak))))
	for _, skill := range store.Skills {
		rows = append(rows, fmt.Sprintf("  %-10s      %3d%%", titleCase(skill), t.stats.SkillPercent[skill]))
	}
	return strings.Join(rows, "\n")
}
