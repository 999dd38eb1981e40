package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanerden/lingua/internal/store"
)

type radarModel struct {
	store   *store.Store
	profile string
	width   int
	height  int

	month string
	log   store.RadarLog

	formActive bool
	form       *huh.Form

	formReading   *int
	formListening *int
	formSpeaking  *int
	formWriting   *int

	chart barchart.Model
}

func newRadarModel(s *store.Store, profile string) radarModel {
	r, l, sp, w := 3, 3, 3, 3
	return radarModel{
		store:         s,
		profile:       profile,
		month:         store.CurrentMonth(),
		formReading:   &r,
		formListening: &l,
		formSpeaking:  &sp,
		formWriting:   &w,
		chart:         barchart.New(40, 8),
	}
}

func (r *radarModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

type radarDataMsg struct {
	log store.RadarLog
}

func (r radarModel) refresh() tea.Cmd {
	return func() tea.Msg {
		log, err := r.store.Snapshots(r.profile)
		if err != nil {
			return errStatus(err)
		}
		return radarDataMsg{log: log}
	}
}

func (r radarModel) update(msg tea.Msg) (radarModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case radarDataMsg:
		r.log = msg.log
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevMonth):
			r.month = shiftMonth(r.month, -1)
			return r, nil
		case key.Matches(msg, keys.NextMonth):
			r.month = shiftMonth(r.month, 1)
			return r, nil
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Edit):
			return r.showForm()
		}
	}
	return r, nil
}

func (r radarModel) showForm() (radarModel, tea.Cmd) {
	snap, ok := r.log[r.month]
	if !ok {
		snap = store.RadarSnapshot{Reading: 3, Listening: 3, Speaking: 3, Writing: 3}
	}
	*r.formReading = snap.Reading
	*r.formListening = snap.Listening
	*r.formSpeaking = snap.Speaking
	*r.formWriting = snap.Writing

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Reading").Options(ratingOptions()...).Value(r.formReading),
			huh.NewSelect[int]().Title("Listening").Options(ratingOptions()...).Value(r.formListening),
			huh.NewSelect[int]().Title("Speaking").Options(ratingOptions()...).Value(r.formSpeaking),
			huh.NewSelect[int]().Title("Writing").Options(ratingOptions()...).Value(r.formWriting),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func ratingOptions() []huh.Option[int] {
	labels := []string{"1 · Beginner", "2 · Elementary", "3 · Intermediate", "4 · Advanced", "5 · Fluent"}
	opts := make([]huh.Option[int], len(labels))
	for i, l := range labels {
		opts[i] = huh.NewOption(l, i+1)
	}
	return opts
}

func (r radarModel) updateForm(msg tea.Msg) (radarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		snap := store.RadarSnapshot{
			Reading:   *r.formReading,
			Listening: *r.formListening,
			Speaking:  *r.formSpeaking,
			Writing:   *r.formWriting,
		}
		st := r.store
		profile := r.profile
		month := r.month
		return r, func() tea.Msg {
			if err := st.SaveSnapshot(profile, month, snap); err != nil {
				return errStatus(err)
			}
			log, err := st.Snapshots(profile)
			if err != nil {
				return errStatus(err)
			}
			return radarDataMsg{log: log}
		}
	}

	return r, cmd
}

// buildChart plots the balance index of recent snapshots.
func (r *radarModel) buildChart() {
	chartWidth := min(r.width-8, 60)
	if chartWidth < 20 {
		chartWidth = 20
	}
	r.chart = barchart.New(chartWidth, 8)

	months := make([]string, 0, len(r.log))
	for m := range r.log {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > 8 {
		months = months[len(months)-8:]
	}

	var bars []barchart.BarData
	for _, m := range months {
		snap := r.log[m]
		score := store.BalanceIndex(snap)
		style := lipgloss.NewStyle().Foreground(colorSecondary)
		if score < 50 {
			style = lipgloss.NewStyle().Foreground(colorWarning)
		}
		bars = append(bars, barchart.BarData{
			Label: m[5:] + "/" + m[2:4],
			Values: []barchart.BarValue{
				{Name: m, Value: float64(score), Style: style},
			},
		})
	}
	if len(bars) == 0 {
		return
	}
	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r radarModel) view() string {
	w := r.width - 4

	if r.formActive && r.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render("Self-Assessment — "+monthLabel(r.month)), "", r.form.View(),
			),
		)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Skill Radar"), "  ",
		highlightStyle.Render(monthLabel(r.month)),
	)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	snap, ok := r.log[r.month]
	if !ok {
		rows = append(rows, mutedStyle.Render("No snapshot for this month. Press n to rate your skills."))
	} else {
		rows = append(rows, r.renderSkillBars(snap)...)
		rows = append(rows, "")
		rows = append(rows, r.renderBalance(snap))
	}

	if len(r.log) > 0 {
		rows = append(rows, "")
		rows = append(rows, subtitleStyle.Render("Balance history"))
		rows = append(rows, r.chart.View())
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: rate month  [ ]: month"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (r radarModel) renderSkillBars(snap store.RadarSnapshot) []string {
	prev, hasPrev := r.log[store.PreviousMonth(r.month)]
	trends := store.Trends(snap, prev, hasPrev)

	ratings := snap.Ratings()
	colors := skillColors()

	rows := make([]string, 0, len(store.Skills))
	for i, skill := range store.Skills {
		bar := lipgloss.NewStyle().Foreground(colors[i]).Render(strings.Repeat("█", ratings[i]*4))
		empty := mutedStyle.Render(strings.Repeat("░", (5-ratings[i])*4))

		trend := ""
		switch trends[skill] {
		case store.TrendImproved:
			trend = successStyle.Render(" ↑")
		case store.TrendDeclined:
			trend = errorStyle.Render(" ↓")
		case store.TrendStable:
			if hasPrev {
				trend = mutedStyle.Render(" →")
			}
		}

		rows = append(rows, fmt.Sprintf("  %-10s %s%s %d/5%s",
			titleCase(skill), bar, empty, ratings[i], trend))
	}
	return rows
}

func (r radarModel) renderBalance(snap store.RadarSnapshot) string {
	score := store.BalanceIndex(snap)
	label := "balanced"
	style := successStyle
	switch {
	case score < 50:
		label = "uneven"
		style = warningStyle
	case score < 80:
		label = "fairly balanced"
		style = accentStyle
	}
	return fmt.Sprintf("  %s %s %s",
		subtitleStyle.Render("Balance index:"),
		bigValueStyle.Render(fmt.Sprintf("%d", score)),
		style.Render("("+label+")"),
	)
}
