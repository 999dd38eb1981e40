package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanerden/lingua/internal/store"
)

type dashboardModel struct {
	store   *store.Store
	profile string
	width   int
	height  int

	displayName string
	log         store.TrackerLog
	goals       store.MonthGoals
	plan        store.DailyPlan
	radarDays   int
	radarKnown  bool

	formActive bool
	form       *huh.Form
	planSlots  [4]*string

	chart barchart.Model
}

func newDashboardModel(s *store.Store, profile string) dashboardModel {
	d := dashboardModel{
		store:   s,
		profile: profile,
		chart:   barchart.New(40, 8),
	}
	for i := range d.planSlots {
		v := ""
		d.planSlots[i] = &v
	}
	return d
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

type dashboardDataMsg struct {
	displayName string
	log         store.TrackerLog
	goals       store.MonthGoals
	plan        store.DailyPlan
	radarDays   int
	radarKnown  bool
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		log, err := d.store.Tracker(d.profile)
		if err != nil {
			return errStatus(err)
		}
		goals, err := d.store.GoalsForMonth(d.profile, store.CurrentMonth())
		if err != nil {
			return errStatus(err)
		}
		plan, err := d.store.Plan(d.profile)
		if err != nil {
			return errStatus(err)
		}
		days, known, err := d.store.DaysSinceLastSnapshot(d.profile, time.Now())
		if err != nil {
			return errStatus(err)
		}

		name := d.profile
		if reg, err := d.store.Registry(); err == nil {
			for _, row := range reg.Profiles {
				if row.ID == d.profile {
					name = row.DisplayName
				}
			}
		}

		return dashboardDataMsg{
			displayName: name,
			log:         log,
			goals:       goals,
			plan:        plan,
			radarDays:   days,
			radarKnown:  known,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.displayName = msg.displayName
		d.log = msg.log
		d.goals = msg.goals
		d.plan = msg.plan
		d.radarDays = msg.radarDays
		d.radarKnown = msg.radarKnown
		d.buildChart()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Plan), key.Matches(msg, keys.Edit):
			return d.showPlanForm()
		}
	}
	return d, nil
}

func (d dashboardModel) showPlanForm() (dashboardModel, tea.Cmd) {
	for i := range d.planSlots {
		*d.planSlots[i] = d.plan.Tasks[i]
	}

	fields := make([]huh.Field, len(d.planSlots))
	for i := range d.planSlots {
		fields[i] = huh.NewInput().Title(fmt.Sprintf("Task %d", i+1)).Value(d.planSlots[i])
	}

	d.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		plan := d.plan
		for i := range d.planSlots {
			plan.Tasks[i] = strings.TrimSpace(*d.planSlots[i])
		}
		st := d.store
		profile := d.profile
		return d, func() tea.Msg {
			if err := st.SavePlan(profile, plan); err != nil {
				return errStatus(err)
			}
			p, err := st.Plan(profile)
			if err != nil {
				return errStatus(err)
			}
			return dashboardDataMsg{
				displayName: d.displayName,
				log:         d.log,
				goals:       d.goals,
				plan:        p,
				radarDays:   d.radarDays,
				radarKnown:  d.radarKnown,
			}
		}
	}

	return d, cmd
}

// buildChart plots active skills per day for the last 7 days.
func (d *dashboardModel) buildChart() {
	chartWidth := min(d.width-8, 56)
	if chartWidth < 21 {
		chartWidth = 21
	}
	d.chart = barchart.New(chartWidth, 8)

	colors := skillColors()
	today := time.Now()

	var bars []barchart.BarData
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		rec := d.log[day.Format("2006-01-02")]

		var values []barchart.BarValue
		for j, skill := range store.Skills {
			if rec[skill] {
				values = append(values, barchart.BarValue{
					Name:  skill,
					Value: 1,
					Style: lipgloss.NewStyle().Foreground(colors[j]),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  day.Format("Mon"),
			Values: values,
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	w := d.width - 4

	if d.formActive && d.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Today's Plan"), "", d.form.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderWelcomePanel(w),
		d.renderWeekPanel(w),
		d.renderGoalsPanel(w),
		d.renderPlanPanel(w),
	)
}

func (d dashboardModel) renderWelcomePanel(w int) string {
	name := d.displayName
	if name == "" {
		name = d.profile
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Dashboard"), "  ",
		highlightStyle.Render(name), "  ",
		mutedStyle.Render(time.Now().Format("Monday, Jan 2")),
	)

	rows := []string{header}
	if !d.radarKnown {
		rows = append(rows, warningStyle.Render("  No skill snapshot yet. Visit the Radar tab to rate yourself."))
	} else if d.radarDays > 30 {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  Last skill snapshot was %d days ago. Time for a new one?", d.radarDays)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderWeekPanel(w int) string {
	percent, activeDays := store.WeekConsistency(d.log, time.Now())

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("This Week"), "  ",
		bigValueStyle.Render(fmt.Sprintf("%d%%", percent)), "  ",
		subtitleStyle.Render(fmt.Sprintf("%d of 7 days active", activeDays)),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", d.chart.View()),
	)
}

func (d dashboardModel) renderGoalsPanel(w int) string {
	done := 0
	var rows []string
	rows = append(rows, titleStyle.Render("Goals — "+monthLabel(d.goals.Month)))
	for _, g := range d.goals.Goals {
		if g.Done {
			done++
		}
		check := mutedStyle.Render("[ ]")
		if g.Done {
			check = successStyle.Render("[✓]")
		}
		title := g.Title
		if title == "" {
			title = mutedStyle.Render("(empty slot)")
		}
		rows = append(rows, fmt.Sprintf("  %s %s", check, title))
	}
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("  %d / 3 completed", done)))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderPlanPanel(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Today's Plan"))

	empty := true
	for i, task := range d.plan.Tasks {
		if task == "" {
			continue
		}
		empty = false
		rows = append(rows, fmt.Sprintf("  %s %s", accentStyle.Render(fmt.Sprintf("%d.", i+1)), normalItemStyle.Render(task)))
	}
	if empty {
		rows = append(rows, mutedStyle.Render("  Nothing planned. Press p to set up today."))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
