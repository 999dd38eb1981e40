package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanerden/lingua/internal/store"
)

type goalsModel struct {
	store   *store.Store
	profile string
	width   int
	height  int

	month string
	goals store.MonthGoals

	cursor          int  // goal slot 0-2
	subCursor       int  // subtask index
	viewingSubtasks bool // drilled into one goal's subtasks

	formActive bool
	form       *huh.Form
	formType   string // "goal", "subtask"

	// Form field pointers (survive value copies)
	formTitle      *string
	formCategory   *string
	formReflection *string
	formSubtask    *string
	formNotes      *string
}

func newGoalsModel(s *store.Store, profile string) goalsModel {
	title, cat, refl, sub, notes := "", store.DefaultGoalCategory, "", "", ""
	return goalsModel{
		store:          s,
		profile:        profile,
		month:          store.CurrentMonth(),
		formTitle:      &title,
		formCategory:   &cat,
		formReflection: &refl,
		formSubtask:    &sub,
		formNotes:      &notes,
	}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

type goalsDataMsg struct {
	goals store.MonthGoals
}

func (g goalsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		goals, err := g.store.GoalsForMonth(g.profile, g.month)
		if err != nil {
			return errStatus(err)
		}
		return goalsDataMsg{goals: goals}
	}
}

func (g goalsModel) archived() bool {
	return g.goals.Archived || g.month < store.CurrentMonth()
}

func (g goalsModel) rejectArchived() tea.Cmd {
	month := g.month
	return func() tea.Msg {
		return statusMsg{text: monthLabel(month) + " is archived and read-only", isError: true}
	}
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	switch msg := msg.(type) {
	case goalsDataMsg:
		g.goals = msg.goals
		if g.subCursor >= len(g.goals.Goals[g.cursor].Subtasks) {
			g.subCursor = max(0, len(g.goals.Goals[g.cursor].Subtasks)-1)
		}
		return g, nil

	case tea.KeyMsg:
		if g.viewingSubtasks {
			return g.updateSubtaskView(msg)
		}
		return g.updateGoalList(msg)
	}
	return g, nil
}

func (g goalsModel) updateGoalList(msg tea.KeyMsg) (goalsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.PrevMonth):
		g.month = shiftMonth(g.month, -1)
		return g, g.refresh()
	case key.Matches(msg, keys.NextMonth):
		g.month = shiftMonth(g.month, 1)
		return g, g.refresh()
	case key.Matches(msg, keys.Up):
		if g.cursor > 0 {
			g.cursor--
		}
	case key.Matches(msg, keys.Down):
		if g.cursor < len(g.goals.Goals)-1 {
			g.cursor++
		}
	case key.Matches(msg, keys.Enter):
		g.viewingSubtasks = true
		g.subCursor = 0
		return g, nil
	case key.Matches(msg, keys.Toggle):
		if g.archived() {
			return g, g.rejectArchived()
		}
		return g.toggleGoalDone()
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.New):
		if g.archived() {
			return g, g.rejectArchived()
		}
		return g.showGoalForm()
	}
	return g, nil
}

func (g goalsModel) updateSubtaskView(msg tea.KeyMsg) (goalsModel, tea.Cmd) {
	subtasks := g.goals.Goals[g.cursor].Subtasks
	switch {
	case key.Matches(msg, keys.Back):
		g.viewingSubtasks = false
		return g, nil
	case key.Matches(msg, keys.Up):
		if g.subCursor > 0 {
			g.subCursor--
		}
	case key.Matches(msg, keys.Down):
		if g.subCursor < len(subtasks)-1 {
			g.subCursor++
		}
	case key.Matches(msg, keys.New):
		if g.archived() {
			return g, g.rejectArchived()
		}
		return g.showSubtaskForm()
	case key.Matches(msg, keys.Toggle):
		if g.archived() {
			return g, g.rejectArchived()
		}
		if len(subtasks) > 0 {
			g.goals.Goals[g.cursor].Subtasks[g.subCursor].Done = !subtasks[g.subCursor].Done
			return g, g.save()
		}
	case key.Matches(msg, keys.Delete):
		if g.archived() {
			return g, g.rejectArchived()
		}
		if len(subtasks) > 0 {
			g.goals.Goals[g.cursor].Subtasks = append(subtasks[:g.subCursor], subtasks[g.subCursor+1:]...)
			if g.subCursor >= len(g.goals.Goals[g.cursor].Subtasks) {
				g.subCursor = max(0, len(g.goals.Goals[g.cursor].Subtasks)-1)
			}
			return g, g.save()
		}
	}
	return g, nil
}

func (g goalsModel) toggleGoalDone() (goalsModel, tea.Cmd) {
	done := !g.goals.Goals[g.cursor].Done
	store.MarkGoalDone(&g.goals, g.cursor, done, time.Now())
	return g, g.save()
}

// save persists the month and reloads it; the store rejects writes to
// archived months.
func (g goalsModel) save() tea.Cmd {
	goals := g.goals
	st := g.store
	profile := g.profile
	return func() tea.Msg {
		if err := st.SaveGoalsForMonth(profile, goals); err != nil {
			return errStatus(err)
		}
		g2, err := st.GoalsForMonth(profile, goals.Month)
		if err != nil {
			return errStatus(err)
		}
		return goalsDataMsg{goals: g2}
	}
}

func (g goalsModel) showGoalForm() (goalsModel, tea.Cmd) {
	goal := g.goals.Goals[g.cursor]
	*g.formTitle = goal.Title
	*g.formCategory = goal.Category
	*g.formReflection = goal.Reflection
	*g.formNotes = g.goals.Notes
	g.formType = "goal"

	catOptions := make([]huh.Option[string], len(store.GoalCategories))
	for i, c := range store.GoalCategories {
		catOptions[i] = huh.NewOption(c, c)
	}

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Goal %d", g.cursor+1)).Value(g.formTitle),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(g.formCategory),
			huh.NewText().Title("Reflection").Value(g.formReflection),
			huh.NewText().Title("Month notes").Value(g.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) showSubtaskForm() (goalsModel, tea.Cmd) {
	*g.formSubtask = ""
	g.formType = "subtask"

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subtask").Value(g.formSubtask),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		switch g.formType {
		case "goal":
			goal := &g.goals.Goals[g.cursor]
			goal.Title = *g.formTitle
			goal.Category = *g.formCategory
			goal.Reflection = *g.formReflection
			g.goals.Notes = *g.formNotes
			if goal.CreatedAt == "" && goal.Title != "" {
				goal.CreatedAt = time.Now().Format(time.RFC3339)
			}
			return g, g.save()
		case "subtask":
			if *g.formSubtask != "" {
				goal := &g.goals.Goals[g.cursor]
				goal.Subtasks = append(goal.Subtasks, store.Subtask{Text: *g.formSubtask})
				return g, g.save()
			}
		}
	}

	return g, cmd
}

func (g goalsModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		title := titleStyle.Render("Edit Goal")
		if g.formType == "subtask" {
			title = titleStyle.Render("New Subtask")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", g.form.View()),
		)
	}

	if g.viewingSubtasks {
		return g.renderSubtaskView()
	}
	return g.renderGoalList()
}

func (g goalsModel) renderGoalList() string {
	w := g.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Goals"), "  ",
		highlightStyle.Render(monthLabel(g.month)),
	)

	var rows []string
	rows = append(rows, header)
	if g.archived() {
		rows = append(rows, archivedBanner.Render("Archived — read only"))
	}
	rows = append(rows, "")

	done := 0
	for i, goal := range g.goals.Goals {
		if goal.Done {
			done++
		}
		rows = append(rows, g.renderGoalCard(i, goal))
	}

	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("  %d / 3 goals completed", done)))
	if g.goals.Notes != "" {
		rows = append(rows, mutedStyle.Render("  Notes: "+truncate(g.goals.Notes, 60)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: edit  space: complete  enter: subtasks  [ ]: month"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (g goalsModel) renderGoalCard(i int, goal store.Goal) string {
	cursor := "  "
	style := normalItemStyle
	if i == g.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	check := mutedStyle.Render("[ ]")
	if goal.Done {
		check = successStyle.Render("[✓]")
	}

	title := goal.Title
	if title == "" {
		title = mutedStyle.Render("(empty slot)")
	} else {
		title = style.Render(title)
	}

	line := fmt.Sprintf("%s%s %s  %s", cursor, check, title, subtitleStyle.Render(goal.Category))
	if n := len(goal.Subtasks); n > 0 {
		doneCount := 0
		for _, st := range goal.Subtasks {
			if st.Done {
				doneCount++
			}
		}
		line += mutedStyle.Render(fmt.Sprintf("  (%d/%d subtasks)", doneCount, n))
	}
	return line
}

func (g goalsModel) renderSubtaskView() string {
	w := g.width - 4
	goal := g.goals.Goals[g.cursor]

	title := goal.Title
	if title == "" {
		title = fmt.Sprintf("Goal %d", g.cursor+1)
	}
	header := titleStyle.Render(title + " — Subtasks")

	var rows []string
	rows = append(rows, header)
	if g.archived() {
		rows = append(rows, archivedBanner.Render("Archived — read only"))
	}
	rows = append(rows, "")

	if len(goal.Subtasks) == 0 {
		rows = append(rows, mutedStyle.Render("No subtasks. Press n to add one."))
	}
	for i, st := range goal.Subtasks {
		cursor := "  "
		style := normalItemStyle
		if i == g.subCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := mutedStyle.Render("[ ]")
		if st.Done {
			check = successStyle.Render("[✓]")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, check, style.Render(st.Text)))
	}

	if goal.Reflection != "" {
		rows = append(rows, "")
		rows = append(rows, subtitleStyle.Render("Reflection: ")+normalItemStyle.Render(goal.Reflection))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: toggle  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
