package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanerden/lingua/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   store.Settings
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	theme     *string
	fontSize  *string
	onStartup *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	theme, fontSize := "", ""
	onStartup := false
	return settingsModel{
		store:     s,
		theme:     &theme,
		fontSize:  &fontSize,
		onStartup: &onStartup,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.Settings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, err := s.store.Settings()
		if err != nil {
			return errStatus(err)
		}
		return settingsDataMsg{settings: cfg}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.theme = s.settings.Theme
	*s.fontSize = strconv.Itoa(s.settings.FontSize)
	*s.onStartup = s.settings.OpenOnStartup

	themeOptions := make([]huh.Option[string], len(store.Themes))
	for i, t := range store.Themes {
		themeOptions[i] = huh.NewOption(titleCase(strings.ReplaceAll(t, "_", " ")), t)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").Options(themeOptions...).Value(s.theme),
			huh.NewInput().
				Title("Font size").
				Description(fmt.Sprintf("%d to %d", store.MinFontSize, store.MaxFontSize)).
				Value(s.fontSize).
				Validate(validateFontSize),
			huh.NewConfirm().
				Title("Show daily plan on startup").
				Affirmative("Yes").
				Negative("No").
				Value(s.onStartup),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validateFontSize(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < store.MinFontSize || n > store.MaxFontSize {
		return fmt.Errorf("must be between %d and %d", store.MinFontSize, store.MaxFontSize)
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		size, _ := strconv.Atoi(*s.fontSize)
		cfg := s.settings
		cfg.Theme = *s.theme
		cfg.FontSize = size
		cfg.OpenOnStartup = *s.onStartup
		st := s.store
		return s, func() tea.Msg {
			if err := st.SaveSettings(cfg); err != nil {
				return errStatus(err)
			}
			return settingsSavedMsg{theme: cfg.Theme}
		}
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	startup := "No"
	if s.settings.OpenOnStartup {
		startup = "Yes"
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		s.renderRow("Theme", titleCase(strings.ReplaceAll(s.settings.Theme, "_", " "))),
		s.renderRow("Font size", strconv.Itoa(s.settings.FontSize)),
		s.renderRow("Plan on startup", startup),
		"",
		mutedStyle.Render("  e: edit"),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (s settingsModel) renderRow(label, value string) string {
	return fmt.Sprintf("  %s %s", subtitleStyle.Render(fmt.Sprintf("%-18s", label)), normalItemStyle.Render(value))
}
