package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanerden/lingua/internal/store"
)

type profilesModel struct {
	store   *store.Store
	profile string // active profile id
	width   int
	height  int

	registry store.Registry
	cursor   int

	formActive bool
	form       *huh.Form
	renamingID string // empty means creating
	confirming bool

	formName    *string
	formConfirm *bool
}

func newProfilesModel(s *store.Store, profile string) profilesModel {
	name := ""
	confirm := false
	return profilesModel{
		store:       s,
		profile:     profile,
		formName:    &name,
		formConfirm: &confirm,
	}
}

func (p *profilesModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type profilesDataMsg struct {
	registry store.Registry
}

func (p profilesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		reg, err := p.store.Registry()
		if err != nil {
			return errStatus(err)
		}
		return profilesDataMsg{registry: reg}
	}
}

func (p profilesModel) update(msg tea.Msg) (profilesModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case profilesDataMsg:
		p.registry = msg.registry
		if p.cursor >= len(p.registry.Profiles) {
			p.cursor = max(0, len(p.registry.Profiles)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.registry.Profiles)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showNameForm("")
		case key.Matches(msg, keys.Edit):
			if len(p.registry.Profiles) > 0 {
				return p.showNameForm(p.registry.Profiles[p.cursor].ID)
			}
		case key.Matches(msg, keys.Delete):
			if len(p.registry.Profiles) > 0 {
				return p.showDeleteConfirm()
			}
		case key.Matches(msg, keys.Enter):
			if len(p.registry.Profiles) > 0 {
				return p, p.activate(p.registry.Profiles[p.cursor].ID)
			}
		}
	}
	return p, nil
}

func (p profilesModel) activate(id string) tea.Cmd {
	st := p.store
	return func() tea.Msg {
		if err := st.SetActiveProfile(id); err != nil {
			return errStatus(err)
		}
		return profileSwitchedMsg{id: id}
	}
}

func (p profilesModel) showNameForm(renamingID string) (profilesModel, tea.Cmd) {
	p.renamingID = renamingID
	*p.formName = ""
	title := "New Profile"
	if renamingID != "" {
		title = "Rename Profile"
		for _, row := range p.registry.Profiles {
			if row.ID == renamingID {
				*p.formName = row.DisplayName
			}
		}
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Placeholder("e.g. Spanish").Value(p.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	p.confirming = false
	return p, p.form.Init()
}

func (p profilesModel) showDeleteConfirm() (profilesModel, tea.Cmd) {
	*p.formConfirm = false
	row := p.registry.Profiles[p.cursor]
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete profile %q and all its data?", row.DisplayName)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(p.formConfirm),
		),
	).WithShowHelp(true)

	p.formActive = true
	p.confirming = true
	return p, p.form.Init()
}

func (p profilesModel) updateForm(msg tea.Msg) (profilesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		if p.confirming {
			if *p.formConfirm {
				return p, p.deleteSelected()
			}
			return p, nil
		}
		return p, p.submitName()
	}

	return p, cmd
}

func (p profilesModel) submitName() tea.Cmd {
	name := strings.TrimSpace(*p.formName)
	renamingID := p.renamingID
	st := p.store
	return func() tea.Msg {
		var err error
		if renamingID == "" {
			_, err = st.CreateProfile(name)
		} else {
			err = st.RenameProfile(renamingID, name)
		}
		if err != nil {
			return errStatus(err)
		}
		reg, err := st.Registry()
		if err != nil {
			return errStatus(err)
		}
		return profilesDataMsg{registry: reg}
	}
}

func (p profilesModel) deleteSelected() tea.Cmd {
	id := p.registry.Profiles[p.cursor].ID
	st := p.store
	return func() tea.Msg {
		if err := st.DeleteProfile(id); err != nil {
			return errStatus(err)
		}
		reg, err := st.Registry()
		if err != nil {
			return errStatus(err)
		}
		return profilesDataMsg{registry: reg}
	}
}

func (p profilesModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := "New Profile"
		if p.confirming {
			title = "Delete Profile"
		} else if p.renamingID != "" {
			title = "Rename Profile"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", p.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Language Profiles"))
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("  %d of %d", len(p.registry.Profiles), store.MaxProfiles)))
	rows = append(rows, "")

	for i, row := range p.registry.Profiles {
		rows = append(rows, p.renderProfileRow(i, row))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: switch  n: new  e: rename  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p profilesModel) renderProfileRow(i int, row store.Profile) string {
	cursor := "  "
	style := normalItemStyle
	if i == p.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	marker := "  "
	if row.ID == p.registry.ActiveProfile {
		marker = successStyle.Render("● ")
	}

	line := fmt.Sprintf("%s%s%s  %s", cursor, marker, style.Render(row.DisplayName), mutedStyle.Render(row.ID))
	if row.LastUsed != "" {
		line += subtitleStyle.Render("  last used " + row.LastUsed[:10])
	}
	return line
}
