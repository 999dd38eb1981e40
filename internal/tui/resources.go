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

type resourcesModel struct {
	store   *store.Store
	profile string
	width   int
	height  int

	resources []store.Resource
	cursor    int

	formActive bool
	form       *huh.Form
	editingID  string // empty means creating
	confirming bool   // delete confirm form

	formTitle   *string
	formType    *string
	formURL     *string
	formStatus  *string
	formNotes   *string
	formTags    *string
	formConfirm *bool
}

func newResourcesModel(s *store.Store, profile string) resourcesModel {
	title, rtype, url, status, notes, tags := "", store.ResourceTypes[0], "", store.ResourceStatuses[0], "", ""
	confirm := false
	return resourcesModel{
		store:       s,
		profile:     profile,
		formTitle:   &title,
		formType:    &rtype,
		formURL:     &url,
		formStatus:  &status,
		formNotes:   &notes,
		formTags:    &tags,
		formConfirm: &confirm,
	}
}

func (r *resourcesModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type resourcesDataMsg struct {
	resources []store.Resource
}

func (r resourcesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		res, err := r.store.Resources(r.profile)
		if err != nil {
			return errStatus(err)
		}
		return resourcesDataMsg{resources: res}
	}
}

func (r resourcesModel) update(msg tea.Msg) (resourcesModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case resourcesDataMsg:
		r.resources = msg.resources
		if r.cursor >= len(r.resources) {
			r.cursor = max(0, len(r.resources)-1)
		}
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.resources)-1 {
				r.cursor++
			}
		case key.Matches(msg, keys.New):
			return r.showForm(store.Resource{})
		case key.Matches(msg, keys.Edit):
			if len(r.resources) > 0 {
				return r.showForm(r.resources[r.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(r.resources) > 0 {
				return r.showDeleteConfirm()
			}
		case key.Matches(msg, keys.Open):
			if len(r.resources) > 0 {
				return r, r.openSelected()
			}
		}
	}
	return r, nil
}

func (r resourcesModel) openSelected() tea.Cmd {
	res := r.resources[r.cursor]
	return func() tea.Msg {
		if res.URL == "" {
			return statusMsg{text: "No URL for " + res.Title, isError: true}
		}
		if err := openURL(res.URL); err != nil {
			return errStatus(fmt.Errorf("open url: %w", err))
		}
		return statusMsg{text: "Opened " + res.URL}
	}
}

func (r resourcesModel) showForm(res store.Resource) (resourcesModel, tea.Cmd) {
	r.editingID = res.ID
	*r.formTitle = res.Title
	*r.formURL = res.URL
	*r.formNotes = res.Notes
	*r.formTags = res.Tags
	*r.formType = res.Type
	if *r.formType == "" {
		*r.formType = store.ResourceTypes[0]
	}
	*r.formStatus = res.Status
	if *r.formStatus == "" {
		*r.formStatus = store.ResourceStatuses[0]
	}

	typeOptions := make([]huh.Option[string], len(store.ResourceTypes))
	for i, t := range store.ResourceTypes {
		typeOptions[i] = huh.NewOption(t, t)
	}
	statusOptions := make([]huh.Option[string], len(store.ResourceStatuses))
	for i, s := range store.ResourceStatuses {
		statusOptions[i] = huh.NewOption(s, s)
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(r.formTitle),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(r.formType),
			huh.NewInput().Title("URL").Placeholder("https://...").Value(r.formURL),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(r.formStatus),
			huh.NewInput().Title("Tags").Placeholder("comma, separated").Value(r.formTags),
			huh.NewText().Title("Notes").Value(r.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	r.confirming = false
	return r, r.form.Init()
}

func (r resourcesModel) showDeleteConfirm() (resourcesModel, tea.Cmd) {
	*r.formConfirm = false
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", r.resources[r.cursor].Title)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(r.formConfirm),
		),
	).WithShowHelp(true)

	r.formActive = true
	r.confirming = true
	return r, r.form.Init()
}

func (r resourcesModel) updateForm(msg tea.Msg) (resourcesModel, tea.Cmd) {
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
		if r.confirming {
			if *r.formConfirm {
				return r, r.deleteSelected()
			}
			return r, nil
		}
		return r, r.submit()
	}

	return r, cmd
}

func (r resourcesModel) submit() tea.Cmd {
	res := store.Resource{
		ID:     r.editingID,
		Title:  strings.TrimSpace(*r.formTitle),
		Type:   *r.formType,
		URL:    strings.TrimSpace(*r.formURL),
		Status: *r.formStatus,
		Notes:  *r.formNotes,
		Tags:   normalizeTags(*r.formTags),
	}
	st := r.store
	profile := r.profile
	return func() tea.Msg {
		var err error
		if res.ID == "" {
			_, err = st.AddResource(profile, res)
		} else {
			err = st.UpdateResource(profile, res)
		}
		if err != nil {
			return errStatus(err)
		}
		resources, err := st.Resources(profile)
		if err != nil {
			return errStatus(err)
		}
		return resourcesDataMsg{resources: resources}
	}
}

func (r resourcesModel) deleteSelected() tea.Cmd {
	id := r.resources[r.cursor].ID
	st := r.store
	profile := r.profile
	return func() tea.Msg {
		if err := st.DeleteResource(profile, id); err != nil {
			return errStatus(err)
		}
		resources, err := st.Resources(profile)
		if err != nil {
			return errStatus(err)
		}
		return resourcesDataMsg{resources: resources}
	}
}

// normalizeTags collapses a comma-separated tag field: trimmed, empties dropped.
func normalizeTags(s string) string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return strings.Join(tags, ",")
}

func (r resourcesModel) view() string {
	w := r.width - 4

	if r.formActive && r.form != nil {
		title := "New Resource"
		if r.confirming {
			title = "Delete Resource"
		} else if r.editingID != "" {
			title = "Edit Resource"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", r.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Resource Library"))
	rows = append(rows, "")

	if len(r.resources) == 0 {
		rows = append(rows, mutedStyle.Render("No resources yet. Press n to add one."))
	}
	for i, res := range r.resources {
		rows = append(rows, r.renderResourceRow(i, res))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  o: open url"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (r resourcesModel) renderResourceRow(i int, res store.Resource) string {
	cursor := "  "
	style := normalItemStyle
	if i == r.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	status := subtitleStyle.Render(res.Status)
	switch res.Status {
	case "Completed":
		status = successStyle.Render(res.Status)
	case "In Progress":
		status = accentStyle.Render(res.Status)
	case "Dropped":
		status = mutedStyle.Render(res.Status)
	}

	line := fmt.Sprintf("%s%s %s  %s",
		cursor,
		highlightStyle.Render("["+res.Type+"]"),
		style.Render(truncate(res.Title, 40)),
		status,
	)
	if res.Tags != "" {
		line += mutedStyle.Render("  [" + res.Tags + "]")
	}
	return line
}
