package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanerden/lingua/internal/export"
	"github.com/okanerden/lingua/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	profile string
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	planPopup     bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	tracker   trackerModel
	goals     goalsModel
	resources resourcesModel
	radar     radarModel
	profiles  profilesModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	profile, err := s.ActiveProfileID()
	if err != nil {
		profile = store.DefaultProfileID
	}

	cfg, _ := s.Settings()
	applyTheme(cfg.Theme)

	popup := false
	if cfg.OpenOnStartup {
		if plan, err := s.Plan(profile); err == nil && plan.ShowOnStartup {
			for _, t := range plan.Tasks {
				if t != "" {
					popup = true
					break
				}
			}
		}
	}

	a := App{
		store:      s,
		profile:    profile,
		activeView: viewDashboard,
		planPopup:  popup,
		help:       h,
	}
	a.buildViews()
	return a
}

// buildViews constructs all sub-models for the current profile.
func (a *App) buildViews() {
	a.dashboard = newDashboardModel(a.store, a.profile)
	a.tracker = newTrackerModel(a.store, a.profile)
	a.goals = newGoalsModel(a.store, a.profile)
	a.resources = newResourcesModel(a.store, a.profile)
	a.radar = newRadarModel(a.store, a.profile)
	a.profiles = newProfilesModel(a.store, a.profile)
	a.settings = newSettingsModel(a.store)
	a.setSizes()
}

func (a *App) setSizes() {
	contentHeight := a.height - 4 // header + footer
	a.dashboard.setSize(a.width, contentHeight)
	a.tracker.setSize(a.width, contentHeight)
	a.goals.setSize(a.width, contentHeight)
	a.resources.setSize(a.width, contentHeight)
	a.radar.setSize(a.width, contentHeight)
	a.profiles.setSize(a.width, contentHeight)
	a.settings.setSize(a.width, contentHeight)
}

func (a App) Init() tea.Cmd {
	return a.dashboard.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.setSizes()
		return a, nil

	case tea.KeyMsg:
		if a.planPopup {
			a.planPopup = false
			return a, nil
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTracker
			return a, a.tracker.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewGoals
			return a, a.goals.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewResources
			return a, a.resources.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewRadar
			return a, a.radar.refresh()
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewProfiles
			return a, a.profiles.refresh()
		case key.Matches(msg, keys.Tab7):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 7
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case profileSwitchedMsg:
		a.profile = msg.id
		a.buildViews()
		a.status = "Switched to profile " + msg.id
		return a, tea.Batch(a.dashboard.refresh(), a.refreshCurrentView())

	case settingsSavedMsg:
		applyTheme(msg.theme)
		a.status = "Settings saved"
		return a, a.settings.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTracker:
		a.tracker, cmd = a.tracker.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewResources:
		a.resources, cmd = a.resources.update(msg)
	case viewRadar:
		a.radar, cmd = a.radar.update(msg)
	case viewProfiles:
		a.profiles, cmd = a.profiles.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewGoals:
		return a.goals.formActive
	case viewResources:
		return a.resources.formActive
	case viewRadar:
		return a.radar.formActive
	case viewProfiles:
		return a.profiles.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewTracker:
		return a.tracker.refresh()
	case viewGoals:
		return a.goals.refresh()
	case viewResources:
		return a.resources.refresh()
	case viewRadar:
		return a.radar.refresh()
	case viewProfiles:
		return a.profiles.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTracker:
		content = a.tracker.view()
	case viewGoals:
		content = a.goals.view()
	case viewResources:
		content = a.resources.view()
	case viewRadar:
		content = a.radar.view()
	case viewProfiles:
		content = a.profiles.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}
	if a.planPopup {
		content = a.renderPlanPopup()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("lingua")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	profileInfo := highlightStyle.Render(" " + a.profile)

	left := footerStyle.Render(helpView)
	right := profileInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderPlanPopup() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Today's Plan"))
	rows = append(rows, "")
	for i, t := range a.dashboard.plan.Tasks {
		if t == "" {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %s %s", accentStyle.Render(fmt.Sprintf("%d.", i+1)), normalItemStyle.Render(t)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  press any key to continue"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

var exportFormats = []string{"CSV (tracker log)", "JSON (full snapshot)", "XLSX (workbook)"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	st := a.store
	profile := a.profile
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		switch format {
		case 0:
			log, err := st.Tracker(profile)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("lingua-%s-%s.csv", profile, dateStr))
			if err := export.ToCSV(log, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		case 1:
			snap, err := export.Gather(st, profile)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("lingua-%s-%s.json", profile, dateStr))
			if err := export.ToJSON(snap, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		default:
			snap, err := export.Gather(st, profile)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("lingua-%s-%s.xlsx", profile, dateStr))
			if err := export.ToXLSX(snap, path); err != nil {
				return statusMsg{text: fmt.Sprintf("XLSX error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
