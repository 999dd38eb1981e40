package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the colors one theme assigns.
type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errorC    lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

// Terminal renditions of the application themes. "auto" leaves the choice
// to the terminal palette by reusing the dark variant's hues.
var palettes = map[string]palette{
	"auto": {
		primary:   "#6C63FF",
		secondary: "#2EC4B6",
		accent:    "#FF6B6B",
		muted:     "#666666",
		success:   "#2ECC71",
		warning:   "#F39C12",
		errorC:    "#E74C3C",
		fg:        "#C0CAF5",
		subtle:    "#414868",
		highlight: "#7AA2F7",
	},
	"light": {
		primary:   "#4A6FA5",
		secondary: "#2A9D8F",
		accent:    "#E76F51",
		muted:     "#8A8A8A",
		success:   "#2E8540",
		warning:   "#B36B00",
		errorC:    "#C0392B",
		fg:        "#2B2B2B",
		subtle:    "#C8C8C8",
		highlight: "#30588C",
	},
	"dark": {
		primary:   "#4A9EFF",
		secondary: "#2EC4B6",
		accent:    "#FF6B6B",
		muted:     "#707070",
		success:   "#2ECC71",
		warning:   "#F39C12",
		errorC:    "#E74C3C",
		fg:        "#E0E0E0",
		subtle:    "#3A3A3A",
		highlight: "#6FB3FF",
	},
	"zen": {
		primary:   "#7D9D72",
		secondary: "#A3B899",
		accent:    "#C9A66B",
		muted:     "#7A7A6E",
		success:   "#7D9D72",
		warning:   "#C9A66B",
		errorC:    "#B06A5C",
		fg:        "#D8D6C9",
		subtle:    "#4A4A40",
		highlight: "#9FC08F",
	},
	"high_contrast": {
		primary:   "#FFFF00",
		secondary: "#00FFFF",
		accent:    "#FF00FF",
		muted:     "#AAAAAA",
		success:   "#00FF00",
		warning:   "#FFA500",
		errorC:    "#FF0000",
		fg:        "#FFFFFF",
		subtle:    "#555555",
		highlight: "#FFFF00",
	},
	"japanese_pastel": {
		primary:   "#E8A0BF",
		secondary: "#BAD7E9",
		accent:    "#FFC4C4",
		muted:     "#9E8FA3",
		success:   "#A8D8B9",
		warning:   "#F6D186",
		errorC:    "#E88A8A",
		fg:        "#F2E8E8",
		subtle:    "#5C4F5C",
		highlight: "#F4BFCB",
	},
}

// Color variables reassigned by applyTheme.
var (
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorMuted     lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorFg        lipgloss.Color
	colorSubtle    lipgloss.Color
	colorHighlight lipgloss.Color
)

// Styles rebuilt by applyTheme.
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	titleStyle        lipgloss.Style
	subtitleStyle     lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	bigValueStyle     lipgloss.Style
	archivedBanner    lipgloss.Style
)

func init() {
	applyTheme("auto")
}

// applyTheme swaps the color palette and rebuilds every style. Unknown
// names fall back to the auto palette.
func applyTheme(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["auto"]
	}

	colorPrimary = p.primary
	colorSecondary = p.secondary
	colorAccent = p.accent
	colorMuted = p.muted
	colorSuccess = p.success
	colorWarning = p.warning
	colorError = p.errorC
	colorFg = p.fg
	colorSubtle = p.subtle
	colorHighlight = p.highlight

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)

	bigValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary)

	archivedBanner = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWarning).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorWarning)
}
