package store

// Themes are the selectable appearance palettes. "auto" follows the
// terminal's background where detectable.
var Themes = []string{"auto", "light", "dark", "zen", "high_contrast", "japanese_pastel"}

// Font size bounds for the settings form.
const (
	MinFontSize = 8
	MaxFontSize = 24
)

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		Theme:         "auto",
		FontSize:      14,
		OpenOnStartup: false,
	}
}

// Settings loads the global settings document, default-filling missing
// fields so older documents stay readable.
func (s *Store) Settings() (Settings, error) {
	cfg := DefaultSettings()
	_, err := loadDoc(s.globalDoc(settingsFile), &cfg)
	if err != nil {
		return DefaultSettings(), err
	}
	if cfg.Theme == "" || !contains(Themes, cfg.Theme) {
		cfg.Theme = DefaultSettings().Theme
	}
	if cfg.FontSize < MinFontSize || cfg.FontSize > MaxFontSize {
		cfg.FontSize = DefaultSettings().FontSize
	}
	return cfg, nil
}

// SaveSettings validates and persists the global settings.
func (s *Store) SaveSettings(cfg Settings) error {
	if !contains(Themes, cfg.Theme) {
		return ValidationError{Field: "theme", Reason: "unknown theme '" + cfg.Theme + "'"}
	}
	if cfg.FontSize < MinFontSize || cfg.FontSize > MaxFontSize {
		return ValidationError{Field: "font_size", Reason: "font size must be between 8 and 24"}
	}
	return saveDoc(s.globalDoc(settingsFile), cfg)
}
