package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the scene and the side panel.
type Theme struct {
	Name   string
	Planet lipgloss.Color
	Ball   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:   "night",
		Planet: lipgloss.Color("#4682b4"),
		Ball:   lipgloss.Color("#00ff88"),
		Accent: lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#666688"),
		Warn:   lipgloss.Color("#ffaa00"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Planet: lipgloss.Color("#00cc00"),
		Ball:   lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Warn:   lipgloss.Color("#ffff00"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Planet: lipgloss.Color("#ff6b6b"),
		Ball:   lipgloss.Color("#feca57"),
		Accent: lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Warn:   lipgloss.Color("#ffc048"),
		Error:  lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeNight, ThemeRetro, ThemeSunset}
)

// themeIndex returns the position of the named theme, or 0 when unknown.
func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
