package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the live view.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Trail    lipgloss.Color
	Anchor   lipgloss.Color
	Close    lipgloss.Color
	Medium   lipgloss.Color
	Far      lipgloss.Color
	Followed lipgloss.Color
	Hovered  lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:     "night",
		Primary:  lipgloss.Color("#00ffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Trail:    lipgloss.Color("#333355"),
		Anchor:   lipgloss.Color("#ffcc00"),
		Close:    lipgloss.Color("#ff4466"),
		Medium:   lipgloss.Color("#44ddff"),
		Far:      lipgloss.Color("#8877ff"),
		Followed: lipgloss.Color("#00ff88"),
		Hovered:  lipgloss.Color("#ff00ff"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Trail:    lipgloss.Color("#003300"),
		Anchor:   lipgloss.Color("#ccffcc"),
		Close:    lipgloss.Color("#88ff88"),
		Medium:   lipgloss.Color("#00cc00"),
		Far:      lipgloss.Color("#008800"),
		Followed: lipgloss.Color("#ffff00"),
		Hovered:  lipgloss.Color("#ffffff"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Trail:    lipgloss.Color("#4d3b4e"),
		Anchor:   lipgloss.Color("#feca57"),
		Close:    lipgloss.Color("#ff4757"),
		Medium:   lipgloss.Color("#ff9ff3"),
		Far:      lipgloss.Color("#5fd068"),
		Followed: lipgloss.Color("#ffffff"),
		Hovered:  lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{ThemeNight, ThemeRetroGreen, ThemeSunset}
)

// Ink returns the color for a canvas ink.
func (t Theme) Ink(ink Ink) lipgloss.Color {
	switch ink {
	case InkTrail:
		return t.Trail
	case InkClose:
		return t.Close
	case InkMedium:
		return t.Medium
	case InkFar:
		return t.Far
	case InkAnchor:
		return t.Anchor
	case InkFollowed:
		return t.Followed
	case InkHovered:
		return t.Hovered
	}
	return t.Text
}

// GetTheme returns a theme by name, falling back to the first.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
