package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a palette. Every view styles itself from the active theme.
type Theme struct {
	Name string

	Background lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Faded      lipgloss.Color
	Accent     lipgloss.Color

	Green  lipgloss.Color
	Red    lipgloss.Color
	Yellow lipgloss.Color
	Orange lipgloss.Color
}

const DefaultTheme = "dark"

var themes = map[string]Theme{
	"dark": {
		Name:       "dark",
		Background: "#000",
		Primary:    "#fff",
		Secondary:  "#888",
		Faded:      "#555",
		Accent:     "#4db7ff",
		Green:      "#00a352",
		Red:        "#c42912",
		Yellow:     "#c4b810",
		Orange:     "#c27510",
	},
	"light": {
		Name:       "light",
		Background: "#f9fafb",
		Primary:    "#111827",
		Secondary:  "#4b5563",
		Faded:      "#9ca3af",
		Accent:     "#374151",
		Green:      "#047857",
		Red:        "#b91c1c",
		Yellow:     "#a16207",
		Orange:     "#c2410c",
	},
	"ocean": {
		Name:       "ocean",
		Background: "#1e3a8a",
		Primary:    "#eff6ff",
		Secondary:  "#bfdbfe",
		Faded:      "#93c5fd",
		Accent:     "#60a5fa",
		Green:      "#34d399",
		Red:        "#f87171",
		Yellow:     "#fde047",
		Orange:     "#fb923c",
	},
	"forest": {
		Name:       "forest",
		Background: "#14532d",
		Primary:    "#f0fdf4",
		Secondary:  "#bbf7d0",
		Faded:      "#86efac",
		Accent:     "#4ade80",
		Green:      "#a3e635",
		Red:        "#fca5a5",
		Yellow:     "#fde68a",
		Orange:     "#fdba74",
	},
	"purple": {
		Name:       "purple",
		Background: "#581c87",
		Primary:    "#faf5ff",
		Secondary:  "#e9d5ff",
		Faded:      "#d8b4fe",
		Accent:     "#c084fc",
		Green:      "#6ee7b7",
		Red:        "#fda4af",
		Yellow:     "#fde68a",
		Orange:     "#fdba74",
	},
}

func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the available themes in a stable order, the default first.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultTheme}, names...)
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == t.Name {
			return themes[names[(i+1)%len(names)]]
		}
	}
	return themes[DefaultTheme]
}
