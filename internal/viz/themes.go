package viz

import "github.com/charmbracelet/lipgloss"

// Theme assigns a colour to each role in the viewer and preset picker.
type Theme struct {
	Name    string
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Heading lipgloss.Color
	Chart   lipgloss.Color
	Bodies  lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Ended   lipgloss.Color
}

// Themes in the order the t key cycles through them. The first is the default.
var Themes = []Theme{
	{
		Name:    "nebula",
		Text:    "#e6e1ff",
		Dim:     "#6c6493",
		Heading: "#b48cff",
		Chart:   "#ff7ac6",
		Bodies:  "#ffd37a",
		Running: "#7af0c2",
		Paused:  "#ffb86b",
		Ended:   "#ff5f7e",
	},
	{
		Name:    "phosphor",
		Text:    "#33ff66",
		Dim:     "#1a7a33",
		Heading: "#66ff99",
		Chart:   "#33ff66",
		Bodies:  "#ccffcc",
		Running: "#66ff99",
		Paused:  "#e6ff66",
		Ended:   "#ff6633",
	},
	{
		Name:    "mono",
		Text:    "#f0f0f0",
		Dim:     "#7a7a7a",
		Heading: "#ffffff",
		Chart:   "#bdbdbd",
		Bodies:  "#ffffff",
		Running: "#f0f0f0",
		Paused:  "#bdbdbd",
		Ended:   "#ffffff",
	},
}

// GetTheme returns the named theme, or the default when name is unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
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
