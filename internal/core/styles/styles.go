// Package styles provides shared lipgloss styles for the dashboard.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Styles derived from the active palette.
var (
	TitleStyle        lipgloss.Style
	MutedStyle        lipgloss.Style
	TabStyle          lipgloss.Style
	ActiveTabStyle    lipgloss.Style
	TableHeaderStyle  lipgloss.Style
	SelectedRowStyle  lipgloss.Style
	ErrorBannerStyle  lipgloss.Style
	ModalStyle        lipgloss.Style
	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme activates a palette and rebuilds all derived styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	TabStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 2)
	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 2).
		Underline(true)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	SelectedRowStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Bold(true)

	ErrorBannerStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Error).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(p.Secondary).Foreground(p.Foreground)
	ToastSuccessStyle = toastBase.BorderForeground(p.Success).Foreground(p.Success)
	ToastWarningStyle = toastBase.BorderForeground(p.Warning).Foreground(p.Warning)
	ToastErrorStyle = toastBase.BorderForeground(p.Error).Foreground(p.Error)
}

func init() {
	SetTheme(themes[DefaultTheme])
}

func styleFor(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
