package components

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#3B82F6")
	Secondary = lipgloss.Color("#93C5FD")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Danger    = lipgloss.Color("#EF4444")
	Muted     = lipgloss.Color("#6B7280")
	Text      = lipgloss.Color("#F9FAFB")
	TextDim   = lipgloss.Color("#9CA3AF")
)

// ThemeAccents maps theme color names to primary/secondary accents
var ThemeAccents = map[string][2]lipgloss.Color{
	"blue":   {"#3B82F6", "#93C5FD"},
	"green":  {"#10B981", "#6EE7B7"},
	"purple": {"#7C3AED", "#A78BFA"},
	"orange": {"#F97316", "#FDBA74"},
	"pink":   {"#EC4899", "#F9A8D4"},
}

// ApplyTheme sets the package palette for a theme color and dark or light
// terminal background. Unknown theme names keep the blue accent.
func ApplyTheme(theme string, dark bool) {
	accent, ok := ThemeAccents[theme]
	if !ok {
		accent = ThemeAccents["blue"]
	}
	Primary, Secondary = accent[0], accent[1]

	if dark {
		Text = lipgloss.Color("#F9FAFB")
		TextDim = lipgloss.Color("#9CA3AF")
		Muted = lipgloss.Color("#6B7280")
	} else {
		Text = lipgloss.Color("#111827")
		TextDim = lipgloss.Color("#4B5563")
		Muted = lipgloss.Color("#9CA3AF")
	}
}

// SpinnerStyle returns the style for loading spinners in the current palette
func SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Primary)
}
