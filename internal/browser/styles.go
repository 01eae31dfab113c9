package browser

import "github.com/charmbracelet/lipgloss"

const (
	colorLime     = "154"
	colorLimeDim  = "106"
	colorGray     = "245"
	colorDarkGray = "238"
)

// Styles holds the browser's lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Path     lipgloss.Style
	Panel    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorLime)),
		Path:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorDarkGray)).
			Padding(0, 1),
		Item: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color(colorLimeDim)),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color(colorDarkGray)),
	}
}

// NoColorStyles keeps the layout but drops all color.
func NoColorStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Path:     lipgloss.NewStyle(),
		Panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Item:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true),
		Help:     lipgloss.NewStyle(),
	}
}
