// Package theme provides the colour palettes used by the dashboard.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used in the application UI.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // Foreground color for text on Accent background
	AccentDim lipgloss.Color
	Border    lipgloss.Color
	BorderDim lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	SuccessFg lipgloss.Color
	WarnFg    lipgloss.Color
	ErrorFg   lipgloss.Color
	Cyan      lipgloss.Color
	Pink      lipgloss.Color
}

// Theme names.
const (
	DraculaName    = "dracula"
	CleanLightName = "clean-light"
	NordName       = "nord"
	BearingName    = "bearing"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"), // Purple
		AccentFg:  lipgloss.Color("#282A36"),
		AccentDim: lipgloss.Color("#44475A"), // Current Line
		Border:    lipgloss.Color("#6272A4"),
		BorderDim: lipgloss.Color("#44475A"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		SuccessFg: lipgloss.Color("#50FA7B"),
		WarnFg:    lipgloss.Color("#FFB86C"),
		ErrorFg:   lipgloss.Color("#FF5555"),
		Cyan:      lipgloss.Color("#8BE9FD"),
		Pink:      lipgloss.Color("#FF79C6"),
	}
}

// CleanLight returns a theme for light terminal backgrounds.
func CleanLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#c6dbe5"),
		AccentFg:  lipgloss.Color("#24292F"),
		AccentDim: lipgloss.Color("#DDF4FF"),
		Border:    lipgloss.Color("#D0D7DE"),
		BorderDim: lipgloss.Color("#E1E4E8"),
		MutedFg:   lipgloss.Color("#6E7781"),
		TextFg:    lipgloss.Color("#24292F"),
		SuccessFg: lipgloss.Color("#1A7F37"),
		WarnFg:    lipgloss.Color("#9A6700"),
		ErrorFg:   lipgloss.Color("#CF222E"),
		Cyan:      lipgloss.Color("#0598BC"),
		Pink:      lipgloss.Color("#BF3989"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#88C0D0"),
		AccentFg:  lipgloss.Color("#2E3440"),
		AccentDim: lipgloss.Color("#3B4252"),
		Border:    lipgloss.Color("#4C566A"),
		BorderDim: lipgloss.Color("#434C5E"),
		MutedFg:   lipgloss.Color("#81A1C1"),
		TextFg:    lipgloss.Color("#E5E9F0"),
		SuccessFg: lipgloss.Color("#A3BE8C"),
		WarnFg:    lipgloss.Color("#EBCB8B"),
		ErrorFg:   lipgloss.Color("#BF616A"),
		Cyan:      lipgloss.Color("#88C0D0"),
		Pink:      lipgloss.Color("#B48EAD"),
	}
}

// Bearing mirrors the web dashboard's dim blue palette.
func Bearing() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#58A6FF"),
		AccentFg:  lipgloss.Color("#0D1117"),
		AccentDim: lipgloss.Color("#1F2937"),
		Border:    lipgloss.Color("#30363D"),
		BorderDim: lipgloss.Color("#21262D"),
		MutedFg:   lipgloss.Color("#8B949E"),
		TextFg:    lipgloss.Color("#C9D1D9"),
		SuccessFg: lipgloss.Color("#3FB950"),
		WarnFg:    lipgloss.Color("#D29922"),
		ErrorFg:   lipgloss.Color("#F85149"),
		Cyan:      lipgloss.Color("#79C0FF"),
		Pink:      lipgloss.Color("#BC8CFF"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch name {
	case CleanLightName:
		return CleanLight()
	case NordName:
		return Nord()
	case BearingName:
		return Bearing()
	default:
		return Dracula()
	}
}

// PRColor returns the badge colour for a pull request state.
func (t *Theme) PRColor(state string) lipgloss.Color {
	switch strings.ToUpper(state) {
	case "OPEN":
		return t.SuccessFg
	case "DRAFT":
		return t.MutedFg
	case "MERGED":
		return t.Pink
	case "CLOSED":
		return t.ErrorFg
	default:
		return t.TextFg
	}
}

// DefaultName returns the theme used when none is configured.
func DefaultName() string {
	return DraculaName
}

// NormalizeName returns the canonical theme name if it is supported.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		CleanLightName,
		NordName,
		BearingName,
	}
}
