package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetThemeFallsBackToDracula(t *testing.T) {
	assert.Equal(t, Dracula(), GetTheme("does-not-exist"))
	assert.Equal(t, Dracula(), GetTheme(""))
}

func TestGetThemeByName(t *testing.T) {
	assert.Equal(t, CleanLight(), GetTheme(CleanLightName))
	assert.Equal(t, Nord(), GetTheme(NordName))
	assert.Equal(t, Bearing(), GetTheme(BearingName))
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Dracula":        DraculaName,
		"  clean-light ": CleanLightName,
		"NORD":           NordName,
		"solarized":      "",
		"":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestAvailableThemesResolve(t *testing.T) {
	for _, name := range AvailableThemes() {
		assert.Equal(t, name, NormalizeName(name))
		assert.NotEmpty(t, string(GetTheme(name).Accent), name)
	}
	assert.Contains(t, AvailableThemes(), DefaultName())
}

func TestPRColor(t *testing.T) {
	thm := Dracula()
	cases := []struct {
		state string
		want  lipgloss.Color
	}{
		{"OPEN", thm.SuccessFg},
		{"open", thm.SuccessFg},
		{"DRAFT", thm.MutedFg},
		{"MERGED", thm.Pink},
		{"CLOSED", thm.ErrorFg},
		{"", thm.TextFg},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, thm.PRColor(tc.state), tc.state)
	}
}
