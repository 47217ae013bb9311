package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshribakoff/bearing-dash/internal/app/keys"
	"github.com/joshribakoff/bearing-dash/internal/log"
	"github.com/joshribakoff/bearing-dash/internal/models"
	"github.com/joshribakoff/bearing-dash/internal/theme"
)

var helpSections = []string{"Movement", "Panels and views", "Actions", "General"}

// HelpScreen shows the key bindings rendered as markdown.
type HelpScreen struct {
	Viewport viewport.Model
	Width    int
	Height   int
	Markdown string
	Thm      *theme.Theme
	light    bool
}

// NewHelpScreen builds the help modal for km, sized to the terminal.
func NewHelpScreen(km keys.KeyMap, maxWidth, maxHeight int, thm *theme.Theme, light bool) *HelpScreen {
	s := &HelpScreen{
		Markdown: HelpMarkdown(km),
		Thm:      thm,
		light:    light,
	}
	s.SetSize(maxWidth, maxHeight)
	return s
}

// HelpMarkdown renders the keymap as a markdown document.
func HelpMarkdown(km keys.KeyMap) string {
	var b strings.Builder
	b.WriteString("# bearing-dash\n\n")
	fmt.Fprintf(&b, "Keymap: `%s`\n\n", km.Variant)

	for i, group := range km.FullHelp() {
		title := fmt.Sprintf("Keys %d", i+1)
		if i < len(helpSections) {
			title = helpSections[i]
		}
		fmt.Fprintf(&b, "## %s\n\n| Key | Action |\n| --- | --- |\n", title)
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			writeBinding(&b, binding)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Panels\n\n")
	for _, p := range []models.Panel{models.PanelProjects, models.PanelWorktrees, models.PanelPlans, models.PanelDetails} {
		fmt.Fprintf(&b, "- `%s`\n", p)
	}
	b.WriteString("\nPress `esc` or `?` to close.\n")
	return b.String()
}

func writeBinding(b *strings.Builder, binding key.Binding) {
	h := binding.Help()
	fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
}

// SetSize fits the modal to the terminal.
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	width := 72
	height := 30
	if maxWidth > 0 {
		width = min(90, max(40, maxWidth*3/4))
	}
	if maxHeight > 0 {
		height = min(40, max(10, maxHeight-4))
	}
	s.Width = width
	s.Height = height
	s.Viewport = viewport.New(width-2, max(3, height-3))
	s.Viewport.SetContent(s.render(width - 4))
}

func (s *HelpScreen) render(wrap int) string {
	style := "dark"
	if s.light {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		log.Printf("help: glamour renderer: %v", err)
		return s.Markdown
	}
	out, err := r.Render(s.Markdown)
	if err != nil {
		log.Printf("help: render markdown: %v", err)
		return s.Markdown
	}
	return strings.TrimRight(out, "\n")
}

// Type returns TypeHelp to identify this screen.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update closes the screen on esc or ?. Other keys are ignored.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "?":
		return nil, nil
	}
	return s, nil
}

// View renders the help modal.
func (s *HelpScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width)

	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render("Help")

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width-2).
		Padding(0, 1).
		Render("esc/?: close")

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, s.Viewport.View(), footer))
}
