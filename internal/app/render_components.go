package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshribakoff/bearing-dash/internal/app/keys"
	"github.com/joshribakoff/bearing-dash/internal/models"
)

// renderHeader renders the title bar with the view tabs.
func (m *Model) renderHeader(layout layoutDims) string {
	headerStyle := lipgloss.NewStyle().
		Background(m.theme.AccentDim).
		Foreground(m.theme.TextFg).
		Width(layout.width).
		Padding(0, 1)

	title := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Background(m.theme.AccentDim).
		Bold(true).
		Render("bearing-dash")

	tabs := []string{
		m.renderTab(models.ViewOperational, "Operational"),
		m.renderTab(models.ViewPlanning, "Planning"),
	}
	sep := lipgloss.NewStyle().Background(m.theme.AccentDim).Render("  ")
	return headerStyle.Render(title + sep + strings.Join(tabs, " "))
}

func (m *Model) renderTab(v models.View, label string) string {
	style := lipgloss.NewStyle().Padding(0, 1)
	if m.store.CurrentView() == v {
		style = style.
			Foreground(m.theme.AccentFg).
			Background(m.theme.Accent).
			Bold(true)
	} else {
		style = style.
			Foreground(m.theme.MutedFg).
			Background(m.theme.AccentDim)
	}
	return m.zones.Mark(tabZoneID(v), style.Render(label))
}

// renderFooter renders the connectivity indicator, any notice and key hints.
func (m *Model) renderFooter(layout layoutDims) string {
	footerStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Background(m.theme.BorderDim).
		Width(layout.width).
		MaxWidth(layout.width).
		Padding(0, 1)

	parts := []string{m.renderConnStatus()}
	if m.view.Notice != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.WarnFg).Bold(true).Render(m.view.Notice))
	}
	prefix := strings.Join(parts, "  ") + "  "
	m.help.Width = max(0, layout.width-footerStyle.GetHorizontalPadding()-lipgloss.Width(prefix))
	return footerStyle.MaxHeight(layout.footerHeight).Render(prefix + m.help.View(m.keys))
}

func (m *Model) renderConnStatus() string {
	color := m.theme.WarnFg
	switch m.conn {
	case models.ConnOK:
		color = m.theme.SuccessFg
	case models.ConnError:
		color = m.theme.ErrorFg
	}
	return lipgloss.NewStyle().Foreground(color).Render("● " + string(m.conn))
}

// basePaneStyle returns the border and padding shared by all panes.
func (m *Model) basePaneStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
}

func (m *Model) paneStyle(focused bool) lipgloss.Style {
	borderColor := m.theme.BorderDim
	if focused {
		borderColor = m.theme.Accent
	}
	return m.basePaneStyle().BorderForeground(borderColor)
}

// renderPaneTitle renders a pane heading with its panel ID and, for the
// panels keymap, the number key that focuses it.
func (m *Model) renderPaneTitle(panel models.Panel, label string, focused bool, width int) string {
	numStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	if focused {
		numStyle = numStyle.Foreground(m.theme.Accent).Bold(true)
		titleStyle = titleStyle.Foreground(m.theme.TextFg).Bold(true)
	}

	title := titleStyle.Render(label)
	if key := m.panelKey(panel); key != "" {
		title = numStyle.Render("["+key+"]") + " " + title
	}
	id := lipgloss.NewStyle().Foreground(m.theme.BorderDim).Render(string(panel))
	line := fmt.Sprintf("%s  %s", title, id)
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(line)
}

func (m *Model) panelKey(panel models.Panel) string {
	if m.keys.Variant != keys.VariantPanels {
		if panel == models.PanelProjects {
			return "0"
		}
		return ""
	}
	switch panel {
	case models.PanelProjects:
		return "0"
	case models.PanelWorktrees, models.PanelPlans:
		return "1"
	case models.PanelDetails:
		return "2"
	}
	return ""
}
