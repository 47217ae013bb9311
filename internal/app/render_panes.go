package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshribakoff/bearing-dash/internal/app/nav"
	"github.com/joshribakoff/bearing-dash/internal/models"
	"github.com/muesli/reflow/wrap"
	"github.com/muesli/termenv"
)

const detailsLabelWidth = 10

// renderBody renders the project list beside the main table and details.
func (m *Model) renderBody(layout layoutDims) string {
	left := m.renderProjectPane(layout)
	right := lipgloss.JoinVertical(lipgloss.Left, m.renderMainPane(layout), m.renderDetailsPane(layout))
	gap := strings.Repeat(" ", layout.gapX)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

func (m *Model) renderProjectPane(layout layoutDims) string {
	focused := m.store.FocusedPanel() == models.PanelProjects
	title := m.renderPaneTitle(models.PanelProjects, "Projects", focused, layout.leftInnerWidth)

	lines := []string{title}
	if m.view.ShowingFilter {
		lines = append(lines, m.filterInput.View())
	} else if q := m.ctrl.Filter().ProjectQuery; q != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Cyan).Render("/ "+q))
	}

	rows := m.projectRows(layout)
	lines = append(lines, m.zones.Mark(zoneProjectRows, strings.Join(m.projectLines(layout.leftInnerWidth, rows), "\n")))

	return m.paneStyle(focused).
		Width(layout.leftWidth - 2).
		Height(layout.leftInnerHeight).
		MaxHeight(layout.bodyHeight).
		Render(strings.Join(lines, "\n"))
}

// projectLines renders at most rows entries, scrolled so the selection is visible.
func (m *Model) projectLines(width, rows int) []string {
	projects := m.ctrl.VisibleProjects()
	if len(projects) == 0 {
		msg := "No projects"
		if !m.loaded {
			msg = "Loading..."
		} else if m.ctrl.Filter().Active() {
			msg = "No matching projects"
		}
		return []string{lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(msg)}
	}

	selected := m.selectedProjectIndex(projects)
	start := projectWindow(selected, rows)
	end := min(len(projects), start+rows)

	nameStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	countStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	selectedStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Width(width)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := projects[i]
		count := fmt.Sprintf("%d", p.Count)
		name := fitCell(p.Name, max(1, width-len(count)-1))
		pad := max(1, width-lipgloss.Width(name)-len(count))
		if i == selected {
			lines = append(lines, selectedStyle.Render(name+strings.Repeat(" ", pad)+count))
			continue
		}
		lines = append(lines, nameStyle.Render(name)+strings.Repeat(" ", pad)+countStyle.Render(count))
	}
	return lines
}

// projectRows is the number of project lines that fit below the pane title
// and the filter line.
func (m *Model) projectRows(layout layoutDims) int {
	header := 1
	if m.view.ShowingFilter || m.ctrl.Filter().ProjectQuery != "" {
		header++
	}
	return max(1, layout.leftInnerHeight-header)
}

func (m *Model) selectedProjectIndex(projects []models.Project) int {
	for i, p := range projects {
		if p.Name == m.store.SelectedProject() {
			return i
		}
	}
	return -1
}

// projectWindow returns the first project shown so that selected is visible.
func projectWindow(selected, rows int) int {
	if selected >= rows {
		return selected - rows + 1
	}
	return 0
}

func (m *Model) renderMainPane(layout layoutDims) string {
	panel := m.store.MainPanel()
	focused := m.store.FocusedPanel() == panel

	label := "Worktrees"
	tableView := m.worktreeTable.View()
	empty := len(m.worktreeTable.Rows()) == 0
	if panel == models.PanelPlans {
		label = "Plans"
		tableView = m.planTable.View()
		empty = len(m.planTable.Rows()) == 0
	}
	if project := m.store.SelectedProject(); project != "" {
		label += " · " + project
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPaneTitle(panel, label, focused, layout.rightInnerWidth),
		m.zones.Mark(string(panel), tableView),
	)
	if empty {
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderPaneTitle(panel, label, focused, layout.rightInnerWidth),
			lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(m.emptyTableMessage(panel)),
		)
	}

	return m.paneStyle(focused).
		Width(layout.rightWidth - 2).
		Height(layout.mainInnerHeight).
		MaxHeight(layout.mainHeight).
		Render(content)
}

func (m *Model) emptyTableMessage(panel models.Panel) string {
	switch {
	case !m.loaded:
		return "Loading..."
	case m.store.SelectedProject() == "":
		return "Select a project"
	case panel == models.PanelPlans:
		return "No plans for this project"
	default:
		return "No worktrees for this project"
	}
}

func (m *Model) renderDetailsPane(layout layoutDims) string {
	focused := m.store.FocusedPanel() == models.PanelDetails
	title := m.renderPaneTitle(models.PanelDetails, "Details", focused, layout.rightInnerWidth)

	body := m.renderDetails(layout.rightInnerWidth)
	body = truncateToHeight(body, layout.detailsInnerRows)

	pane := m.paneStyle(focused).
		Width(layout.rightWidth - 2).
		Height(layout.detailsHeight - 2).
		MaxHeight(layout.detailsHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
	return m.zones.Mark(string(models.PanelDetails), pane)
}

// renderDetails renders the label/value rows for the current selection and
// the link to its PR or issue.
func (m *Model) renderDetails(width int) string {
	rows := m.ctrl.Details()
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("Nothing selected")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(m.theme.MutedFg).
		Width(detailsLabelWidth)
	valueWidth := max(8, width-detailsLabelWidth)
	indent := strings.Repeat(" ", detailsLabelWidth)

	lines := make([]string, 0, len(rows)+1)
	for _, row := range rows {
		value := m.decorateDetail(row)
		wrapped := strings.Split(wrap.String(value, valueWidth), "\n")
		lines = append(lines, labelStyle.Render(row.Label)+wrapped[0])
		for _, cont := range wrapped[1:] {
			lines = append(lines, indent+cont)
		}
	}

	if link, _ := m.ctrl.LinkTarget(m.config.GitHubOwner); link != "" {
		text := "open PR"
		icon := iconPR
		if m.store.CurrentView() == models.ViewPlanning {
			text = "open issue"
			icon = iconIssue
		}
		if m.config.ShowIcons {
			text = iconWithSpace(icon) + text
		}
		hyperlink := termenv.Hyperlink(link, text)
		lines = append(lines, labelStyle.Render("Link")+lipgloss.NewStyle().Foreground(m.theme.Cyan).Render(hyperlink))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) decorateDetail(row nav.DetailRow) string {
	switch row.Label {
	case "Path":
		if m.config.ShowIcons {
			return iconWithSpace(deviconForName(filepath.Base(row.Value), false)) + row.Value
		}
	case "Health":
		if w, ok := m.ctrl.SelectedWorktree(); ok && w.PRState != models.PRStateNone {
			pr := "PR: " + string(w.PRState)
			styled := lipgloss.NewStyle().Foreground(m.theme.PRColor(string(w.PRState))).Bold(true).Render(pr)
			return strings.Replace(row.Value, pr, styled, 1)
		}
	}
	return row.Value
}
