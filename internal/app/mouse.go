package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshribakoff/bearing-dash/internal/app/nav"
	"github.com/joshribakoff/bearing-dash/internal/models"
	zone "github.com/lrstanley/bubblezone"
)

// Click zones. Tables and the details pane use their panel IDs.
const (
	zoneProjectRows = "project-rows"
	zoneTabPrefix   = "tab:"
)

func tabZoneID(v models.View) string {
	return zoneTabPrefix + string(v)
}

// hit returns the zone with id when msg falls inside it.
func (m *Model) hit(id string, msg tea.MouseMsg) (*zone.ZoneInfo, bool) {
	z := m.zones.Get(id)
	if z == nil || !z.InBounds(msg) {
		return nil, false
	}
	return z, true
}

// handleMouse processes wheel scrolling and left clicks on tabs, projects,
// table headers, table rows and the details pane.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view.ModalOpen() || m.view.ShowingFilter || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.Navigate(nav.Up)
	case tea.MouseButtonWheelDown:
		m.ctrl.Navigate(nav.Down)
	case tea.MouseButtonLeft:
		if !m.handleClick(msg) {
			return m, nil
		}
		m.view.Notice = ""
	default:
		return m, nil
	}
	m.relayout()
	return m, nil
}

func (m *Model) handleClick(msg tea.MouseMsg) bool {
	for _, v := range []models.View{models.ViewOperational, models.ViewPlanning} {
		if _, ok := m.hit(tabZoneID(v), msg); ok {
			m.ctrl.SwitchView(v)
			return true
		}
	}

	if z, ok := m.hit(zoneProjectRows, msg); ok {
		projects := m.ctrl.VisibleProjects()
		rows := m.projectRows(m.computeLayout())
		i := projectWindow(m.selectedProjectIndex(projects), rows) + msg.Y - z.StartY
		if i < 0 || i >= len(projects) {
			return false
		}
		return m.ctrl.PickProject(projects[i].Name)
	}

	panel := m.store.MainPanel()
	if z, ok := m.hit(string(panel), msg); ok {
		return m.clickTable(panel, msg.X-z.StartX, msg.Y-z.StartY)
	}

	if _, ok := m.hit(string(models.PanelDetails), msg); ok {
		m.ctrl.FocusPanel(models.PanelDetails)
		return true
	}
	return false
}

// clickTable handles a click at x, y relative to the table's top-left
// corner. The header toggles sorting, a row selects it by identity.
func (m *Model) clickTable(panel models.Panel, x, y int) bool {
	if y < tableHeaderLines {
		if panel == models.PanelPlans {
			col := columnAt(m.planTable.Columns(), x)
			if col < 0 {
				return false
			}
			m.ctrl.TogglePlanSort(planColumnSpecs[col].key)
			return true
		}
		col := columnAt(m.worktreeTable.Columns(), x)
		if col < 0 {
			return false
		}
		m.ctrl.ToggleSort(worktreeColumnSpecs[col].key)
		return true
	}

	row := y - tableHeaderLines
	if panel == models.PanelPlans {
		plans := m.ctrl.VisiblePlans()
		start, end := m.window(m.planOffset, len(plans))
		if start+row >= end {
			return false
		}
		return m.ctrl.SelectPlan(plans[start+row].Path)
	}
	worktrees := m.ctrl.VisibleWorktrees()
	start, end := m.window(m.worktreeOffset, len(worktrees))
	if start+row >= end {
		return false
	}
	return m.ctrl.SelectWorktree(worktrees[start+row].Folder)
}
