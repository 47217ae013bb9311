package app

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshribakoff/bearing-dash/internal/models"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zoneAt renders the model and waits for the zone worker to record id.
func (tm *testModel) zoneAt(t *testing.T, id string) *zone.ZoneInfo {
	t.Helper()
	tm.View()
	var z *zone.ZoneInfo
	require.Eventually(t, func() bool {
		z = tm.zones.Get(id)
		return z != nil
	}, 2*time.Second, 5*time.Millisecond, "zone %s was never rendered", id)
	return z
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func TestClickProjectRow(t *testing.T) {
	tm := newLoadedModel(t)
	tm.press("1")
	require.Equal(t, models.PanelWorktrees, tm.store.FocusedPanel())

	z := tm.zoneAt(t, zoneProjectRows)
	tm.Update(leftClick(z.StartX+1, z.StartY+1))

	assert.Equal(t, "sailkit", tm.store.SelectedProject())
	assert.Equal(t, "sailkit", tm.store.SelectedWorktreeFolder())
	assert.Equal(t, models.PanelProjects, tm.store.FocusedPanel())
}

func TestClickWorktreeHeaderTogglesSort(t *testing.T) {
	tm := newLoadedModel(t)
	z := tm.zoneAt(t, string(models.PanelWorktrees))

	tm.Update(leftClick(z.StartX+1, z.StartY))
	assert.Equal(t, models.SortColumnFolder, tm.store.SortColumn())
	assert.Equal(t, models.SortAsc, tm.store.SortDirection())

	tm.Update(leftClick(z.StartX+1, z.StartY))
	assert.Equal(t, models.SortDesc, tm.store.SortDirection())
	assert.Equal(t, "Folder ▼", tm.worktreeTable.Columns()[0].Title)

	branchX := z.StartX + tm.worktreeTable.Columns()[0].Width + cellPadding + 1
	tm.Update(leftClick(branchX, z.StartY))
	assert.Equal(t, models.SortColumnBranch, tm.store.SortColumn())
	assert.Equal(t, models.SortAsc, tm.store.SortDirection())
	assert.Equal(t, models.PanelProjects, tm.store.FocusedPanel(), "header clicks leave focus alone")
}

func TestClickWorktreeRowSelectsByIdentity(t *testing.T) {
	tm := newLoadedModel(t)
	require.Equal(t, "bearing-feature-y", tm.store.SelectedWorktreeFolder())
	z := tm.zoneAt(t, string(models.PanelWorktrees))

	// default order: open PR, dirty, clean
	tm.Update(leftClick(z.StartX+1, z.StartY+tableHeaderLines+2))

	assert.Equal(t, "bearing", tm.store.SelectedWorktreeFolder())
	assert.Equal(t, models.PanelWorktrees, tm.store.FocusedPanel())
	assert.Equal(t, 2, tm.worktreeTable.Cursor())

	tm.Update(leftClick(z.StartX+1, z.StartY+tableHeaderLines+5))
	assert.Equal(t, "bearing", tm.store.SelectedWorktreeFolder(), "clicks below the last row are ignored")
}

func TestClickTabThenPlanRow(t *testing.T) {
	tm := newLoadedModel(t)

	tab := tm.zoneAt(t, tabZoneID(models.ViewPlanning))
	tm.Update(leftClick(tab.StartX+1, tab.StartY))
	require.Equal(t, models.ViewPlanning, tm.store.CurrentView())
	require.Equal(t, "bearing/plans/api.md", tm.store.SelectedPlanPath())

	z := tm.zoneAt(t, string(models.PanelPlans))
	tm.Update(leftClick(z.StartX+1, z.StartY+tableHeaderLines+1))
	assert.Equal(t, "bearing/plans/tui.md", tm.store.SelectedPlanPath())
	assert.Equal(t, models.PanelPlans, tm.store.FocusedPanel())

	tm.Update(leftClick(z.StartX+1, z.StartY))
	assert.Equal(t, models.PlanColumnTitle, tm.store.PlanSortColumn())
	assert.Equal(t, models.SortColumnDefault, tm.store.SortColumn(), "worktree sort untouched")
}

func TestClickDetailsFocusesDetails(t *testing.T) {
	tm := newLoadedModel(t)
	z := tm.zoneAt(t, string(models.PanelDetails))

	tm.Update(leftClick(z.StartX+2, z.StartY+1))
	assert.Equal(t, models.PanelDetails, tm.store.FocusedPanel())
}

func TestClicksIgnoredWhileHelpOpen(t *testing.T) {
	tm := newLoadedModel(t)
	z := tm.zoneAt(t, string(models.PanelWorktrees))
	tm.press("?")
	require.True(t, tm.view.ShowingHelp)

	tm.Update(leftClick(z.StartX+1, z.StartY))
	assert.Equal(t, models.SortColumnDefault, tm.store.SortColumn())
}

func TestMouseWheelNavigatesFocusedPanel(t *testing.T) {
	tm := newLoadedModel(t)

	tm.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, "sailkit", tm.store.SelectedProject())
	tm.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, "bearing", tm.store.SelectedProject())
}

func TestTableWindowFollowsSelection(t *testing.T) {
	tm := newTestModel(t)
	tm.Update(refreshResultMsg{snapshot: tm.source.snap})
	tm.tableRows = 2

	tm.store.SelectWorktree("bearing")
	tm.syncTables()
	require.Len(t, tm.worktreeTable.Rows(), 2)
	assert.Equal(t, 1, tm.worktreeOffset)
	assert.Equal(t, "bearing ★", tm.worktreeTable.Rows()[1][0])
	assert.Equal(t, 1, tm.worktreeTable.Cursor())

	tm.store.SelectWorktree("bearing-feature-y")
	tm.syncTables()
	assert.Equal(t, 0, tm.worktreeOffset)
	assert.Equal(t, 0, tm.worktreeTable.Cursor())
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                          string
		offset, cursor, total, height int
		want                          int
	}{
		{"fits", 3, 2, 4, 5, 0},
		{"unsized", 3, 2, 10, 0, 0},
		{"cursor inside window", 2, 3, 10, 4, 2},
		{"cursor above window", 5, 1, 10, 4, 1},
		{"cursor below window", 0, 7, 10, 4, 4},
		{"clamped to end", 9, 9, 10, 4, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scrollOffset(tt.offset, tt.cursor, tt.total, tt.height))
		})
	}
}

func TestColumnAt(t *testing.T) {
	cols := []table.Column{{Title: "A", Width: 3}, {Title: "B", Width: 4}}

	assert.Equal(t, -1, columnAt(cols, -1))
	assert.Equal(t, 0, columnAt(cols, 0))
	assert.Equal(t, 0, columnAt(cols, 4))
	assert.Equal(t, 1, columnAt(cols, 5))
	assert.Equal(t, 1, columnAt(cols, 10))
	assert.Equal(t, -1, columnAt(cols, 11))
}
