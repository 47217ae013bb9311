package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/joshribakoff/bearing-dash/internal/models"
)

// columnSpec describes a sortable table column. Widths are shared out by weight.
type columnSpec struct {
	key    string
	title  string
	weight int
}

var worktreeColumnSpecs = []columnSpec{
	{key: models.SortColumnFolder, title: "Folder", weight: 4},
	{key: models.SortColumnBranch, title: "Branch", weight: 4},
	{key: models.SortColumnStatus, title: "Status", weight: 3},
	{key: models.SortColumnPR, title: "PR", weight: 2},
}

var planColumnSpecs = []columnSpec{
	{key: models.PlanColumnTitle, title: "Title", weight: 6},
	{key: models.PlanColumnProject, title: "Project", weight: 3},
	{key: models.SortColumnStatus, title: "Status", weight: 2},
	{key: models.PlanColumnIssue, title: "Issue", weight: 1},
}

// cellPadding is the horizontal padding bubbles/table adds to every cell.
const cellPadding = 2

// tableHeaderLines is the header row plus its bottom border.
const tableHeaderLines = 2

func newTable(specs []columnSpec) table.Model {
	return table.New(
		table.WithColumns(buildColumns(specs, 80, models.SortColumnDefault, models.SortAsc)),
		table.WithFocused(true),
		table.WithHeight(5),
	)
}

// buildColumns lays out specs across width and marks the sorted column.
func buildColumns(specs []columnSpec, width int, sortKey string, dir models.SortDirection) []table.Column {
	total := 0
	for _, s := range specs {
		total += s.weight
	}
	avail := max(len(specs), width-cellPadding*len(specs))

	cols := make([]table.Column, len(specs))
	used := 0
	for i, s := range specs {
		w := avail * s.weight / total
		if i == len(specs)-1 {
			w = avail - used
		}
		w = max(w, 1)
		used += w

		title := s.title
		if s.key == sortKey {
			title += " " + sortArrow(dir)
		}
		cols[i] = table.Column{Title: title, Width: w}
	}
	return cols
}

// columnAt returns the index of the column under x, counted from the left
// edge of the table, or -1.
func columnAt(cols []table.Column, x int) int {
	if x < 0 {
		return -1
	}
	left := 0
	for i, c := range cols {
		left += c.Width + cellPadding
		if x < left {
			return i
		}
	}
	return -1
}

// scrollOffset returns the first row of a window of height rows that keeps
// cursor visible, moving as little as possible from offset.
func scrollOffset(offset, cursor, total, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return min(max(offset, 0), total-height)
}

// window returns the row range shown for total rows starting at offset.
func (m *Model) window(offset, total int) (int, int) {
	if m.tableRows <= 0 {
		return 0, total
	}
	return offset, min(total, offset+m.tableRows)
}

func sortArrow(dir models.SortDirection) string {
	if dir == models.SortDesc {
		return "▼"
	}
	return "▲"
}

func (m *Model) applyTableStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.BorderDim).
		BorderBottom(true).
		Foreground(m.theme.MutedFg).
		Bold(true)
	s.Cell = s.Cell.Foreground(m.theme.TextFg)
	s.Selected = s.Selected.
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true)
	m.worktreeTable.SetStyles(s)
	m.planTable.SetStyles(s)
}

// syncTables copies the visible rows and selections from the store into the
// table widgets. Only the scrolled window of rows is handed to each table so
// that screen lines map directly onto rows.
func (m *Model) syncTables() {
	worktrees := m.ctrl.VisibleWorktrees()
	cursor := max(0, worktreeIndex(worktrees, m.store.SelectedWorktreeFolder()))
	m.worktreeOffset = scrollOffset(m.worktreeOffset, cursor, len(worktrees), m.tableRows)
	start, end := m.window(m.worktreeOffset, len(worktrees))
	m.worktreeTable.SetColumns(buildColumns(worktreeColumnSpecs, m.tableWidth, m.store.SortColumn(), m.store.SortDirection()))
	m.worktreeTable.SetRows(worktreeRows(worktrees[start:end], m.worktreeTable.Columns()))
	m.worktreeTable.SetCursor(cursor - start)

	plans := m.ctrl.VisiblePlans()
	cursor = max(0, planIndex(plans, m.store.SelectedPlanPath()))
	m.planOffset = scrollOffset(m.planOffset, cursor, len(plans), m.tableRows)
	start, end = m.window(m.planOffset, len(plans))
	m.planTable.SetColumns(buildColumns(planColumnSpecs, m.tableWidth, m.store.PlanSortColumn(), m.store.PlanSortDirection()))
	m.planTable.SetRows(planRows(plans[start:end], m.planTable.Columns()))
	m.planTable.SetCursor(cursor - start)

	if m.store.FocusedPanel() == models.PanelWorktrees {
		m.worktreeTable.Focus()
	} else {
		m.worktreeTable.Blur()
	}
	if m.store.FocusedPanel() == models.PanelPlans {
		m.planTable.Focus()
	} else {
		m.planTable.Blur()
	}
}

func worktreeIndex(items []models.Worktree, folder string) int {
	for i, w := range items {
		if w.Folder == folder {
			return i
		}
	}
	return -1
}

func planIndex(items []models.Plan, path string) int {
	for i, p := range items {
		if p.Path == path {
			return i
		}
	}
	return -1
}

func fitCell(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

func worktreeRows(items []models.Worktree, cols []table.Column) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, w := range items {
		folder := w.Folder
		if w.Base {
			folder += " ★"
		}
		cells := []string{folder, w.Branch, healthLabel(w), prLabel(w.PRState)}
		for i := range cells {
			cells[i] = fitCell(cells[i], cols[i].Width)
		}
		rows = append(rows, table.Row(cells))
	}
	return rows
}

func planRows(items []models.Plan, cols []table.Column) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, p := range items {
		issue := ""
		if p.Issue != 0 {
			issue = fmt.Sprintf("#%d", p.Issue)
		}
		cells := []string{p.Title, p.Project, p.DisplayStatus(), issue}
		for i := range cells {
			cells[i] = fitCell(cells[i], cols[i].Width)
		}
		rows = append(rows, table.Row(cells))
	}
	return rows
}

// healthLabel summarises a worktree's local state.
func healthLabel(w models.Worktree) string {
	switch {
	case w.Dirty && w.Unpushed > 0:
		return fmt.Sprintf("dirty ↑%d", w.Unpushed)
	case w.Dirty:
		return "dirty"
	case w.Unpushed > 0:
		return fmt.Sprintf("↑%d", w.Unpushed)
	default:
		return "clean"
	}
}

func prLabel(s models.PRState) string {
	if s == models.PRStateNone {
		return "-"
	}
	return string(s)
}
