// Package nav turns navigation intents into store mutations.
package nav

import (
	"github.com/joshribakoff/bearing-dash/internal/app/services"
	"github.com/joshribakoff/bearing-dash/internal/app/state"
	"github.com/joshribakoff/bearing-dash/internal/models"
)

// Direction is a vertical movement.
type Direction int

// Vertical directions.
const (
	Up Direction = iota
	Down
)

// Controller owns the focus and selection rules of the dashboard.
type Controller struct {
	store  *state.Store
	filter *services.FilterService
}

// NewController creates a controller over store. filter may be nil.
func NewController(store *state.Store, filter *services.FilterService) *Controller {
	if filter == nil {
		filter = services.NewFilterService("")
	}
	return &Controller{store: store, filter: filter}
}

// Store returns the underlying store.
func (c *Controller) Store() *state.Store { return c.store }

// Filter returns the project filter.
func (c *Controller) Filter() *services.FilterService { return c.filter }

// VisibleProjects returns the projects shown in the project list.
func (c *Controller) VisibleProjects() []models.Project {
	return c.filter.Projects(c.store.Projects())
}

// VisibleWorktrees returns the rows of the worktree table.
func (c *Controller) VisibleWorktrees() []models.Worktree {
	return services.VisibleWorktrees(c.store)
}

// VisiblePlans returns the rows of the plans table.
func (c *Controller) VisiblePlans() []models.Plan {
	return services.VisiblePlans(c.store)
}

// step moves from current through keys. With no current entry, Down lands
// on the first key and Up on the last. Movement clamps at both ends.
func step(keys []string, current string, dir Direction) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}
	idx := -1
	if current != "" {
		for i, k := range keys {
			if k == current {
				idx = i
				break
			}
		}
	}
	switch {
	case idx < 0 && dir == Down:
		idx = 0
	case idx < 0:
		idx = len(keys) - 1
	case dir == Down:
		idx = min(idx+1, len(keys)-1)
	default:
		idx = max(idx-1, 0)
	}
	return keys[idx], true
}

func projectNames(items []models.Project) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Name
	}
	return out
}

func worktreeFolders(items []models.Worktree) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.Folder
	}
	return out
}

func planPaths(items []models.Plan) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Path
	}
	return out
}

// NavigateProjects moves the project selection.
func (c *Controller) NavigateProjects(dir Direction) {
	next, ok := step(projectNames(c.VisibleProjects()), c.store.SelectedProject(), dir)
	if !ok || next == c.store.SelectedProject() {
		return
	}
	c.SelectProject(next)
}

// NavigateWorktrees moves the worktree selection over the visible rows.
func (c *Controller) NavigateWorktrees(dir Direction) {
	next, ok := step(worktreeFolders(c.VisibleWorktrees()), c.store.SelectedWorktreeFolder(), dir)
	if !ok || next == c.store.SelectedWorktreeFolder() {
		return
	}
	c.store.SelectWorktree(next)
}

// NavigatePlans moves the plan selection over the visible rows.
func (c *Controller) NavigatePlans(dir Direction) {
	next, ok := step(planPaths(c.VisiblePlans()), c.store.SelectedPlanPath(), dir)
	if !ok || next == c.store.SelectedPlanPath() {
		return
	}
	c.store.SelectPlan(next)
}

// Navigate moves within the focused panel. The details panel ignores it.
func (c *Controller) Navigate(dir Direction) {
	switch c.store.FocusedPanel() {
	case models.PanelProjects:
		c.NavigateProjects(dir)
	case models.PanelWorktrees, models.PanelPlans:
		if c.store.CurrentView() == models.ViewPlanning {
			c.NavigatePlans(dir)
		} else {
			c.NavigateWorktrees(dir)
		}
	}
}

// SelectProject selects a project and resets both row selections to the
// first visible row.
func (c *Controller) SelectProject(name string) {
	c.store.SelectProject(name)
	c.store.SelectWorktree(firstOr(worktreeFolders(c.VisibleWorktrees())))
	c.store.SelectPlan(firstOr(planPaths(c.VisiblePlans())))
}

// PickProject selects a visible project and focuses the project list.
// Picking the current project keeps the row selections.
func (c *Controller) PickProject(name string) bool {
	if !contains(projectNames(c.VisibleProjects()), name) {
		return false
	}
	if name != c.store.SelectedProject() {
		c.SelectProject(name)
	}
	c.store.SetFocusedPanel(models.PanelProjects)
	return true
}

// SelectWorktree selects a visible worktree and focuses its table. It is
// ignored outside the operational view.
func (c *Controller) SelectWorktree(folder string) bool {
	if c.store.MainPanel() != models.PanelWorktrees || !contains(worktreeFolders(c.VisibleWorktrees()), folder) {
		return false
	}
	if folder != c.store.SelectedWorktreeFolder() {
		c.store.SelectWorktree(folder)
	}
	c.store.SetFocusedPanel(models.PanelWorktrees)
	return true
}

// SelectPlan selects a visible plan and focuses its table. It is ignored
// outside the planning view.
func (c *Controller) SelectPlan(path string) bool {
	if c.store.MainPanel() != models.PanelPlans || !contains(planPaths(c.VisiblePlans()), path) {
		return false
	}
	if path != c.store.SelectedPlanPath() {
		c.store.SelectPlan(path)
	}
	c.store.SetFocusedPanel(models.PanelPlans)
	return true
}

func firstOr(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// FocusPanel focuses p. A table panel resolves to the current view's table.
func (c *Controller) FocusPanel(p models.Panel) {
	if p.IsTable() {
		p = c.store.MainPanel()
	}
	c.store.SetFocusedPanel(p)
}

// FocusMain focuses the table of the current view.
func (c *Controller) FocusMain() {
	c.store.SetFocusedPanel(c.store.MainPanel())
}

// MoveRight focuses the main table, but only from the project list.
func (c *Controller) MoveRight() {
	if c.store.FocusedPanel() == models.PanelProjects {
		c.FocusMain()
	}
}

// MoveLeft returns focus to the project list.
func (c *Controller) MoveLeft() {
	c.store.SetFocusedPanel(models.PanelProjects)
}

// SwitchView changes the main view. Focus on a table follows to the new
// view's table; other panels keep focus.
func (c *Controller) SwitchView(v models.View) {
	c.store.SetView(v)
	if c.store.FocusedPanel().IsTable() && c.store.FocusedPanel() != c.store.MainPanel() {
		c.FocusMain()
	}
}

// CycleView toggles between the operational and planning views.
func (c *Controller) CycleView() {
	if c.store.CurrentView() == models.ViewPlanning {
		c.SwitchView(models.ViewOperational)
		return
	}
	c.SwitchView(models.ViewPlanning)
}

// Enter confirms the focused panel's selection and advances focus.
func (c *Controller) Enter() {
	switch c.store.FocusedPanel() {
	case models.PanelProjects:
		names := projectNames(c.VisibleProjects())
		if len(names) == 0 {
			return
		}
		if !contains(names, c.store.SelectedProject()) {
			c.SelectProject(names[0])
		}
		c.FocusMain()
	case models.PanelWorktrees, models.PanelPlans:
		c.store.SetFocusedPanel(models.PanelDetails)
	}
}

// ToggleSort applies header-toggle semantics to the worktree table.
func (c *Controller) ToggleSort(column string) {
	col, dir := services.NextSort(c.store.SortColumn(), c.store.SortDirection(), column)
	c.store.SetSortColumn(col)
	c.store.SetSortDirection(dir)
}

// TogglePlanSort applies header-toggle semantics to the plans table.
func (c *Controller) TogglePlanSort(column string) {
	col, dir := services.NextSort(c.store.PlanSortColumn(), c.store.PlanSortDirection(), column)
	c.store.SetPlanSortColumn(col)
	c.store.SetPlanSortDirection(dir)
}

// CycleSortColumn moves the current view's table to its next sort column.
func (c *Controller) CycleSortColumn() {
	if c.store.CurrentView() == models.ViewPlanning {
		c.TogglePlanSort(services.NextColumn(models.PlanColumns, c.store.PlanSortColumn()))
		return
	}
	c.ToggleSort(services.NextColumn(models.WorktreeColumns, c.store.SortColumn()))
}

// FlipSortDirection reverses the current view's table order.
func (c *Controller) FlipSortDirection() {
	if c.store.CurrentView() == models.ViewPlanning {
		c.TogglePlanSort(c.store.PlanSortColumn())
		return
	}
	c.ToggleSort(c.store.SortColumn())
}

// ApplyRefresh replaces all collections and reconciles selections that no
// longer exist.
func (c *Controller) ApplyRefresh(projects []models.Project, worktrees []models.Worktree, plans []models.Plan) {
	c.store.SetProjects(projects)
	c.store.SetWorktrees(worktrees)
	c.store.SetPlans(plans)
	c.Reconcile()
}

// Reconcile resolves stale selections to the first remaining entry or none.
func (c *Controller) Reconcile() {
	names := projectNames(c.store.Projects())
	if !contains(names, c.store.SelectedProject()) {
		if next := firstOr(names); next != c.store.SelectedProject() {
			c.store.SelectProject(next)
		}
	}

	folders := worktreeFolders(c.VisibleWorktrees())
	if !contains(folders, c.store.SelectedWorktreeFolder()) {
		if next := firstOr(folders); next != c.store.SelectedWorktreeFolder() {
			c.store.SelectWorktree(next)
		}
	}

	paths := planPaths(c.VisiblePlans())
	if !contains(paths, c.store.SelectedPlanPath()) {
		if next := firstOr(paths); next != c.store.SelectedPlanPath() {
			c.store.SelectPlan(next)
		}
	}
}

// SelectedWorktree returns the selected visible worktree.
func (c *Controller) SelectedWorktree() (models.Worktree, bool) {
	folder := c.store.SelectedWorktreeFolder()
	if folder == "" {
		return models.Worktree{}, false
	}
	for _, w := range c.VisibleWorktrees() {
		if w.Folder == folder {
			return w, true
		}
	}
	return models.Worktree{}, false
}

// SelectedPlan returns the selected visible plan.
func (c *Controller) SelectedPlan() (models.Plan, bool) {
	path := c.store.SelectedPlanPath()
	if path == "" {
		return models.Plan{}, false
	}
	for _, p := range c.VisiblePlans() {
		if p.Path == path {
			return p, true
		}
	}
	return models.Plan{}, false
}
