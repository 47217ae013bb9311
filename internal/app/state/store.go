// Package state holds the dashboard's canonical view state.
package state

import (
	"github.com/joshribakoff/bearing-dash/internal/models"
)

// Snapshot is the persisted subset of the store. Empty strings stand for
// "no selection".
type Snapshot struct {
	CurrentView            models.View
	SelectedProject        string
	SelectedWorktreeFolder string
	SelectedPlanPath       string
	SortColumn             string
	SortDirection          models.SortDirection
	PlanSortColumn         string
	PlanSortDirection      models.SortDirection
}

// DefaultSnapshot returns the state used when nothing was persisted.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		CurrentView:       models.ViewOperational,
		SortColumn:        models.SortColumnDefault,
		SortDirection:     models.SortAsc,
		PlanSortColumn:    models.SortColumnDefault,
		PlanSortDirection: models.SortAsc,
	}
}

// Persister receives a snapshot after every store mutation.
type Persister interface {
	Save(Snapshot)
}

type nopPersister struct{}

func (nopPersister) Save(Snapshot) {}

// Store is the single owned view state of a dashboard session.
// It is not safe for concurrent use; all mutations happen on the UI loop.
type Store struct {
	projects  []models.Project
	worktrees []models.Worktree
	plans     []models.Plan

	currentView            models.View
	selectedProject        string
	selectedWorktreeFolder string
	selectedPlanPath       string
	focusedPanel           models.Panel

	sortColumn        string
	sortDirection     models.SortDirection
	planSortColumn    string
	planSortDirection models.SortDirection

	persister Persister
}

// NewStore creates a store with default values. A nil persister disables
// persistence.
func NewStore(p Persister) *Store {
	if p == nil {
		p = nopPersister{}
	}
	s := &Store{
		focusedPanel: models.PanelProjects,
		persister:    p,
	}
	s.load(DefaultSnapshot())
	return s
}

// Restore seeds the store from a persisted snapshot without saving it back.
func (s *Store) Restore(snap Snapshot) {
	s.load(snap)
}

func (s *Store) load(snap Snapshot) {
	def := DefaultSnapshot()
	if snap.CurrentView != models.ViewPlanning {
		snap.CurrentView = models.ViewOperational
	}
	if snap.SortColumn == "" {
		snap.SortColumn = def.SortColumn
	}
	if snap.PlanSortColumn == "" {
		snap.PlanSortColumn = def.PlanSortColumn
	}
	s.currentView = snap.CurrentView
	s.selectedProject = snap.SelectedProject
	s.selectedWorktreeFolder = snap.SelectedWorktreeFolder
	s.selectedPlanPath = snap.SelectedPlanPath
	s.sortColumn = snap.SortColumn
	s.sortDirection = normalizeDirection(snap.SortDirection)
	s.planSortColumn = snap.PlanSortColumn
	s.planSortDirection = normalizeDirection(snap.PlanSortDirection)
}

func normalizeDirection(d models.SortDirection) models.SortDirection {
	if d == models.SortDesc {
		return models.SortDesc
	}
	return models.SortAsc
}

// Snapshot returns the persisted subset of the state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		CurrentView:            s.currentView,
		SelectedProject:        s.selectedProject,
		SelectedWorktreeFolder: s.selectedWorktreeFolder,
		SelectedPlanPath:       s.selectedPlanPath,
		SortColumn:             s.sortColumn,
		SortDirection:          s.sortDirection,
		PlanSortColumn:         s.planSortColumn,
		PlanSortDirection:      s.planSortDirection,
	}
}

func (s *Store) persist() {
	s.persister.Save(s.Snapshot())
}

// Projects returns the current project list.
func (s *Store) Projects() []models.Project { return s.projects }

// Worktrees returns every worktree, unfiltered.
func (s *Store) Worktrees() []models.Worktree { return s.worktrees }

// Plans returns every plan, unfiltered.
func (s *Store) Plans() []models.Plan { return s.plans }

// CurrentView returns the active main view.
func (s *Store) CurrentView() models.View { return s.currentView }

// SelectedProject returns the selected project name or "".
func (s *Store) SelectedProject() string { return s.selectedProject }

// SelectedWorktreeFolder returns the selected worktree folder or "".
func (s *Store) SelectedWorktreeFolder() string { return s.selectedWorktreeFolder }

// SelectedPlanPath returns the selected plan path or "".
func (s *Store) SelectedPlanPath() string { return s.selectedPlanPath }

// FocusedPanel returns the panel receiving directional input.
func (s *Store) FocusedPanel() models.Panel { return s.focusedPanel }

// SortColumn returns the worktree table sort column.
func (s *Store) SortColumn() string { return s.sortColumn }

// SortDirection returns the worktree table sort direction.
func (s *Store) SortDirection() models.SortDirection { return s.sortDirection }

// PlanSortColumn returns the plans table sort column.
func (s *Store) PlanSortColumn() string { return s.planSortColumn }

// PlanSortDirection returns the plans table sort direction.
func (s *Store) PlanSortDirection() models.SortDirection { return s.planSortDirection }

// MainPanel returns the table addressable in the current view.
func (s *Store) MainPanel() models.Panel { return models.MainPanel(s.currentView) }

// SetProjects replaces the project list.
func (s *Store) SetProjects(p []models.Project) {
	s.projects = p
	s.persist()
}

// SetWorktrees replaces the worktree list.
func (s *Store) SetWorktrees(w []models.Worktree) {
	s.worktrees = w
	s.persist()
}

// SetPlans replaces the plan list.
func (s *Store) SetPlans(p []models.Plan) {
	s.plans = p
	s.persist()
}

// SelectProject stores the selected project name.
func (s *Store) SelectProject(name string) {
	s.selectedProject = name
	s.persist()
}

// SelectWorktree stores the selected worktree folder.
func (s *Store) SelectWorktree(folder string) {
	s.selectedWorktreeFolder = folder
	s.persist()
}

// SelectPlan stores the selected plan path.
func (s *Store) SelectPlan(path string) {
	s.selectedPlanPath = path
	s.persist()
}

// SetFocusedPanel focuses a panel. Unknown panels fall back to the project list.
func (s *Store) SetFocusedPanel(p models.Panel) {
	if !p.Valid() {
		p = models.PanelProjects
	}
	s.focusedPanel = p
	s.persist()
}

// SetView switches the main view. Unknown views fall back to operational.
func (s *Store) SetView(v models.View) {
	if v != models.ViewPlanning {
		v = models.ViewOperational
	}
	s.currentView = v
	s.persist()
}

// SetSortColumn sets the worktree table sort column.
func (s *Store) SetSortColumn(column string) {
	s.sortColumn = column
	s.persist()
}

// SetSortDirection sets the worktree table sort direction.
func (s *Store) SetSortDirection(d models.SortDirection) {
	s.sortDirection = normalizeDirection(d)
	s.persist()
}

// SetPlanSortColumn sets the plans table sort column.
func (s *Store) SetPlanSortColumn(column string) {
	s.planSortColumn = column
	s.persist()
}

// SetPlanSortDirection sets the plans table sort direction.
func (s *Store) SetPlanSortDirection(d models.SortDirection) {
	s.planSortDirection = normalizeDirection(d)
	s.persist()
}
