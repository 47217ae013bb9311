// Package models defines the data objects shared across bearing-dash packages.
package models

// Project is a repository tracked by the bearing daemon.
type Project struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PRState is the pull request state attached to a worktree. The empty value
// means no pull request.
type PRState string

// Pull request states reported by the daemon.
const (
	PRStateNone   PRState = ""
	PRStateOpen   PRState = "OPEN"
	PRStateDraft  PRState = "DRAFT"
	PRStateMerged PRState = "MERGED"
	PRStateClosed PRState = "CLOSED"
)

// Worktree is a git checkout of a branch with its health metadata.
// Folder is the identity key used for selection.
type Worktree struct {
	Repo     string  `json:"repo"`
	Folder   string  `json:"folder"`
	Branch   string  `json:"branch"`
	Base     bool    `json:"base"`
	Dirty    bool    `json:"dirty"`
	Unpushed int     `json:"unpushed"`
	PRState  PRState `json:"prState"`
	Purpose  string  `json:"purpose,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// Plan is a tracked unit of work scoped to a project. Path is the identity key.
type Plan struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Project  string `json:"project"`
	Status   string `json:"status"`
	Issue    int    `json:"issue,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// DefaultPlanStatus is displayed when a plan carries no status.
const DefaultPlanStatus = "draft"

// DisplayStatus returns the plan status, defaulting to draft.
func (p Plan) DisplayStatus() string {
	if p.Status == "" {
		return DefaultPlanStatus
	}
	return p.Status
}

// View selects which main table is shown.
type View string

// Views of the dashboard.
const (
	ViewOperational View = "operational"
	ViewPlanning    View = "planning"
)

// Panel identifies a focusable region of the dashboard.
type Panel string

// Focusable panels. The string values double as stable panel identifiers.
const (
	PanelProjects  Panel = "project-list"
	PanelWorktrees Panel = "worktree-table"
	PanelPlans     Panel = "plans-table"
	PanelDetails   Panel = "details"
)

// Valid reports whether p is one of the known panels.
func (p Panel) Valid() bool {
	switch p {
	case PanelProjects, PanelWorktrees, PanelPlans, PanelDetails:
		return true
	}
	return false
}

// IsTable reports whether p is one of the two main tables.
func (p Panel) IsTable() bool {
	return p == PanelWorktrees || p == PanelPlans
}

// MainPanel returns the table addressable for the given view.
func MainPanel(v View) Panel {
	if v == ViewPlanning {
		return PanelPlans
	}
	return PanelWorktrees
}

// SortDirection orders a table ascending or descending.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sign returns +1 for ascending and -1 for descending.
func (d SortDirection) Sign() int {
	if d == SortDesc {
		return -1
	}
	return 1
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// Worktree table columns.
const (
	SortColumnDefault = "default"
	SortColumnFolder  = "folder"
	SortColumnBranch  = "branch"
	SortColumnStatus  = "status"
	SortColumnPR      = "pr"
)

// Plans table columns. "default" and "status" are shared with worktrees.
const (
	PlanColumnTitle   = "title"
	PlanColumnProject = "project"
	PlanColumnIssue   = "issue"
)

// WorktreeColumns lists the sortable worktree columns in header order.
var WorktreeColumns = []string{SortColumnDefault, SortColumnFolder, SortColumnBranch, SortColumnStatus, SortColumnPR}

// PlanColumns lists the sortable plan columns in header order.
var PlanColumns = []string{SortColumnDefault, PlanColumnTitle, PlanColumnProject, SortColumnStatus, PlanColumnIssue}

// ConnStatus is the connectivity indicator shown in the footer.
type ConnStatus string

// Connectivity states.
const (
	ConnConnecting ConnStatus = "connecting"
	ConnOK         ConnStatus = "ok"
	ConnError      ConnStatus = "error"
)

const (
	// StateStorageKey is the key the persisted view state lives under.
	StateStorageKey = "bearing-state"
	// StateFilename stores the file-backed key/value state.
	StateFilename = "state.json"
	// StateDBFilename stores the SQLite-backed key/value state.
	StateDBFilename = "state.db"
)
