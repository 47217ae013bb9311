package services

import (
	"sort"

	"github.com/joshribakoff/bearing-dash/internal/app/state"
	"github.com/joshribakoff/bearing-dash/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a locale-aware string comparator. Collators keep
// internal buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// PRRank orders pull request states: open, draft, merged, closed, none.
func PRRank(s models.PRState) int {
	switch s {
	case models.PRStateOpen:
		return 0
	case models.PRStateDraft:
		return 1
	case models.PRStateMerged:
		return 2
	case models.PRStateClosed:
		return 3
	default:
		return 4
	}
}

// HealthRank orders worktrees dirty first, then unpushed, then clean.
func HealthRank(w models.Worktree) int {
	switch {
	case w.Dirty:
		return 0
	case w.Unpushed > 0:
		return 1
	default:
		return 2
	}
}

// PlanStatusRank orders plan statuses: draft and active, done, archived, other.
func PlanStatusRank(status string) int {
	switch status {
	case "draft", "active":
		return 0
	case "done":
		return 1
	case "archived":
		return 2
	default:
		return 3
	}
}

func boolRank(b bool) int {
	if b {
		return 0
	}
	return 1
}

func worktreeComparator(c *collate.Collator, column string) func(a, b models.Worktree) int {
	switch column {
	case models.SortColumnDefault:
		return func(a, b models.Worktree) int {
			if d := PRRank(a.PRState) - PRRank(b.PRState); d != 0 {
				return d
			}
			if d := boolRank(a.Dirty) - boolRank(b.Dirty); d != 0 {
				return d
			}
			return c.CompareString(a.Folder, b.Folder)
		}
	case models.SortColumnFolder:
		return func(a, b models.Worktree) int { return c.CompareString(a.Folder, b.Folder) }
	case models.SortColumnBranch:
		return func(a, b models.Worktree) int { return c.CompareString(a.Branch, b.Branch) }
	case models.SortColumnStatus:
		return func(a, b models.Worktree) int { return HealthRank(a) - HealthRank(b) }
	case models.SortColumnPR:
		return func(a, b models.Worktree) int { return PRRank(a.PRState) - PRRank(b.PRState) }
	}
	return nil
}

func planComparator(c *collate.Collator, column string) func(a, b models.Plan) int {
	switch column {
	case models.SortColumnDefault:
		return func(a, b models.Plan) int {
			if d := PlanStatusRank(a.DisplayStatus()) - PlanStatusRank(b.DisplayStatus()); d != 0 {
				return d
			}
			return c.CompareString(a.Title, b.Title)
		}
	case models.PlanColumnTitle:
		return func(a, b models.Plan) int { return c.CompareString(a.Title, b.Title) }
	case models.PlanColumnProject:
		return func(a, b models.Plan) int { return c.CompareString(a.Project, b.Project) }
	case models.SortColumnStatus:
		return func(a, b models.Plan) int { return c.CompareString(a.Status, b.Status) }
	case models.PlanColumnIssue:
		return func(a, b models.Plan) int { return a.Issue - b.Issue }
	}
	return nil
}

// SortWorktrees returns a stably sorted copy of items. An unknown column
// keeps the input order.
func SortWorktrees(items []models.Worktree, column string, dir models.SortDirection) []models.Worktree {
	out := append([]models.Worktree(nil), items...)
	cmp := worktreeComparator(newCollator(), column)
	if cmp == nil {
		return out
	}
	sign := dir.Sign()
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j])*sign < 0
	})
	return out
}

// SortPlans returns a stably sorted copy of items. An unknown column keeps
// the input order.
func SortPlans(items []models.Plan, column string, dir models.SortDirection) []models.Plan {
	out := append([]models.Plan(nil), items...)
	cmp := planComparator(newCollator(), column)
	if cmp == nil {
		return out
	}
	sign := dir.Sign()
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j])*sign < 0
	})
	return out
}

// FilterWorktrees keeps the worktrees belonging to project.
func FilterWorktrees(items []models.Worktree, project string) []models.Worktree {
	out := make([]models.Worktree, 0, len(items))
	for _, w := range items {
		if w.Repo == project {
			out = append(out, w)
		}
	}
	return out
}

// FilterPlans keeps the plans belonging to project.
func FilterPlans(items []models.Plan, project string) []models.Plan {
	out := make([]models.Plan, 0, len(items))
	for _, p := range items {
		if p.Project == project {
			out = append(out, p)
		}
	}
	return out
}

// VisibleWorktrees returns the worktree rows shown for the store's current
// project and sort state.
func VisibleWorktrees(s *state.Store) []models.Worktree {
	return SortWorktrees(FilterWorktrees(s.Worktrees(), s.SelectedProject()), s.SortColumn(), s.SortDirection())
}

// VisiblePlans returns the plan rows shown for the store's current project
// and sort state.
func VisiblePlans(s *state.Store) []models.Plan {
	return SortPlans(FilterPlans(s.Plans(), s.SelectedProject()), s.PlanSortColumn(), s.PlanSortDirection())
}

// NextSort applies header-toggle semantics: the same column flips the
// direction, a new column starts ascending.
func NextSort(current string, dir models.SortDirection, column string) (string, models.SortDirection) {
	if current == column {
		return column, dir.Flip()
	}
	return column, models.SortAsc
}

// NextColumn returns the column after current, wrapping around.
func NextColumn(columns []string, current string) string {
	if len(columns) == 0 {
		return current
	}
	for i, c := range columns {
		if c == current {
			return columns[(i+1)%len(columns)]
		}
	}
	return columns[0]
}
