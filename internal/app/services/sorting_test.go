package services

import (
	"testing"

	"github.com/joshribakoff/bearing-dash/internal/app/state"
	"github.com/joshribakoff/bearing-dash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folders(items []models.Worktree) []string {
	out := make([]string, 0, len(items))
	for _, w := range items {
		out = append(out, w.Folder)
	}
	return out
}

func planPaths(items []models.Plan) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Path)
	}
	return out
}

func TestSortWorktreesDefault(t *testing.T) {
	items := []models.Worktree{
		{Repo: "bearing", Folder: "bearing-clean"},
		{Repo: "bearing", Folder: "bearing-merged", PRState: models.PRStateMerged},
		{Repo: "bearing", Folder: "bearing-dirty", Dirty: true},
		{Repo: "bearing", Folder: "bearing-open", PRState: models.PRStateOpen},
	}

	got := SortWorktrees(items, models.SortColumnDefault, models.SortAsc)

	assert.Equal(t, []string{"bearing-open", "bearing-merged", "bearing-dirty", "bearing-clean"}, folders(got))
	assert.Equal(t, "bearing-clean", items[0].Folder, "input is not mutated")
}

func TestSortWorktreesDefaultFolderTiebreak(t *testing.T) {
	items := []models.Worktree{
		{Folder: "zeta", PRState: models.PRStateDraft},
		{Folder: "Alpha", PRState: models.PRStateDraft},
		{Folder: "beta", PRState: models.PRStateDraft},
	}
	got := SortWorktrees(items, models.SortColumnDefault, models.SortAsc)
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, folders(got))
}

func TestSortWorktreesColumns(t *testing.T) {
	items := []models.Worktree{
		{Folder: "b", Branch: "main", Unpushed: 2, PRState: models.PRStateClosed},
		{Folder: "a", Branch: "feature", PRState: models.PRStateDraft},
		{Folder: "c", Branch: "bugfix", Dirty: true},
	}

	tests := []struct {
		column string
		dir    models.SortDirection
		want   []string
	}{
		{column: models.SortColumnFolder, dir: models.SortAsc, want: []string{"a", "b", "c"}},
		{column: models.SortColumnFolder, dir: models.SortDesc, want: []string{"c", "b", "a"}},
		{column: models.SortColumnBranch, dir: models.SortAsc, want: []string{"c", "a", "b"}},
		{column: models.SortColumnStatus, dir: models.SortAsc, want: []string{"c", "b", "a"}},
		{column: models.SortColumnPR, dir: models.SortAsc, want: []string{"a", "b", "c"}},
		{column: models.SortColumnPR, dir: models.SortDesc, want: []string{"c", "b", "a"}},
		{column: "nonsense", dir: models.SortDesc, want: []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.column+"-"+string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, folders(SortWorktrees(items, tt.column, tt.dir)))
		})
	}
}

func TestSortWorktreesStable(t *testing.T) {
	items := []models.Worktree{
		{Folder: "first", Dirty: true},
		{Folder: "second", Dirty: true},
		{Folder: "third", Dirty: true},
		{Folder: "clean"},
	}

	for _, dir := range []models.SortDirection{models.SortAsc, models.SortDesc} {
		got := SortWorktrees(items, models.SortColumnStatus, dir)
		var dirty []string
		for _, w := range got {
			if w.Dirty {
				dirty = append(dirty, w.Folder)
			}
		}
		assert.Equal(t, []string{"first", "second", "third"}, dirty, "direction %s", dir)
	}
}

func TestSortPlans(t *testing.T) {
	items := []models.Plan{
		{Path: "p/archived.md", Title: "Alpha", Status: "archived", Project: "sailkit", Issue: 4},
		{Path: "p/done.md", Title: "Beta", Status: "done", Project: "bearing", Issue: 12},
		{Path: "p/untitled.md", Title: "Delta", Project: "bearing"},
		{Path: "p/active.md", Title: "Charlie", Status: "active", Project: "surfdeeper", Issue: 7},
		{Path: "p/weird.md", Title: "Echo", Status: "blocked", Project: "bearing", Issue: 1},
	}

	tests := []struct {
		column string
		dir    models.SortDirection
		want   []string
	}{
		{
			column: models.SortColumnDefault, dir: models.SortAsc,
			want: []string{"p/active.md", "p/untitled.md", "p/done.md", "p/archived.md", "p/weird.md"},
		},
		{
			column: models.PlanColumnTitle, dir: models.SortDesc,
			want: []string{"p/weird.md", "p/untitled.md", "p/active.md", "p/done.md", "p/archived.md"},
		},
		{
			column: models.PlanColumnProject, dir: models.SortAsc,
			want: []string{"p/done.md", "p/untitled.md", "p/weird.md", "p/archived.md", "p/active.md"},
		},
		{
			column: models.SortColumnStatus, dir: models.SortAsc,
			want: []string{"p/untitled.md", "p/active.md", "p/archived.md", "p/weird.md", "p/done.md"},
		},
		{
			column: models.PlanColumnIssue, dir: models.SortAsc,
			want: []string{"p/untitled.md", "p/weird.md", "p/archived.md", "p/active.md", "p/done.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.column+"-"+string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, planPaths(SortPlans(items, tt.column, tt.dir)))
		})
	}
}

// Descending issue order negates the whole comparison, so it is the exact
// reverse of ascending for distinct issue numbers.
func TestSortPlansIssueDescending(t *testing.T) {
	items := []models.Plan{
		{Path: "a", Issue: 3},
		{Path: "b", Issue: 10},
		{Path: "c"},
		{Path: "d", Issue: 5},
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, planPaths(SortPlans(items, models.PlanColumnIssue, models.SortDesc)))
	assert.Equal(t, []string{"c", "a", "d", "b"}, planPaths(SortPlans(items, models.PlanColumnIssue, models.SortAsc)))
}

func TestFilterBeforeSort(t *testing.T) {
	s := state.NewStore(nil)
	s.SetWorktrees([]models.Worktree{
		{Repo: "sailkit", Folder: "sailkit-main"},
		{Repo: "bearing", Folder: "bearing-b"},
		{Repo: "bearing", Folder: "bearing-a"},
	})
	s.SetPlans([]models.Plan{
		{Path: "x.md", Project: "sailkit"},
		{Path: "y.md", Project: "bearing", Title: "Y"},
	})
	s.SetSortColumn(models.SortColumnFolder)

	assert.Empty(t, VisibleWorktrees(s), "no project selected shows nothing")

	s.SelectProject("bearing")
	assert.Equal(t, []string{"bearing-a", "bearing-b"}, folders(VisibleWorktrees(s)))
	assert.Equal(t, []string{"y.md"}, planPaths(VisiblePlans(s)))

	s.SetSortDirection(models.SortDesc)
	assert.Equal(t, []string{"bearing-b", "bearing-a"}, folders(VisibleWorktrees(s)))
}

func TestNextSort(t *testing.T) {
	col, dir := NextSort(models.SortColumnFolder, models.SortAsc, models.SortColumnFolder)
	assert.Equal(t, models.SortColumnFolder, col)
	assert.Equal(t, models.SortDesc, dir)

	col, dir = NextSort(models.SortColumnFolder, models.SortDesc, models.SortColumnFolder)
	assert.Equal(t, models.SortAsc, dir)
	require.Equal(t, models.SortColumnFolder, col)

	col, dir = NextSort(models.SortColumnFolder, models.SortDesc, models.SortColumnBranch)
	assert.Equal(t, models.SortColumnBranch, col)
	assert.Equal(t, models.SortAsc, dir)
}

func TestNextColumn(t *testing.T) {
	assert.Equal(t, models.SortColumnFolder, NextColumn(models.WorktreeColumns, models.SortColumnDefault))
	assert.Equal(t, models.SortColumnDefault, NextColumn(models.WorktreeColumns, models.SortColumnPR))
	assert.Equal(t, models.SortColumnDefault, NextColumn(models.WorktreeColumns, "unknown"))
	assert.Equal(t, "x", NextColumn(nil, "x"))
}

func TestFilterProjects(t *testing.T) {
	projects := []models.Project{{Name: "bearing"}, {Name: "sailkit"}, {Name: "surfdeeper"}}

	assert.Equal(t, projects, FilterProjects(projects, "  "))
	assert.Equal(t, []models.Project{{Name: "sailkit"}, {Name: "surfdeeper"}}, FilterProjects(projects, "S"))

	f := NewFilterService("deep")
	assert.True(t, f.Active())
	assert.Equal(t, []models.Project{{Name: "surfdeeper"}}, f.Projects(projects))
	f.Clear()
	assert.False(t, f.Active())
}
