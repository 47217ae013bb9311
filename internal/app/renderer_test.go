package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshribakoff/bearing-dash/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTruncateToHeight(t *testing.T) {
	assert.Equal(t, "a\nb", truncateToHeight("a\nb\nc", 2))
	assert.Equal(t, "a", truncateToHeight("a", 3))
}

func TestOverlayPopupKeepsBaseOutsidePopup(t *testing.T) {
	m := newTestModel(t)
	base := strings.Join([]string{"0123456789", "0123456789", "0123456789"}, "\n")

	out := m.overlayPopup(base, "XX", 1)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "0123456789", lines[0])
	assert.Equal(t, "0123XX6789", lines[1])
	assert.Equal(t, "0123456789", lines[2])
	assert.Equal(t, base, m.overlayPopup(base, "", 0))
}

func TestBuildColumnsSharesWidth(t *testing.T) {
	cols := buildColumns(worktreeColumnSpecs, 60, models.SortColumnPR, models.SortDesc)

	total := 0
	for _, c := range cols {
		total += c.Width + cellPadding
	}
	assert.Equal(t, 60, total)
	assert.Equal(t, "PR ▼", cols[3].Title)
	assert.Equal(t, "Folder", cols[0].Title)
}

func TestBuildColumnsDefaultSortHasNoArrow(t *testing.T) {
	for _, c := range buildColumns(planColumnSpecs, 80, models.SortColumnDefault, models.SortAsc) {
		assert.NotContains(t, c.Title, "▲")
	}
}

func TestHealthAndPRLabels(t *testing.T) {
	tests := []struct {
		name string
		wt   models.Worktree
		want string
	}{
		{name: "clean", wt: models.Worktree{}, want: "clean"},
		{name: "dirty", wt: models.Worktree{Dirty: true}, want: "dirty"},
		{name: "unpushed", wt: models.Worktree{Unpushed: 3}, want: "↑3"},
		{name: "both", wt: models.Worktree{Dirty: true, Unpushed: 1}, want: "dirty ↑1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, healthLabel(tt.wt))
		})
	}
	assert.Equal(t, "-", prLabel(models.PRStateNone))
	assert.Equal(t, "MERGED", prLabel(models.PRStateMerged))
}

func TestRowsTruncateToColumnWidth(t *testing.T) {
	cols := buildColumns(planColumnSpecs, 60, models.SortColumnDefault, models.SortAsc)
	rows := planRows([]models.Plan{{Title: "A very long plan title that overflows the column", Project: "bearing", Issue: 7}}, cols)

	assert.LessOrEqual(t, lipgloss.Width(rows[0][0]), cols[0].Width)
	assert.True(t, strings.HasSuffix(rows[0][0], "…"))
	assert.Equal(t, "draft", rows[0][2])
	assert.Equal(t, "#7", rows[0][3])
}

func TestRenderDetailsIncludesLink(t *testing.T) {
	tm := newLoadedModel(t)
	tm.press("l")
	tm.moveTo(t, tm.store.SelectedWorktreeFolder, "bearing-feature-y")

	out := tm.renderDetails(80)
	assert.Contains(t, out, "feature-y")
	assert.Contains(t, out, "Link")
	assert.Contains(t, out, "pulls?q=head:feature-y")
}

func TestRenderDetailsEmpty(t *testing.T) {
	tm := newTestModel(t)
	assert.Contains(t, tm.renderDetails(40), "Nothing selected")
}

func TestRenderDetailsPlanIcon(t *testing.T) {
	tm := newLoadedModel(t)
	tm.config.ShowIcons = true
	tm.press("p", "1")
	tm.moveTo(t, tm.store.SelectedPlanPath, "bearing/plans/tui.md")

	out := tm.renderDetails(80)
	assert.Contains(t, out, "bearing/plans/")
	assert.Contains(t, out, "issues/42")
}

func TestEmptyTableMessages(t *testing.T) {
	tm := newTestModel(t)
	assert.Equal(t, "Loading...", tm.emptyTableMessage(models.PanelWorktrees))

	tm.Update(refreshResultMsg{})
	assert.Equal(t, "Select a project", tm.emptyTableMessage(models.PanelWorktrees))
}

func TestPanelKeyFollowsVariant(t *testing.T) {
	tm := newTestModel(t)
	assert.Equal(t, "2", tm.panelKey(models.PanelDetails))
	assert.Equal(t, "1", tm.panelKey(models.PanelPlans))

	cfg := testConfig(t)
	cfg.Keymap = "views"
	tm.applyConfig(cfg)
	assert.Equal(t, "0", tm.panelKey(models.PanelProjects))
	assert.Empty(t, tm.panelKey(models.PanelDetails))
}
