package nav

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joshribakoff/bearing-dash/internal/models"
)

// DetailRow is one label/value line of the details panel.
type DetailRow struct {
	Label string
	Value string
}

// Details returns the rows describing the current view's selection, or nil
// when nothing is selected.
func (c *Controller) Details() []DetailRow {
	if c.store.CurrentView() == models.ViewPlanning {
		p, ok := c.SelectedPlan()
		if !ok {
			return nil
		}
		return PlanDetails(p)
	}
	w, ok := c.SelectedWorktree()
	if !ok {
		return nil
	}
	return WorktreeDetails(w)
}

// WorktreeDetails returns the details rows for w.
func WorktreeDetails(w models.Worktree) []DetailRow {
	base := "No"
	if w.Base {
		base = "Yes"
	}
	rows := []DetailRow{
		{Label: "Folder", Value: w.Folder},
		{Label: "Repo", Value: w.Repo},
		{Label: "Branch", Value: w.Branch},
		{Label: "Base", Value: base},
	}
	if w.Purpose != "" {
		rows = append(rows, DetailRow{Label: "Purpose", Value: w.Purpose})
	}
	if w.Status != "" {
		rows = append(rows, DetailRow{Label: "Status", Value: w.Status})
	}

	var health []string
	if w.Dirty {
		health = append(health, "Uncommitted changes")
	}
	if w.Unpushed > 0 {
		health = append(health, fmt.Sprintf("%d unpushed", w.Unpushed))
	}
	if w.PRState != models.PRStateNone {
		health = append(health, "PR: "+string(w.PRState))
	}
	if len(health) > 0 {
		rows = append(rows, DetailRow{Label: "Health", Value: strings.Join(health, ", ")})
	}
	return rows
}

// PlanDetails returns the details rows for p.
func PlanDetails(p models.Plan) []DetailRow {
	rows := []DetailRow{
		{Label: "Title", Value: p.Title},
		{Label: "Project", Value: p.Project},
		{Label: "Status", Value: p.DisplayStatus()},
		{Label: "Path", Value: p.Path},
	}
	if p.Issue != 0 {
		rows = append(rows, DetailRow{Label: "Issue", Value: "#" + strconv.Itoa(p.Issue)})
	}
	if p.Priority != 0 {
		rows = append(rows, DetailRow{Label: "Priority", Value: strconv.Itoa(p.Priority)})
	}
	return rows
}

// Notices shown when there is nothing to open.
const (
	NoticeNoPR    = "No PR for this worktree"
	NoticeNoIssue = "No issue for this plan"
)

// LinkTarget returns the URL for the current selection, or a notice
// explaining why there is none.
func (c *Controller) LinkTarget(owner string) (link, notice string) {
	if c.store.CurrentView() == models.ViewPlanning {
		p, ok := c.SelectedPlan()
		if !ok || p.Issue == 0 {
			return "", NoticeNoIssue
		}
		return IssueURL(owner, p), ""
	}
	w, ok := c.SelectedWorktree()
	if !ok || w.PRState == models.PRStateNone {
		return "", NoticeNoPR
	}
	return PullRequestURL(owner, w), ""
}

// PullRequestURL returns the GitHub PR search URL for a worktree's branch.
func PullRequestURL(owner string, w models.Worktree) string {
	return fmt.Sprintf("https://github.com/%s/%s/pulls?q=head:%s", owner, w.Repo, url.QueryEscape(w.Branch))
}

// IssueURL returns the GitHub issue URL for a plan.
func IssueURL(owner string, p models.Plan) string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, p.Project, p.Issue)
}
