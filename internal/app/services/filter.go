package services

import (
	"strings"

	"github.com/joshribakoff/bearing-dash/internal/models"
)

// FilterService stores the project list filter query.
type FilterService struct {
	ProjectQuery string
}

// NewFilterService creates a new FilterService with an optional initial filter.
func NewFilterService(initialFilter string) *FilterService {
	return &FilterService{ProjectQuery: initialFilter}
}

// Active reports whether a non-empty filter is set.
func (f *FilterService) Active() bool {
	return strings.TrimSpace(f.ProjectQuery) != ""
}

// Clear resets the filter.
func (f *FilterService) Clear() {
	f.ProjectQuery = ""
}

// Projects returns the projects whose name contains the query, ignoring case.
func (f *FilterService) Projects(projects []models.Project) []models.Project {
	return FilterProjects(projects, f.ProjectQuery)
}

// FilterProjects keeps projects whose name contains query, ignoring case.
func FilterProjects(projects []models.Project, query string) []models.Project {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return projects
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}
