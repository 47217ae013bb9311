package services

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/joshribakoff/bearing-dash/internal/app/state"
	"github.com/joshribakoff/bearing-dash/internal/config"
	"github.com/joshribakoff/bearing-dash/internal/log"
	"github.com/joshribakoff/bearing-dash/internal/models"
)

// persistedState is the JSON shape of the stored blob. Selections are
// pointers so that "no selection" round-trips as null.
type persistedState struct {
	CurrentView            string  `json:"currentView"`
	SelectedProject        *string `json:"selectedProject"`
	SelectedWorktreeFolder *string `json:"selectedWorktreeFolder"`
	SelectedPlanPath       *string `json:"selectedPlanPath"`
	SortColumn             string  `json:"sortColumn,omitempty"`
	SortDirection          string  `json:"sortDirection,omitempty"`
	PlanSortColumn         string  `json:"planSortColumn,omitempty"`
	PlanSortDirection      string  `json:"planSortDirection,omitempty"`
}

// legacyViews maps view names written by earlier releases.
var legacyViews = map[string]models.View{
	"worktrees": models.ViewOperational,
	"issues":    models.ViewPlanning,
	"prs":       models.ViewPlanning,
}

// MigrateView maps a stored view name onto a current view.
func MigrateView(v string) models.View {
	if migrated, ok := legacyViews[v]; ok {
		return migrated
	}
	if models.View(v) == models.ViewPlanning {
		return models.ViewPlanning
	}
	return models.ViewOperational
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EncodeSnapshot serialises a snapshot into the stored blob.
func EncodeSnapshot(snap state.Snapshot) (string, error) {
	data, err := json.Marshal(persistedState{
		CurrentView:            string(snap.CurrentView),
		SelectedProject:        nullable(snap.SelectedProject),
		SelectedWorktreeFolder: nullable(snap.SelectedWorktreeFolder),
		SelectedPlanPath:       nullable(snap.SelectedPlanPath),
		SortColumn:             snap.SortColumn,
		SortDirection:          string(snap.SortDirection),
		PlanSortColumn:         snap.PlanSortColumn,
		PlanSortDirection:      string(snap.PlanSortDirection),
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeSnapshot parses a stored blob, applying legacy migrations. Missing
// fields take their defaults.
func DecodeSnapshot(blob string) (state.Snapshot, error) {
	snap := state.DefaultSnapshot()
	var raw persistedState
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return snap, err
	}

	snap.CurrentView = MigrateView(raw.CurrentView)
	snap.SelectedProject = deref(raw.SelectedProject)
	snap.SelectedWorktreeFolder = deref(raw.SelectedWorktreeFolder)
	snap.SelectedPlanPath = deref(raw.SelectedPlanPath)
	if raw.SortColumn != "" {
		snap.SortColumn = raw.SortColumn
	}
	if raw.SortDirection == string(models.SortDesc) {
		snap.SortDirection = models.SortDesc
	}
	if raw.PlanSortColumn != "" {
		snap.PlanSortColumn = raw.PlanSortColumn
	}
	if raw.PlanSortDirection == string(models.SortDesc) {
		snap.PlanSortDirection = models.SortDesc
	}
	return snap, nil
}

// StatePersister reads and writes the view state blob. It implements
// state.Persister.
type StatePersister struct {
	storage Storage
	key     string
}

// NewStatePersister creates a persister storing under models.StateStorageKey.
func NewStatePersister(storage Storage) *StatePersister {
	return &StatePersister{storage: storage, key: models.StateStorageKey}
}

// Load returns the persisted snapshot. Missing or malformed data yields
// defaults and is never an error.
func (p *StatePersister) Load() state.Snapshot {
	blob, ok, err := p.storage.Get(p.key)
	if err != nil {
		log.Warnf("state: read failed, using defaults: %v", err)
		return state.DefaultSnapshot()
	}
	if !ok {
		return state.DefaultSnapshot()
	}
	snap, err := DecodeSnapshot(blob)
	if err != nil {
		log.Warnf("state: malformed blob ignored: %v", err)
		return state.DefaultSnapshot()
	}
	return snap
}

// Save implements state.Persister. Errors are logged, never returned.
func (p *StatePersister) Save(snap state.Snapshot) {
	blob, err := EncodeSnapshot(snap)
	if err != nil {
		log.Errorf("state: encode failed: %v", err)
		return
	}
	if err := p.storage.Set(p.key, blob); err != nil {
		log.Errorf("state: save failed: %v", err)
	}
}

// Raw returns the stored blob as-is.
func (p *StatePersister) Raw() (string, bool, error) {
	return p.storage.Get(p.key)
}

// Location returns where the state is stored.
func (p *StatePersister) Location() string {
	return p.storage.Path()
}

// Reset removes the stored blob.
func (p *StatePersister) Reset() error {
	return p.storage.Delete(p.key)
}

// OpenStateStorage opens the storage backend selected in cfg.
func OpenStateStorage(cfg *config.AppConfig) (Storage, error) {
	dir := cfg.ResolvedStateDir()
	switch cfg.Storage {
	case config.StorageSQLite:
		s, err := OpenSQLiteStorage(filepath.Join(dir, models.StateDBFilename))
		if err != nil {
			return nil, fmt.Errorf("open sqlite state: %w", err)
		}
		return s, nil
	default:
		return NewFileStorage(filepath.Join(dir, models.StateFilename)), nil
	}
}
