package app

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshribakoff/bearing-dash/internal/api"
	"github.com/joshribakoff/bearing-dash/internal/app/state"
	"github.com/joshribakoff/bearing-dash/internal/config"
	"github.com/joshribakoff/bearing-dash/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	snap    api.Snapshot
	err     error
	fetches int
	events  chan api.StreamEvent
}

func newFakeSource() *fakeSource {
	return &fakeSource{snap: sampleSnapshot(), events: make(chan api.StreamEvent, 8)}
}

func (f *fakeSource) FetchAll(context.Context) (api.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return api.Snapshot{}, f.err
	}
	return f.snap, nil
}

func (f *fakeSource) Stream(context.Context, time.Duration) <-chan api.StreamEvent {
	return f.events
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type memPersister struct {
	mu    sync.Mutex
	load  state.Snapshot
	saves int
	last  state.Snapshot
}

func newMemPersister() *memPersister {
	return &memPersister{load: state.DefaultSnapshot()}
}

func (p *memPersister) Load() state.Snapshot { return p.load }

func (p *memPersister) Save(s state.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	p.last = s
}

func (p *memPersister) lastSaved() state.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func sampleSnapshot() api.Snapshot {
	return api.Snapshot{
		Projects: []models.Project{{Name: "bearing", Count: 3}, {Name: "sailkit", Count: 1}, {Name: "surfdeeper", Count: 1}},
		Worktrees: []models.Worktree{
			{Repo: "bearing", Folder: "bearing", Branch: "main", Base: true},
			{Repo: "bearing", Folder: "bearing-feature-y", Branch: "feature-y", PRState: models.PRStateOpen},
			{Repo: "bearing", Folder: "bearing-wip", Branch: "wip", Dirty: true, Unpushed: 2},
			{Repo: "sailkit", Folder: "sailkit", Branch: "main", Base: true},
			{Repo: "surfdeeper", Folder: "surfdeeper", Branch: "main", Base: true},
		},
		Plans: []models.Plan{
			{Path: "bearing/plans/tui.md", Title: "TUI dashboard", Project: "bearing", Status: "active", Issue: 42},
			{Path: "bearing/plans/api.md", Title: "API cleanup", Project: "bearing"},
			{Path: "sailkit/plans/docs.md", Title: "Docs", Project: "sailkit"},
		},
	}
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StatePath = t.TempDir()
	cfg.ShowIcons = false
	return cfg
}

type testModel struct {
	*Model
	source    *fakeSource
	persister *memPersister
	opened    []string
}

func newTestModel(t *testing.T, opts ...Option) *testModel {
	t.Helper()
	tm := &testModel{source: newFakeSource(), persister: newMemPersister()}
	all := append([]Option{
		WithSource(tm.source),
		WithPersister(tm.persister),
		WithOpener(func(u string) error {
			tm.opened = append(tm.opened, u)
			return nil
		}),
		WithoutConfigWatch(),
	}, opts...)
	tm.Model = NewModel(testConfig(t), all...)
	t.Cleanup(tm.Close)
	return tm
}

// loaded returns a model that has applied one refresh and knows its size.
func newLoadedModel(t *testing.T, opts ...Option) *testModel {
	t.Helper()
	tm := newTestModel(t, opts...)
	tm.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	tm.Update(refreshResultMsg{snapshot: tm.source.snap})
	return tm
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (tm *testModel) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = keyRunes(k)
		}
		_, cmd = tm.Update(msg)
	}
	return cmd
}

// moveTo walks the focused table from the top until current reports want.
func (tm *testModel) moveTo(t *testing.T, current func() string, want string) {
	t.Helper()
	for range 10 {
		tm.press("k")
	}
	for i := 0; i < 10 && current() != want; i++ {
		tm.press("j")
	}
	require.Equal(t, want, current())
}

// collectMsgs runs cmd and any batched commands it returns.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
