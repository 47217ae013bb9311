// Package app wires the dashboard's Bubble Tea model.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshribakoff/bearing-dash/internal/api"
	"github.com/joshribakoff/bearing-dash/internal/app/keys"
	"github.com/joshribakoff/bearing-dash/internal/app/nav"
	"github.com/joshribakoff/bearing-dash/internal/app/screen"
	"github.com/joshribakoff/bearing-dash/internal/app/services"
	"github.com/joshribakoff/bearing-dash/internal/app/state"
	"github.com/joshribakoff/bearing-dash/internal/config"
	"github.com/joshribakoff/bearing-dash/internal/log"
	"github.com/joshribakoff/bearing-dash/internal/models"
	"github.com/joshribakoff/bearing-dash/internal/theme"
	zone "github.com/lrstanley/bubblezone"
)

// Source supplies dashboard data and live update notifications.
type Source interface {
	FetchAll(ctx context.Context) (api.Snapshot, error)
	Stream(ctx context.Context, delay time.Duration) <-chan api.StreamEvent
}

// SnapshotPersister loads and saves the persisted view state.
type SnapshotPersister interface {
	state.Persister
	Load() state.Snapshot
}

// Option customises a Model.
type Option func(*Model)

// WithSource replaces the HTTP client built from the configuration.
func WithSource(src Source) Option {
	return func(m *Model) { m.source = src }
}

// WithPersister sets where view state is loaded from and saved to.
func WithPersister(p SnapshotPersister) Option {
	return func(m *Model) { m.persister = p }
}

// WithOpener replaces the browser opener used for PR and issue links.
func WithOpener(open func(string) error) Option {
	return func(m *Model) { m.openURL = open }
}

// WithoutConfigWatch disables live config reloading.
func WithoutConfigWatch() Option {
	return func(m *Model) { m.watchConfig = false }
}

// Model is the dashboard's Bubble Tea model.
type Model struct {
	config     *config.AppConfig
	theme      *theme.Theme
	keys       keys.KeyMap
	dispatcher *keys.Dispatcher

	store     *state.Store
	ctrl      *nav.Controller
	persister SnapshotPersister
	source    Source
	openURL   func(string) error

	view    state.ViewState
	screens *screen.Manager
	conn    models.ConnStatus
	loaded  bool

	worktreeTable  table.Model
	planTable      table.Model
	tableWidth     int
	tableRows      int
	worktreeOffset int
	planOffset     int
	zones          *zone.Manager
	filterInput   textinput.Model
	help          help.Model

	ctx    context.Context
	cancel context.CancelFunc

	events      <-chan api.StreamEvent
	watch       *services.ConfigWatchService
	watchConfig bool

	quitting  bool
	closeOnce sync.Once
}

// NewModel creates the dashboard model. The persisted view state is restored
// before the first render.
func NewModel(cfg *config.AppConfig, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter projects..."
	filterInput.Prompt = "/ "
	filterInput.CharLimit = 64

	m := &Model{
		config:        cfg,
		screens:       screen.NewManager(),
		conn:          models.ConnConnecting,
		worktreeTable: newTable(worktreeColumnSpecs),
		planTable:     newTable(planColumnSpecs),
		tableWidth:    80,
		zones:         zone.New(),
		filterInput:   filterInput,
		help:          help.New(),
		ctx:           ctx,
		cancel:        cancel,
		watchConfig:   true,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.source == nil {
		timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
		client := api.NewClient(cfg.APIURL, timeout)
		log.WithField("api", client.BaseURL()).Debug("using bearing daemon")
		m.source = client
	}
	if m.openURL == nil {
		m.openURL = openURLInBrowser
	}

	var p state.Persister
	if m.persister != nil {
		p = m.persister
	}
	m.store = state.NewStore(p)
	if m.persister != nil {
		m.store.Restore(m.persister.Load())
	}
	m.ctrl = nav.NewController(m.store, services.NewFilterService(""))
	m.applyConfig(cfg)
	return m
}

// applyConfig applies the settings that may change while running.
func (m *Model) applyConfig(cfg *config.AppConfig) {
	m.config = cfg
	m.theme = theme.GetTheme(cfg.Theme)
	m.keys = keys.NewKeyMap(cfg.Keymap)
	m.dispatcher = &keys.Dispatcher{Keys: m.keys}
	m.applyTableStyles()
	m.help.Styles.ShortKey = m.help.Styles.ShortKey.Foreground(m.theme.Accent)
	m.help.Styles.ShortDesc = m.help.Styles.ShortDesc.Foreground(m.theme.MutedFg)
	m.help.Styles.ShortSeparator = m.help.Styles.ShortSeparator.Foreground(m.theme.BorderDim)
}

// Init starts the initial refresh, the live stream and the config watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshData(),
		m.startStream(),
		m.startConfigWatcher(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case refreshResultMsg:
		return m.handleRefreshResult(msg)

	case streamEventMsg:
		return m.handleStreamEvent(msg)

	case streamClosedMsg:
		m.events = nil
		return m, nil

	case configChangedMsg:
		return m.handleConfigChanged()

	case openURLResultMsg:
		if msg.err != nil {
			log.Errorf("open %s: %v", msg.url, msg.err)
			m.view.Notice = "Failed to open link: " + msg.err.Error()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := keys.Context{
		ModalOpen:    m.view.ModalOpen(),
		InputFocused: m.view.ShowingFilter,
	}
	intent := m.dispatcher.Dispatch(msg, ctx)

	switch {
	case intent == keys.IntentCloseHelp:
		return m.updateScreen(msg)
	case intent == keys.IntentNone && ctx.ModalOpen:
		return m, nil
	case intent == keys.IntentNone && ctx.InputFocused:
		return m.handleFilterKey(msg)
	}
	return m.applyIntent(intent)
}

func (m *Model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := m.screens.Current()
	if current == nil {
		m.view.ShowingHelp = false
		return m, nil
	}
	next, cmd := current.Update(msg)
	m.screens.Set(next)
	m.view.ShowingHelp = m.screens.Type() == screen.TypeHelp
	return m, cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeFilter(true)
		return m, nil
	case tea.KeyEnter:
		m.closeFilter(false)
		m.ctrl.Enter()
		m.syncTables()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.ctrl.Filter().ProjectQuery = m.filterInput.Value()
	return m, cmd
}

func (m *Model) openFilter() tea.Cmd {
	m.view.ShowingFilter = true
	m.ctrl.FocusPanel(models.PanelProjects)
	m.filterInput.SetValue(m.ctrl.Filter().ProjectQuery)
	m.filterInput.CursorEnd()
	return m.filterInput.Focus()
}

func (m *Model) closeFilter(clear bool) {
	m.view.ShowingFilter = false
	m.filterInput.Blur()
	if clear {
		m.filterInput.SetValue("")
		m.ctrl.Filter().Clear()
	}
}

func (m *Model) applyIntent(intent keys.Intent) (tea.Model, tea.Cmd) {
	if intent != keys.IntentNone {
		m.view.Notice = ""
	}

	var cmd tea.Cmd
	switch intent {
	case keys.IntentQuit:
		m.quit()
		return m, tea.Quit
	case keys.IntentNavigateUp:
		m.ctrl.Navigate(nav.Up)
	case keys.IntentNavigateDown:
		m.ctrl.Navigate(nav.Down)
	case keys.IntentMoveLeft:
		m.ctrl.MoveLeft()
	case keys.IntentMoveRight:
		m.ctrl.MoveRight()
	case keys.IntentEnter:
		m.ctrl.Enter()
	case keys.IntentFocusProjects:
		m.ctrl.FocusPanel(models.PanelProjects)
	case keys.IntentFocusMain:
		m.ctrl.FocusMain()
	case keys.IntentFocusDetails:
		m.ctrl.FocusPanel(models.PanelDetails)
	case keys.IntentViewOperational:
		m.ctrl.SwitchView(models.ViewOperational)
	case keys.IntentViewPlanning:
		m.ctrl.SwitchView(models.ViewPlanning)
	case keys.IntentCycleView:
		m.ctrl.CycleView()
	case keys.IntentCycleSort:
		m.ctrl.CycleSortColumn()
	case keys.IntentFlipSort:
		m.ctrl.FlipSortDirection()
	case keys.IntentRefresh:
		cmd = m.refreshData()
	case keys.IntentOpenLink:
		cmd = m.openLink()
	case keys.IntentFilter:
		cmd = m.openFilter()
	case keys.IntentToggleHelp:
		m.showHelp()
	case keys.IntentEscape:
		if m.ctrl.Filter().Active() {
			m.closeFilter(true)
		}
	default:
		return m, nil
	}
	m.relayout()
	return m, cmd
}

func (m *Model) showHelp() {
	light := m.config.Theme == theme.CleanLightName
	m.screens.Push(screen.NewHelpScreen(m.keys, m.view.WindowWidth, m.view.WindowHeight, m.theme, light))
	m.view.ShowingHelp = true
}

func (m *Model) openLink() tea.Cmd {
	link, notice := m.ctrl.LinkTarget(m.config.GitHubOwner)
	if notice != "" {
		m.view.Notice = notice
		return nil
	}
	open := m.openURL
	return func() tea.Msg {
		return openURLResultMsg{url: link, err: open(link)}
	}
}

func (m *Model) handleRefreshResult(msg refreshResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Errorf("refresh failed: %v", msg.err)
		m.conn = models.ConnError
		return m, nil
	}
	m.ctrl.ApplyRefresh(msg.snapshot.Projects, msg.snapshot.Worktrees, msg.snapshot.Plans)
	m.loaded = true
	m.syncTables()
	return m, nil
}

func (m *Model) handleStreamEvent(msg streamEventMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitForStreamEvent()}
	switch msg.event.Kind {
	case api.EventConnecting:
		m.conn = models.ConnConnecting
	case api.EventConnected:
		m.conn = models.ConnOK
	case api.EventError:
		m.conn = models.ConnError
		log.Warnf("event stream: %v", msg.event.Err)
	case api.EventUpdate:
		if msg.event.TriggersRefresh() {
			log.WithField("type", msg.event.Type).Debug("stream update, refreshing")
			cmds = append(cmds, m.refreshData())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleConfigChanged() (tea.Model, tea.Cmd) {
	if m.watch == nil {
		return m, nil
	}
	m.watch.ResetWaiting()
	if m.watch.ShouldReload(time.Now()) {
		m.reloadConfig()
	}
	return m, m.waitForConfigEvent()
}

func (m *Model) reloadConfig() {
	cfg, err := config.LoadConfig(m.config.Path)
	if err != nil {
		log.Warnf("config reload: %v", err)
		return
	}
	// connection settings need a restart
	cfg.APIURL = m.config.APIURL
	cfg.Storage = m.config.Storage
	cfg.StatePath = m.config.StatePath
	cfg.ReconnectDelaySeconds = m.config.ReconnectDelaySeconds
	cfg.RequestTimeoutSeconds = m.config.RequestTimeoutSeconds
	if cfg.Path == "" {
		cfg.Path = m.config.Path
	}
	log.WithField("theme", cfg.Theme).WithField("keymap", cfg.Keymap).Debug("config reloaded")
	m.applyConfig(cfg)
	if m.screens.Type() == screen.TypeHelp {
		m.screens.Set(nil)
		m.showHelp()
	}
}

func (m *Model) quit() {
	m.quitting = true
	m.Close()
}

// Close stops the live stream, the config watcher and the click zone worker.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		m.stopConfigWatcher()
		m.zones.Close()
	})
}

// Store exposes the domain store, mainly for tests and the CLI.
func (m *Model) Store() *state.Store {
	return m.store
}
