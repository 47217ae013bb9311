package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshribakoff/bearing-dash/internal/api"
	"github.com/joshribakoff/bearing-dash/internal/app/services"
	"github.com/joshribakoff/bearing-dash/internal/config"
	"github.com/joshribakoff/bearing-dash/internal/log"
)

// refreshData fetches projects, worktrees and plans together.
func (m *Model) refreshData() tea.Cmd {
	ctx := m.ctx
	src := m.source
	return func() tea.Msg {
		snap, err := src.FetchAll(ctx)
		return refreshResultMsg{snapshot: snap, err: err}
	}
}

func (m *Model) reconnectDelay() time.Duration {
	if m.config == nil || m.config.ReconnectDelaySeconds <= 0 {
		return api.DefaultReconnectDelay
	}
	return time.Duration(m.config.ReconnectDelaySeconds) * time.Second
}

func (m *Model) startStream() tea.Cmd {
	if m.events != nil {
		return nil
	}
	m.events = m.source.Stream(m.ctx, m.reconnectDelay())
	return m.waitForStreamEvent()
}

func (m *Model) waitForStreamEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg{event: ev}
	}
}

func (m *Model) configFiles() []string {
	if m.config.Path != "" {
		return []string{m.config.Path}
	}
	return config.CandidatePaths()
}

func (m *Model) startConfigWatcher() tea.Cmd {
	if !m.watchConfig {
		return nil
	}
	if m.watch != nil && m.watch.Started {
		return nil
	}
	if m.watch == nil {
		m.watch = services.NewConfigWatchService(log.Printf)
	}
	started, err := m.watch.Start(m.configFiles())
	if err != nil {
		log.Warnf("config watcher: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	return m.waitForConfigEvent()
}

func (m *Model) stopConfigWatcher() {
	if m.watch == nil || !m.watch.Started {
		return
	}
	m.watch.Stop()
}

func (m *Model) waitForConfigEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return configChangedMsg{}
	}
}
