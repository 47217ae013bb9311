package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatchServiceSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: nord\n"), 0o600))

	w := NewConfigWatchService(t.Logf)
	started, err := w.Start([]string{path})
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	ch := w.NextEvent()
	require.NotNil(t, ch)
	assert.Nil(t, w.NextEvent(), "only one waiter at a time")

	require.NoError(t, os.WriteFile(path, []byte("theme: dracula\n"), 0o600))

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a watch event")
	}
	w.ResetWaiting()
	assert.NotNil(t, w.NextEvent())
}

func TestConfigWatchServiceStopReleasesWaiter(t *testing.T) {
	dir := t.TempDir()
	w := NewConfigWatchService(nil)
	started, err := w.Start([]string{filepath.Join(dir, "config.yaml")})
	require.NoError(t, err)
	require.True(t, started)

	ch := w.NextEvent()
	require.NotNil(t, ch)
	w.Stop()
	w.Stop()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "events channel is closed on stop")
	case <-time.After(5 * time.Second):
		t.Fatal("waiter was not released")
	}
	assert.NotPanics(t, w.Signal)
}

func TestConfigWatchServiceIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	w := NewConfigWatchService(nil)
	started, err := w.Start([]string{path})
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	assert.True(t, w.IsWatched(path))
	assert.False(t, w.IsWatched(filepath.Join(dir, "notes.txt")))
}

func TestConfigWatchServiceMissingDir(t *testing.T) {
	w := NewConfigWatchService(nil)
	started, err := w.Start([]string{filepath.Join(t.TempDir(), "missing", "config.yaml")})
	require.NoError(t, err)
	assert.False(t, started)
	assert.Nil(t, w.NextEvent())
	w.Stop()
}

func TestConfigWatchServiceDebounce(t *testing.T) {
	w := NewConfigWatchService(nil)
	now := time.Now()
	assert.True(t, w.ShouldReload(now))
	assert.False(t, w.ShouldReload(now.Add(ConfigWatchDebounce/2)))
	assert.True(t, w.ShouldReload(now.Add(2*ConfigWatchDebounce)))
}
