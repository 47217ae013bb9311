package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	name, data string
}

func TestReadEvents(t *testing.T) {
	input := strings.Join([]string{
		": keepalive",
		"event: connected",
		"data: {}",
		"",
		"event: update",
		`data: {"type":`,
		`data: "health"}`,
		"",
		"data: plain",
		"",
		"",
	}, "\n")

	var got []sseEvent
	err := readEvents(strings.NewReader(input), func(name, data string) bool {
		got = append(got, sseEvent{name, data})
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []sseEvent{
		{"connected", "{}"},
		{"update", "{\"type\":\n\"health\"}"},
		{"message", "plain"},
	}, got)
}

func TestReadEventsCRLF(t *testing.T) {
	input := "event: update\r\ndata: {\"type\":\"health\"}\r\n\r\n"

	var got []sseEvent
	err := readEvents(strings.NewReader(input), func(name, data string) bool {
		got = append(got, sseEvent{name, data})
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []sseEvent{{"update", `{"type":"health"}`}}, got)
}

func TestReadEventsStopsWhenEmitDeclines(t *testing.T) {
	input := "event: connected\ndata: {}\n\nevent: connected\ndata: {}\n\n"
	calls := 0
	err := readEvents(strings.NewReader(input), func(string, string) bool {
		calls++
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name, data string
		ok         bool
		want       StreamEvent
		refresh    bool
	}{
		{name: "connected", ok: true, want: StreamEvent{Kind: EventConnected}},
		{name: "update", data: `{"type":"health"}`, ok: true, want: StreamEvent{Kind: EventUpdate, Type: "health"}, refresh: true},
		{name: "update", data: `{"type":"worktrees"}`, ok: true, want: StreamEvent{Kind: EventUpdate, Type: "worktrees"}, refresh: true},
		{name: "update", data: `{"type":"plans"}`, ok: true, want: StreamEvent{Kind: EventUpdate, Type: "plans"}},
		{name: "update", data: `not json`, ok: false},
		{name: "message", data: `{}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name+tt.data, func(t *testing.T) {
			ev, ok := decodeEvent(tt.name, tt.data)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, ev)
				assert.Equal(t, tt.refresh, ev.TriggersRefresh())
			}
		})
	}
}

func nextEvent(t *testing.T, ch <-chan StreamEvent) StreamEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "stream closed early")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for stream event")
	}
	return StreamEvent{}
}

func TestStreamDeliversEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EventsPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: connected\ndata: {}\n\n")
		fmt.Fprint(w, "event: update\ndata: {\"type\":\"worktrees\"}\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := NewClient(srv.URL, time.Second).Stream(ctx, time.Second)

	assert.Equal(t, EventConnecting, nextEvent(t, ch).Kind)
	assert.Equal(t, EventConnected, nextEvent(t, ch).Kind)
	ev := nextEvent(t, ch)
	assert.Equal(t, EventUpdate, ev.Kind)
	assert.True(t, ev.TriggersRefresh())

	cancel()
	for range ch {
	}
}

func TestStreamReconnectsAfterFailure(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: connected\ndata: {}\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := NewClient(srv.URL, time.Second).Stream(ctx, 10*time.Millisecond)

	assert.Equal(t, EventConnecting, nextEvent(t, ch).Kind)
	failed := nextEvent(t, ch)
	assert.Equal(t, EventError, failed.Kind)
	assert.ErrorIs(t, failed.Err, ErrHTTPStatus)
	assert.Equal(t, EventConnecting, nextEvent(t, ch).Kind)
	assert.Equal(t, EventConnected, nextEvent(t, ch).Kind)
	assert.Equal(t, int32(2), attempts.Load())

	cancel()
	for range ch {
	}
}

func TestStreamClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := NewClient("http://127.0.0.1:1", time.Second).Stream(ctx, time.Hour)
	assert.Equal(t, EventConnecting, nextEvent(t, ch).Kind)
	assert.Equal(t, EventError, nextEvent(t, ch).Kind)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not close")
	}
}
