package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joshribakoff/bearing-dash/internal/log"
	sse "github.com/tmaxmax/go-sse"
)

// EventKind classifies stream notifications.
type EventKind int

// Stream notifications.
const (
	EventConnecting EventKind = iota
	EventConnected
	EventUpdate
	EventError
)

// StreamEvent is one notification from the live update stream.
type StreamEvent struct {
	Kind EventKind
	// Type is the payload type of an update event.
	Type string
	Err  error
}

// TriggersRefresh reports whether the event should cause a full refresh.
func (e StreamEvent) TriggersRefresh() bool {
	return e.Kind == EventUpdate && (e.Type == "health" || e.Type == "worktrees")
}

const maxEventSize = 1024 * 1024

// DefaultReconnectDelay is the pause before reconnecting a failed stream.
const DefaultReconnectDelay = 5 * time.Second

// Stream connects to the event stream and reconnects after every failure,
// waiting delay in between, until ctx is cancelled. The returned channel is
// closed when the stream stops.
func (c *Client) Stream(ctx context.Context, delay time.Duration) <-chan StreamEvent {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	out := make(chan StreamEvent, 8)

	go func() {
		defer close(out)
		for {
			if !send(ctx, out, StreamEvent{Kind: EventConnecting}) {
				return
			}
			err := c.streamOnce(ctx, out)
			if ctx.Err() != nil {
				return
			}
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			log.Printf("event stream: %v, reconnecting in %s", err, delay)
			if !send(ctx, out, StreamEvent{Kind: EventError, Err: err}) {
				return
			}

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()

	return out
}

func send(ctx context.Context, out chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Client) streamOnce(ctx context.Context, out chan<- StreamEvent) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+EventsPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.stream.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", EventsPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: %w: %d", EventsPath, ErrHTTPStatus, resp.StatusCode)
	}

	var sendErr error
	err = readEvents(resp.Body, func(name, data string) bool {
		ev, ok := decodeEvent(name, data)
		if !ok {
			return true
		}
		if !send(ctx, out, ev) {
			sendErr = ctx.Err()
			return false
		}
		return true
	})
	if sendErr != nil {
		return sendErr
	}
	return err
}

type updatePayload struct {
	Type string `json:"type"`
}

func decodeEvent(name, data string) (StreamEvent, bool) {
	switch name {
	case "connected":
		return StreamEvent{Kind: EventConnected}, true
	case "update":
		var p updatePayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			log.Warnf("event stream: malformed update payload %q: %v", data, err)
			return StreamEvent{}, false
		}
		return StreamEvent{Kind: EventUpdate, Type: p.Type}, true
	}
	return StreamEvent{}, false
}

// readEvents parses a text/event-stream body, calling emit for every
// dispatched event until emit returns false or the body ends. Unnamed events
// are reported as "message".
func readEvents(r io.Reader, emit func(name, data string) bool) error {
	for ev, err := range sse.Read(r, &sse.ReadConfig{MaxEventSize: maxEventSize}) {
		if err != nil {
			return err
		}
		name := ev.Type
		if name == "" {
			name = "message"
		}
		if !emit(name, ev.Data) {
			return nil
		}
	}
	return nil
}
