package app

import (
	"github.com/joshribakoff/bearing-dash/internal/api"
)

// Message types for the Bubble Tea app
type (
	refreshResultMsg struct {
		snapshot api.Snapshot
		err      error
	}
	streamEventMsg struct {
		event api.StreamEvent
	}
	streamClosedMsg  struct{}
	configChangedMsg struct{}
	openURLResultMsg struct {
		url string
		err error
	}
)
