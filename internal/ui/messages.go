package ui

import (
	"time"

	"lookout/internal/actions"
	"lookout/internal/search"
)

// completionMsg carries an async resolution back to the event loop
type completionMsg struct {
	completion search.Completion
}

// activationMsg carries the result of running an item
type activationMsg struct {
	result actions.Result
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time
