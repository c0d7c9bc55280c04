package search

import (
	"context"
	"sync/atomic"
	"time"

	"lookout/internal/domain"
	"lookout/internal/launcher"
)

// Cycle is one evaluation of the query text. Only the current cycle may
// change the rendered list.
type Cycle struct {
	ID     uint64
	Query  string
	Mode   string
	IsHome bool

	// SwitchedMode is set when the typed text was a mode token; the caller
	// clears its input field.
	SwitchedMode bool

	ctx       context.Context
	cancel    context.CancelFunc
	cancelled atomic.Bool

	items []*domain.ResultItem
	tasks []*Task
}

func newCycle(id uint64, query, mode string, isHome bool) *Cycle {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cycle{
		ID:     id,
		Query:  query,
		Mode:   mode,
		IsHome: isHome,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Cancel flips the cancellation flag and aborts in-flight resolutions
func (c *Cycle) Cancel() {
	c.cancelled.Store(true)
	c.cancel()
}

// Cancelled reports whether the cycle was superseded
func (c *Cycle) Cancelled() bool {
	return c.cancelled.Load()
}

// Context is cancelled together with the cycle
func (c *Cycle) Context() context.Context {
	return c.ctx
}

// Items returns the list as rendered by the builder
func (c *Cycle) Items() []*domain.ResultItem {
	return c.items
}

// Tasks returns the async resolutions in launcher registration order
func (c *Cycle) Tasks() []*Task {
	return c.tasks
}

// Task resolves one async placeholder. Run never touches the rendered
// list; its Completion is handed to Orchestrator.Apply on the event loop.
type Task struct {
	cycle    *Cycle
	launcher *launcher.Launcher
	item     *domain.ResultItem
	deferred launcher.Deferred
	images   launcher.ImageSource
	delay    time.Duration
}

// Launcher returns the name of the launcher being resolved
func (t *Task) Launcher() string {
	return t.launcher.Name
}

// Item returns the placeholder this task fills in
func (t *Task) Item() *domain.ResultItem {
	return t.item
}

// Completion is the outcome of a Task
type Completion struct {
	CycleID     uint64
	Launcher    string
	Item        *domain.ResultItem
	Resolution  launcher.Resolution
	Image       *domain.Image
	ImageCached bool
	Err         error

	cycle *Cycle
}

// Run waits for the deferred result and the launcher image. It blocks, so
// callers run it off the event loop.
func (t *Task) Run() Completion {
	comp := Completion{
		CycleID:  t.cycle.ID,
		Launcher: t.launcher.Name,
		Item:     t.item,
		cycle:    t.cycle,
	}
	ctx := t.cycle.ctx

	if t.delay > 0 {
		timer := time.NewTimer(t.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			comp.Err = ctx.Err()
			return comp
		}
	}
	if t.cycle.Cancelled() {
		comp.Err = context.Canceled
		return comp
	}

	res, err := t.deferred.Await(ctx)
	if err != nil {
		comp.Err = err
		return comp
	}
	comp.Resolution = res

	// a missing image keeps the placeholder icon
	if img, cached, err := t.launcher.FetchImage(ctx, t.images); err == nil && img != nil {
		comp.Image = img
		comp.ImageCached = cached
	}
	return comp
}
