// Package search runs query cycles: it decides which launchers take part,
// renders their synchronous items, and lets asynchronous placeholders fill
// in later unless a newer cycle has started.
//
// All methods of Orchestrator must be called from a single goroutine (the
// UI event loop). Async work happens in Task.Run, which only computes a
// Completion; Apply then writes it on the owning goroutine.
package search

import (
	"errors"
	"log/slog"
	"time"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
	"lookout/internal/eventbus"
	"lookout/internal/launcher"
	"lookout/internal/log"
)

// Options tunes the orchestrator
type Options struct {
	ShortcutSlots int
	// AsyncDelay is waited before each async resolution; typing within it
	// cancels the work before it starts
	AsyncDelay time.Duration
	// Animate marks items of the startup cycle for the entry animation
	Animate bool
}

// Deps are the orchestrator's collaborators
type Deps struct {
	Launchers []*launcher.Launcher
	Renderer  Renderer
	Images    launcher.ImageSource
	Bus       eventbus.EventBus
	Options   Options
}

// Orchestrator owns the current cycle and the mode registry
type Orchestrator struct {
	launchers []*launcher.Launcher
	registry  *Registry
	builder   *Builder
	renderer  Renderer
	images    launcher.ImageSource
	bus       eventbus.EventBus
	opts      Options
	logger    *slog.Logger

	generation uint64
	current    *Cycle
}

// New registers the launchers' aliases. A launcher whose alias clashes is
// dropped and reported; the rest still load.
func New(deps Deps) (*Orchestrator, []error) {
	bus := deps.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	o := &Orchestrator{
		registry: NewRegistry(),
		builder:  NewBuilder(deps.Options.ShortcutSlots),
		renderer: deps.Renderer,
		images:   deps.Images,
		bus:      bus,
		opts:     deps.Options,
		logger:   log.WithComponent("search"),
	}

	var errs []error
	for _, l := range deps.Launchers {
		if err := o.registry.Register(l); err != nil {
			o.logger.Warn("dropping launcher", slog.String("launcher", l.Name), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		o.launchers = append(o.launchers, l)
	}
	return o, errs
}

// Launchers returns the registered launchers in registration order
func (o *Orchestrator) Launchers() []*launcher.Launcher {
	return o.launchers
}

// Registry exposes the mode registry
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Mode returns the active mode
func (o *Orchestrator) Mode() domain.Mode {
	return o.registry.Active()
}

// Current returns the latest cycle, or nil before the first search
func (o *Orchestrator) Current() *Cycle {
	return o.current
}

// Start runs the home cycle shown when the launcher opens
func (o *Orchestrator) Start() *Cycle {
	return o.run("", o.opts.Animate)
}

// Search starts a cycle for the query text. If the text is exactly a mode
// token the mode switches and the cycle runs with an empty query.
func (o *Orchestrator) Search(query string) *Cycle {
	switched := false
	if query != "" {
		if m, ok := o.registry.Lookup(query); ok {
			o.switchMode(m.Alias)
			query = ""
			switched = true
		}
	}
	c := o.run(query, false)
	c.SwitchedMode = switched
	return c
}

// SwitchMode enters the mode for token and re-queries with empty text.
// Unknown tokens return to AllMode.
func (o *Orchestrator) SwitchMode(token string) *Cycle {
	o.switchMode(token)
	c := o.run("", false)
	c.SwitchedMode = true
	return c
}

func (o *Orchestrator) switchMode(token string) {
	from, to := o.registry.Switch(token)
	if from.Alias == to.Alias {
		return
	}
	o.logger.Debug("mode switched", slog.String("from", from.Alias), slog.String("to", to.Alias))
	o.bus.Publish(domain.ModeSwitchedEvent{From: from.Alias, To: to.Alias, Name: to.Name})
}

// Cancel invalidates the current cycle without starting a new one
func (o *Orchestrator) Cancel() {
	if o.current == nil || o.current.Cancelled() {
		return
	}
	o.current.Cancel()
	o.bus.Publish(domain.CycleCancelledEvent{CycleID: o.current.ID})
}

func (o *Orchestrator) run(query string, animate bool) *Cycle {
	o.Cancel()

	mode := o.registry.Active().Alias
	isHome := query == "" && mode == domain.ModeAll

	o.generation++
	c := newCycle(o.generation, query, mode, isHome)
	o.current = c
	o.bus.Publish(domain.CycleStartedEvent{CycleID: c.ID, Query: query, Mode: mode})

	var items []*domain.ResultItem
	for _, l := range o.launchers {
		if !l.Eligible(mode, isHome) {
			continue
		}
		if l.Async {
			item, deferred, err := l.QueryAsync(query)
			if err != nil {
				o.launcherFailed(c, l, err)
				continue
			}
			items = append(items, item)
			c.tasks = append(c.tasks, &Task{
				cycle:    c,
				launcher: l,
				item:     item,
				deferred: deferred,
				images:   o.images,
				delay:    o.opts.AsyncDelay,
			})
			continue
		}
		found, err := l.QuerySync(query)
		if err != nil {
			o.launcherFailed(c, l, err)
			continue
		}
		items = append(items, found...)
	}

	c.items = o.builder.Build(o.renderer, items, animate)
	o.bus.Publish(domain.ResultsShownEvent{CycleID: c.ID, Count: len(c.items), Pending: len(c.tasks)})
	return c
}

// Apply writes a completed resolution into its placeholder. Completions
// from cancelled or superseded cycles are dropped; it reports whether the
// list changed.
func (o *Orchestrator) Apply(comp Completion) bool {
	c := comp.cycle
	if c == nil || c != o.current || c.Cancelled() {
		return false
	}
	if comp.Err != nil {
		o.launcherFailedByName(c, comp.Launcher, comp.Err)
		o.renderer.Remove(comp.Item)
		c.items = removeItem(c.items, comp.Item)
		return true
	}

	launcher.Apply(comp.Item, comp.Resolution)
	if comp.Image != nil {
		comp.Item.Image = comp.Image
		comp.Item.FreshImage = !comp.ImageCached
	}
	o.renderer.Refresh(comp.Item)
	o.bus.Publish(domain.ItemResolvedEvent{CycleID: c.ID, ItemID: comp.Item.ID})
	return true
}

func (o *Orchestrator) launcherFailed(c *Cycle, l *launcher.Launcher, err error) {
	o.launcherFailedByName(c, l.Name, err)
}

func (o *Orchestrator) launcherFailedByName(c *Cycle, name string, err error) {
	if errors.Is(err, lkerrors.ErrNoMatch) {
		return
	}
	log.WithLauncher(name).Debug("launcher contributed nothing",
		slog.Uint64("cycle", c.ID), slog.Any("error", err))
	o.bus.Publish(domain.LauncherFailedEvent{CycleID: c.ID, Launcher: name, Err: err})
}

func removeItem(items []*domain.ResultItem, target *domain.ResultItem) []*domain.ResultItem {
	out := items[:0:0]
	for _, it := range items {
		if it != target {
			out = append(out, it)
		}
	}
	return out
}
