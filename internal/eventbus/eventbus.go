package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"lookout/internal/domain"
	"lookout/internal/log"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCycleStarted   = domain.EventCycleStarted
	EventCycleCancelled = domain.EventCycleCancelled
	EventResultsShown   = domain.EventResultsShown
	EventItemResolved   = domain.EventItemResolved
	EventModeSwitched   = domain.EventModeSwitched
	EventItemActivated  = domain.EventItemActivated
	EventLauncherFailed = domain.EventLauncherFailed
	EventError          = domain.EventError
	EventConfigLoaded   = domain.EventConfigLoaded
)

// Re-export domain event types
type CycleStartedEvent = domain.CycleStartedEvent
type CycleCancelledEvent = domain.CycleCancelledEvent
type ResultsShownEvent = domain.ResultsShownEvent
type ItemResolvedEvent = domain.ItemResolvedEvent
type ModeSwitchedEvent = domain.ModeSwitchedEvent
type ItemActivatedEvent = domain.ItemActivatedEvent
type LauncherFailedEvent = domain.LauncherFailedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		logger:    log.WithComponent("eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventCycleStarted, EventCycleCancelled, EventItemResolved, EventResultsShown:
		// once per keystroke, too noisy
	default:
		b.logger.Debug("publishing event", slog.String("type", string(event.Type())))
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("event bus channel full, dropping event", slog.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and drops queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			handlersCopy := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlersCopy[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							b.logger.Error("event handler panic",
								slog.String("type", string(eventType)),
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())))
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// NullBus discards every event
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}
func (NullBus) Close() {}
