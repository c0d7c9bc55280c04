package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCycleStarted   EventType = "CycleStarted"
	EventCycleCancelled EventType = "CycleCancelled"
	EventResultsShown   EventType = "ResultsShown"
	EventItemResolved   EventType = "ItemResolved"
	EventModeSwitched   EventType = "ModeSwitched"
	EventItemActivated  EventType = "ItemActivated"
	EventLauncherFailed EventType = "LauncherFailed"
	EventError          EventType = "Error"
	EventConfigLoaded   EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CycleStartedEvent is emitted when a new search cycle becomes current
type CycleStartedEvent struct {
	CycleID uint64
	Query   string
	Mode    string
}

func (e CycleStartedEvent) Type() EventType { return EventCycleStarted }

// CycleCancelledEvent is emitted when a cycle is superseded
type CycleCancelledEvent struct {
	CycleID uint64
}

func (e CycleCancelledEvent) Type() EventType { return EventCycleCancelled }

// ResultsShownEvent is emitted after the builder rendered a cycle's list
type ResultsShownEvent struct {
	CycleID uint64
	Count   int
	Pending int
}

func (e ResultsShownEvent) Type() EventType { return EventResultsShown }

// ItemResolvedEvent is emitted when an async placeholder was filled in
type ItemResolvedEvent struct {
	CycleID uint64
	ItemID  string
}

func (e ItemResolvedEvent) Type() EventType { return EventItemResolved }

// ModeSwitchedEvent is emitted when the active namespace changes
type ModeSwitchedEvent struct {
	From string
	To   string
	Name string
}

func (e ModeSwitchedEvent) Type() EventType { return EventModeSwitched }

// ItemActivatedEvent carries the attributes of an activated item to the executor
type ItemActivatedEvent struct {
	ItemID     string
	Launcher   string
	Attributes *Attributes
}

func (e ItemActivatedEvent) Type() EventType { return EventItemActivated }

// LauncherFailedEvent is emitted when a launcher contributed no items because of an error
type LauncherFailedEvent struct {
	CycleID  uint64
	Launcher string
	Err      error
}

func (e LauncherFailedEvent) Type() EventType { return EventLauncherFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted once the configuration snapshot is ready
type ConfigLoadedEvent struct {
	Launchers int
	Errors    int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
