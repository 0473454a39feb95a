package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventHistoryChanged EventType = "HistoryChanged"
	EventHistoryCleared EventType = "HistoryCleared"
	EventSyncFailed     EventType = "SyncFailed"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// HistoryChangedEvent is emitted after an entry is added to the session history
type HistoryChangedEvent struct {
	Entry HistoryEntry
	Count int
}

func (e HistoryChangedEvent) Type() EventType { return EventHistoryChanged }

// HistoryClearedEvent is emitted after the session history is erased
type HistoryClearedEvent struct{}

func (e HistoryClearedEvent) Type() EventType { return EventHistoryCleared }

// SyncFailedEvent is emitted when a background session sync fails.
// Diagnostic only, never user-visible.
type SyncFailedEvent struct {
	SessionID string
	Err       error
}

func (e SyncFailedEvent) Type() EventType { return EventSyncFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
