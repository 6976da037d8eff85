package event

type EventType string

// Enum of event types sent to registered listeners
const (
	ScanStartedEventType  EventType = "scan-started"
	HostUpdateEventType   EventType = "host-update"
	ScanCompleteEventType EventType = "scan-complete"
	ScanStoppedEventType  EventType = "scan-stopped"
	FatalErrorEventType   EventType = "fatal-error"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}
