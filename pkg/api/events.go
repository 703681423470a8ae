package api

import "fmt"

// EventType identifies a record in the binary workflow history. The numeric
// values are part of the wire format.
type EventType uint8

const (
	EventUnspecified EventType = 0

	EventWorkflowExecutionStarted    EventType = 1
	EventWorkflowExecutionCompleted  EventType = 2
	EventWorkflowExecutionFailed     EventType = 3
	EventWorkflowExecutionTerminated EventType = 4

	EventActivityScheduled EventType = 10
	EventActivityCompleted EventType = 11
	EventActivityFailed    EventType = 12
	EventActivityTimedOut  EventType = 13

	EventTimerStarted EventType = 20
	EventTimerFired   EventType = 21

	EventSignalReceived          EventType = 30
	EventWorkflowUpdateAccepted  EventType = 31
	EventWorkflowUpdateCompleted EventType = 32

	EventSideEffectRecorded EventType = 40
	EventVersionMarker      EventType = 41
)

var eventTypeNames = map[EventType]string{
	EventUnspecified:                 "unspecified",
	EventWorkflowExecutionStarted:    "workflow.started",
	EventWorkflowExecutionCompleted:  "workflow.completed",
	EventWorkflowExecutionFailed:     "workflow.failed",
	EventWorkflowExecutionTerminated: "workflow.terminated",
	EventActivityScheduled:           "activity.scheduled",
	EventActivityCompleted:           "activity.completed",
	EventActivityFailed:              "activity.failed",
	EventActivityTimedOut:            "activity.timed_out",
	EventTimerStarted:                "timer.started",
	EventTimerFired:                  "timer.fired",
	EventSignalReceived:              "signal.received",
	EventWorkflowUpdateAccepted:      "update.accepted",
	EventWorkflowUpdateCompleted:     "update.completed",
	EventSideEffectRecorded:          "side_effect.recorded",
	EventVersionMarker:               "version.marker",
}

var eventTypesByName = func() map[string]EventType {
	m := make(map[string]EventType, len(eventTypeNames))
	for t, name := range eventTypeNames {
		m[name] = t
	}
	return m
}()

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// Known reports whether t is one of the defined event types.
func (t EventType) Known() bool {
	_, ok := eventTypeNames[t]
	return ok
}

// ParseEventType resolves a name produced by EventType.String.
func ParseEventType(name string) (EventType, error) {
	if t, ok := eventTypesByName[name]; ok {
		return t, nil
	}
	return EventUnspecified, fmt.Errorf("unknown event type %q", name)
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(text []byte) error {
	parsed, err := ParseEventType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
