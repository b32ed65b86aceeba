package session

// EventKind names a session notification.
type EventKind string

const (
	EventLevelReady       EventKind = "level_ready"
	EventSolved           EventKind = "solved"
	EventExpired          EventKind = "expired"
	EventRevealed         EventKind = "revealed"
	EventCampaignComplete EventKind = "campaign_complete"
)

// Event is delivered to the Sink once per transition.
type Event struct {
	Kind      EventKind
	Index     int   // level index the event belongs to
	Level     Level // zero for EventCampaignComplete
	Moves     int   // successful swaps on the level so far
	Remaining int   // seconds left on the countdown
	Elapsed   int   // seconds played on the level
	Points    int   // points awarded by this event
	Score     int   // campaign total after the event
}

// Sink receives session events. It is called synchronously from the
// operation that caused the transition and must not call back into the
// session.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

// Notify calls f(e).
func (f SinkFunc) Notify(e Event) {
	f(e)
}

type discardSink struct{}

func (discardSink) Notify(Event) {}

// Recorder is a Sink that keeps every event, useful for tests and replay.
type Recorder struct {
	Events []Event
}

// Notify appends e.
func (r *Recorder) Notify(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []EventKind {
	out := make([]EventKind, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Kind
	}
	return out
}
