// Package input holds the window-independent event queue.
package input

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventWindowResize:
		return "resize"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	default:
		return "none"
	}
}

// Key is a backend-neutral key code. Window backends map their native
// codes onto it; keys the viewer does not use become KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyF12
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool
	Width  int
	Height int
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Reset clears the events of the previous frame.
func (i *Input) Reset() {
	i.events = i.events[:0]
}

// Push queues an event for this frame.
func (i *Input) Push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events queued since the last Reset.
func (i *Input) Events() []Event {
	return i.events
}

// QuitRequested reports whether the window asked to close this frame.
func (i *Input) QuitRequested() bool {
	for _, e := range i.events {
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}

// IsKeyPressed checks if a specific key went down this frame, ignoring auto-repeat.
func (i *Input) IsKeyPressed(key Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key && !e.Repeat {
			return true
		}
	}
	return false
}

// LastResize returns the final resize of this frame, if any.
func (i *Input) LastResize() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}
