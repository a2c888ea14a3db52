package input

import "testing"

func TestInput_Queue(t *testing.T) {
	in := New()
	in.Push(Event{Type: EventKeyDown, Key: KeyF12})
	in.Push(Event{Type: EventWindowResize, Width: 800, Height: 600})
	in.Push(Event{Type: EventWindowResize, Width: 1024, Height: 768})

	if len(in.Events()) != 3 {
		t.Fatalf("expected 3 events, got %d", len(in.Events()))
	}
	if !in.IsKeyPressed(KeyF12) {
		t.Error("expected F12 pressed")
	}
	if in.IsKeyPressed(KeyEscape) {
		t.Error("did not expect Escape pressed")
	}
	if in.QuitRequested() {
		t.Error("did not expect quit")
	}

	w, h, ok := in.LastResize()
	if !ok || w != 1024 || h != 768 {
		t.Errorf("expected last resize 1024x768, got %dx%d (%v)", w, h, ok)
	}

	in.Reset()
	if len(in.Events()) != 0 {
		t.Errorf("expected empty queue after Reset, got %d", len(in.Events()))
	}
	if _, _, ok := in.LastResize(); ok {
		t.Error("expected no resize after Reset")
	}
}

func TestInput_RepeatIgnored(t *testing.T) {
	in := New()
	in.Push(Event{Type: EventKeyDown, Key: KeyF12, Repeat: true})
	in.Push(Event{Type: EventKeyUp, Key: KeyEscape})

	if in.IsKeyPressed(KeyF12) {
		t.Error("auto-repeat should not count as a press")
	}
	if in.IsKeyPressed(KeyEscape) {
		t.Error("key-up should not count as a press")
	}
}

func TestInput_Quit(t *testing.T) {
	in := New()
	in.Push(Event{Type: EventQuit})
	if !in.QuitRequested() {
		t.Error("expected quit")
	}
}

func TestEventType_String(t *testing.T) {
	tests := map[EventType]string{
		EventNone:         "none",
		EventQuit:         "quit",
		EventWindowResize: "resize",
		EventKeyDown:      "key-down",
		EventKeyUp:        "key-up",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", typ, got, want)
		}
	}
}
