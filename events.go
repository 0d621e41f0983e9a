package webvr

import (
	"github.com/google/uuid"
)

type EventType int

const (
	EventSessionStart EventType = iota
	EventSessionEnd
	EventSelectStart
	EventSelectEnd
	EventSelect
	EventSqueezeStart
	EventSqueezeEnd
	EventSqueeze
)

var eventNames = [...]string{
	EventSessionStart: "sessionstart",
	EventSessionEnd:   "sessionend",
	EventSelectStart:  "selectstart",
	EventSelectEnd:    "selectend",
	EventSelect:       "select",
	EventSqueezeStart: "squeezestart",
	EventSqueezeEnd:   "squeezeend",
	EventSqueeze:      "squeeze",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// Event is delivered to listeners. Controller is nil for session events.
type Event struct {
	Type       EventType
	Controller *Controller
}

// Subscription identifies one listener registration.
type Subscription uuid.UUID

type listener[E any] struct {
	id Subscription
	fn func(E)
}

// Dispatcher is a synchronous publish/subscribe hub keyed by an event enum.
// Listeners run on the dispatching goroutine in registration order.
type Dispatcher[K comparable, E any] struct {
	listeners map[K][]listener[E]
}

func (d *Dispatcher[K, E]) Subscribe(kind K, fn func(E)) Subscription {
	if d.listeners == nil {
		d.listeners = make(map[K][]listener[E])
	}
	id := Subscription(uuid.New())
	d.listeners[kind] = append(d.listeners[kind], listener[E]{id: id, fn: fn})
	return id
}

// Unsubscribe reports whether the subscription was registered.
func (d *Dispatcher[K, E]) Unsubscribe(id Subscription) bool {
	for kind, ls := range d.listeners {
		for i, l := range ls {
			if l.id == id {
				d.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				return true
			}
		}
	}
	return false
}

func (d *Dispatcher[K, E]) HasListeners(kind K) bool {
	return len(d.listeners[kind]) > 0
}

func (d *Dispatcher[K, E]) Dispatch(kind K, event E) {
	ls := d.listeners[kind]
	if len(ls) == 0 {
		return
	}
	// Listeners may unsubscribe while we iterate.
	snapshot := make([]listener[E], len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(event)
	}
}
