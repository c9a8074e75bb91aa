package dice

import "errors"

// ErrMaxDiceReached is returned by ThrowDie when every die slot is in use.
// Callers show it as feedback and carry on.
var ErrMaxDiceReached = errors.New("dice: maximum dice count reached")

// Event is a state change emitted by the Controller.
type Event interface {
	diceEvent()
}

// PhaseChangedEvent is emitted when the phase actually changes.
type PhaseChangedEvent struct {
	Old Phase
	New Phase
}

func (PhaseChangedEvent) diceEvent() {}

// DiceCountChangedEvent is emitted when a die is thrown, removed, or reset.
type DiceCountChangedEvent struct {
	Count int
	Max   int
}

func (DiceCountChangedEvent) diceEvent() {}

// ScoreChangedEvent carries a copy of the whole score sequence.
type ScoreChangedEvent struct {
	Values []Value
}

func (ScoreChangedEvent) diceEvent() {}

// StyleChangedEvent is emitted when the current style changes.
type StyleChangedEvent struct {
	Style Style
}

func (StyleChangedEvent) diceEvent() {}

// Observer receives controller events synchronously on the caller's goroutine.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) {
	f(e)
}

// Queue buffers events so a presentation layer can poll them once per frame.
type Queue struct {
	events []Event
}

// Notify appends e to the queue.
func (q *Queue) Notify(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns all pending events in emission order and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}
