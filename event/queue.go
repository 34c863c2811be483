package event

import "github.com/lixenwraith/tabletop/constant"

// EventQueue is a fixed-size ring buffer of game events
// Single producer, single consumer, both on the frame goroutine
//
// Overflow: Oldest events overwritten when full
type EventQueue struct {
	events [constant.EventQueueSize]GameEvent
	head   uint64 // Read index
	tail   uint64 // Write index
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event, dropping the oldest when the ring is full
func (eq *EventQueue) Push(event GameEvent) {
	eq.events[eq.tail&constant.EventBufferMask] = event
	eq.tail++
	if eq.tail-eq.head > constant.EventQueueSize {
		eq.head = eq.tail - constant.EventQueueSize
	}
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []GameEvent {
	if eq.tail == eq.head {
		return nil
	}
	result := make([]GameEvent, 0, eq.tail-eq.head)
	for i := eq.head; i < eq.tail; i++ {
		result = append(result, eq.events[i&constant.EventBufferMask])
	}
	eq.head = eq.tail
	return result
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}
