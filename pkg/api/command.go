package api

import "iter"

// DefaultCommandCapacity is the initial capacity of a CommandQueue created
// with a non-positive capacity.
const DefaultCommandCapacity = 32

// Command is an instruction for the orchestrator produced during an
// activation. Its payload lives in the activation arena at
// [Offset, Offset+Length); ExecutionResult.Payload resolves it.
type Command struct {
	Kind   EventType
	Offset int
	Length int

	// Name is the activity name for activity commands and empty for timers.
	Name string

	// Options carries the resolved activity options.
	Options ActivityOptions
}

// CommandQueue is an ordered, growable buffer of commands. Commands come out
// in the order they were enqueued, whether they arrived one by one or in a
// batch. Not safe for concurrent use.
type CommandQueue struct {
	items []Command
	count int
}

// NewCommandQueue creates a queue with room for capacity commands.
func NewCommandQueue(capacity int) *CommandQueue {
	if capacity <= 0 {
		capacity = DefaultCommandCapacity
	}
	return &CommandQueue{items: make([]Command, capacity)}
}

// Enqueue appends one command, doubling capacity when full.
func (q *CommandQueue) Enqueue(cmd Command) {
	if q.count == len(q.items) {
		q.grow(q.count + 1)
	}
	q.items[q.count] = cmd
	q.count++
}

// EnqueueRange appends cmds in order with at most one growth step.
func (q *CommandQueue) EnqueueRange(cmds []Command) {
	if len(cmds) == 0 {
		return
	}
	required := q.count + len(cmds)
	if required > len(q.items) {
		q.grow(required)
	}
	copy(q.items[q.count:], cmds)
	q.count = required
}

// Clear drops all commands and keeps the capacity.
func (q *CommandQueue) Clear() {
	clear(q.items[:q.count])
	q.count = 0
}

// Len reports the number of queued commands.
func (q *CommandQueue) Len() int {
	if q == nil {
		return 0
	}
	return q.count
}

// Cap reports the current capacity.
func (q *CommandQueue) Cap() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// At returns the i-th command. It panics when i is out of range.
func (q *CommandQueue) At(i int) Command {
	if i < 0 || i >= q.count {
		panic("api: command index out of range")
	}
	return q.items[i]
}

// Snapshot returns the queued commands. The slice is clipped so appending to
// it never writes into the queue, but it shares storage and must not be held
// across Clear.
func (q *CommandQueue) Snapshot() []Command {
	if q == nil {
		return nil
	}
	return q.items[:q.count:q.count]
}

// Clone returns an independent copy sized to the current contents.
func (q *CommandQueue) Clone() *CommandQueue {
	out := NewCommandQueue(q.Len())
	out.EnqueueRange(q.Snapshot())
	return out
}

// All iterates over the queued commands in order.
func (q *CommandQueue) All() iter.Seq2[int, Command] {
	return func(yield func(int, Command) bool) {
		for i := 0; i < q.Len(); i++ {
			if !yield(i, q.items[i]) {
				return
			}
		}
	}
}

func (q *CommandQueue) grow(required int) {
	newCap := max(2*len(q.items), required)
	if len(q.items) == 0 {
		newCap = max(required, DefaultCommandCapacity)
	}
	grown := make([]Command, newCap)
	copy(grown, q.items[:q.count])
	q.items = grown
}
