package api

import "time"

// Status represents how an activation ended.
type Status string

const (
	StatusCompleted      Status = "COMPLETED"
	StatusSuspended      Status = "SUSPENDED"
	StatusFailed         Status = "FAILED"
	StatusContinuedAsNew Status = "CONTINUED_AS_NEW"
)

// ExecutionResult summarizes one activation.
type ExecutionResult struct {
	RunID  string
	Status Status

	// Commands holds the commands emitted during the activation, in order.
	// It is populated for every status, including Failed.
	Commands *CommandQueue

	// Payloads is a copy of the activation arena. Command offsets index
	// into it.
	Payloads []byte

	// Output is the workflow's return value for Completed, or the new input
	// for ContinuedAsNew.
	Output any

	// Err is set for Failed.
	Err error

	// Replayed counts the history records consumed during the activation.
	Replayed int

	Duration time.Duration
}

// Payload returns the serialized payload of cmd.
func (r *ExecutionResult) Payload(cmd Command) []byte {
	if cmd.Length == 0 {
		return nil
	}
	return r.Payloads[cmd.Offset : cmd.Offset+cmd.Length : cmd.Offset+cmd.Length]
}
