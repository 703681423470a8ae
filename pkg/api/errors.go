package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContext reports use of a workflow context after its
	// activation ended.
	ErrInvalidContext = errors.New("workflow context is no longer valid")

	// ErrSuspended is wrapped by SuspendedError.
	ErrSuspended = errors.New("workflow suspended")

	// ErrCancelled reports that the activation's cancellation signal fired
	// before an operation could complete.
	ErrCancelled = errors.New("workflow cancelled")

	// ErrUnknownActivity is returned when an activity name is not registered.
	ErrUnknownActivity = errors.New("unknown activity")

	// ErrWorkflowNotFound is returned when no workflow is registered under a
	// name and version.
	ErrWorkflowNotFound = errors.New("workflow not found")
)

// SuspendedError is returned by workflow operations that had to schedule a
// command instead of resolving from history. Workflow code should return it
// unchanged so the activation ends as Suspended.
type SuspendedError struct {
	Command Command
}

func (e *SuspendedError) Error() string {
	if e.Command.Name != "" {
		return fmt.Sprintf("workflow suspended: %s %q", e.Command.Kind, e.Command.Name)
	}
	return fmt.Sprintf("workflow suspended: %s", e.Command.Kind)
}

func (e *SuspendedError) Unwrap() error { return ErrSuspended }

// NewSuspendedError returns the suspension signal for cmd.
func NewSuspendedError(cmd Command) error {
	return &SuspendedError{Command: cmd}
}

// IsSuspended reports whether err signals a suspension.
func IsSuspended(err error) bool {
	return errors.Is(err, ErrSuspended)
}

// IsCancelled reports whether err stems from activation cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// ContinueAsNewError asks the host to finish the current run and start a
// fresh one with Input.
type ContinueAsNewError struct {
	Input any
}

func (e *ContinueAsNewError) Error() string {
	return "workflow continued as new"
}

// NewContinueAsNewError builds the continue-as-new signal.
func NewContinueAsNewError(input any) error {
	return &ContinueAsNewError{Input: input}
}

// IsContinueAsNew reports whether err is a continue-as-new request and
// returns the new input.
func IsContinueAsNew(err error) (any, bool) {
	var can *ContinueAsNewError
	if errors.As(err, &can) {
		return can.Input, true
	}
	return nil, false
}
