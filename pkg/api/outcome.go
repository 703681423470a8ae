package api

import "fmt"

// Outcome tells how a workflow operation was resolved.
type Outcome uint8

const (
	// OutcomeReplayed means the result was found in history.
	OutcomeReplayed Outcome = iota + 1
	// OutcomeScheduled means a command was emitted and the workflow must
	// suspend.
	OutcomeScheduled
	// OutcomeCancelled means the activation was cancelled first.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReplayed:
		return "replayed"
	case OutcomeScheduled:
		return "scheduled"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Resolution is the result of a workflow operation.
//
// Payload is set for replayed operations and aliases the history buffer; it
// is only valid during the activation. Command is set for scheduled
// operations. Cause is set for cancelled operations.
type Resolution struct {
	Outcome Outcome
	Payload []byte
	Command Command
	Cause   error
}

// Err converts the resolution into the control-flow error workflow code
// returns: nil for replayed, a *SuspendedError for scheduled and an error
// wrapping ErrCancelled for cancelled.
func (r Resolution) Err() error {
	switch r.Outcome {
	case OutcomeReplayed:
		return nil
	case OutcomeScheduled:
		return NewSuspendedError(r.Command)
	case OutcomeCancelled:
		if r.Cause != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, r.Cause)
		}
		return ErrCancelled
	default:
		return fmt.Errorf("unresolved operation: %s", r.Outcome)
	}
}
