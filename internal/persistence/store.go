// Package persistence holds host-side stores for workflow history and
// activation outcomes. The execution core never touches them: a host loads a
// run's history, hands the bytes to the executor and records the result.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/petrijr/flowwire/pkg/api"
	"github.com/petrijr/flowwire/pkg/history"
)

var (
	// ErrRunNotFound is returned when a store holds nothing for a run.
	ErrRunNotFound = errors.New("run not found")
)

// HistoryStore is an append-only store of binary history records per run.
type HistoryStore interface {
	// AppendEvents appends whole encoded records to a run's history.
	AppendEvents(ctx context.Context, runID string, records []byte) error
	// LoadHistory returns the concatenated records of a run.
	LoadHistory(ctx context.Context, runID string) ([]byte, error)
}

// ActivationStore records the outcome of each activation of a run, in order.
// It is the outbox an orchestrator reads commands from.
type ActivationStore interface {
	SaveActivation(ctx context.Context, rec ActivationRecord) error
	ListActivations(ctx context.Context, runID string) ([]ActivationRecord, error)
}

// CommandRecord is a command with its payload copied out of the activation.
type CommandRecord struct {
	Kind    api.EventType
	Name    string
	Payload []byte
	Options api.ActivityOptions
}

// ActivationRecord is the durable form of an api.ExecutionResult.
type ActivationRecord struct {
	RunID    string
	Workflow string
	Status   api.Status
	Error    string

	// Output is the codec-encoded output for Completed and ContinuedAsNew.
	Output []byte

	Commands []CommandRecord

	// HistorySize is the length in bytes of the history the activation saw.
	HistorySize int
	Replayed    int
	RecordedAt  time.Time
}

// NewActivationRecord captures res. Command payloads are copied so the record
// does not alias the result.
func NewActivationRecord(workflow string, historySize int, res *api.ExecutionResult, output []byte, at time.Time) ActivationRecord {
	rec := ActivationRecord{
		RunID:       res.RunID,
		Workflow:    workflow,
		Status:      res.Status,
		Output:      output,
		HistorySize: historySize,
		Replayed:    res.Replayed,
		RecordedAt:  at,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	for _, cmd := range res.Commands.Snapshot() {
		rec.Commands = append(rec.Commands, CommandRecord{
			Kind:    cmd.Kind,
			Name:    cmd.Name,
			Payload: append([]byte(nil), res.Payload(cmd)...),
			Options: cmd.Options,
		})
	}
	return rec
}

// Persistence bundles the two store interfaces so hosts can depend on a
// single abstraction.
type Persistence struct {
	History     HistoryStore
	Activations ActivationStore
}

func validateRecords(runID string, records []byte) error {
	if _, err := history.Validate(records); err != nil {
		return fmt.Errorf("append events for run %q: %w", runID, err)
	}
	return nil
}
