package flowwire

import (
	"bytes"
	"context"
	"fmt"

	"github.com/petrijr/flowwire/pkg/api"
)

// Activator creates the workflow instance for one activation. Instances are
// never reused across activations.
type Activator[W any] func(wctx WorkflowContext) (W, error)

// ExecuteBatch runs one activation of a workflow instance produced by
// activate. It is the typed form of Executor.ExecuteBatch.
func ExecuteBatch[W, In, Out any](
	ctx context.Context,
	ex *Executor,
	req Request,
	activate Activator[W],
	input In,
	run func(w W, input In) (Out, error),
) (*ExecutionResult, error) {
	return ex.ExecuteBatch(ctx, req, func(wctx api.WorkflowContext) (any, error) {
		w, err := activate(wctx)
		if err != nil {
			return nil, fmt.Errorf("activate workflow: %w", err)
		}
		return run(w, input)
	})
}

// Output returns the completed output of res as T.
func Output[T any](res *ExecutionResult) (T, bool) {
	var zero T
	if res == nil || res.Status != StatusCompleted {
		return zero, false
	}
	out, ok := res.Output.(T)
	return out, ok
}

// EncodeInput serializes v with ex's codec for Request.Input.
func EncodeInput(ex *Executor, v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := ex.Codec().Encode(&buf, v); err != nil {
		return nil, fmt.Errorf("encode workflow input: %w", err)
	}
	return buf.Bytes(), nil
}
