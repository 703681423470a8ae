// Package flowwire provides a deterministic execution core for durable
// workflows in Go.
//
// A workflow is ordinary Go code that talks to the outside world only through
// its WorkflowContext. Each time something happens to a run (an activity
// finished, a timer fired), the host replays the workflow from the start
// against the run's recorded history. Operations whose outcome is recorded
// resolve immediately; the first operation without a recorded outcome emits
// a command and suspends the workflow. The host carries out the commands,
// records their outcomes and activates the workflow again.
//
// # Core Concepts
//
// The flowwire programming model is intentionally small:
//
//  1. Executor
//  2. WorkflowContext
//  3. Activity
//  4. ExecutionResult
//  5. LocalRunner
//
// # Executor
//
// The Executor owns a pool of reusable workflow contexts and a registry of
// workflow and activity descriptors. ExecuteBatch runs a workflow body for
// one activation; Execute does the same for a registered workflow, decoding
// its input with the configured codec.
//
//	ex, err := flowwire.NewExecutor(flowwire.DefaultConfig())
//	flowwire.Workflow("order", orderWorkflow).MustRegister(ex)
//	res, err := ex.Execute(ctx, flowwire.Request{
//	    RunID:    runID,
//	    Workflow: "order",
//	    Input:    input,
//	    History:  history,
//	})
//
// Activations never block on the outside world and never do I/O. Every
// activation ends as Completed, Suspended, Failed or ContinuedAsNew, and its
// commands are returned regardless of status.
//
// # WorkflowContext
//
// The context supplies the activation's fixed clock, a deterministic random
// stream seeded per run, identifiers drawn from that stream, durable timers
// and activity calls. A context handed to workflow code is only valid during
// its activation; using it afterwards panics with ErrInvalidContext.
//
// # Activity
//
// Activity declares a typed activity handle:
//
//	var charge = flowwire.NewActivity[ChargeRequest, Receipt]("charge",
//	    flowwire.ActivityOptions{TaskQueue: "billing", Retry: flowwire.Retry(5).Ptr()})
//
//	func orderWorkflow(wctx flowwire.WorkflowContext, in Order) (Receipt, error) {
//	    receipt, err := charge.Execute(wctx, ChargeRequest{OrderID: in.ID})
//	    if err != nil {
//	        return Receipt{}, err // suspension or failure
//	    }
//	    if err := wctx.Delay(24 * time.Hour); err != nil {
//	        return Receipt{}, err
//	    }
//	    return receipt, nil
//	}
//
// Workflow code returns suspension errors unchanged; the executor turns them
// into a Suspended result.
//
// # LocalRunner
//
// LocalRunner bundles an executor, in-memory history and activation stores,
// an in-memory task queue and a worker into a single process-local helper
// for development and tests. NewSQLiteBundle wires the same pieces to a
// SQLite database.
//
// For the binary history format see package history; for payload codecs see
// package codec.
package flowwire
