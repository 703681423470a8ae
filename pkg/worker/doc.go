// Package worker drives workflow runs from a task queue.
//
// A worker dequeues an activation task, loads the run's history from a
// HistoryStore, replays the workflow with an executor and records the
// outcome in an ActivationStore. It never appends history itself: the
// commands in each activation record are the orchestrator's to act on, and
// whoever appends the resulting events enqueues the next activation.
//
// Multiple workers can safely operate on the same queue to scale processing.
package worker
