package taskqueue

import (
	"context"
	"errors"
	"testing"
	"time"
)

// testQueueFIFO enqueues three tasks and expects them back in order with
// their fields intact.
func testQueueFIFO(t *testing.T, q Queue) {
	t.Helper()
	ctx := context.Background()

	for i, run := range []string{"run-1", "run-2", "run-3"} {
		task := Task{
			ID:       run,
			RunID:    run,
			Workflow: "wf",
			Version:  "v2",
			Input:    []byte{byte(i)},
			Seed:     int64(i + 1),
		}
		if err := q.Enqueue(ctx, task); err != nil {
			t.Fatalf("Enqueue %s failed: %v", run, err)
		}
	}

	if n := q.Len(); n != 3 {
		t.Fatalf("expected Len 3, got %d", n)
	}

	for i, want := range []string{"run-1", "run-2", "run-3"} {
		got, err := q.Dequeue(ctx)
		if err != nil {
			t.Fatalf("Dequeue %d failed: %v", i, err)
		}
		if got.RunID != want || got.Workflow != "wf" || got.Version != "v2" {
			t.Fatalf("unexpected task %d: %+v", i, got)
		}
		if len(got.Input) != 1 || got.Input[0] != byte(i) || got.Seed != int64(i+1) {
			t.Fatalf("unexpected payload for task %d: %+v", i, got)
		}
		if got.EnqueuedAt.IsZero() {
			t.Fatalf("expected EnqueuedAt to be stamped")
		}
	}

	if n := q.Len(); n != 0 {
		t.Fatalf("expected Len 0 after dequeues, got %d", n)
	}
}

// testQueueDequeueBlocks checks that Dequeue waits for a later Enqueue.
func testQueueDequeueBlocks(t *testing.T, q Queue) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan *Task, 1)
	errs := make(chan error, 1)
	go func() {
		task, err := q.Dequeue(ctx)
		if err != nil {
			errs <- err
			return
		}
		done <- task
	}()

	time.Sleep(50 * time.Millisecond)
	if err := q.Enqueue(context.Background(), Task{RunID: "late", Workflow: "wf"}); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	select {
	case task := <-done:
		if task.RunID != "late" {
			t.Fatalf("expected run 'late', got %q", task.RunID)
		}
	case err := <-errs:
		t.Fatalf("Dequeue failed: %v", err)
	case <-ctx.Done():
		t.Fatalf("timed out waiting for Dequeue")
	}
}

// testQueueDequeueCancelled checks that an idle Dequeue honors ctx.
func testQueueDequeueCancelled(t *testing.T, q Queue) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

// testQueueNotBefore checks that delayed tasks stay hidden until due.
func testQueueNotBefore(t *testing.T, q Queue) {
	t.Helper()
	ctx := context.Background()

	delayed := Task{RunID: "delayed", Workflow: "wf", NotBefore: time.Now().Add(300 * time.Millisecond)}
	if err := q.Enqueue(ctx, delayed); err != nil {
		t.Fatalf("Enqueue delayed failed: %v", err)
	}
	if err := q.Enqueue(ctx, Task{RunID: "now", Workflow: "wf"}); err != nil {
		t.Fatalf("Enqueue now failed: %v", err)
	}

	first, err := q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	if first.RunID != "now" {
		t.Fatalf("expected 'now' first, got %q", first.RunID)
	}

	start := time.Now()
	second, err := q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	if second.RunID != "delayed" {
		t.Fatalf("expected 'delayed', got %q", second.RunID)
	}
	if time.Since(start) < 100*time.Millisecond {
		t.Fatalf("delayed task became visible too early")
	}
}
