package taskqueue

import (
	"testing"
	"time"
)

func TestTaskCodec(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := Task{
		ID:         "t1",
		RunID:      "run-1",
		Workflow:   "order",
		Version:    "v3",
		Input:      []byte(`{"id":1}`),
		Seed:       -7,
		EnqueuedAt: at,
		NotBefore:  at.Add(time.Minute),
	}

	data, err := EncodeTask(in)
	if err != nil {
		t.Fatalf("EncodeTask failed: %v", err)
	}
	out, err := DecodeTask(data)
	if err != nil {
		t.Fatalf("DecodeTask failed: %v", err)
	}

	if out.RunID != in.RunID || out.Workflow != in.Workflow || out.Version != in.Version || out.Seed != in.Seed {
		t.Fatalf("decoded task mismatch: %+v", out)
	}
	if string(out.Input) != string(in.Input) {
		t.Fatalf("input mismatch: %q", out.Input)
	}
	if !out.EnqueuedAt.Equal(at) || !out.NotBefore.Equal(at.Add(time.Minute)) {
		t.Fatalf("time mismatch: %v %v", out.EnqueuedAt, out.NotBefore)
	}
}

func TestDecodeTask_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := DecodeTask([]byte("not gob")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
