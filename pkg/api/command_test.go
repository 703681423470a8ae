package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func timerCmd(off int) Command {
	return Command{Kind: EventTimerStarted, Offset: off, Length: 1}
}

func TestCommandQueue_DefaultCapacity(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(0)
	require.Equal(t, DefaultCommandCapacity, q.Cap())
	require.Equal(t, 0, q.Len())
}

func TestCommandQueue_EnqueueDoublesCapacity(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(2)
	for i := 0; i < 3; i++ {
		q.Enqueue(timerCmd(i))
	}
	require.Equal(t, 3, q.Len())
	require.Equal(t, 4, q.Cap())

	for i := 0; i < 3; i++ {
		require.Equal(t, i, q.At(i).Offset)
	}
}

func TestCommandQueue_EnqueueRangeGrowsOnce(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(2)
	q.Enqueue(timerCmd(0))

	batch := make([]Command, 10)
	for i := range batch {
		batch[i] = timerCmd(i + 1)
	}
	q.EnqueueRange(batch)

	require.Equal(t, 11, q.Len())
	require.Equal(t, 11, q.Cap(), "required size wins over doubling")

	for i, cmd := range q.All() {
		require.Equal(t, i, cmd.Offset)
	}
}

func TestCommandQueue_MixedOrderIsFIFO(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(1)
	q.Enqueue(timerCmd(0))
	q.EnqueueRange([]Command{timerCmd(1), timerCmd(2)})
	q.Enqueue(timerCmd(3))
	q.EnqueueRange(nil)

	var got []int
	for _, cmd := range q.Snapshot() {
		got = append(got, cmd.Offset)
	}
	require.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestCommandQueue_ClearKeepsCapacity(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(2)
	q.EnqueueRange([]Command{timerCmd(0), timerCmd(1), timerCmd(2)})
	capBefore := q.Cap()

	q.Clear()
	require.Equal(t, 0, q.Len())
	require.Equal(t, capBefore, q.Cap())
	require.Empty(t, q.Snapshot())
}

func TestCommandQueue_SnapshotIsClipped(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(8)
	q.Enqueue(timerCmd(0))

	snap := q.Snapshot()
	require.Equal(t, 1, cap(snap))
	_ = append(snap, timerCmd(99))

	q.Enqueue(timerCmd(1))
	require.Equal(t, 1, q.At(1).Offset)
}

func TestCommandQueue_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(4)
	q.Enqueue(timerCmd(7))
	clone := q.Clone()
	q.Clear()

	require.Equal(t, 1, clone.Len())
	require.Equal(t, 7, clone.At(0).Offset)
}

func TestCommandQueue_AtOutOfRangePanics(t *testing.T) {
	t.Parallel()

	q := NewCommandQueue(4)
	require.Panics(t, func() { q.At(0) })
}

func TestCommandQueue_ZeroValue(t *testing.T) {
	t.Parallel()

	var q CommandQueue
	q.Enqueue(timerCmd(1))
	require.Equal(t, 1, q.Len())
	require.Equal(t, DefaultCommandCapacity, q.Cap())
}

func TestCommandQueue_NilReceiver(t *testing.T) {
	t.Parallel()

	var q *CommandQueue
	require.Equal(t, 0, q.Len())
	require.Equal(t, 0, q.Cap())
	require.Nil(t, q.Snapshot())
}
