package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/flowwire/pkg/api"
	"github.com/petrijr/flowwire/pkg/history"
)

func newRunID() string {
	return "run-" + uuid.NewString()
}

// testHistoryStore exercises the HistoryStore contract against any backend.
func testHistoryStore(t *testing.T, store HistoryStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing run", func(t *testing.T) {
		_, err := store.LoadHistory(ctx, newRunID())
		require.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("appends concatenate in order", func(t *testing.T) {
		runID := newRunID()
		b := history.NewBuilder()
		b.Add(api.EventActivityScheduled, []byte(`"x"`))
		first := append([]byte(nil), b.Bytes()...)

		b.Reset()
		b.Append(2, api.EventActivityCompleted, []byte(`42`))
		b.Append(3, api.EventTimerFired, nil)
		second := append([]byte(nil), b.Bytes()...)

		require.NoError(t, store.AppendEvents(ctx, runID, first))
		require.NoError(t, store.AppendEvents(ctx, runID, second))

		got, err := store.LoadHistory(ctx, runID)
		require.NoError(t, err)
		require.Equal(t, append(first, second...), got)

		events, err := history.Decode(got)
		require.NoError(t, err)
		require.Len(t, events, 3)
		require.Equal(t, int64(3), events[2].ID)
	})

	t.Run("rejects truncated records", func(t *testing.T) {
		runID := newRunID()
		rec := history.AppendEvent(nil, 1, api.EventActivityCompleted, []byte("payload"))
		err := store.AppendEvents(ctx, runID, rec[:len(rec)-1])
		require.ErrorIs(t, err, history.ErrTruncated)

		_, err = store.LoadHistory(ctx, runID)
		require.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("empty append is a no-op", func(t *testing.T) {
		runID := newRunID()
		require.NoError(t, store.AppendEvents(ctx, runID, nil))
		_, err := store.LoadHistory(ctx, runID)
		require.True(t, errors.Is(err, ErrRunNotFound))
	})
}

// testActivationStore exercises the ActivationStore contract.
func testActivationStore(t *testing.T, store ActivationStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing run", func(t *testing.T) {
		_, err := store.ListActivations(ctx, newRunID())
		require.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("round trip keeps order and commands", func(t *testing.T) {
		runID := newRunID()
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		retry := api.DefaultRetryPolicy()

		suspended := ActivationRecord{
			RunID:    runID,
			Workflow: "order",
			Status:   api.StatusSuspended,
			Commands: []CommandRecord{
				{
					Kind:    api.EventActivityScheduled,
					Name:    "charge",
					Payload: []byte(`{"amount":10}`),
					Options: api.ActivityOptions{
						TaskQueue:    "payments",
						StartToClose: time.Minute,
						Retry:        &retry,
					},
				},
				{Kind: api.EventTimerStarted, Payload: []byte(`1000000000`)},
			},
			HistorySize: 0,
			RecordedAt:  at,
		}
		completed := ActivationRecord{
			RunID:       runID,
			Workflow:    "order",
			Status:      api.StatusCompleted,
			Output:      []byte(`"ok"`),
			HistorySize: 64,
			Replayed:    2,
			RecordedAt:  at.Add(time.Second),
		}

		require.NoError(t, store.SaveActivation(ctx, suspended))
		require.NoError(t, store.SaveActivation(ctx, completed))

		got, err := store.ListActivations(ctx, runID)
		require.NoError(t, err)
		require.Len(t, got, 2)

		require.Equal(t, api.StatusSuspended, got[0].Status)
		require.Equal(t, suspended.Commands, got[0].Commands)
		require.True(t, got[0].RecordedAt.Equal(at))

		require.Equal(t, api.StatusCompleted, got[1].Status)
		require.Equal(t, []byte(`"ok"`), got[1].Output)
		require.Equal(t, 64, got[1].HistorySize)
		require.Equal(t, 2, got[1].Replayed)
		require.Empty(t, got[1].Commands)
	})

	t.Run("failed activation keeps error text", func(t *testing.T) {
		runID := newRunID()
		rec := ActivationRecord{
			RunID:      runID,
			Workflow:   "order",
			Status:     api.StatusFailed,
			Error:      "boom",
			RecordedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, store.SaveActivation(ctx, rec))

		got, err := store.ListActivations(ctx, runID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "boom", got[0].Error)
		require.Equal(t, "order", got[0].Workflow)
	})
}
