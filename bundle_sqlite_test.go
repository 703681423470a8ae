package flowwire

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/petrijr/flowwire/pkg/history"
)

func addOne(wctx WorkflowContext, n int) (int, error) {
	var m int
	if err := wctx.ExecuteActivity("add-one", n, nil, &m); err != nil {
		return 0, err
	}
	return m, nil
}

// TestSQLiteBundle_DurableAcrossRestart shows that a run started through the
// bundle survives a simulated process restart, assuming workflows are
// re-registered on startup.
func TestSQLiteBundle_DurableAcrossRestart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dsn := "file:" + filepath.Join(t.TempDir(), "flowwire_bundle.db") + "?_journal=WAL"

	// Phase 1: enqueue the first activation, no processing yet.
	db1, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db1.SetMaxOpenConns(1)

	bundle1, err := NewSQLiteBundle(db1, DefaultConfig())
	require.NoError(t, err)
	Workflow("add-one", addOne).MustRegister(bundle1.Executor)

	runID, err := bundle1.Worker.StartRun(ctx, "add-one", "", 41)
	require.NoError(t, err)
	require.Equal(t, 1, bundle1.queue.Len())

	bundle1.Close()
	require.NoError(t, db1.Close())

	// Phase 2: new process, same database.
	db2, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db2.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db2.Close() })

	bundle2, err := NewSQLiteBundle(db2, DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(bundle2.Close)
	Workflow("add-one", addOne).MustRegister(bundle2.Executor)

	processed, err := bundle2.Worker.ProcessOne(ctx)
	require.NoError(t, err)
	require.True(t, processed)

	recs, err := bundle2.Store.Activations.ListActivations(ctx, runID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, StatusSuspended, recs[0].Status)
	require.Equal(t, []byte("41"), recs[0].Commands[0].Payload)

	require.NoError(t, bundle2.Store.History.AppendEvents(ctx, runID,
		history.AppendEvent(nil, 1, EventActivityCompleted, []byte("42"))))
	require.NoError(t, bundle2.Worker.EnqueueActivation(ctx, Task{RunID: runID, Workflow: "add-one", Input: []byte("41")}))

	processed, err = bundle2.Worker.ProcessOne(ctx)
	require.NoError(t, err)
	require.True(t, processed)

	recs, err = bundle2.Store.Activations.ListActivations(ctx, runID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, StatusCompleted, recs[1].Status)
	require.Equal(t, []byte("42"), recs[1].Output)
}
