package flowwire

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/flowwire/pkg/history"
)

type ChargeRequest struct {
	OrderID string `json:"order_id"`
	Cents   int    `json:"cents"`
}

type Receipt struct {
	ID string `json:"id"`
}

type Order struct {
	ID    string `json:"id"`
	Cents int    `json:"cents"`
}

var chargeActivity = NewActivity[ChargeRequest, Receipt]("charge", ActivityOptions{
	TaskQueue:    "billing",
	StartToClose: time.Minute,
	Retry:        Retry(5).Ptr(),
})

func orderWorkflow(wctx WorkflowContext, in Order) (Receipt, error) {
	receipt, err := chargeActivity.Execute(wctx, ChargeRequest{OrderID: in.ID, Cents: in.Cents})
	if err != nil {
		return Receipt{}, err
	}
	if err := wctx.Delay(24 * time.Hour); err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Clock = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	ex, err := NewExecutor(cfg)
	require.NoError(t, err)
	t.Cleanup(ex.Close)
	return ex
}

func TestWorkflowBuilder_RegisterAndExecute(t *testing.T) {
	t.Parallel()

	ex := newTestExecutor(t)
	flow := Workflow("order", orderWorkflow).Version("v2").Tags("billing")
	flow.MustRegister(ex)
	require.NoError(t, chargeActivity.Register(ex))

	def := flow.Definition()
	require.Equal(t, "v2", def.Version)
	require.Equal(t, []string{"billing"}, def.Tags)

	input, err := EncodeInput(ex, Order{ID: "o-1", Cents: 500})
	require.NoError(t, err)

	// First activation: nothing recorded yet, the charge is scheduled.
	res, err := ex.Execute(context.Background(), Request{RunID: "run-1", Workflow: flow.Name(), Input: input})
	require.NoError(t, err)
	require.Equal(t, StatusSuspended, res.Status)
	cmd := res.Commands.At(0)
	require.Equal(t, "charge", cmd.Name)
	require.Equal(t, "billing", cmd.Options.TaskQueue)
	require.Equal(t, 5, cmd.Options.Retry.MaxAttempts)
	require.JSONEq(t, `{"order_id":"o-1","cents":500}`, string(res.Payload(cmd)))

	// Charge done, timer scheduled.
	hist := history.NewBuilder().Add(EventActivityCompleted, []byte(`{"id":"rcpt-9"}`))
	res, err = ex.Execute(context.Background(), Request{RunID: "run-1", Workflow: flow.Name(), Input: input, History: hist.Bytes()})
	require.NoError(t, err)
	require.Equal(t, StatusSuspended, res.Status)
	require.Equal(t, EventTimerStarted, res.Commands.At(0).Kind)

	// Timer fired: workflow completes.
	hist.Add(EventTimerFired, nil)
	res, err = ex.Execute(context.Background(), Request{RunID: "run-1", Workflow: flow.Name(), Input: input, History: hist.Bytes()})
	require.NoError(t, err)
	receipt, ok := Output[Receipt](res)
	require.True(t, ok)
	require.Equal(t, "rcpt-9", receipt.ID)
	require.Equal(t, 0, res.Commands.Len())

	require.Panics(t, func() { flow.MustRegister(ex) })
}

func TestWorkflowBuilder_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Workflow("", orderWorkflow) })
	require.Panics(t, func() { Workflow[Order, Receipt]("x", nil) })
	require.Panics(t, func() { NewActivity[int, int]("", ActivityOptions{}) })
}

type greeter struct {
	wctx   WorkflowContext
	prefix string
}

func (g *greeter) run(name string) (string, error) {
	var upper string
	if err := g.wctx.ExecuteActivity("upper", name, nil, &upper); err != nil {
		return "", err
	}
	return g.prefix + upper, nil
}

func TestExecuteBatch_TypedActivator(t *testing.T) {
	t.Parallel()

	ex := newTestExecutor(t)
	activations := 0
	activate := func(wctx WorkflowContext) (*greeter, error) {
		activations++
		return &greeter{wctx: wctx, prefix: "hello "}, nil
	}

	hist := history.NewBuilder().Add(EventActivityCompleted, []byte(`"ADA"`)).Bytes()
	res, err := ExecuteBatch(context.Background(), ex, Request{History: hist}, activate, "ada", (*greeter).run)
	require.NoError(t, err)
	out, ok := Output[string](res)
	require.True(t, ok)
	require.Equal(t, "hello ADA", out)

	res, err = ExecuteBatch(context.Background(), ex, Request{}, activate, "bob", (*greeter).run)
	require.NoError(t, err)
	require.Equal(t, StatusSuspended, res.Status)
	_, ok = Output[string](res)
	require.False(t, ok)
	require.Equal(t, 2, activations)
}

func TestExecuteBatch_ActivatorError(t *testing.T) {
	t.Parallel()

	ex := newTestExecutor(t)
	boom := errors.New("no instance")
	res, err := ExecuteBatch(context.Background(), ex, Request{},
		func(WorkflowContext) (*greeter, error) { return nil, boom },
		"x", (*greeter).run)
	require.NoError(t, err)
	require.Equal(t, StatusFailed, res.Status)
	require.ErrorIs(t, res.Err, boom)
}

func TestActivity_RunAndSchedule(t *testing.T) {
	t.Parallel()

	ex := newTestExecutor(t)
	notify := NewActivity[string, struct{}]("notify", ActivityOptions{TaskQueue: "mail"})

	hist := history.NewBuilder().Add(EventActivityCompleted, []byte(`ignored`)).Bytes()
	res, err := ex.ExecuteBatch(context.Background(), Request{History: hist}, func(wctx WorkflowContext) (any, error) {
		if err := notify.Run(wctx, "hi"); err != nil {
			return nil, err
		}
		r, err := notify.Schedule(wctx, "again")
		if err != nil {
			return nil, err
		}
		return r.Outcome, nil
	})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, res.Status)
	require.Equal(t, OutcomeScheduled, res.Output)
	require.Equal(t, "mail", res.Commands.At(0).Options.TaskQueue)
}

func TestContinueAsNewAndPredicates(t *testing.T) {
	t.Parallel()

	ex := newTestExecutor(t)
	res, err := ex.ExecuteBatch(context.Background(), Request{}, func(wctx WorkflowContext) (any, error) {
		err := wctx.Delay(time.Second)
		if !IsSuspended(err) {
			return nil, errors.New("expected suspension")
		}
		return nil, ContinueAsNew("next")
	})
	require.NoError(t, err)
	require.Equal(t, StatusContinuedAsNew, res.Status)
	require.Equal(t, "next", res.Output)
	require.False(t, IsCancelled(ErrSuspended))
	require.True(t, IsCancelled(ErrCancelled))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FLOWWIRE_POOL_SIZE", "3")
	t.Setenv("FLOWWIRE_CODEC", "cbor")
	t.Setenv("FLOWWIRE_ACQUIRE_TIMEOUT", "250ms")
	t.Setenv("FLOWWIRE_STRICT_ACTIVITIES", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, int32(3), cfg.PoolSize)
	require.Equal(t, "cbor", cfg.Codec)
	require.Equal(t, 250*time.Millisecond, cfg.AcquireTimeout)
	require.True(t, cfg.StrictActivities)
	require.Equal(t, 65536, cfg.ArenaSize)
	require.Equal(t, 32, cfg.CommandCapacity)

	ex, err := NewExecutor(cfg)
	require.NoError(t, err)
	defer ex.Close()
	require.Equal(t, "cbor", ex.Codec().Name())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("FLOWWIRE_POOL_SIZE", "many")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "parse env")
}

func TestNewExecutor_UnknownCodec(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Codec = "xml"
	_, err := NewExecutor(cfg)
	require.Error(t, err)
}

func TestRegisterWorkflow(t *testing.T) {
	t.Parallel()

	ex := newTestExecutor(t)
	require.NoError(t, RegisterWorkflow(ex, "order", orderWorkflow))
	require.Error(t, RegisterWorkflow(ex, "order", orderWorkflow))
	require.Error(t, RegisterWorkflow[Order, Receipt](ex, "", nil))

	def, err := ex.Registry().Workflow("order", "")
	require.NoError(t, err)
	require.Equal(t, "v1", def.Version)
}
