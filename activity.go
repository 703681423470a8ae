package flowwire

import (
	"reflect"

	"github.com/petrijr/flowwire/pkg/api"
)

// Activity is a typed handle for scheduling an activity from workflow code.
//
//	var charge = flowwire.NewActivity[ChargeRequest, Receipt]("charge",
//	    flowwire.ActivityOptions{TaskQueue: "billing", StartToClose: time.Minute})
//
//	func order(wctx flowwire.WorkflowContext, in Order) (Receipt, error) {
//	    return charge.Execute(wctx, ChargeRequest{OrderID: in.ID})
//	}
type Activity[In, Out any] struct {
	def api.ActivityDefinition
}

// NewActivity declares an activity with default options.
func NewActivity[In, Out any](name string, opts ActivityOptions) *Activity[In, Out] {
	if name == "" {
		panic("flowwire: activity name must not be empty")
	}
	return &Activity[In, Out]{
		def: api.ActivityDefinition{
			Name:       name,
			Options:    opts,
			InputType:  reflect.TypeFor[In](),
			ResultType: reflect.TypeFor[Out](),
		},
	}
}

// Name returns the activity name.
func (a *Activity[In, Out]) Name() string { return a.def.Name }

// Definition returns the activity descriptor.
func (a *Activity[In, Out]) Definition() ActivityDefinition { return a.def }

// Register adds the activity to ex's registry.
func (a *Activity[In, Out]) Register(ex *Executor) error {
	return ex.Registry().RegisterActivity(a.def)
}

// Execute returns the recorded result of the activity or, when there is
// none yet, schedules it and returns a *SuspendedError.
func (a *Activity[In, Out]) Execute(wctx WorkflowContext, input In) (Out, error) {
	return a.ExecuteWithOptions(wctx, input, ActivityOptions{})
}

// ExecuteWithOptions is Execute with per-call overrides of the declared
// options.
func (a *Activity[In, Out]) ExecuteWithOptions(wctx WorkflowContext, input In, opts ActivityOptions) (Out, error) {
	var out Out
	merged := opts.WithDefaults(a.def.Options)
	if err := wctx.ExecuteActivity(a.def.Name, input, &merged, &out); err != nil {
		var zero Out
		return zero, err
	}
	return out, nil
}

// Run executes the activity and discards its result.
func (a *Activity[In, Out]) Run(wctx WorkflowContext, input In) error {
	opts := a.def.Options
	return wctx.ExecuteActivity(a.def.Name, input, &opts, nil)
}

// Schedule resolves the activity without decoding, leaving the outcome to
// the caller.
func (a *Activity[In, Out]) Schedule(wctx WorkflowContext, input In) (Resolution, error) {
	opts := a.def.Options
	return wctx.CallActivity(a.def.Name, input, &opts)
}
