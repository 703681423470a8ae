package api

import "reflect"

// DefaultWorkflowVersion is assigned to definitions registered without a
// version.
const DefaultWorkflowVersion = "v1"

// WorkflowFunc is the body of a workflow. It is re-run from the start on
// every activation and must be deterministic given the history.
type WorkflowFunc func(wctx WorkflowContext, input any) (any, error)

// WorkflowDefinition describes a registered workflow.
type WorkflowDefinition struct {
	Name    string
	Version string

	// Tags restricts which workers may run the workflow. Empty means any.
	Tags []string

	// InputType is the type the encoded input is decoded into before Fn is
	// called. Nil passes the decoded value as a generic any.
	InputType reflect.Type

	Fn WorkflowFunc
}

// ActivityDefinition describes an activity workflows may schedule. The core
// never runs activities; it only records what the orchestrator should run.
type ActivityDefinition struct {
	Name string

	// Options are applied to every scheduling of the activity unless the
	// call overrides them.
	Options ActivityOptions

	InputType  reflect.Type
	ResultType reflect.Type
}

// HasTag reports whether the definition may run on a worker with tag.
func (d WorkflowDefinition) HasTag(tag string) bool {
	if len(d.Tags) == 0 {
		return true
	}
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
