package flowwire

import (
	"fmt"
	"reflect"

	"github.com/petrijr/flowwire/pkg/api"
)

// WorkflowBuilder provides a fluent API for registering typed workflows:
//
//	flow := flowwire.Workflow("OnboardUser", onboard).
//	    Version("v2").
//	    Tags("email")
//
//	if err := flow.Register(executor); err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := executor.Execute(ctx, flowwire.Request{Workflow: flow.Name(), ...})
type WorkflowBuilder[In, Out any] struct {
	def api.WorkflowDefinition
}

// Workflow creates a builder for a workflow body with typed input and
// output. The encoded request input is decoded into In before fn runs.
func Workflow[In, Out any](name string, fn func(wctx WorkflowContext, input In) (Out, error)) *WorkflowBuilder[In, Out] {
	if name == "" {
		panic("flowwire: workflow name must not be empty")
	}
	if fn == nil {
		panic(fmt.Sprintf("flowwire: workflow %q has nil function", name))
	}

	return &WorkflowBuilder[In, Out]{
		def: api.WorkflowDefinition{
			Name:      name,
			InputType: reflect.TypeFor[In](),
			Fn: func(wctx api.WorkflowContext, input any) (any, error) {
				in, ok := input.(In)
				if !ok && input != nil {
					return nil, fmt.Errorf("workflow %q: unexpected input type %T", name, input)
				}
				return fn(wctx, in)
			},
		},
	}
}

// Name returns the workflow name.
func (b *WorkflowBuilder[In, Out]) Name() string {
	return b.def.Name
}

// Version sets the workflow version. Unset means api.DefaultWorkflowVersion.
func (b *WorkflowBuilder[In, Out]) Version(v string) *WorkflowBuilder[In, Out] {
	b.def.Version = v
	return b
}

// Tags restricts the workflow to workers carrying one of tags.
func (b *WorkflowBuilder[In, Out]) Tags(tags ...string) *WorkflowBuilder[In, Out] {
	b.def.Tags = append(b.def.Tags, tags...)
	return b
}

// Definition returns the underlying WorkflowDefinition.
// Typically used when interacting with lower-level APIs.
func (b *WorkflowBuilder[In, Out]) Definition() WorkflowDefinition {
	return b.def
}

// Register adds the workflow to ex's registry.
func (b *WorkflowBuilder[In, Out]) Register(ex *Executor) error {
	return ex.Registry().RegisterWorkflow(b.def)
}

// MustRegister is like Register but panics on error.
func (b *WorkflowBuilder[In, Out]) MustRegister(ex *Executor) {
	if err := b.Register(ex); err != nil {
		panic(err)
	}
}

// RegisterWorkflow registers fn under name on ex with the default version.
// Unlike Workflow it reports an empty name or nil fn as an error.
func RegisterWorkflow[In, Out any](ex *Executor, name string, fn func(wctx WorkflowContext, input In) (Out, error)) error {
	if name == "" || fn == nil {
		return fmt.Errorf("flowwire: invalid workflow registration %q", name)
	}
	return Workflow(name, fn).Register(ex)
}
