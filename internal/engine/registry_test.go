package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/flowwire/pkg/api"
)

func noopWorkflow(api.WorkflowContext, any) (any, error) { return nil, nil }

func TestRegistry_WorkflowVersions(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.RegisterWorkflow(api.WorkflowDefinition{Name: "order", Fn: noopWorkflow}))
	require.NoError(t, r.RegisterWorkflow(api.WorkflowDefinition{Name: "order", Version: "v2", Fn: noopWorkflow}))

	err := r.RegisterWorkflow(api.WorkflowDefinition{Name: "order", Version: "v2", Fn: noopWorkflow})
	require.ErrorContains(t, err, `workflow "order" version "v2" already registered`)

	def, err := r.Workflow("order", "")
	require.NoError(t, err)
	require.Equal(t, "v2", def.Version)

	def, err = r.Workflow("order", "v1")
	require.NoError(t, err)
	require.Equal(t, api.DefaultWorkflowVersion, def.Version)

	_, err = r.Workflow("order", "v3")
	require.ErrorIs(t, err, api.ErrWorkflowNotFound)

	require.Equal(t, []string{"v1", "v2"}, r.Versions("order"))
	require.Empty(t, r.Versions("missing"))
}

func TestRegistry_Validation(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Error(t, r.RegisterWorkflow(api.WorkflowDefinition{Fn: noopWorkflow}))
	require.Error(t, r.RegisterWorkflow(api.WorkflowDefinition{Name: "nofn"}))
	require.Error(t, r.RegisterActivity(api.ActivityDefinition{}))
}

func TestRegistry_Activities(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.RegisterActivity(api.ActivityDefinition{Name: "charge", Options: api.ActivityOptions{TaskQueue: "billing"}}))
	require.Error(t, r.RegisterActivity(api.ActivityDefinition{Name: "charge"}))

	def, ok := r.Activity("charge")
	require.True(t, ok)
	require.Equal(t, "billing", def.Options.TaskQueue)

	_, ok = r.Activity("refund")
	require.False(t, ok)
}
