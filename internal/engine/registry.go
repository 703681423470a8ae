package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/petrijr/flowwire/pkg/api"
)

// Registry holds workflow and activity descriptors. It is safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]map[string]api.WorkflowDefinition
	latest     map[string]string
	activities map[string]api.ActivityDefinition
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]map[string]api.WorkflowDefinition),
		latest:     make(map[string]string),
		activities: make(map[string]api.ActivityDefinition),
	}
}

// RegisterWorkflow adds def. An empty version becomes
// api.DefaultWorkflowVersion. The most recently registered version of a name
// is the one Workflow returns for an empty version.
func (r *Registry) RegisterWorkflow(def api.WorkflowDefinition) error {
	if def.Name == "" {
		return errors.New("workflow name is required")
	}
	if def.Fn == nil {
		return fmt.Errorf("workflow %q has no function", def.Name)
	}
	if def.Version == "" {
		def.Version = api.DefaultWorkflowVersion
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	versions := r.byName[def.Name]
	if versions == nil {
		versions = make(map[string]api.WorkflowDefinition)
		r.byName[def.Name] = versions
	}

	if _, exists := versions[def.Version]; exists {
		return fmt.Errorf("workflow %q version %q already registered", def.Name, def.Version)
	}

	versions[def.Version] = def
	r.latest[def.Name] = def.Version
	return nil
}

// Workflow looks up a workflow by name and version.
func (r *Registry) Workflow(name, version string) (api.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.byName[name]
	if versions == nil {
		return api.WorkflowDefinition{}, fmt.Errorf("%w: %q", api.ErrWorkflowNotFound, name)
	}
	if version == "" {
		version = r.latest[name]
	}

	def, ok := versions[version]
	if !ok {
		return api.WorkflowDefinition{}, fmt.Errorf("%w: %q version %q", api.ErrWorkflowNotFound, name, version)
	}

	return def, nil
}

// Versions returns the registered versions of a workflow, sorted.
func (r *Registry) Versions(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.byName[name]
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// RegisterActivity adds an activity descriptor.
func (r *Registry) RegisterActivity(def api.ActivityDefinition) error {
	if def.Name == "" {
		return errors.New("activity name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.activities[def.Name]; exists {
		return fmt.Errorf("activity %q already registered", def.Name)
	}
	r.activities[def.Name] = def
	return nil
}

// Activity implements replay.ActivityLookup.
func (r *Registry) Activity(name string) (api.ActivityDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.activities[name]
	return def, ok
}
