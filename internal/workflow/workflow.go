// Package workflow defines the YAML description of a workflow's
// computational operations and the named groups that bundle operations into
// a single submission.
package workflow

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"slurmgen/internal/compiler"
	"slurmgen/pkg/errors"
)

// WorkflowYAML is the on-disk shape of a workflow file. Example:
//
//	name: "md-study"
//	operations:
//	  relax:
//	    instances: 2
//	    cpus_per_instance: 1
//	    parallel: true
//	    command: "python relax.py"
//	  train:
//	    instances: 2
//	    cpus_per_instance: 8
//	    gpus_per_instance: 1
//	    parallel: true
//	    command: "python train.py"
//	groups:
//	  gpu_ops:
//	    operations: [train]
type WorkflowYAML struct {
	// Name is an optional workflow name for better identification
	Name string `yaml:"name,omitempty"`
	// Operations maps operation names to their specifications
	Operations map[string]OperationSpec `yaml:"operations"`
	// Groups maps group names to submission bundles of operations
	Groups map[string]GroupSpec `yaml:"groups,omitempty"`
}

// OperationSpec declares the statically known resource demand of one
// operation.
type OperationSpec struct {
	// Instances is the number of parallel instances, at least 0
	Instances int `yaml:"instances"`
	// CPUsPerInstance is the CPU task demand of one instance
	CPUsPerInstance int `yaml:"cpus_per_instance"`
	// GPUsPerInstance is the GPU task demand of one instance
	GPUsPerInstance int `yaml:"gpus_per_instance"`
	// Parallel marks the operation as running concurrently with the rest
	// of its submission set
	Parallel bool `yaml:"parallel"`
	// Command is the shell command executed for this operation
	Command string `yaml:"command"`
}

// GroupSpec bundles operations for one submission, optionally overriding
// parallelism and node count for the whole bundle.
type GroupSpec struct {
	// Operations lists the member operation names
	Operations []string `yaml:"operations"`
	// Parallel, when set, overrides every member's own parallel flag
	Parallel *bool `yaml:"parallel,omitempty"`
	// Nodes, when positive, pins the node count for the bundle
	Nodes int `yaml:"nodes,omitempty"`
}

// Workflow is a parsed and validated workflow description.
type Workflow struct {
	Name       string
	operations map[string]OperationSpec
	groups     map[string]GroupSpec
}

// Parse unmarshals and validates a workflow document.
func Parse(data []byte) (*Workflow, error) {
	var doc WorkflowYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}
	if len(doc.Operations) == 0 {
		return nil, errors.ErrEmptyWorkflow
	}

	for name, spec := range doc.Operations {
		if spec.Instances < 0 {
			return nil, fmt.Errorf("%w: operation %s has negative instance count %d",
				errors.ErrInvalidOperation, name, spec.Instances)
		}
		if spec.CPUsPerInstance < 0 || spec.GPUsPerInstance < 0 {
			return nil, fmt.Errorf("%w: operation %s has a negative per-instance demand",
				errors.ErrInvalidOperation, name)
		}
	}

	for groupName, group := range doc.Groups {
		for _, opName := range group.Operations {
			if _, ok := doc.Operations[opName]; !ok {
				return nil, fmt.Errorf("%w: group %s references unknown operation %s",
					errors.ErrInvalidOperation, groupName, opName)
			}
		}
	}

	return &Workflow{
		Name:       doc.Name,
		operations: doc.Operations,
		groups:     doc.Groups,
	}, nil
}

// Load reads and parses a workflow file.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow: %w", err)
	}
	return Parse(data)
}

// operation converts one spec into the compiler's operation record.
func operation(name string, spec OperationSpec) compiler.Operation {
	return compiler.Operation{
		Name:            name,
		Instances:       spec.Instances,
		CPUsPerInstance: spec.CPUsPerInstance,
		GPUsPerInstance: spec.GPUsPerInstance,
		Parallel:        spec.Parallel,
	}
}

// Operations returns every operation sorted by name. Aggregation does not
// depend on order, but script output must be deterministic.
func (w *Workflow) Operations() []compiler.Operation {
	names := make([]string, 0, len(w.operations))
	for name := range w.operations {
		names = append(names, name)
	}
	sort.Strings(names)

	ops := make([]compiler.Operation, 0, len(names))
	for _, name := range names {
		ops = append(ops, operation(name, w.operations[name]))
	}
	return ops
}

// Group resolves a named group into its member operations (sorted by name)
// and the group's submission overrides.
func (w *Workflow) Group(name string) ([]compiler.Operation, GroupSpec, error) {
	group, ok := w.groups[name]
	if !ok {
		return nil, GroupSpec{}, errors.NewUnknownGroupError(name, w.Name)
	}

	names := append([]string(nil), group.Operations...)
	sort.Strings(names)

	ops := make([]compiler.Operation, 0, len(names))
	for _, opName := range names {
		ops = append(ops, operation(opName, w.operations[opName]))
	}
	return ops, group, nil
}

// GroupNames lists defined group names in sorted order.
func (w *Workflow) GroupNames() []string {
	names := make([]string, 0, len(w.groups))
	for name := range w.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Command returns the shell command of a named operation, or empty when the
// operation declares none.
func (w *Workflow) Command(name string) string {
	return w.operations[name].Command
}
