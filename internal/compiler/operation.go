// Package compiler turns the resource demands of a set of workflow
// operations into a minimal, valid set of scheduler directives for a target
// partition. Every entry point is a pure function of its inputs; nothing in
// this package holds state between renders.
package compiler

import "fmt"

// Operation is one abstract unit of a workflow with a statically known
// per-instance resource demand. Immutable once constructed.
type Operation struct {
	// Name identifies the operation within its workflow
	Name string
	// Instances is the number of parallel instances of this operation
	Instances int
	// CPUsPerInstance is the CPU task demand of a single instance
	CPUsPerInstance int
	// GPUsPerInstance is the GPU task demand of a single instance
	GPUsPerInstance int
	// Parallel marks the operation as running concurrently with the rest
	// of its set when the caller does not override parallelism
	Parallel bool
}

// ResourceKind selects which per-instance demand field an aggregation reads.
type ResourceKind int

const (
	ResourceCPU ResourceKind = iota
	ResourceGPU
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceCPU:
		return "cpu"
	case ResourceGPU:
		return "gpu"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

// CPUTasks is the operation's total CPU task demand across all instances.
func (op Operation) CPUTasks() int {
	return op.Instances * op.CPUsPerInstance
}

// GPUTasks is the operation's total GPU task demand across all instances.
func (op Operation) GPUTasks() int {
	return op.Instances * op.GPUsPerInstance
}

// demand maps the kind to the matching total-demand accessor. Selector
// dispatch is a plain switch, not reflection.
func (k ResourceKind) demand(op Operation) int {
	switch k {
	case ResourceCPU:
		return op.CPUTasks()
	case ResourceGPU:
		return op.GPUTasks()
	default:
		return 0
	}
}
