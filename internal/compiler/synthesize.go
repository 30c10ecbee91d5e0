package compiler

import (
	"slurmgen/internal/topology"
)

// DirectiveSet is the compiler's sole output: the resource request a job
// script header must carry. Rendered once per script, never mutated.
type DirectiveSet struct {
	// Nodes is the whole-node count, always at least 1
	Nodes int
	// TasksPerNode is the task slot count per node, always at least 1
	TasksPerNode int
	// GPURequest is the per-node GPU count, zero when no GPUs are requested
	GPURequest int
}

// Options carries the caller-supplied knobs of a synthesis. The zero value
// means: derive parallelism from each operation's own flag, do not force,
// and compute the node count from demand.
type Options struct {
	// Parallel overrides every operation's own parallel flag when non-nil
	Parallel *bool
	// Force bypasses GPU-on-CPU-partition validation
	Force bool
	// Nodes overrides the computed node count when positive
	Nodes int
}

// Synthesize compiles the resource demands of a set of operations against a
// target partition into a DirectiveSet.
//
// The computation is pure and deterministic: identical inputs always produce
// identical output, and any failure aborts before a partial result exists.
func Synthesize(ops []Operation, partition topology.PartitionSpec, opts Options) (DirectiveSet, error) {
	if err := partition.Validate(); err != nil {
		return DirectiveSet{}, err
	}

	cpuTasks := Aggregate(ops, ResourceCPU, opts.Parallel)
	gpuTasks := Aggregate(ops, ResourceGPU, opts.Parallel)

	if err := ValidatePartition(gpuTasks, partition, opts.Force); err != nil {
		return DirectiveSet{}, err
	}

	nodesCPU, err := NodesNeeded(cpuTasks, partition.CoresPerNode)
	if err != nil {
		return DirectiveSet{}, err
	}

	nodesGPU := 0
	if partition.IsGPU {
		nodesGPU, err = NodesNeeded(gpuTasks, partition.GPUsPerNode)
		if err != nil {
			return DirectiveSet{}, err
		}
	}

	nodes := opts.Nodes
	if nodes <= 0 {
		nodes = maxInt(nodesCPU, nodesGPU, 1)
	}

	var tasksPerNode, gpuRequest int
	if partition.IsGPU {
		tasksPerNode = maxInt(gpuTasks, cpuTasks)
		gpuRequest = gpuTasks
	} else {
		tasksPerNode = minInt(partition.CoresPerNode, cpuTasks)
		// A forced GPU request on a CPU partition passes through verbatim;
		// the caller accepted responsibility for it at validation time.
		if opts.Force && gpuTasks > 0 {
			gpuRequest = gpuTasks
		}
	}
	if tasksPerNode < 1 {
		tasksPerNode = 1
	}

	return DirectiveSet{
		Nodes:        nodes,
		TasksPerNode: tasksPerNode,
		GPURequest:   gpuRequest,
	}, nil
}

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
