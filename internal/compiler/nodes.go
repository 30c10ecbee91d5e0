package compiler

import "slurmgen/pkg/errors"

// NodesNeeded converts a task count into the minimum number of whole nodes
// that can hold it, given a per-node capacity.
//
// The division is integer ceiling division; float arithmetic would risk
// off-by-one results near exact multiples. A zero task count still needs a
// node, so the result is never below 1.
func NodesNeeded(taskCount, perNodeCapacity int) (int, error) {
	if perNodeCapacity <= 0 {
		return 0, errors.NewInvalidTopologyError("", "node", perNodeCapacity)
	}
	if taskCount <= 0 {
		return 1, nil
	}
	nodes := (taskCount + perNodeCapacity - 1) / perNodeCapacity
	return nodes, nil
}
