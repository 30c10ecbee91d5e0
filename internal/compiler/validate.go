package compiler

import (
	"slurmgen/internal/topology"
	"slurmgen/pkg/errors"
)

// ValidatePartition checks that a computed GPU demand can be satisfied by
// the target partition. GPU tasks on a partition without GPUs fail with
// UnsupportedResourceError unless the caller forces the request through,
// in which case responsibility shifts to the caller.
func ValidatePartition(gpuTaskCount int, partition topology.PartitionSpec, force bool) error {
	if force {
		return nil
	}
	if gpuTaskCount > 0 && !partition.IsGPU {
		return errors.NewUnsupportedResourceError(partition.Name, gpuTaskCount)
	}
	return nil
}
