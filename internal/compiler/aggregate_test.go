package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestAggregate_ParallelSums(t *testing.T) {
	// k identical operations each demanding d tasks aggregate to k*d
	ops := []Operation{
		{Name: "relax", Instances: 2, CPUsPerInstance: 3, Parallel: true},
		{Name: "equilibrate", Instances: 2, CPUsPerInstance: 3, Parallel: true},
		{Name: "sample", Instances: 2, CPUsPerInstance: 3, Parallel: true},
	}

	assert.Equal(t, 18, Aggregate(ops, ResourceCPU, nil))
	assert.Equal(t, 18, Aggregate(ops, ResourceCPU, boolPtr(true)))
}

func TestAggregate_SequentialTakesMax(t *testing.T) {
	ops := []Operation{
		{Name: "minimize", Instances: 1, CPUsPerInstance: 4},
		{Name: "anneal", Instances: 2, CPUsPerInstance: 8},
		{Name: "analyze", Instances: 1, CPUsPerInstance: 1},
	}

	// Only the biggest footprint is reserved at a time: 2*8 = 16
	assert.Equal(t, 16, Aggregate(ops, ResourceCPU, nil))
	assert.Equal(t, 16, Aggregate(ops, ResourceCPU, boolPtr(false)))
}

func TestAggregate_OverrideBeatsOperationFlags(t *testing.T) {
	ops := []Operation{
		{Name: "a", Instances: 1, CPUsPerInstance: 4, Parallel: true},
		{Name: "b", Instances: 1, CPUsPerInstance: 6, Parallel: true},
	}

	assert.Equal(t, 10, Aggregate(ops, ResourceCPU, nil))
	assert.Equal(t, 6, Aggregate(ops, ResourceCPU, boolPtr(false)))
}

func TestAggregate_MixedFlags(t *testing.T) {
	// Concurrent ops reserve together; sequential ops only need their peak.
	// The set's footprint is the larger of the two.
	ops := []Operation{
		{Name: "p1", Instances: 2, CPUsPerInstance: 2, Parallel: true},
		{Name: "p2", Instances: 1, CPUsPerInstance: 3, Parallel: true},
		{Name: "s1", Instances: 1, CPUsPerInstance: 12},
	}

	assert.Equal(t, 12, Aggregate(ops, ResourceCPU, nil))

	ops[2].CPUsPerInstance = 5
	assert.Equal(t, 7, Aggregate(ops, ResourceCPU, nil))
}

func TestAggregate_GPUSelector(t *testing.T) {
	ops := []Operation{
		{Name: "train", Instances: 2, CPUsPerInstance: 8, GPUsPerInstance: 1, Parallel: true},
		{Name: "score", Instances: 4, CPUsPerInstance: 1, Parallel: true},
	}

	assert.Equal(t, 2, Aggregate(ops, ResourceGPU, nil))
	assert.Equal(t, 20, Aggregate(ops, ResourceCPU, nil))
}

func TestAggregate_EmptyAndUnused(t *testing.T) {
	assert.Equal(t, 0, Aggregate(nil, ResourceCPU, nil))
	assert.Equal(t, 0, Aggregate([]Operation{}, ResourceGPU, boolPtr(true)))

	cpuOnly := []Operation{{Name: "mesh", Instances: 3, CPUsPerInstance: 2, Parallel: true}}
	assert.Equal(t, 0, Aggregate(cpuOnly, ResourceGPU, nil))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := Operation{Name: "a", Instances: 1, CPUsPerInstance: 7, Parallel: true}
	b := Operation{Name: "b", Instances: 3, CPUsPerInstance: 2, Parallel: true}
	c := Operation{Name: "c", Instances: 2, CPUsPerInstance: 5}

	forward := Aggregate([]Operation{a, b, c}, ResourceCPU, nil)
	reversed := Aggregate([]Operation{c, b, a}, ResourceCPU, nil)
	assert.Equal(t, forward, reversed)
}

func TestResourceKind_String(t *testing.T) {
	assert.Equal(t, "cpu", ResourceCPU.String())
	assert.Equal(t, "gpu", ResourceGPU.String())
}
