package script

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slurmgen/internal/compiler"
	"slurmgen/internal/topology"
)

var (
	standardPart = topology.PartitionSpec{Name: "standard", CoresPerNode: 48}
	gpuPart      = topology.PartitionSpec{Name: "gpu", IsGPU: true, CoresPerNode: 40, GPUsPerNode: 4}
)

func TestBuildDirectiveBlock_CPUPartition(t *testing.T) {
	ds := compiler.DirectiveSet{Nodes: 3, TasksPerNode: 48}

	lines := BuildDirectiveBlock(ds, standardPart, "")
	assert.Equal(t, []string{
		"#SBATCH --nodes=3",
		"#SBATCH --ntasks-per-node=48",
	}, lines)
}

func TestBuildDirectiveBlock_GPUPartition(t *testing.T) {
	ds := compiler.DirectiveSet{Nodes: 1, TasksPerNode: 8, GPURequest: 4}

	lines := BuildDirectiveBlock(ds, gpuPart, "proj123")
	assert.Equal(t, []string{
		"#SBATCH --nodes=1",
		"#SBATCH --ntasks-per-node=8",
		"#SBATCH --gres=gpu:4",
		"#SBATCH --account=proj123",
	}, lines)
}

func TestBuildDirectiveBlock_ForcedGPUOnCPUPartition(t *testing.T) {
	// A forced GPU request keeps its gres line even off a GPU partition
	ds := compiler.DirectiveSet{Nodes: 1, TasksPerNode: 2, GPURequest: 2}

	lines := BuildDirectiveBlock(ds, standardPart, "")
	assert.Contains(t, lines, "#SBATCH --gres=gpu:2")
}

func TestBuildDirectiveBlock_GPUPartitionZeroDemand(t *testing.T) {
	// GPU partitions always carry the gres line, even at zero demand
	ds := compiler.DirectiveSet{Nodes: 1, TasksPerNode: 1}

	lines := BuildDirectiveBlock(ds, gpuPart, "")
	assert.Contains(t, lines, "#SBATCH --gres=gpu:0")
}

func TestBuildDirectiveBlock_OmitsAccountWhenUnresolved(t *testing.T) {
	ds := compiler.DirectiveSet{Nodes: 1, TasksPerNode: 1}

	for _, line := range BuildDirectiveBlock(ds, standardPart, "") {
		assert.NotContains(t, line, "--account")
	}
}

func TestBuildDirectiveBlock_Hooks(t *testing.T) {
	ds := compiler.DirectiveSet{Nodes: 1, TasksPerNode: 2}

	lines := BuildDirectiveBlock(ds, standardPart, "",
		PartitionHook("standard"), JobNameHook("relax"))

	// Hooks prepend in application order: job-name ends up first
	assert.Equal(t, "#SBATCH --job-name=relax", lines[0])
	assert.Equal(t, "#SBATCH --partition=standard", lines[1])
	assert.Equal(t, "#SBATCH --nodes=1", lines[2])
}

func TestComposer_Write(t *testing.T) {
	c := &Composer{JobID: "test-0001", WorkDir: "/scratch/md-study"}
	directives := []string{
		"#SBATCH --nodes=1",
		"#SBATCH --ntasks-per-node=2",
	}
	commands := []Command{
		{Line: "python relax.py", Tasks: 2},
		{Line: "python analyze.py", Tasks: 1},
		{Line: "", Tasks: 4},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, directives, commands))

	want := `#!/bin/bash
# slurmgen job: test-0001
#SBATCH --nodes=1
#SBATCH --ntasks-per-node=2

cd /scratch/md-study

srun --ntasks=2 python relax.py
python analyze.py
`
	assert.Equal(t, want, buf.String())
}

func TestComposer_DirectiveBlockIsContiguous(t *testing.T) {
	c := &Composer{JobID: "test-0002"}
	directives := BuildDirectiveBlock(
		compiler.DirectiveSet{Nodes: 2, TasksPerNode: 4, GPURequest: 4}, gpuPart, "acct")

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, directives, nil))

	// The emitted block must appear verbatim as contiguous lines
	assert.Contains(t, buf.String(), strings.Join(directives, "\n"))
}

func TestNewComposer_AssignsJobID(t *testing.T) {
	a := NewComposer()
	b := NewComposer()
	assert.NotEmpty(t, a.JobID)
	assert.NotEqual(t, a.JobID, b.JobID)
}
