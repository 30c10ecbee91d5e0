// Package script renders compiled directive sets into #SBATCH header lines
// and composes full batch scripts around them. The directive block format
// is a contract: consumers parse these lines verbatim, so the block builder
// never reorders or reformats them.
package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"slurmgen/internal/compiler"
	"slurmgen/internal/topology"
)

// BlockHook transforms a directive block after the base builder has run.
// Hooks replace the template-inheritance extension points of classic job
// script generators with plain function composition.
type BlockHook func(lines []string) []string

// BuildDirectiveBlock renders the base directive block for a compiled
// directive set and applies any hooks in order.
//
// The base block is, line for line:
//
//	#SBATCH --nodes=<nodes>
//	#SBATCH --ntasks-per-node=<tasks_per_node>
//	#SBATCH --gres=gpu:<gpu_request>   only on GPU partitions or forced GPU requests
//	#SBATCH --account=<account>        only when an account resolved
func BuildDirectiveBlock(ds compiler.DirectiveSet, partition topology.PartitionSpec, account string, hooks ...BlockHook) []string {
	lines := []string{
		fmt.Sprintf("#SBATCH --nodes=%d", ds.Nodes),
		fmt.Sprintf("#SBATCH --ntasks-per-node=%d", ds.TasksPerNode),
	}
	if partition.IsGPU || ds.GPURequest > 0 {
		lines = append(lines, fmt.Sprintf("#SBATCH --gres=gpu:%d", ds.GPURequest))
	}
	if account != "" {
		lines = append(lines, fmt.Sprintf("#SBATCH --account=%s", account))
	}

	for _, hook := range hooks {
		lines = hook(lines)
	}
	return lines
}

// PartitionHook prepends the partition directive so schedulers route the
// job; kept out of the base block, which carries only the compiled
// resource request.
func PartitionHook(partition string) BlockHook {
	return func(lines []string) []string {
		return append([]string{fmt.Sprintf("#SBATCH --partition=%s", partition)}, lines...)
	}
}

// JobNameHook prepends a job-name directive.
func JobNameHook(name string) BlockHook {
	return func(lines []string) []string {
		return append([]string{fmt.Sprintf("#SBATCH --job-name=%s", name)}, lines...)
	}
}

// Command is one executable step of the composed script.
type Command struct {
	// Line is the shell command to run
	Line string
	// Tasks is the task count the command spans; counts above 1 launch
	// through srun so every task slot is used
	Tasks int
}

// Composer assembles a complete batch script: shebang, job-identifier
// comment, directive block, working-directory change, and the operation
// commands. Output is deterministic apart from JobID.
type Composer struct {
	// JobID identifies the render; set it explicitly for reproducible
	// output, otherwise NewComposer assigns a fresh one
	JobID string
	// WorkDir is the directory the script changes into before running
	// commands; empty means no change
	WorkDir string
}

// NewComposer creates a composer with a generated job identifier.
func NewComposer() *Composer {
	return &Composer{JobID: uuid.NewString()}
}

// Write composes the script onto w. The directive block is inserted
// verbatim as a contiguous run of lines.
func (c *Composer) Write(w io.Writer, directives []string, commands []Command) error {
	var b strings.Builder

	b.WriteString("#!/bin/bash\n")
	if c.JobID != "" {
		fmt.Fprintf(&b, "# slurmgen job: %s\n", c.JobID)
	}
	for _, line := range directives {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if c.WorkDir != "" {
		fmt.Fprintf(&b, "cd %s\n\n", c.WorkDir)
	}

	for _, cmd := range commands {
		if cmd.Line == "" {
			continue
		}
		line := cmd.Line
		if cmd.Tasks > 1 {
			line = fmt.Sprintf("srun --ntasks=%d %s", cmd.Tasks, line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
