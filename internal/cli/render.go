package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slurmgen/internal/compiler"
	"slurmgen/internal/script"
	"slurmgen/internal/workflow"
)

type renderOptions struct {
	workflowPath string
	group        string
	partition    string
	environment  string
	topologyFile string
	account      string
	jobName      string
	workDir      string
	output       string
	nodes        int
	parallel     bool
	force        bool
	pretend      bool
}

// NewRenderCmd creates the render command: compile a workflow's resource
// demands against a partition and compose the batch script.
func NewRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a SLURM batch script for a workflow",
		Long: `Render compiles the resource demands of a workflow's operations into
#SBATCH directives and composes a complete batch script.

Examples:
  slurmgen render --workflow workflow.yml
  slurmgen render --workflow workflow.yml --group gpu_ops --partition gpu
  slurmgen render --workflow workflow.yml --force --output job.sbatch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.workflowPath, "workflow", "w", "workflow.yml", "Workflow description file")
	cmd.Flags().StringVarP(&opts.group, "group", "g", "", "Render a named operation group instead of the whole workflow")
	cmd.Flags().StringVarP(&opts.partition, "partition", "p", "", "Target partition (defaults to config, then the environment default)")
	cmd.Flags().StringVar(&opts.environment, "environment", "", "Compute environment name (defaults to hostname detection)")
	cmd.Flags().StringVar(&opts.topologyFile, "topology", "", "Topology file overriding the environment's partition table")
	cmd.Flags().StringVar(&opts.account, "account", "", "Account to bill; omitted from the script when none resolves")
	cmd.Flags().StringVar(&opts.jobName, "job-name", "", "Job name directive (defaults to the workflow or group name)")
	cmd.Flags().StringVar(&opts.workDir, "workdir", "", "Directory the script changes into before running")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the script to a file instead of stdout")
	cmd.Flags().IntVarP(&opts.nodes, "nodes", "N", 0, "Explicit node count, overriding the computed value")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "Treat all selected operations as concurrent (overrides per-operation flags)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Bypass GPU-on-CPU-partition validation")
	cmd.Flags().BoolVar(&opts.pretend, "pretend", false, "Print the script instead of writing --output")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	env, err := resolveEnvironment(opts.environment, opts.topologyFile)
	if err != nil {
		return err
	}

	wf, err := workflow.Load(opts.workflowPath)
	if err != nil {
		return err
	}

	ops := wf.Operations()
	var groupSpec workflow.GroupSpec
	if opts.group != "" {
		ops, groupSpec, err = wf.Group(opts.group)
		if err != nil {
			return err
		}
	}

	partitionName := opts.partition
	if partitionName == "" {
		partitionName = cfg.DefaultPartition
	}
	partition, err := env.LookupPartition(partitionName)
	if err != nil {
		return err
	}

	synthOpts := compiler.Options{
		Force: opts.force || cfg.Force,
		Nodes: opts.nodes,
	}
	if cmd.Flags().Changed("parallel") {
		synthOpts.Parallel = &opts.parallel
	} else {
		synthOpts.Parallel = groupSpec.Parallel
	}
	if synthOpts.Nodes == 0 {
		synthOpts.Nodes = groupSpec.Nodes
	}

	directives, err := compiler.Synthesize(ops, partition, synthOpts)
	if err != nil {
		return err
	}

	accountOverride := opts.account
	if accountOverride == "" {
		accountOverride = cfg.Account
	}
	account, _ := env.ResolveAccount(accountOverride)

	jobName := opts.jobName
	if jobName == "" {
		if opts.group != "" {
			jobName = opts.group
		} else {
			jobName = wf.Name
		}
	}

	hooks := []script.BlockHook{script.PartitionHook(partition.Name)}
	if jobName != "" {
		hooks = append(hooks, script.JobNameHook(jobName))
	}
	block := script.BuildDirectiveBlock(directives, partition, account, hooks...)

	commands := make([]script.Command, 0, len(ops))
	for _, op := range ops {
		commands = append(commands, script.Command{
			Line:  wf.Command(op.Name),
			Tasks: op.CPUTasks(),
		})
	}

	composer := script.NewComposer()
	workDir := opts.workDir
	if workDir == "" {
		workDir = cfg.WorkDir
	}
	composer.WorkDir = workDir

	log.WithComponent("render").Debug("synthesized directives",
		"environment", env.Name,
		"partition", partition.Name,
		"nodes", directives.Nodes,
		"tasksPerNode", directives.TasksPerNode,
		"gpuRequest", directives.GPURequest,
		"jobID", composer.JobID)

	if opts.output != "" && !opts.pretend {
		file, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", opts.output, err)
		}
		defer func() { _ = file.Close() }()
		if err := composer.Write(file, block, commands); err != nil {
			return err
		}
		log.Info("wrote batch script", "path", opts.output, "jobID", composer.JobID)
		return nil
	}

	return composer.Write(cmd.OutOrStdout(), block, commands)
}
