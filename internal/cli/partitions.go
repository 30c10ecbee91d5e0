package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewPartitionsCmd creates the partitions command: list the partitions of
// the selected compute environment with their per-node capacities.
func NewPartitionsCmd() *cobra.Command {
	var envName, topologyFile string

	cmd := &cobra.Command{
		Use:   "partitions",
		Short: "List the partitions known to the selected environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(envName, topologyFile)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "PARTITION\tGPU\tCORES/NODE\tGPUS/NODE\n")
			for _, name := range env.Table.Names() {
				spec, err := env.Table.Lookup(name)
				if err != nil {
					return err
				}
				gpu := "no"
				if spec.IsGPU {
					gpu = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", spec.Name, gpu, spec.CoresPerNode, spec.GPUsPerNode)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nEnvironment: %s (default partition: %s)\n",
				env.Name, env.Table.Default())
			return nil
		},
	}

	cmd.Flags().StringVar(&envName, "environment", "", "Compute environment name (defaults to hostname detection)")
	cmd.Flags().StringVar(&topologyFile, "topology", "", "Topology file overriding the environment's partition table")

	return cmd
}
