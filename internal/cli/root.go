// Package cli implements the slurmgen command tree.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slurmgen/pkg/config"
	"slurmgen/pkg/logger"
)

var (
	configPath string
	cfg        *config.Config
	log        = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "slurmgen",
	Short: "slurmgen - compile workflow resource demands into SLURM job scripts",
	Long: `slurmgen renders #SBATCH resource directives from an abstract description
of a workflow's computational operations and composes complete batch
scripts around them.

It never talks to a scheduler: the output is a script, submission is up
to you.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger.SetGlobalLevel(cfg.Level())
		log.SetLevel(cfg.Level())
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewRenderCmd())
	rootCmd.AddCommand(NewPartitionsCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func bindGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&configPath, "config", "",
		"Path to configuration file (searches conventional locations if not specified)")
}
