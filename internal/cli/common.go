package cli

import (
	"slurmgen/internal/environment"
	"slurmgen/internal/topology"
)

// resolveEnvironment picks the compute environment for a command run:
// explicit flag first, then config, then hostname detection. A topology
// file, when given, replaces the environment's built-in partition table.
func resolveEnvironment(envName, topologyFile string) (*environment.Environment, error) {
	registry := environment.NewRegistry()

	if envName == "" {
		envName = cfg.Environment
	}

	var env *environment.Environment
	if envName != "" {
		found, err := registry.Get(envName)
		if err != nil {
			return nil, err
		}
		env = found
	} else {
		env = registry.DetectLocal()
	}

	if topologyFile == "" {
		topologyFile = cfg.TopologyFile
	}
	if topologyFile != "" {
		table, err := topology.LoadFile(topologyFile)
		if err != nil {
			return nil, err
		}
		env = &environment.Environment{
			Name:           env.Name,
			Table:          table,
			DefaultAccount: env.DefaultAccount,
		}
	}

	return env, nil
}
