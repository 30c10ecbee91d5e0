// Package environment detects which compute environment slurmgen is running
// in and resolves environment-specific settings: the partition topology
// table and the account to bill jobs against.
//
// Environments are registered explicitly; detection matches the local
// hostname against each environment's pattern in reverse registration order
// so more specific environments can shadow earlier ones. A default
// environment always matches.
package environment

import (
	"os"
	"regexp"

	"slurmgen/internal/topology"
	"slurmgen/pkg/errors"
)

// Environment describes one known compute environment.
type Environment struct {
	// Name identifies the environment in config and CLI output
	Name string
	// HostnamePattern matches hostnames belonging to this environment;
	// nil means the environment never matches by hostname
	HostnamePattern *regexp.Regexp
	// Table is the partition topology of this environment
	Table *topology.Table
	// DefaultAccount is used when neither config nor the process
	// environment supplies an account; may be empty
	DefaultAccount string
}

// LookupPartition resolves a partition name against this environment's
// topology table. An empty name selects the table's default partition.
func (e *Environment) LookupPartition(name string) (topology.PartitionSpec, error) {
	if name == "" {
		name = e.Table.Default()
	}
	return e.Table.LookupIn(name, e.Name)
}

// accountEnvVars are consulted in order when resolving an account from the
// process environment. SBATCH_ACCOUNT is what sbatch itself honors.
var accountEnvVars = []string{"SLURMGEN_ACCOUNT", "SBATCH_ACCOUNT", "SLURM_ACCOUNT"}

// ResolveAccount returns the account a job should be billed to, or false
// when none resolves. Precedence: explicit override, process environment,
// environment default. A missing account is not an error; the account
// directive is simply omitted.
func (e *Environment) ResolveAccount(override string) (string, bool) {
	if override != "" {
		return override, true
	}
	for _, key := range accountEnvVars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
	}
	if e.DefaultAccount != "" {
		return e.DefaultAccount, true
	}
	return "", false
}

// Registry holds the known environments in registration order.
type Registry struct {
	envs []*Environment
}

// NewRegistry creates a registry seeded with the built-in default
// environment, which matches any host.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(defaultEnvironment())
	return r
}

// Register appends an environment. Environments registered later win
// detection over earlier ones.
func (r *Registry) Register(env *Environment) {
	r.envs = append(r.envs, env)
}

// Get returns a registered environment by name.
func (r *Registry) Get(name string) (*Environment, error) {
	for _, env := range r.envs {
		if env.Name == name {
			return env, nil
		}
	}
	return nil, errors.ErrUnknownEnvironment
}

// Detect walks the registry in reverse registration order and returns the
// first environment whose hostname pattern matches the given hostname.
// The built-in default environment matches everything, so detection never
// fails.
func (r *Registry) Detect(hostname string) *Environment {
	for i := len(r.envs) - 1; i >= 0; i-- {
		env := r.envs[i]
		if env.HostnamePattern != nil && env.HostnamePattern.MatchString(hostname) {
			return env
		}
	}
	// First entry is the default environment
	return r.envs[0]
}

// DetectLocal detects the environment of the current host.
func (r *Registry) DetectLocal() *Environment {
	hostname, err := os.Hostname()
	if err != nil {
		return r.envs[0]
	}
	return r.Detect(hostname)
}

// Names lists registered environment names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.envs))
	for _, env := range r.envs {
		names = append(names, env.Name)
	}
	return names
}

// defaultEnvironment is the always-present fallback: a generic cluster with
// a 48-core CPU partition and a 4-GPU partition.
func defaultEnvironment() *Environment {
	table, err := topology.NewTable([]topology.PartitionSpec{
		{Name: "standard", CoresPerNode: 48},
		{Name: "gpu", IsGPU: true, CoresPerNode: 40, GPUsPerNode: 4},
	})
	if err != nil {
		// The built-in table is a compile-time constant; failing to build
		// it is a programming error.
		panic(err)
	}
	return &Environment{
		Name:  "default",
		Table: table,
	}
}
