// Package topology describes the static layout of a cluster as seen by the
// directive compiler: named partitions with a fixed per-node capacity.
// Tables are immutable once built and safe to share across concurrent
// renders without synchronization.
package topology

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"slurmgen/pkg/errors"
)

// PartitionSpec describes one named pool of nodes with uniform hardware.
type PartitionSpec struct {
	// Name is the scheduler-visible partition name
	Name string `yaml:"name"`
	// IsGPU reports whether nodes in this partition carry GPUs
	IsGPU bool `yaml:"gpu"`
	// CoresPerNode is the CPU core count of a single node, always positive
	CoresPerNode int `yaml:"cores_per_node"`
	// GPUsPerNode is the GPU count of a single node, zero for CPU partitions
	GPUsPerNode int `yaml:"gpus_per_node"`
}

// Validate checks the partition for capacities the allocator cannot work with.
func (p PartitionSpec) Validate() error {
	if p.CoresPerNode <= 0 {
		return errors.NewInvalidTopologyError(p.Name, "cpu", p.CoresPerNode)
	}
	if p.IsGPU && p.GPUsPerNode <= 0 {
		return errors.NewInvalidTopologyError(p.Name, "gpu", p.GPUsPerNode)
	}
	if p.GPUsPerNode < 0 {
		return errors.NewInvalidTopologyError(p.Name, "gpu", p.GPUsPerNode)
	}
	return nil
}

// Table maps partition names to their specs.
type Table struct {
	partitions map[string]PartitionSpec
	defaultTo  string
}

// NewTable builds a table from a list of partition specs. Every spec is
// validated up front so a broken topology fails at load time, not render time.
func NewTable(specs []PartitionSpec) (*Table, error) {
	t := &Table{partitions: make(map[string]PartitionSpec, len(specs))}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, errors.WrapConfigError("partition", fmt.Errorf("partition with empty name"))
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if _, exists := t.partitions[spec.Name]; exists {
			return nil, errors.WrapConfigError("partition", fmt.Errorf("partition %s defined twice", spec.Name))
		}
		t.partitions[spec.Name] = spec
		if t.defaultTo == "" {
			t.defaultTo = spec.Name
		}
	}
	return t, nil
}

// Lookup resolves a partition name. Unknown names fail with
// UnknownPartitionError; the environment name, when known, is attached by
// the caller via LookupIn.
func (t *Table) Lookup(name string) (PartitionSpec, error) {
	return t.LookupIn(name, "")
}

// LookupIn resolves a partition name, tagging errors with the environment
// the table belongs to.
func (t *Table) LookupIn(name, environment string) (PartitionSpec, error) {
	spec, ok := t.partitions[name]
	if !ok {
		return PartitionSpec{}, errors.NewUnknownPartitionError(name, environment)
	}
	return spec, nil
}

// Default returns the first registered partition name, the table's default
// submission target.
func (t *Table) Default() string {
	return t.defaultTo
}

// Names returns all partition names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.partitions))
	for name := range t.partitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of partitions in the table.
func (t *Table) Len() int {
	return len(t.partitions)
}

// tableYAML is the on-disk shape of a topology file.
type tableYAML struct {
	Partitions []PartitionSpec `yaml:"partitions"`
}

// LoadFile reads a topology table from a YAML file:
//
//	partitions:
//	  - name: standard
//	    cores_per_node: 48
//	  - name: gpu
//	    gpu: true
//	    cores_per_node: 40
//	    gpus_per_node: 4
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigError("topology_file", err)
	}
	var doc tableYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapConfigError("topology_file", err)
	}
	if len(doc.Partitions) == 0 {
		return nil, errors.WrapConfigError("topology_file", fmt.Errorf("no partitions defined in %s", path))
	}
	return NewTable(doc.Partitions)
}
