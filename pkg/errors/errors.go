// Package errors provides standardized error handling for slurmgen.
// It implements structured error types with proper wrapping and classification
// following Go 1.20+ error handling best practices.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Topology-related errors
	ErrInvalidTopology     = errors.New("invalid partition topology")
	ErrUnknownPartition    = errors.New("unknown partition")
	ErrUnsupportedResource = errors.New("resource not supported by partition")

	// Workflow-related errors
	ErrUnknownGroup       = errors.New("unknown operation group")
	ErrEmptyWorkflow      = errors.New("workflow defines no operations")
	ErrInvalidOperation   = errors.New("invalid operation specification")
	ErrUnknownEnvironment = errors.New("unknown compute environment")

	// System-related errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// InvalidTopologyError reports a partition spec whose per-node capacity
// cannot support node allocation (zero or negative).
type InvalidTopologyError struct {
	Partition string
	Resource  string // "cpu" or "gpu"
	Capacity  int
}

func (e *InvalidTopologyError) Error() string {
	if e.Partition == "" {
		return fmt.Sprintf("per-node %s capacity is %d, must be positive", e.Resource, e.Capacity)
	}
	return fmt.Sprintf("partition %s: %s capacity per node is %d, must be positive",
		e.Partition, e.Resource, e.Capacity)
}

func (e *InvalidTopologyError) Unwrap() error {
	return ErrInvalidTopology
}

// UnsupportedResourceError reports GPU demand placed on a partition that
// has no GPUs, without the caller forcing the request through.
type UnsupportedResourceError struct {
	Partition string
	GPUTasks  int
}

func (e *UnsupportedResourceError) Error() string {
	return fmt.Sprintf("partition %s has no GPUs but %d GPU task(s) were requested (use force to override)",
		e.Partition, e.GPUTasks)
}

func (e *UnsupportedResourceError) Unwrap() error {
	return ErrUnsupportedResource
}

// UnknownPartitionError reports a partition name that is not present in the
// topology table of the selected environment.
type UnknownPartitionError struct {
	Partition   string
	Environment string
}

func (e *UnknownPartitionError) Error() string {
	if e.Environment != "" {
		return fmt.Sprintf("partition %s not defined in environment %s", e.Partition, e.Environment)
	}
	return fmt.Sprintf("partition %s not defined in topology table", e.Partition)
}

func (e *UnknownPartitionError) Unwrap() error {
	return ErrUnknownPartition
}

// UnknownGroupError reports an operation group name that the workflow does
// not define.
type UnknownGroupError struct {
	Group    string
	Workflow string
}

func (e *UnknownGroupError) Error() string {
	if e.Workflow != "" {
		return fmt.Sprintf("workflow %s does not define group %s", e.Workflow, e.Group)
	}
	return fmt.Sprintf("group %s is not defined", e.Group)
}

func (e *UnknownGroupError) Unwrap() error {
	return ErrUnknownGroup
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Error wrapping constructors

func NewInvalidTopologyError(partition, resource string, capacity int) error {
	return &InvalidTopologyError{Partition: partition, Resource: resource, Capacity: capacity}
}

func NewUnsupportedResourceError(partition string, gpuTasks int) error {
	return &UnsupportedResourceError{Partition: partition, GPUTasks: gpuTasks}
}

func NewUnknownPartitionError(partition, environment string) error {
	return &UnknownPartitionError{Partition: partition, Environment: environment}
}

func NewUnknownGroupError(group, workflow string) error {
	return &UnknownGroupError{Group: group, Workflow: workflow}
}

func WrapConfigError(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Field: field, Err: err}
}

// Error classification functions

func IsInvalidTopologyError(err error) bool {
	var te *InvalidTopologyError
	return errors.As(err, &te)
}

func IsUnsupportedResourceError(err error) bool {
	var ue *UnsupportedResourceError
	return errors.As(err, &ue)
}

func IsUnknownPartitionError(err error) bool {
	var pe *UnknownPartitionError
	return errors.As(err, &pe)
}

func IsUnknownGroupError(err error) bool {
	var ge *UnknownGroupError
	return errors.As(err, &ge)
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Error extraction helpers

// GetPartition extracts the partition name carried by a topology or
// validation error, if any.
func GetPartition(err error) (string, bool) {
	var ue *UnsupportedResourceError
	if errors.As(err, &ue) {
		return ue.Partition, true
	}
	var pe *UnknownPartitionError
	if errors.As(err, &pe) {
		return pe.Partition, true
	}
	var te *InvalidTopologyError
	if errors.As(err, &te) {
		return te.Partition, true
	}
	return "", false
}
