package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidTopologyError(t *testing.T) {
	err := NewInvalidTopologyError("standard", "cpu", 0)

	assert.True(t, IsInvalidTopologyError(err))
	assert.True(t, errors.Is(err, ErrInvalidTopology))
	assert.Contains(t, err.Error(), "standard")
	assert.Contains(t, err.Error(), "must be positive")
}

func TestUnsupportedResourceError(t *testing.T) {
	err := NewUnsupportedResourceError("standard", 2)

	assert.True(t, IsUnsupportedResourceError(err))
	assert.True(t, errors.Is(err, ErrUnsupportedResource))
	assert.False(t, IsInvalidTopologyError(err))
	assert.Contains(t, err.Error(), "standard")
	assert.Contains(t, err.Error(), "2 GPU task(s)")
}

func TestUnknownPartitionError(t *testing.T) {
	err := NewUnknownPartitionError("debug", "greatlakes")

	assert.True(t, IsUnknownPartitionError(err))
	assert.True(t, errors.Is(err, ErrUnknownPartition))
	assert.Contains(t, err.Error(), "debug")
	assert.Contains(t, err.Error(), "greatlakes")

	// Without environment context
	err = NewUnknownPartitionError("debug", "")
	assert.Contains(t, err.Error(), "topology table")
}

func TestUnknownGroupError(t *testing.T) {
	err := NewUnknownGroupError("gpu_ops", "md-study")

	assert.True(t, IsUnknownGroupError(err))
	assert.True(t, errors.Is(err, ErrUnknownGroup))
	assert.Contains(t, err.Error(), "gpu_ops")
}

func TestWrapConfigError(t *testing.T) {
	assert.Nil(t, WrapConfigError("partition", nil))

	inner := fmt.Errorf("no such file")
	err := WrapConfigError("topology_file", inner)
	assert.True(t, IsConfigError(err))
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "topology_file")
}

func TestGetPartition(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		ok   bool
	}{
		{"unsupported resource", NewUnsupportedResourceError("standard", 1), "standard", true},
		{"unknown partition", NewUnknownPartitionError("debug", ""), "debug", true},
		{"invalid topology", NewInvalidTopologyError("gpu", "gpu", 0), "gpu", true},
		{"wrapped", fmt.Errorf("render: %w", NewUnsupportedResourceError("shared", 4)), "shared", true},
		{"unrelated", errors.New("boom"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetPartition(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
