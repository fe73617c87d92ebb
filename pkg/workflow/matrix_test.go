package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_CellCountIsProductOfAxisSizes(t *testing.T) {
	matrix := Matrix{Axes: []Axis{
		{Name: "os", Values: []string{"ubuntu-22.04"}},
		{Name: "python", Values: []string{"3.10", "3.11", "3.12"}},
	}}

	specs := matrix.Expand()

	require.Len(t, specs, 3)
	assert.Equal(t, "ubuntu-22.04/3.10", specs[0].ID)
	assert.Equal(t, "ubuntu-22.04/3.11", specs[1].ID)
	assert.Equal(t, "ubuntu-22.04/3.12", specs[2].ID)
	assert.Equal(t, "3.11", specs[1].Axes["python"])
	assert.Equal(t, "ubuntu-22.04", specs[1].Axes["os"])
}

func TestExpand_TwoAxesKeepDeclarationOrder(t *testing.T) {
	matrix := Matrix{Axes: []Axis{
		{Name: "os", Values: []string{"linux", "macos"}},
		{Name: "version", Values: []string{"1", "2"}},
	}}

	specs := matrix.Expand()

	require.Len(t, specs, 4)
	ids := make([]string, 0, len(specs))
	for _, spec := range specs {
		ids = append(ids, spec.ID)
	}
	assert.Equal(t, []string{"linux/1", "linux/2", "macos/1", "macos/2"}, ids)
}

func TestExpand_UniqueIDs(t *testing.T) {
	matrix := Matrix{Axes: []Axis{
		{Name: "os", Values: []string{"a", "b"}},
		{Name: "v", Values: []string{"1", "2", "3"}},
	}}

	specs := matrix.Expand()

	seen := make(map[string]bool)
	for _, spec := range specs {
		assert.False(t, seen[spec.ID], "duplicate job id %s", spec.ID)
		seen[spec.ID] = true
	}
}

func TestExpand_EmptyAxisYieldsZeroJobs(t *testing.T) {
	matrix := Matrix{Axes: []Axis{
		{Name: "os", Values: []string{"linux"}},
		{Name: "version", Values: nil},
	}}

	assert.Empty(t, matrix.Expand())
}

func TestExpand_NoMatrixYieldsSingleJob(t *testing.T) {
	specs := Matrix{}.Expand()

	require.Len(t, specs, 1)
	assert.Equal(t, "default", specs[0].ID)
	assert.Empty(t, specs[0].Axes)
}

func TestMatrixYAML_KeepsAxisDeclarationOrder(t *testing.T) {
	config, err := ParseConfig(`
name: order-check
on:
  push:
    branches: [main]
checkout:
  repo: https://example.com/repo.git
test:
  command: pytest
strategy:
  matrix:
    os: [ubuntu-22.04]
    python: ["3.10", "3.11", "3.12"]
`)
	require.NoError(t, err)

	axes := config.Strategy.Matrix.Axes
	require.Len(t, axes, 2)
	assert.Equal(t, "os", axes[0].Name)
	assert.Equal(t, "python", axes[1].Name)
	assert.Equal(t, []string{"3.10", "3.11", "3.12"}, axes[1].Values)
}

func TestMatrixValidate_DuplicateValueRejected(t *testing.T) {
	matrix := Matrix{Axes: []Axis{
		{Name: "python", Values: []string{"3.10", "3.10"}},
	}}

	assert.Error(t, matrix.validate())
}

func TestMatrixValidate_DuplicateAxisRejected(t *testing.T) {
	matrix := Matrix{Axes: []Axis{
		{Name: "os", Values: []string{"a"}},
		{Name: "os", Values: []string{"b"}},
	}}

	assert.Error(t, matrix.validate())
}

func TestStrategyParallelism_Default(t *testing.T) {
	assert.Equal(t, DefaultMaxParallel, Strategy{}.Parallelism())
	assert.Equal(t, 2, Strategy{MaxParallel: 2}.Parallelism())
}
