package workflow

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OSAxis is the axis that selects the execution host image.
const OSAxis = "os"

type Axis struct {
	Name   string
	Values []string
}

// Matrix 按声明顺序保存各个轴，保证展开顺序确定
type Matrix struct {
	Axes []Axis
}

// UnmarshalYAML decodes the matrix mapping while keeping axis declaration
// order. A plain map would lose it.
func (m *Matrix) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("matrix must be a mapping of axis name to value list")
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		axis := Axis{Name: node.Content[i].Value}
		if err := node.Content[i+1].Decode(&axis.Values); err != nil {
			return fmt.Errorf("axis %s: %w", axis.Name, err)
		}
		m.Axes = append(m.Axes, axis)
	}
	return nil
}

type Strategy struct {
	FailFast    bool   `yaml:"fail_fast"`
	MaxParallel int    `yaml:"max_parallel"`
	Matrix      Matrix `yaml:"matrix"`
}

// DefaultMaxParallel bounds simultaneous jobs when the config does not.
const DefaultMaxParallel = 4

func (s Strategy) Parallelism() int {
	if s.MaxParallel > 0 {
		return s.MaxParallel
	}
	return DefaultMaxParallel
}

// JobSpec 矩阵的一个单元：每个轴取一个值
type JobSpec struct {
	ID   string            `json:"id"`
	Axes map[string]string `json:"axes"`
}

// Expand returns the full Cartesian product of the matrix axes, one JobSpec
// per cell. Order is deterministic: axis declaration order, then value
// order. An axis with no values yields zero jobs. An empty matrix yields a
// single job with no axis bindings.
func (m Matrix) Expand() []JobSpec {
	specs := []JobSpec{{Axes: map[string]string{}}}
	for _, axis := range m.Axes {
		if len(axis.Values) == 0 {
			return nil
		}
		next := make([]JobSpec, 0, len(specs)*len(axis.Values))
		for _, base := range specs {
			for _, v := range axis.Values {
				axes := make(map[string]string, len(base.Axes)+1)
				for k, bv := range base.Axes {
					axes[k] = bv
				}
				axes[axis.Name] = v
				next = append(next, JobSpec{Axes: axes})
			}
		}
		specs = next
	}
	for i := range specs {
		specs[i].ID = m.jobID(specs[i].Axes)
	}
	return specs
}

// jobID joins the cell's values in axis order, e.g. "ubuntu-22.04/3.11".
func (m Matrix) jobID(axes map[string]string) string {
	if len(m.Axes) == 0 {
		return "default"
	}
	parts := make([]string, 0, len(m.Axes))
	for _, axis := range m.Axes {
		parts = append(parts, axes[axis.Name])
	}
	return strings.Join(parts, "/")
}

func (m Matrix) validate() error {
	seenAxis := make(map[string]bool)
	for _, axis := range m.Axes {
		if seenAxis[axis.Name] {
			return fmt.Errorf("duplicate axis %q", axis.Name)
		}
		seenAxis[axis.Name] = true

		seenValue := make(map[string]bool)
		for _, v := range axis.Values {
			if seenValue[v] {
				return fmt.Errorf("axis %q: duplicate value %q", axis.Name, v)
			}
			seenValue[v] = true
		}
	}
	return nil
}
