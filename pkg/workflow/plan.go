package workflow

import (
	"fmt"
	"strings"
)

// Step 作业内的一个顺序执行单元
type Step struct {
	Name    string            `json:"name"`
	Command string            `json:"command,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	// Report marks the coverage upload step; it runs outside the
	// container and its failure never fails the job.
	Report bool `json:"report,omitempty"`
}

// Job is one planned matrix cell: the cell identity plus its concrete step
// sequence. Jobs carry no state across runs.
type Job struct {
	ID    string            `json:"id"`
	Axes  map[string]string `json:"axes"`
	Steps []Step            `json:"steps"`
}

// BuildJobs expands the matrix and plans each cell's steps.
func (c *Config) BuildJobs() []Job {
	specs := c.Strategy.Matrix.Expand()
	jobs := make([]Job, 0, len(specs))
	for _, spec := range specs {
		jobs = append(jobs, c.buildJob(spec))
	}
	return jobs
}

// buildJob 为一个矩阵单元生成固定的步骤序列：
// checkout -> setup -> install(按声明顺序) -> test -> report
func (c *Config) buildJob(spec JobSpec) Job {
	env := axisEnv(spec.Axes)

	steps := []Step{{Name: "checkout", Command: c.checkoutCommand(), Env: env}}
	if c.Setup.Command != "" {
		steps = append(steps, Step{Name: "setup", Command: c.Setup.Command, Env: env})
	}
	for i, directive := range c.Install {
		steps = append(steps, Step{
			Name:    fmt.Sprintf("install-%d", i+1),
			Command: directive,
			Env:     env,
		})
	}
	steps = append(steps, Step{Name: "test", Command: c.testCommand(), Env: env})
	if c.Report != nil {
		steps = append(steps, Step{Name: "report", Report: true})
	}

	return Job{ID: spec.ID, Axes: spec.Axes, Steps: steps}
}

func (c *Config) checkoutCommand() string {
	depth := c.Checkout.Depth
	if depth == 0 {
		depth = 1
	}
	if depth < 0 {
		return fmt.Sprintf("git clone %s .", c.Checkout.Repo)
	}
	return fmt.Sprintf("git clone --depth %d %s .", depth, c.Checkout.Repo)
}

func (c *Config) testCommand() string {
	if c.Test.LogLevel == "" {
		return c.Test.Command
	}
	return fmt.Sprintf("%s --log-cli-level=%s", c.Test.Command, c.Test.LogLevel)
}

// axisEnv exposes the cell's axis values to every step as MATRIX_<AXIS>
// environment variables.
func axisEnv(axes map[string]string) map[string]string {
	env := make(map[string]string, len(axes))
	for name, value := range axes {
		env["MATRIX_"+envName(name)] = value
	}
	return env
}

func envName(axis string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(axis) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
