package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Name: "bayes-ci",
		On:   mainOnlyRules(),
		Strategy: Strategy{
			Matrix: Matrix{Axes: []Axis{
				{Name: "os", Values: []string{"ubuntu-22.04"}},
				{Name: "python", Values: []string{"3.10", "3.11", "3.12"}},
			}},
		},
		Checkout: CheckoutSpec{Repo: "https://example.com/bayes.git"},
		Setup:    SetupSpec{Command: `pyenv global "$MATRIX_PYTHON"`},
		Install: []string{
			"pip install --upgrade pip",
			"pip install torch --index-url https://download.pytorch.org/whl/cpu",
			"pip install .[dev]",
		},
		Test: TestSpec{Command: "pytest", LogLevel: "INFO"},
		Report: &ReportSpec{
			Coverage: "coverage.xml",
			Flag:     "unittests",
			Name:     "codecov-umbrella",
			Secret:   "CODECOV_TOKEN",
		},
	}
}

func TestBuildJobs_StepOrderIsFixed(t *testing.T) {
	jobs := testConfig().BuildJobs()

	require.Len(t, jobs, 3)
	job := jobs[0]
	names := make([]string, 0, len(job.Steps))
	for _, step := range job.Steps {
		names = append(names, step.Name)
	}
	assert.Equal(t, []string{"checkout", "setup", "install-1", "install-2", "install-3", "test", "report"}, names)
}

func TestBuildJobs_AxisValuesExposedAsEnv(t *testing.T) {
	jobs := testConfig().BuildJobs()

	job := jobs[1]
	for _, step := range job.Steps {
		if step.Report {
			continue
		}
		assert.Equal(t, "3.11", step.Env["MATRIX_PYTHON"], "step %s", step.Name)
		assert.Equal(t, "ubuntu-22.04", step.Env["MATRIX_OS"], "step %s", step.Name)
	}
}

func TestBuildJobs_CheckoutIsShallowByDefault(t *testing.T) {
	jobs := testConfig().BuildJobs()

	assert.Equal(t, "git clone --depth 1 https://example.com/bayes.git .", jobs[0].Steps[0].Command)
}

func TestBuildJobs_CheckoutDepthConfigurable(t *testing.T) {
	config := testConfig()
	config.Checkout.Depth = 50
	jobs := config.BuildJobs()
	assert.Equal(t, "git clone --depth 50 https://example.com/bayes.git .", jobs[0].Steps[0].Command)

	config.Checkout.Depth = -1
	jobs = config.BuildJobs()
	assert.Equal(t, "git clone https://example.com/bayes.git .", jobs[0].Steps[0].Command)
}

func TestBuildJobs_TestCommandCarriesLogLevel(t *testing.T) {
	jobs := testConfig().BuildJobs()

	var testStep *Step
	for i := range jobs[0].Steps {
		if jobs[0].Steps[i].Name == "test" {
			testStep = &jobs[0].Steps[i]
		}
	}
	require.NotNil(t, testStep)
	assert.Equal(t, "pytest --log-cli-level=INFO", testStep.Command)
}

func TestBuildJobs_NoReportConfigNoReportStep(t *testing.T) {
	config := testConfig()
	config.Report = nil

	jobs := config.BuildJobs()
	last := jobs[0].Steps[len(jobs[0].Steps)-1]
	assert.Equal(t, "test", last.Name)
	assert.False(t, last.Report)
}

func TestBuildJobs_SetupOptional(t *testing.T) {
	config := testConfig()
	config.Setup = SetupSpec{}

	jobs := config.BuildJobs()
	assert.Equal(t, "install-1", jobs[0].Steps[1].Name)
}

func TestEnvName_SanitizesAxisName(t *testing.T) {
	assert.Equal(t, "MATRIX_NODE_VERSION", "MATRIX_"+envName("node-version"))
	assert.Equal(t, "MATRIX_OS", "MATRIX_"+envName("os"))
}
