package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfigYAML = `
name: bayes-ci
description: unit tests across python versions
on:
  push:
    branches: [main]
  pull_request:
    branches: [main]
  schedule:
    cron: "0 6 * * *"
strategy:
  fail_fast: false
  max_parallel: 4
  matrix:
    os: [ubuntu-22.04]
    python: ["3.10", "3.11", "3.12"]
checkout:
  repo: https://example.com/bayes.git
  depth: 1
setup:
  command: pyenv install -s "$MATRIX_PYTHON" && pyenv global "$MATRIX_PYTHON"
install:
  - pip install --upgrade pip
  - pip install torch --index-url https://download.pytorch.org/whl/cpu
  - pip install .[dev]
test:
  command: pytest
  log_level: INFO
report:
  coverage: coverage.xml
  flag: unittests
  name: codecov-umbrella
  fail_on_error: false
  secret: CODECOV_TOKEN
`

func TestParseConfig_FullExample(t *testing.T) {
	config, err := ParseConfig(fullConfigYAML)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, "bayes-ci", config.Name)
	require.NotNil(t, config.On.Push)
	assert.Equal(t, []string{"main"}, config.On.Push.Branches)
	require.NotNil(t, config.On.Schedule)
	assert.Equal(t, "0 6 * * *", config.On.Schedule.Cron)
	assert.False(t, config.Strategy.FailFast)
	assert.Equal(t, 4, config.Strategy.MaxParallel)
	assert.Len(t, config.Install, 3)
	require.NotNil(t, config.Report)
	assert.Equal(t, "CODECOV_TOKEN", config.Report.Secret)
	assert.False(t, config.Report.FailOnError)
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	_, err := ParseConfig("name: [unclosed")
	assert.Error(t, err)
}

func TestValidate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no name", func(c *Config) { c.Name = "" }},
		{"no trigger", func(c *Config) { c.On = Rules{} }},
		{"no repo", func(c *Config) { c.Checkout.Repo = "" }},
		{"no test command", func(c *Config) { c.Test.Command = "" }},
		{"report without coverage", func(c *Config) { c.Report = &ReportSpec{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := ParseConfig(fullConfigYAML)
			require.NoError(t, err)
			tc.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}
