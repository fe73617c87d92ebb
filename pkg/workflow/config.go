package workflow

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config 一份完整的工作流定义，对应用户提交的 YAML
type Config struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	On          Rules             `yaml:"on"`
	Strategy    Strategy          `yaml:"strategy"`
	Checkout    CheckoutSpec      `yaml:"checkout"`
	Setup       SetupSpec         `yaml:"setup,omitempty"`
	Install     []string          `yaml:"install,omitempty"`
	Test        TestSpec          `yaml:"test"`
	Report      *ReportSpec       `yaml:"report,omitempty"`
	Images      map[string]string `yaml:"images,omitempty"`
}

type CheckoutSpec struct {
	Repo string `yaml:"repo"`
	// Depth 0 表示使用默认浅克隆深度 1，-1 表示完整历史
	Depth int `yaml:"depth,omitempty"`
}

type SetupSpec struct {
	Command string `yaml:"command"`
}

type TestSpec struct {
	Command  string `yaml:"command"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// ReportSpec describes the coverage upload. Secret names a credential
// resolved from the server environment at dispatch time; the value never
// appears in the stored config.
type ReportSpec struct {
	Coverage    string `yaml:"coverage" json:"coverage"`
	Flag        string `yaml:"flag,omitempty" json:"flag,omitempty"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	FailOnError bool   `yaml:"fail_on_error" json:"fail_on_error"`
	Secret      string `yaml:"secret,omitempty" json:"secret,omitempty"`
}

// ParseConfig parses YAML content into a workflow Config.
func ParseConfig(yamlContent string) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(yamlContent), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("workflow name is required")
	}
	if c.On.Push == nil && c.On.PullRequest == nil && c.On.Schedule == nil {
		return fmt.Errorf("workflow %s: at least one trigger is required", c.Name)
	}
	if c.Checkout.Repo == "" {
		return fmt.Errorf("workflow %s: checkout.repo is required", c.Name)
	}
	if c.Test.Command == "" {
		return fmt.Errorf("workflow %s: test.command is required", c.Name)
	}
	if c.Report != nil && c.Report.Coverage == "" {
		return fmt.Errorf("workflow %s: report.coverage is required when report is set", c.Name)
	}
	if err := c.Strategy.Matrix.validate(); err != nil {
		return fmt.Errorf("workflow %s: %w", c.Name, err)
	}
	return nil
}
