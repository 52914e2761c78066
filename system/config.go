package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/parser"
)

// Agent types known to the system.
const (
	AgentTypeTxtParser = "txt_parser"
	AgentTypeOntology  = "ontology"
)

// Config represents a system file.
type Config struct {
	// Hypergraph is the path of the hypergraph database.
	Hypergraph string `yaml:"hypergraph"`

	// Workers bounds the number of agents running at once.
	Workers int `yaml:"workers"`

	// LLM configures the parser used by text agents.
	LLM LLMConfig `yaml:"llm"`

	// Agents lists the agents to run.
	Agents []AgentConfig `yaml:"agents"`
}

// LLMConfig configures the LLM-backed parser.
type LLMConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// AgentConfig configures one agent.
type AgentConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Infile is the text input of a txt_parser agent, relative to the
	// system file.
	Infile string `yaml:"infile,omitempty"`

	// Sequence names the sequence a txt_parser agent writes.
	Sequence string `yaml:"sequence,omitempty"`

	// Progress enables the progress indicator (default: true).
	Progress *bool `yaml:"progress,omitempty"`

	// Primary applies the agent's non-derived edges as primary
	// (default: true).
	Primary *bool `yaml:"primary,omitempty"`

	// DependsOn names agents that must finish before this one starts.
	DependsOn []string `yaml:"depends_on,omitempty"`
}

// ShowProgress reports whether the progress indicator is enabled.
func (a AgentConfig) ShowProgress() bool {
	return a.Progress == nil || *a.Progress
}

// IsPrimary reports whether the agent's edges are applied as primary.
func (a AgentConfig) IsPrimary() bool {
	return a.Primary == nil || *a.Primary
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	llm := parser.DefaultConfig()
	return &Config{
		Hypergraph: "cognit.db",
		Workers:    defaultWorkers(),
		LLM: LLMConfig{
			Host:  llm.Host,
			Model: llm.Model,
		},
	}
}

func defaultWorkers() int {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Hypergraph == "" {
		return fmt.Errorf("%w: hypergraph is required", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}

	names := make(map[string]bool, len(c.Agents))
	for i, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("%w: agents[%d].name is required", ErrInvalidConfig, i)
		}
		if names[a.Name] {
			return fmt.Errorf("%w: duplicate agent name %q", ErrInvalidConfig, a.Name)
		}
		names[a.Name] = true

		switch a.Type {
		case AgentTypeTxtParser, AgentTypeOntology:
		default:
			return fmt.Errorf("%w: agent %q: %w %q", ErrInvalidConfig, a.Name, ErrUnknownAgentType, a.Type)
		}
		if a.Sequence != "" {
			if err := core.ValidateSequenceName(a.Sequence); err != nil {
				return fmt.Errorf("%w: agent %q: %w", ErrInvalidConfig, a.Name, err)
			}
		}
	}

	for _, a := range c.Agents {
		for _, dep := range a.DependsOn {
			if !names[dep] {
				return fmt.Errorf("%w: agent %q depends on unknown agent %q", ErrInvalidConfig, a.Name, dep)
			}
		}
	}

	if _, err := c.Stages(); err != nil {
		return err
	}
	return nil
}

// Stages groups the agents so that each agent comes after all of its
// dependencies. Agents within a stage are independent and keep their
// file order.
func (c *Config) Stages() ([][]AgentConfig, error) {
	done := make(map[string]bool, len(c.Agents))
	remaining := c.Agents
	var stages [][]AgentConfig

	for len(remaining) > 0 {
		var stage, next []AgentConfig
		for _, a := range remaining {
			ready := true
			for _, dep := range a.DependsOn {
				if !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				stage = append(stage, a)
			} else {
				next = append(next, a)
			}
		}
		if len(stage) == 0 {
			return nil, fmt.Errorf("%w: dependency cycle among agents %s", ErrInvalidConfig, agentNames(next))
		}
		for _, a := range stage {
			done[a.Name] = true
		}
		stages = append(stages, stage)
		remaining = next
	}
	return stages, nil
}

func agentNames(agents []AgentConfig) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return names
}

// LoadFromFile loads a system file. Relative paths in it are resolved
// against the file's directory.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system file: %w", err)
	}

	dir := filepath.Dir(path)
	config.Hypergraph = resolvePath(dir, config.Hypergraph)
	for i := range config.Agents {
		config.Agents[i].Infile = resolvePath(dir, config.Agents[i].Infile)
	}

	return config, nil
}

// SaveToFile saves the configuration as a system file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create system file directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal system file: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write system file: %w", err)
	}
	return nil
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
