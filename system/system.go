package system

import (
	"context"
	"fmt"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/ingestion"
	"github.com/poiesic/cognit/ontology"
	"github.com/poiesic/cognit/parser"
	"github.com/poiesic/cognit/storage"
)

// System runs the agents of a system file.
type System struct {
	config *Config
	hg     storage.Hypergraph
	parser parser.Parser
	runner *Runner
}

// New creates a system. p may be nil when no agent needs a parser; such
// agents then fail at startup.
func New(config *Config, hg storage.Hypergraph, p parser.Parser, opts ...Option) (*System, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts = append([]Option{WithWorkers(config.Workers)}, opts...)
	runner, err := NewRunner(hg, opts...)
	if err != nil {
		return nil, err
	}

	return &System{
		config: config,
		hg:     hg,
		parser: p,
		runner: runner,
	}, nil
}

// Runner returns the runner applying the system's operations.
func (s *System) Runner() *Runner {
	return s.runner
}

// NewAgent builds a fresh agent from its configuration.
func (s *System) NewAgent(config AgentConfig) (agent.Agent, error) {
	opts := []agent.Option{agent.WithLogger(s.runner.logger)}
	if !config.ShowProgress() {
		opts = append(opts, agent.WithoutProgress())
	}

	var a agent.Agent
	switch config.Type {
	case AgentTypeTxtParser:
		a = ingestion.NewTxtParser(config.Name, ingestion.Config{
			Path:     config.Infile,
			Parser:   s.parser,
			Sequence: config.Sequence,
		}, opts...)
	case AgentTypeOntology:
		a = ontology.NewAgent(config.Name, s.hg, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgentType, config.Type)
	}

	if !config.IsPrimary() {
		a = Secondary(a)
	}
	return a, nil
}

// Run runs every configured agent, stage by stage. Agents of a stage run
// concurrently; a failing stage stops the run.
func (s *System) Run(ctx context.Context) ([]*Report, error) {
	stages, err := s.config.Stages()
	if err != nil {
		return nil, err
	}

	var reports []*Report
	for i, stage := range stages {
		agents := make([]agent.Agent, 0, len(stage))
		for _, config := range stage {
			a, err := s.NewAgent(config)
			if err != nil {
				return reports, err
			}
			agents = append(agents, a)
		}

		s.runner.logger.Debug("running stage", "stage", i+1, "agents", len(agents))
		stageReports, err := s.runner.RunAll(ctx, agents...)
		for _, report := range stageReports {
			if report != nil {
				reports = append(reports, report)
			}
		}
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}
