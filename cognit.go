// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package cognit builds and enriches a hypergraph of typed relations
// from text.
//
// A Database bundles the hypergraph store, the checkpoint repository and
// the parser used by text agents:
//
//	db, err := cognit.NewDatabase("news.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	runner, _ := db.NewRunner()
//	report, err := runner.Run(ctx, db.NewTxtParser("reader", ingestion.Config{
//	    Path:     "news.txt",
//	    Sequence: "news",
//	}))
//
//	added, err := db.GenerateOntology(ctx)
package cognit

import (
	"context"
	"log/slog"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/ingestion"
	"github.com/poiesic/cognit/ontology"
	"github.com/poiesic/cognit/parser"
	"github.com/poiesic/cognit/parser/openai"
	"github.com/poiesic/cognit/storage"
	"github.com/poiesic/cognit/storage/badger"
	"github.com/poiesic/cognit/system"
)

type Database struct {
	backend        *badger.Backend
	hypergraph     *badger.Hypergraph
	checkpointRepo *badger.CheckpointRepository
	parser         parser.Parser
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	parserConfig *parser.Config
	parser       parser.Parser
	inMemory     bool
	logger       *slog.Logger
}

// WithParserConfig configures the LLM-backed parser.
func WithParserConfig(config *parser.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.parserConfig = config
	}
}

// WithParser uses p instead of the LLM-backed parser.
func WithParser(p parser.Parser) DatabaseOption {
	return func(o *databaseOptions) {
		o.parser = p
	}
}

// InMemory keeps the hypergraph in memory. The path is ignored.
func InMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		parserConfig: parser.DefaultConfig(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	hypergraph, err := badger.NewHypergraph(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	checkpointRepo := badger.NewCheckpointRepository(backend)

	p := options.parser
	if p == nil {
		llm, err := openai.NewParser(options.parserConfig)
		if err != nil {
			hypergraph.Close()
			backend.Close()
			return nil, err
		}
		p = llm
	}

	return &Database{
		backend:        backend,
		hypergraph:     hypergraph,
		checkpointRepo: checkpointRepo,
		parser:         p,
		logger:         options.logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.hypergraph.Close(); err != nil {
		db.logger.Error("error closing hypergraph", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) Hypergraph() storage.Hypergraph {
	return db.hypergraph
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

func (db *Database) Parser() parser.Parser {
	return db.parser
}

// NewTxtParser creates a text agent. The database parser is used when
// config.Parser is nil.
func (db *Database) NewTxtParser(name string, config ingestion.Config, opts ...agent.Option) *ingestion.TxtParser {
	if config.Parser == nil {
		config.Parser = db.parser
	}
	return ingestion.NewTxtParser(name, config, db.agentOptions(opts)...)
}

// NewOntologyAgent creates an ontology agent reading the hypergraph.
func (db *Database) NewOntologyAgent(name string, opts ...agent.Option) *ontology.Agent {
	return ontology.NewAgent(name, db.hypergraph, db.agentOptions(opts)...)
}

// GenerateOntology derives taxonomy facts and returns the number added.
func (db *Database) GenerateOntology(ctx context.Context, opts ...agent.Option) (int, error) {
	return ontology.Generate(ctx, db.hypergraph, db.agentOptions(opts)...)
}

// Subtypes returns the direct children of concept.
func (db *Database) Subtypes(ctx context.Context, concept core.Edge) ([]core.Edge, error) {
	return ontology.Subtypes(ctx, db.hypergraph, concept)
}

// Supertypes returns the direct parents of concept.
func (db *Database) Supertypes(ctx context.Context, concept core.Edge) ([]core.Edge, error) {
	return ontology.Supertypes(ctx, db.hypergraph, concept)
}

// NewRunner creates a runner writing to the hypergraph and saving
// checkpoints.
func (db *Database) NewRunner(opts ...system.Option) (*system.Runner, error) {
	return system.NewRunner(db.hypergraph, db.systemOptions(opts)...)
}

// NewSystem creates a system running the agents of config against this
// database.
func (db *Database) NewSystem(config *system.Config, opts ...system.Option) (*system.System, error) {
	return system.New(config, db.hypergraph, db.parser, db.systemOptions(opts)...)
}

// OpenSystem loads a system file and opens the hypergraph it names.
func OpenSystem(path string, opts ...DatabaseOption) (*Database, *system.System, error) {
	config, err := system.LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	llm := parser.NewConfig(parser.WithHost(config.LLM.Host), parser.WithModel(config.LLM.Model))
	opts = append([]DatabaseOption{WithParserConfig(llm)}, opts...)

	db, err := NewDatabase(config.Hypergraph, opts...)
	if err != nil {
		return nil, nil, err
	}

	sys, err := db.NewSystem(config)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, sys, nil
}

func (db *Database) agentOptions(opts []agent.Option) []agent.Option {
	return append([]agent.Option{agent.WithLogger(db.logger)}, opts...)
}

func (db *Database) systemOptions(opts []system.Option) []system.Option {
	return append([]system.Option{
		system.WithCheckpoints(db.checkpointRepo),
		system.WithLogger(db.logger),
	}, opts...)
}
