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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/cognit"
	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/ingestion"
	"github.com/poiesic/cognit/parser"
	"github.com/poiesic/cognit/system"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	defaults := parser.DefaultConfig()

	return &cli.App{
		Name:  "cognit",
		Usage: "Build and enrich a hypergraph of typed relations from text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "hg",
				Usage:   "Path to the hypergraph database directory",
				EnvVars: []string{"COGNIT_HG"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "txt_parser",
				Usage:  "Parse a text file into the hypergraph, one paragraph per line",
				Action: txtParserCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "infile",
						Aliases:  []string{"i"},
						Usage:    "Text file to parse",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "sequence",
						Usage: "Sequence the parsed edges are recorded in",
					},
					&cli.StringFlag{
						Name:    "llm-host",
						Usage:   "Parser service host URL",
						Value:   defaults.Host,
						EnvVars: []string{"COGNIT_LLM_HOST"},
					},
					&cli.StringFlag{
						Name:    "llm-model",
						Usage:   "Parser model name",
						Value:   defaults.Model,
						EnvVars: []string{"COGNIT_LLM_MODEL"},
					},
					&cli.BoolFlag{
						Name:  "no-progress",
						Usage: "Disable the progress indicator",
					},
				},
			},
			{
				Name:   "ontology",
				Usage:  "Derive type_of facts from the edges in the hypergraph",
				Action: ontologyCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-progress",
						Usage: "Disable the progress indicator",
					},
				},
			},
			{
				Name:   "subtypes",
				Usage:  "List the direct subtypes of a concept",
				Action: typesCommand(func(db *cognit.Database) typesQuery { return db.Subtypes }),
				Flags:  []cli.Flag{edgeFlag()},
			},
			{
				Name:   "supertypes",
				Usage:  "List the direct supertypes of a concept",
				Action: typesCommand(func(db *cognit.Database) typesQuery { return db.Supertypes }),
				Flags:  []cli.Flag{edgeFlag()},
			},
			{
				Name:   "system",
				Usage:  "Run the agents of a system file",
				Action: systemCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "System file (YAML)",
						Required: true,
					},
				},
			},
			{
				Name:   "checkpoints",
				Usage:  "Show the last run of every agent",
				Action: checkpointsCommand,
			},
		},
	}
}

func edgeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "edge",
		Aliases:  []string{"e"},
		Usage:    "Concept edge, e.g. player/Cc.s or (+/B.am tennis/Cc.s player/Cc.s)",
		Required: true,
	}
}

type typesQuery func(ctx context.Context, concept core.Edge) ([]core.Edge, error)

func txtParserCommand(c *cli.Context) error {
	ctx := c.Context

	llm := parser.NewConfig(
		parser.WithHost(c.String("llm-host")),
		parser.WithModel(c.String("llm-model")),
	)
	db, err := openDatabase(c, cognit.WithParserConfig(llm))
	if err != nil {
		return err
	}
	defer db.Close()

	runner, err := db.NewRunner()
	if err != nil {
		return err
	}

	name := "txt_parser"
	if seq := c.String("sequence"); seq != "" {
		name = "txt_parser:" + seq
	}
	a := db.NewTxtParser(name, ingestion.Config{
		Path:     c.String("infile"),
		Sequence: c.String("sequence"),
	}, progressOptions(c)...)

	report, err := runner.Run(ctx, a)
	if err != nil {
		return err
	}
	printReport(c, report)
	return nil
}

func ontologyCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	runner, err := db.NewRunner()
	if err != nil {
		return err
	}

	report, err := runner.Run(c.Context, db.NewOntologyAgent("ontology", progressOptions(c)...))
	if err != nil {
		return err
	}
	printReport(c, report)
	return nil
}

func typesCommand(query func(db *cognit.Database) typesQuery) cli.ActionFunc {
	return func(c *cli.Context) error {
		concept, err := core.ParseEdge(c.String("edge"))
		if err != nil {
			return err
		}

		db, err := openDatabase(c)
		if err != nil {
			return err
		}
		defer db.Close()

		edges, err := query(db)(c.Context, concept)
		if err != nil {
			return err
		}
		for _, edge := range edges {
			fmt.Fprintln(c.App.Writer, edge)
		}
		return nil
	}
}

func systemCommand(c *cli.Context) error {
	db, sys, err := cognit.OpenSystem(c.String("file"))
	if err != nil {
		return err
	}
	defer db.Close()

	reports, err := sys.Run(c.Context)
	for _, report := range reports {
		printReport(c, report)
	}
	return err
}

func checkpointsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	checkpoints, err := db.CheckpointRepository().ListCheckpoints(c.Context)
	if err != nil {
		return err
	}
	for _, cp := range checkpoints {
		position := "-"
		if cp.Position >= 0 {
			position = fmt.Sprint(cp.Position)
		}
		fmt.Fprintf(c.App.Writer, "%s\tsequence=%s\tposition=%s\toperations=%d\tupdated=%s\n",
			cp.Agent, cp.Sequence, position, cp.Operations, cp.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func openDatabase(c *cli.Context, opts ...cognit.DatabaseOption) (*cognit.Database, error) {
	path := c.String("hg")
	if path == "" {
		return nil, fmt.Errorf("hypergraph path is required (--hg)")
	}
	return cognit.NewDatabase(path, opts...)
}

func progressOptions(c *cli.Context) []agent.Option {
	if c.Bool("no-progress") {
		return []agent.Option{agent.WithoutProgress()}
	}
	return []agent.Option{agent.WithProgressWriter(c.App.ErrWriter)}
}

func printReport(c *cli.Context, report *system.Report) {
	fmt.Fprintf(c.App.Writer, "agent: %s (run %s, %s)\n%s\n\n",
		report.Agent, report.RunID, report.Duration.Round(time.Millisecond), report.Summary)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
