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

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/parser"
)

// ErrMalformedResponse is returned when the model answer cannot be decoded
// into edges.
var ErrMalformedResponse = errors.New("malformed parser response")

// Parser implements parser.Parser using OpenAI-compatible chat APIs.
type Parser struct {
	client      llms.Model
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

var _ parser.Parser = (*Parser)(nil)

// parseJSON is one parse in the model answer.
type parseJSON struct {
	Text  string   `json:"text"`
	Edge  string   `json:"edge"`
	Extra []string `json:"extra"`
}

// resultJSON is the wrapper structure for the model answer.
type resultJSON struct {
	Parses   []parseJSON `json:"parses"`
	Inferred []string    `json:"inferred"`
}

// NewParser creates a parser using the provided configuration.
func NewParser(config *parser.Config) (*Parser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return newParser(client, config), nil
}

func newParser(client llms.Model, config *parser.Config) *Parser {
	return &Parser{
		client:      client,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
		logger:      slog.Default().With("component", "openai-parser"),
	}
}

// Parse asks the model for the edges of one paragraph. Failed calls and
// malformed answers are retried with exponential backoff.
func (p *Parser) Parse(ctx context.Context, text string) (*parser.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &parser.Result{}, nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildSystemPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	var result *parser.Result
	attempt := 0
	err := parser.RetryWithBackoff(ctx, func() error {
		attempt++
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Warn("failed to generate content", "attempt", attempt, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			p.logger.Debug("no choices returned from model")
			result = &parser.Result{}
			return nil
		}

		decoded, err := decodeResponse(response.Choices[0].Content, text)
		if err != nil {
			p.logger.Warn("error parsing model response",
				"attempt", attempt,
				"response", response.Choices[0].Content,
				"err", err)
			return err
		}
		result = decoded
		return nil
	}, p.maxAttempts, p.retryDelay)
	if err != nil {
		p.logger.Error("failed to parse paragraph", "attempts", attempt, "err", err)
		return nil, err
	}

	p.logger.Debug("parsed paragraph",
		"parses", len(result.Parses),
		"inferred", len(result.Inferred))
	return result, nil
}

// decodeResponse turns the model answer into a Result. Parses without
// text fall back to the paragraph.
func decodeResponse(content, paragraph string) (*parser.Result, error) {
	content = repairJSON(stripCodeFences(content))

	var raw resultJSON
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	result := &parser.Result{
		Parses: make([]parser.Parse, 0, len(raw.Parses)),
	}
	for _, rp := range raw.Parses {
		parse := parser.Parse{Text: strings.TrimSpace(rp.Text)}
		if parse.Text == "" {
			parse.Text = paragraph
		}
		if strings.TrimSpace(rp.Edge) != "" {
			edge, err := core.ParseEdge(rp.Edge)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
			}
			parse.Resolved = edge
		}
		extra, err := parseEdges(rp.Extra)
		if err != nil {
			return nil, err
		}
		parse.Extra = extra
		result.Parses = append(result.Parses, parse)
	}

	inferred, err := parseEdges(raw.Inferred)
	if err != nil {
		return nil, err
	}
	result.Inferred = inferred
	return result, nil
}

func parseEdges(texts []string) ([]core.Edge, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	edges := make([]core.Edge, 0, len(texts))
	for _, s := range texts {
		edge, err := core.ParseEdge(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}
