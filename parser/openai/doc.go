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

// Package openai provides a parser.Parser backed by an OpenAI-compatible
// chat API.
//
// This package uses the langchaingo library to talk to OpenAI or
// OpenAI-compatible services (such as Ollama, LocalAI, or vLLM). The model
// is asked to answer with JSON holding hyperedges in text notation, which
// are then parsed with core.ParseEdge.
//
// # Usage
//
//	cfg := parser.NewConfig(
//	    parser.WithHost("http://localhost:11434"), // /v1 added automatically
//	    parser.WithModel("qwen2.5:7b"),
//	)
//
//	p, err := openai.NewParser(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := p.Parse(ctx, "Cats are animals.")
package openai
