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


// Package storage provides the storage abstraction layer for cognit.
//
// This package defines the Hypergraph and CheckpointRepository interfaces
// that agents and the system context program against. It allows
// different backends (BadgerDB, in-memory, etc.) to be used
// interchangeably.
//
// # Architecture
//
//   - Hypergraph: edges with provenance (primary or derived), occurrence
//     counts, attributes, and named sequences
//   - CheckpointRepository: the outcome of the last run of each agent
//
// The hypergraph supports exactly two kinds of reads: a full scan in
// stable order (All) and positional pattern matching with wildcards
// (Match). It is not a query engine.
//
// # Usage
//
//	hg, err := badger.OpenHypergraph("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer hg.Close()
//
// Use in tests with in-memory storage:
//
//	hg, checkpoints, backend, err := badger.NewMemoryHypergraph()
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All methods accept context.Context for cancellation. Pass
// context.Background() for operations without specific timeout
// requirements.
package storage
