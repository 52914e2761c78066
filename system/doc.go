// Package system runs agents against a hypergraph.
//
// A system file lists the hypergraph to write to and the agents to run:
//
//	hypergraph: news.db
//	workers: 4
//	llm:
//	  host: http://localhost:11434
//	  model: qwen2.5:7b
//	agents:
//	  - name: reader
//	    type: txt_parser
//	    infile: news.txt
//	    sequence: news
//	  - name: taxonomy
//	    type: ontology
//	    depends_on: [reader]
//
// The Runner is the only component that writes: it starts an agent, pulls
// its operations one at a time, applies each through an Applier and saves
// a checkpoint once the agent is drained. Agents without dependencies on
// each other run concurrently on a worker pool.
package system
