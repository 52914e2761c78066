package badger

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/storage"
)

const defaultEdgeCacheSize = 4096

// Hypergraph implements storage.Hypergraph for BadgerDB.
type Hypergraph struct {
	backend *Backend
	edges   *lru.Cache[core.ID, core.Edge] // parsed edges by ID; edges are immutable
	writeMu sync.Mutex                     // serializes read-modify-write transactions
	logger  *slog.Logger
}

var _ storage.Hypergraph = (*Hypergraph)(nil)

// NewHypergraph creates a new Hypergraph on top of backend.
func NewHypergraph(backend *Backend) (*Hypergraph, error) {
	cache, err := lru.New[core.ID, core.Edge](defaultEdgeCacheSize)
	if err != nil {
		return nil, err
	}
	return &Hypergraph{
		backend: backend,
		edges:   cache,
		logger:  backend.logger.With("repository", "hypergraph"),
	}, nil
}

// OpenHypergraph opens a file-backed hypergraph at path.
// Closing the returned hypergraph does not close the backend; use
// Backend.Close for that.
func OpenHypergraph(path string) (*Hypergraph, *Backend, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, nil, err
	}

	hg, err := NewHypergraph(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return hg, backend, nil
}

// Close releases resources. The backend is owned by the caller.
func (h *Hypergraph) Close() error {
	h.edges.Purge()
	return nil
}

// All iterates over every stored edge in key order.
func (h *Hypergraph) All(ctx context.Context) iter.Seq2[core.Edge, error] {
	return func(yield func(core.Edge, error) bool) {
		err := h.backend.WithTx(func(tx *badger.Txn) error {
			return scanPrefix(tx, []byte(edgeRecordPrefix), true, func(item *badger.Item) (bool, error) {
				if err := ctx.Err(); err != nil {
					return false, err
				}
				edge, err := h.decodeEdge(item)
				if err != nil {
					return false, err
				}
				return yield(edge, nil), nil
			})
		}, false)
		if err != nil {
			yield(core.Edge{}, err)
		}
	}
}

// Match returns the stored edges matching pattern.
// Patterns with a fixed connector are resolved through the connector
// index; anything else falls back to a full scan.
func (h *Hypergraph) Match(ctx context.Context, pattern core.Edge) ([]core.Edge, error) {
	if pattern.IsZero() {
		return nil, storage.ErrInvalidQuery
	}

	if !containsWildcard(pattern) {
		ok, err := h.Exists(ctx, pattern)
		if err != nil || !ok {
			return nil, err
		}
		return []core.Edge{pattern}, nil
	}

	if !pattern.IsAtom() && !containsWildcard(pattern.Connector()) {
		return h.matchByConnector(ctx, pattern)
	}

	var results []core.Edge
	for edge, err := range h.All(ctx) {
		if err != nil {
			return nil, err
		}
		if edge.Matches(pattern) {
			results = append(results, edge)
		}
	}
	return results, nil
}

func (h *Hypergraph) matchByConnector(ctx context.Context, pattern core.Edge) ([]core.Edge, error) {
	var results []core.Edge
	err := h.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialConnectorKey(pattern.Connector().String())
		return scanPrefix(tx, prefix, true, func(item *badger.Item) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			var id core.ID
			err := item.Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return false, err
			}
			record, err := readEdgeRecord(tx, makeEdgeKey(id))
			if err != nil {
				return false, err
			}
			if record == nil {
				return true, nil
			}
			edge, err := h.parseRecord(record)
			if err != nil {
				return false, err
			}
			if edge.Matches(pattern) {
				results = append(results, edge)
			}
			return true, nil
		})
	}, false)
	return results, err
}

// Add inserts an edge and all of its sub-edges.
func (h *Hypergraph) Add(ctx context.Context, edge core.Edge, primary, count bool) error {
	if err := edge.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	return h.backend.WithTx(func(tx *badger.Txn) error {
		if err := h.put(tx, edge, primary, count); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AddToSequence adds edge as primary and records (seq/P/. name pos edge).
func (h *Hypergraph) AddToSequence(ctx context.Context, name string, pos int, edge core.Edge) error {
	if pos < 0 {
		return storage.ErrInvalidQuery
	}
	if err := edge.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}
	seqAtom, err := core.SequenceAtom(name)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}

	seqEdge := core.NewEdge(
		core.SequencePredicate,
		seqAtom,
		core.Atom(strconv.Itoa(pos)),
		edge,
	)

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	return h.backend.WithTx(func(tx *badger.Txn) error {
		if err := h.put(tx, edge, true, false); err != nil {
			return err
		}
		if err := h.put(tx, seqEdge, true, false); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// SetAttributes merges attrs into the stored attributes of edge.
func (h *Hypergraph) SetAttributes(ctx context.Context, edge core.Edge, attrs map[string]string) error {
	if len(attrs) == 0 {
		return nil
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	return h.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEdgeKey(core.EdgeID(edge))
		record, err := readEdgeRecord(tx, key)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}
		if record.Attributes == nil {
			record.Attributes = make(map[string]string, len(attrs))
		}
		maps.Copy(record.Attributes, attrs)
		record.UpdatedAt = time.Now().UTC()
		if err := tx.Set(key, storage.MarshalEdgeRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves the stored record of an edge.
func (h *Hypergraph) Get(ctx context.Context, edge core.Edge) (*core.EdgeRecord, error) {
	var result *core.EdgeRecord
	err := h.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEdgeRecord(tx, makeEdgeKey(core.EdgeID(edge)))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// Exists reports whether the edge is stored.
func (h *Hypergraph) Exists(ctx context.Context, edge core.Edge) (bool, error) {
	_, err := h.Get(ctx, edge)
	if err == storage.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// EdgeCount returns the number of stored edges.
func (h *Hypergraph) EdgeCount(ctx context.Context) (int, error) {
	count := 0
	err := h.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(edgeRecordPrefix), false, func(_ *badger.Item) (bool, error) {
			count++
			return true, nil
		})
	}, false)
	return count, err
}

// Helper methods

// put writes edge and, recursively, its sub-edges as non-primary.
// Must be called with writeMu held.
func (h *Hypergraph) put(tx *badger.Txn, edge core.Edge, primary, count bool) error {
	id := core.EdgeID(edge)
	key := makeEdgeKey(id)

	record, err := readEdgeRecord(tx, key)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if record == nil {
		record = &core.EdgeRecord{
			Id:         id,
			Edge:       edge.String(),
			InsertedAt: now,
		}
		if !edge.IsAtom() {
			connKey := makeConnectorKey(edge.Connector().String(), id)
			if err := tx.Set(connKey, storage.MarshalID(id)); err != nil {
				return err
			}
		}
		for _, child := range edge.Elements() {
			if err := h.put(tx, child, false, false); err != nil {
				return err
			}
		}
	} else if record.Primary || !primary {
		if !count {
			// Nothing changes
			return nil
		}
	}

	record.Primary = record.Primary || primary
	if count {
		record.Count++
	}
	record.UpdatedAt = now

	h.edges.Add(id, edge)
	return tx.Set(key, storage.MarshalEdgeRecord(record))
}

// decodeEdge returns the edge stored in item, using the cache when possible.
func (h *Hypergraph) decodeEdge(item *badger.Item) (core.Edge, error) {
	var record *core.EdgeRecord
	err := item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalEdgeRecord(val)
		return err
	})
	if err != nil {
		return core.Edge{}, err
	}
	return h.parseRecord(record)
}

func (h *Hypergraph) parseRecord(record *core.EdgeRecord) (core.Edge, error) {
	if edge, ok := h.edges.Get(record.Id); ok {
		return edge, nil
	}
	edge, err := record.Parsed()
	if err != nil {
		return core.Edge{}, err
	}
	h.edges.Add(record.Id, edge)
	return edge, nil
}

// containsWildcard reports whether the wildcard appears anywhere in e.
func containsWildcard(e core.Edge) bool {
	if e.IsWildcard() {
		return true
	}
	for _, el := range e.Elements() {
		if containsWildcard(el) {
			return true
		}
	}
	return false
}

// readEdgeRecord reads an edge record from the transaction.
func readEdgeRecord(tx *badger.Txn, key []byte) (*core.EdgeRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.EdgeRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalEdgeRecord(val)
		return err
	})
	return record, err
}
