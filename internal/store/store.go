// Package store persists exported architecture-graph snapshots and run
// metadata in BadgerDB, adapted from the teacher's BadgerStorage in
// internal/index/badger.go: the same options shape and key-prefix
// convention, repointed from raw symbol/reference records at a snapshot
// blob plus a small run-history log, since this repo's graph is rebuilt
// whole each run rather than incrementally updated per file.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/kessdev/codegraph/internal/graph"
)

// Key prefixes, mirroring the teacher's storage.go convention of a
// single-byte-or-short-string namespace per record family so prefix scans
// stay cheap.
const (
	prefixSnapshot = "snap:" // snap:<root> -> json-encoded graph.View
	prefixRun      = "run:"  // run:<root>:<unixnano> -> json-encoded RunRecord
)

// Options configures the BadgerDB instance. Mirrors the teacher's
// BadgerOptions; fields the teacher tuned for bulk symbol/reference writes
// (L0 table counts, memtable counts) are dropped since this store only ever
// writes one snapshot and one run record per invocation.
type Options struct {
	Dir              string
	InMemory         bool
	ReadOnly         bool
	ValueLogFileSize int64
	SyncWrites       bool
}

// DefaultOptions mirrors DefaultBadgerOptions' sizing choices.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:              dir,
		ValueLogFileSize: 1 << 30,
		SyncWrites:       false,
	}
}

// Store wraps a BadgerDB handle.
type Store struct {
	db *badger.DB
}

// RunRecord summarizes one completed build, the unit of history this store
// keeps so a caller can answer "how has the architecture view changed over
// time" without re-running centrality.
type RunRecord struct {
	Root       string    `json:"root"`
	StartedAt  time.Time `json:"started_at"`
	Duration   string    `json:"duration"`
	NodeCount  int       `json:"node_count"`
	EdgeCount  int       `json:"edge_count"`
	Unresolved []string  `json:"unresolved,omitempty"`
}

// Open opens (creating if absent) a BadgerDB instance at opts.Dir.
func Open(opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Dir).
		WithSyncWrites(opts.SyncWrites).
		WithDetectConflicts(false).
		WithCompression(options.ZSTD).
		WithLogger(nil)
	if opts.ValueLogFileSize > 0 {
		badgerOpts = badgerOpts.WithValueLogFileSize(opts.ValueLogFileSize)
	}
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	if opts.ReadOnly {
		badgerOpts = badgerOpts.WithReadOnly(true)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveSnapshot persists the latest architecture view for root, overwriting
// whatever was stored for that root before. Snapshots are keyed by project
// root rather than by run timestamp since a caller querying "the current
// view" wants the latest one, not a specific historical run.
func (s *Store) SaveSnapshot(root string, v graph.View) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixSnapshot+root), payload)
	})
}

// LoadSnapshot returns the most recently saved view for root.
func (s *Store) LoadSnapshot(root string) (graph.View, error) {
	var v graph.View
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixSnapshot + root))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
	})
	return v, err
}

// AppendRun records a completed build in the run-history log, keyed by
// root and start time so records sort chronologically under a prefix scan.
func (s *Store) AppendRun(rec RunRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode run record: %w", err)
	}
	key := fmt.Sprintf("%s%s:%d", prefixRun, rec.Root, rec.StartedAt.UnixNano())
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), payload)
	})
}

// RunHistory returns every recorded run for root, oldest first (Badger
// iterates keys in lexical order, and the timestamp suffix keeps that
// chronological for a fixed root).
func (s *Store) RunHistory(root string) ([]RunRecord, error) {
	var out []RunRecord
	prefix := []byte(prefixRun + root + ":")
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var rec RunRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}
