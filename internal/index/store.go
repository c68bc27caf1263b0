// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package index persists capture records under their sort-friendly URL
// key. Because badger iterates keys in byte order, all captures of one
// host (and one registered domain) come back contiguously from a single
// prefix scan; that adjacency is the reason the keys are SURT-formed in
// the first place.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/ManuGH/surtd/internal/metrics"
	"github.com/ManuGH/surtd/internal/surt"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("index: record not found")

// Record is one stored capture.
type Record struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	SURT      string    `json:"surt"`
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status,omitempty"`
	Digest    string    `json:"digest,omitempty"`
}

// Store is a badger-backed record index keyed by SURT.
type Store struct {
	db   *badger.DB
	opts *surt.Options
}

// recPrefix namespaces record keys inside the database.
const recPrefix = "rec:"

// Open opens (or creates) the index database at path. The supplied
// options drive key generation for every Put; they must stay fixed for
// the lifetime of a database, or keys stop being comparable.
func Open(path string, opts *surt.Options) (*Store, error) {
	if opts == nil {
		opts = surt.NewOptions()
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}
	s := &Store{db: db, opts: opts}

	// Seed the record gauge once; Put keeps it current from here on.
	n, err := s.Len(context.Background())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("index: count records in %s: %w", path, err)
	}
	metrics.IndexRecords.Set(float64(n))
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// tsLayout is fixed-width so timestamps compare correctly as bytes.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// key builds the record key: SURT, NUL, fixed-width UTC timestamp. The
// NUL keeps captures of one URL together and orders them by time within
// it.
func key(surtKey string, ts time.Time) []byte {
	return []byte(recPrefix + surtKey + "\x00" + ts.UTC().Format(tsLayout))
}

// Put transforms rec.URL into its SURT key and stores the record.
// Missing ID and Timestamp fields are filled in.
func (s *Store) Put(ctx context.Context, rec Record) (Record, error) {
	surtKey, err := surt.SurtWithOptions(rec.URL, s.opts)
	if err != nil {
		metrics.IncIndexOp("put", err)
		return Record{}, err
	}
	rec.SURT = surtKey
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	buf, err := json.Marshal(rec)
	if err != nil {
		metrics.IncIndexOp("put", err)
		return Record{}, err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return txn.Set(key(surtKey, rec.Timestamp), buf)
	})
	metrics.IncIndexOp("put", err)
	if err != nil {
		return Record{}, fmt.Errorf("index: put %s: %w", rec.URL, err)
	}
	metrics.IndexRecords.Inc()
	return rec, nil
}

// ScanPrefix returns up to limit records whose SURT key starts with the
// given prefix, in key order. The prefix may be a plain URL: anything
// with a scheme is transformed first, so "http://example.com/" scans
// every capture under that host. limit <= 0 means no limit.
func (s *Store) ScanPrefix(ctx context.Context, prefix string, limit int) ([]Record, error) {
	// A prefix with a scheme is a URL; transform it into key space.
	// Raw key prefixes ("com,example") pass through untouched.
	if strings.Contains(prefix, "://") {
		k, err := surt.SurtWithOptions(prefix, s.opts)
		if err != nil {
			metrics.IncIndexOp("scan", err)
			return nil, err
		}
		prefix = k
	}

	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(recPrefix + prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if limit > 0 && len(out) >= limit {
				return nil
			}
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	metrics.IncIndexOp("scan", err)
	if err != nil {
		return nil, fmt.Errorf("index: scan %q: %w", prefix, err)
	}
	return out, nil
}

// Get returns the most recent record stored for url.
func (s *Store) Get(ctx context.Context, url string) (Record, error) {
	surtKey, err := surt.SurtWithOptions(url, s.opts)
	if err != nil {
		metrics.IncIndexOp("get", err)
		return Record{}, err
	}

	var out *Record
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(recPrefix + surtKey + "\x00")
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = &rec
		}
		return nil
	})
	metrics.IncIndexOp("get", err)
	if err != nil {
		return Record{}, err
	}
	if out == nil {
		return Record{}, ErrNotFound
	}
	return *out, nil
}

// Len counts the stored records.
func (s *Store) Len(ctx context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		opt.PrefetchValues = false
		it := txn.NewIterator(opt)
		defer it.Close()
		p := []byte(recPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
