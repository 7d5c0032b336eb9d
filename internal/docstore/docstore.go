// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package docstore caches serialized parse documents, keyed by the Keccak-256
// hash of the source text. Hot documents sit in an in-memory ARC cache; when a
// cache directory is configured they are also written through to LevelDB with
// snappy-compressed values, so a restarted server keeps its warm set.
package docstore

import (
	"sync"

	"github.com/golang/snappy"
	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/crypto/sha3"
)

// defaultEntries bounds the in-memory cache when the caller passes no
// capacity.
const defaultEntries = 128

// Key is the Keccak-256 hash of a source text.
type Key [32]byte

// KeyOf hashes source text into its cache key.
func KeyOf(src string) Key {
	sha := sha3.NewLegacyKeccak256()
	sha.Write([]byte(src))
	var k Key
	sha.Sum(k[:0])
	return k
}

// Store is a two-level document cache. The ARC cache is internally
// synchronized; the LevelDB handle is guarded by mu and is nil when the store
// is memory-only.
type Store struct {
	arc *lru.ARCCache

	mu sync.Mutex
	db *leveldb.DB
}

// New creates a store holding up to entries documents in memory. A non-empty
// dir adds a persistent LevelDB layer under that directory; an empty dir means
// memory-only.
func New(entries int, dir string) (*Store, error) {
	if entries <= 0 {
		entries = defaultEntries
	}
	arc, _ := lru.NewARC(entries)

	s := &Store{arc: arc}
	if dir != "" {
		db, err := leveldb.OpenFile(dir, nil)
		if err != nil {
			return nil, err
		}
		s.db = db
	}
	return s, nil
}

// Get returns the cached document for source text, if any. A disk hit is
// decompressed and promoted into the memory layer; a corrupted stored value is
// treated as a miss.
func (s *Store) Get(src string) ([]byte, bool) {
	key := KeyOf(src)
	if doc, ok := s.arc.Get(key); ok {
		return doc.([]byte), true
	}

	s.mu.Lock()
	if s.db == nil {
		s.mu.Unlock()
		return nil, false
	}
	stored, err := s.db.Get(key[:], nil)
	s.mu.Unlock()
	if err != nil {
		return nil, false
	}

	doc, err := snappy.Decode(nil, stored)
	if err != nil {
		return nil, false
	}
	s.arc.Add(key, doc)
	return doc, true
}

// Put caches a document for source text. Disk write failures are not
// reported; the entry stays available from the memory layer.
func (s *Store) Put(src string, doc []byte) {
	key := KeyOf(src)
	s.arc.Add(key, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return
	}
	s.db.Put(key[:], snappy.Encode(nil, doc), nil)
}

// Close releases the persistent layer. The store remains usable memory-only
// afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
