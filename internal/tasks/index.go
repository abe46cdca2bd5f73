package tasks

import (
	"context"
	"strings"

	"github.com/duskren/ytrd/internal/services"
)

// indexListLimit caps the bulk listing used to build the dedup index.
const indexListLimit = 100000

// HashIndex is the in-memory set of content hashes already held at the
// destination. It is loaded once per run and only ever grows: recording a
// hash does not re-query the destination, so within a run the index can
// drift from destination truth only by what this run itself added.
type HashIndex struct {
	hashes map[string]struct{}
}

// NewHashIndex creates an empty index.
func NewHashIndex() *HashIndex {
	return &HashIndex{hashes: make(map[string]struct{})}
}

// LoadHashIndex builds the index from a single bulk listing of the
// destination's current holdings.
func LoadHashIndex(ctx context.Context, dest services.Destination) (*HashIndex, error) {
	torrents, err := dest.Torrents(ctx, indexListLimit)
	if err != nil {
		return nil, err
	}

	index := NewHashIndex()
	for _, t := range torrents {
		index.Record(t.Hash)
	}

	return index, nil
}

// Contains reports whether the hash is known, case-insensitively.
func (i *HashIndex) Contains(hash string) bool {
	_, ok := i.hashes[strings.ToLower(hash)]
	return ok
}

// Record inserts a hash into the in-memory set. Empty hashes are ignored.
func (i *HashIndex) Record(hash string) {
	if hash == "" {
		return
	}
	i.hashes[strings.ToLower(hash)] = struct{}{}
}

// Len returns the number of known hashes.
func (i *HashIndex) Len() int {
	return len(i.hashes)
}
