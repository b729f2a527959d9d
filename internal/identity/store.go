// Package identity tracks which physical filesystem objects have already been
// counted during a traversal.
package identity

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// shardCount is the number of independent sets the store is split into.
const shardCount = 64

// ID identifies a physical file or directory independently of the path used to
// reach it.
type ID struct {
	// Dev is the device the object lives on.
	Dev uint64
	// Ino is the inode number on that device.
	Ino uint64
}

// Store is a concurrency-safe set of identities.
// It is created per traversal and must not be reused across traversals.
type Store struct {
	shards [shardCount]mapset.Set[ID]
}

// New creates an empty Store.
func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = mapset.NewSet[ID]()
	}

	return s
}

// MarkSeen records id and reports whether it had already been recorded.
// A false return means this is the first sighting and the caller may count the object.
func (s *Store) MarkSeen(id ID) bool {
	return !s.shard(id).Add(id)
}

// Len returns the number of recorded identities.
func (s *Store) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Cardinality()
	}

	return n
}

func (s *Store) shard(id ID) mapset.Set[ID] {
	var buf [16]byte

	binary.LittleEndian.PutUint64(buf[:8], id.Dev)
	binary.LittleEndian.PutUint64(buf[8:], id.Ino)

	return s.shards[xxhash.Sum64(buf[:])%shardCount]
}
