package identity

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

func TestMarkSeen(t *testing.T) {
	s := New()

	assert.Check(t, !s.MarkSeen(ID{Dev: 1, Ino: 2}))
	assert.Check(t, s.MarkSeen(ID{Dev: 1, Ino: 2}))
	assert.Check(t, !s.MarkSeen(ID{Dev: 2, Ino: 2}))
	assert.Check(t, !s.MarkSeen(ID{Dev: 1, Ino: 3}))
	assert.Equal(t, s.Len(), 3)
}

func TestMarkSeenConcurrentFirstSighting(t *testing.T) {
	const (
		goroutines = 32
		ids        = 500
	)

	s := New()

	var (
		wg     sync.WaitGroup
		firsts atomic.Int64
	)

	for range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range ids {
				if !s.MarkSeen(ID{Dev: 7, Ino: uint64(i)}) {
					firsts.Add(1)
				}
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, firsts.Load(), int64(ids))
	assert.Equal(t, s.Len(), ids)
}

func TestStoresAreIndependent(t *testing.T) {
	a, b := New(), New()

	assert.Check(t, !a.MarkSeen(ID{Ino: 1}))
	assert.Check(t, !b.MarkSeen(ID{Ino: 1}))
}

func TestFromFileInfoHardLink(t *testing.T) {
	dir := fs.NewDir(t, "identity", fs.WithFile("a", "hello"), fs.WithFile("b", "hello"))

	link := filepath.Join(dir.Path(), "a-link")
	assert.NilError(t, os.Link(dir.Join("a"), link))

	idOf := func(path string) ID {
		fi, err := os.Lstat(path)
		assert.NilError(t, err)

		id, ok := FromFileInfo(fi)
		if !ok {
			t.Skip("file identities are not available on this platform")
		}

		return id
	}

	assert.Equal(t, idOf(dir.Join("a")), idOf(link))
	assert.Assert(t, idOf(dir.Join("a")) != idOf(dir.Join("b")))
}
