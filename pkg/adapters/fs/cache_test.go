package fs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phantomcms/phantom/pkg/core"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	c := newCache(dir, ".phantom")
	c.Set("docs/a.md", &indexEntry{
		Entry:        core.Entry{Slug: "docs/a", Title: "A"},
		LastModified: mtime,
	})
	require.NoError(t, c.Save())

	// Fresh instance reads the persisted index.
	c2 := newCache(dir, ".phantom")
	require.NoError(t, c2.Load())
	assert.Equal(t, 1, c2.Len())

	entry, hit := c2.Get("docs/a.md", mtime)
	require.True(t, hit)
	assert.Equal(t, "A", entry.Entry.Title)

	// Stale mtime misses.
	_, hit = c2.Get("docs/a.md", mtime.Add(time.Second))
	assert.False(t, hit)

	// Unknown path misses.
	_, hit = c2.Get("docs/b.md", mtime)
	assert.False(t, hit)
}

func TestCachePrune(t *testing.T) {
	c := newCache(t.TempDir(), ".phantom")
	c.Set("keep.md", &indexEntry{LastModified: time.Now()})
	c.Set("drop.md", &indexEntry{LastModified: time.Now()})

	c.Prune(map[string]bool{"keep.md": true})

	assert.Equal(t, 1, c.Len())
	_, hit := c.Get("drop.md", time.Time{})
	assert.False(t, hit)
}

func TestCacheLoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	c := newCache(dir, ".phantom")
	c.Set("a.md", &indexEntry{LastModified: time.Now()})
	require.NoError(t, c.Save())

	// Corrupt the file on disk; Load must self-heal to an empty index.
	require.NoError(t, writeFileAtomic(c.Path, []byte("{not json"), 0644))

	c2 := newCache(dir, ".phantom")
	require.NoError(t, c2.Load())
	assert.Equal(t, 0, c2.Len())
}
