package reactivity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phantomcms/phantom"
	"github.com/phantomcms/phantom/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServiceWatch exercises the watch path through the facade: a file
// created on disk must surface as a CREATE event on the service channel.
func TestServiceWatch(t *testing.T) {
	contentDir := t.TempDir()

	svc, err := phantom.New(contentDir, phantom.WithMustExist(true))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	// Give the watcher a moment to arm before writing.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(contentDir, "breaking-news.md")
	require.NoError(t, os.WriteFile(path, []byte("# News"), 0644))

	select {
	case ev, ok := <-events:
		require.True(t, ok, "channel closed before event")
		assert.Equal(t, core.EventCreate, ev.Type)
		assert.Equal(t, "breaking-news", ev.Slug)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for create event")
	}

	// Cancelling the context must close the channel.
	cancel()
	select {
	case _, ok := <-events:
		if ok {
			// Drain any trailing event, then expect close.
			for range events {
			}
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

// TestServiceWatchPattern filters events with a glob before delivery.
func TestServiceWatchPattern(t *testing.T) {
	contentDir := t.TempDir()

	svc, err := phantom.New(contentDir, phantom.WithMustExist(true))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := svc.Watch(ctx, "news-*")
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "drafts.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "news-today.md"), []byte("y"), 0644))

	select {
	case ev := <-events:
		assert.Equal(t, "news-today", ev.Slug, "non-matching slug leaked through")
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for filtered event")
	}
}
