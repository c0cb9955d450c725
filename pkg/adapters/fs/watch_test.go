package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phantomcms/phantom/pkg/core"
)

func collectEvent(t *testing.T, ch <-chan core.Event, timeout time.Duration) core.Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed unexpectedly")
		}
		return e
	case <-time.After(timeout):
		t.Fatal("timeout waiting for event")
		return core.Event{}
	}
}

func TestWatchEmitsCreateAndModify(t *testing.T) {
	repo := newTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "*")
	require.NoError(t, err)

	path := filepath.Join(repo.Path, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0644))

	e := collectEvent(t, events, 2*time.Second)
	require.Equal(t, "note", e.Slug)
	// Depending on timing the write can coalesce into the create.
	require.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)

	// A later modification is a separate debounce window.
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("hello again\n"), 0644))

	e = collectEvent(t, events, 2*time.Second)
	require.Equal(t, "note", e.Slug)
	require.Equal(t, core.EventModify, e.Type)
}

func TestWatchIgnoresForeignFiles(t *testing.T) {
	repo := newTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "*")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "scratch.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, ".hidden.md"), []byte("x"), 0644))

	select {
	case e := <-events:
		t.Fatalf("expected no event, got %+v", e)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchPatternFilter(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(repo.Path, "docs"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(repo.Path, "blog"), 0755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "docs/**")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "blog", "off-topic.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "docs", "guide.md"), []byte("x"), 0644))

	e := collectEvent(t, events, 2*time.Second)
	require.Equal(t, "docs/guide", e.Slug)
}

func TestWatchClosesOnCancel(t *testing.T) {
	repo := newTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := repo.Watch(ctx, "*")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}
