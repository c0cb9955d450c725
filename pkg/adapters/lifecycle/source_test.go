package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/phantomcms/phantom/pkg/core"
)

func TestSourceForwardsEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	source := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := source.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	in <- core.Event{Type: core.EventCreate, Slug: "hello"}

	select {
	case ev := <-source.Events():
		if ev.String() != "CREATE hello" {
			t.Errorf("unexpected event: %s", ev.String())
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for forwarded event")
	}
}

func TestSourceClosesWhenInputCloses(t *testing.T) {
	in := make(chan core.Event)
	source := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := source.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	close(in)

	select {
	case _, ok := <-source.Events():
		if ok {
			t.Error("expected closed channel, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
