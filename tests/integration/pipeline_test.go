package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/phantomcms/phantom"
	"github.com/phantomcms/phantom/pkg/virtual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipelineSubstitution runs the full stack: Markdown files on disk,
// a YAML spec file, and the query service wired through the facade. The
// provider must replace the stored results and force the outcome flags.
func TestPipelineSubstitution(t *testing.T) {
	dir := t.TempDir()
	contentDir := filepath.Join(dir, "content")
	prepareContent(t, contentDir)

	specPath := filepath.Join(dir, "phantom.yaml")
	spec := `site_url: https://example.org
overrides:
  found: true
  is_singular: true
  is_page: true
  is_404: false
entries:
  - title: Ghost Page
    content: Nothing on disk backs this.
`
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0644))

	svc, err := phantom.New(contentDir,
		phantom.WithMustExist(true),
		phantom.WithSpecFile(specPath),
	)
	require.NoError(t, err)

	ctx := context.Background()

	// The stored page exists, but the provider answers every query.
	res, err := svc.Query(ctx, phantom.Query{Slug: "ghost-page"})
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	entry := res.Entries[0]
	assert.Equal(t, "ghost-page", entry.Slug)
	assert.Equal(t, "page", entry.Type)
	assert.Equal(t, "https://example.org/ghost-page", entry.GUID)
	assert.Equal(t, "Nothing on disk backs this.", entry.Content)

	assert.True(t, res.State.Found)
	assert.True(t, res.State.IsSingular)
	assert.True(t, res.State.IsPage)
	assert.False(t, res.State.Is404)

	// Get goes through the same pipeline.
	got, err := svc.Get(ctx, "ghost-page")
	require.NoError(t, err)
	assert.Equal(t, entry.GUID, got.GUID)
}

// TestPipelineWithoutSpec ensures the baseline still resolves stored
// content when no provider is registered.
func TestPipelineWithoutSpec(t *testing.T) {
	contentDir := filepath.Join(t.TempDir(), "content")
	prepareContent(t, contentDir)

	svc, err := phantom.New(contentDir, phantom.WithMustExist(true))
	require.NoError(t, err)

	res, err := svc.Query(context.Background(), phantom.Query{})
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "stored-page", res.Entries[0].Slug)
	assert.True(t, res.State.Found)
	assert.False(t, res.State.Is404)
}

// TestProviderChaining registers an explicit provider before the spec
// file provider. The spec file one runs last and wins.
func TestProviderChaining(t *testing.T) {
	dir := t.TempDir()
	contentDir := filepath.Join(dir, "content")

	specPath := filepath.Join(dir, "phantom.yaml")
	spec := `entries:
  - title: Last Word
`
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0644))

	first := phantom.NewProvider()
	first.Add(phantom.EntrySpec{Title: "First Word"})

	svc, err := phantom.New(contentDir,
		phantom.WithProvider(first),
		phantom.WithSpecFile(specPath),
	)
	require.NoError(t, err)

	res, err := svc.Query(context.Background(), phantom.Query{})
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "last-word", res.Entries[0].Slug)
}

// TestSpecFileRejectsUnknownKeys guards the strict parse at the factory
// boundary, not just in the virtual package.
func TestSpecFileRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "phantom.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte("posts:\n  - title: nope\n"), 0644))

	_, err := phantom.New(filepath.Join(dir, "content"), phantom.WithSpecFile(specPath))
	assert.Error(t, err)
}

// TestStandaloneProvider uses the virtual package directly, without any
// repository, the way an embedding application would.
func TestStandaloneProvider(t *testing.T) {
	provider := phantom.NewProvider(
		virtual.WithSiteURL("https://example.org"),
		virtual.WithOverrides(virtual.Overrides{
			Found:      virtual.Bool(true),
			TotalFound: virtual.Int(2),
		}),
	)
	provider.Add(phantom.EntrySpec{Title: "One"})
	provider.Add(phantom.EntrySpec{Title: "Two"})

	state := phantom.QueryState{Is404: true}
	entries, err := provider.Provide(context.Background(), phantom.Query{}, &state, nil)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.True(t, state.Found)
	assert.Equal(t, 2, state.TotalFound)
	// Untouched flags keep their incoming value.
	assert.True(t, state.Is404)
}

func prepareContent(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))

	page := `---
title: Stored Page
status: publish
---
Real content on disk.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stored-page.md"), []byte(page), 0644))
}
