package phantom_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/phantomcms/phantom"
	"github.com/phantomcms/phantom/pkg/virtual"
)

// Example_basic demonstrates how to serve a virtual entry through the
// query pipeline without any backing content on disk.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "phantom-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// A provider holds the synthetic entries and the outcome flags it
	// wants to assert on every query it answers.
	provider := phantom.NewProvider(
		virtual.WithSiteURL("https://example.org"),
		virtual.WithOverrides(virtual.Overrides{
			Found:      virtual.Bool(true),
			IsSingular: virtual.Bool(true),
			Is404:      virtual.Bool(false),
		}),
	)
	provider.Add(phantom.EntrySpec{Title: "About Us"})

	svc, err := phantom.New(filepath.Join(tmpDir, "content"),
		phantom.WithProvider(provider),
	)
	if err != nil {
		log.Fatal(err)
	}

	res, err := svc.Query(context.Background(), phantom.Query{Slug: "about-us"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found entry: %s (%s)\n", res.Entries[0].Slug, res.Entries[0].Type)
	fmt.Printf("Is 404: %v\n", res.State.Is404)
	// Output:
	// Found entry: about-us (page)
	// Is 404: false
}

// ExampleLoadSpecFile demonstrates declaring virtual entries in YAML and
// wiring them through the service factory.
func ExampleLoadSpecFile() {
	tmpDir, err := os.MkdirTemp("", "phantom-spec-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	spec := []byte(`site_url: https://example.org
overrides:
  found: true
entries:
  - title: Landing
    type: page
  - title: Pricing
    type: page
`)
	specPath := filepath.Join(tmpDir, "phantom.yaml")
	if err := os.WriteFile(specPath, spec, 0644); err != nil {
		log.Fatal(err)
	}

	svc, err := phantom.New(filepath.Join(tmpDir, "content"),
		phantom.WithSpecFile(specPath),
	)
	if err != nil {
		log.Fatal(err)
	}

	res, err := svc.Query(context.Background(), phantom.Query{Type: "page"})
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range res.Entries {
		fmt.Println(e.GUID)
	}
	// Output:
	// https://example.org/landing
	// https://example.org/pricing
}
