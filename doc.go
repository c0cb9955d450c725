// Package phantom is the Composition Root for the Phantom library.
//
// It connects the core business logic (Domain Layer) with the infrastructure adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Phantom lets applications answer content queries with entries that have no
// backing storage. A query pipeline normally resolves against a repository
// (the default adapter reads Markdown files from disk); registered result
// providers may then substitute the resolved entries with synthetic ones and
// adjust the outcome flags, so callers downstream cannot tell a virtual entry
// from a stored one.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Virtual Entries**: Partial specs are finalized into complete entries with
//     sensible defaults (type, status, slug, GUID, timestamps).
//   - **Result Substitution**: Providers implement `core.ResultProvider` and are
//     wired explicitly into the service, no global registries.
//   - **Metadata First**: Native support for Frontmatter parsing and indexing.
//   - **Default Adapter (FS)**: Out-of-the-box support for local Markdown files
//     with change watching.
//   - **Extensible**: Designed to support other backends via `core.Repository`.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := phantom.New("./content",
//		phantom.WithSpecFile("phantom.yaml"),
//		phantom.WithLogger(logger),
//	)
//
//	// Resolve a query
//	res, err := svc.Query(ctx, phantom.Query{Type: "page"})
package phantom
