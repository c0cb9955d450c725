package core

import "context"

// Repository defines the contract for reading entries.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, SQL, S3, etc).
type Repository interface {
	// List returns all available entries.
	List(ctx context.Context) ([]Entry, error)

	// Get retrieves an entry by its slug.
	Get(ctx context.Context, slug string) (Entry, error)

	// Initialize ensures the underlying storage is ready (e.g. directory checks).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can observe changes.
type Watchable interface {
	// Watch emits an event for every content change matching the pattern.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// ResultProvider is the pipeline's extension point. After the repository
// query ran, each registered provider receives the current result list
// and the live query state. It may mutate the state and return a
// replacement list. Returning 'in' unchanged is a no-op.
//
// Providers run in registration order, synchronously, within the
// request that triggered the query.
type ResultProvider interface {
	Provide(ctx context.Context, q Query, state *QueryState, in []Entry) ([]Entry, error)
}
