// Package virtual synthesizes entries that were never stored anywhere
// and feeds them into the query pipeline as if the repository had
// returned them. The classic use case is a plugin that wants an extra
// page to render through the normal templates without touching the
// content directory.
package virtual

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phantomcms/phantom/pkg/core"
)

// Provider holds an ordered list of finalized entries plus the query
// state overrides to apply when it substitutes a result set.
//
// It implements core.ResultProvider. Registered on a pipeline, it
// discards whatever the repository produced and answers with its own
// entries, flipping the query state so templates treat the synthetic
// results as a real, successful query.
type Provider struct {
	mu        sync.Mutex
	siteURL   string
	clock     func() time.Time
	logger    *slog.Logger
	entries   []core.Entry
	overrides Overrides
}

// Option defines a functional option for configuring a Provider.
type Option func(*Provider)

// WithSiteURL sets the site base URL used to derive entry GUIDs.
func WithSiteURL(url string) Option {
	return func(p *Provider) {
		p.siteURL = url
	}
}

// WithClock overrides the time source (useful for testing).
func WithClock(clock func() time.Time) Option {
	return func(p *Provider) {
		p.clock = clock
	}
}

// WithLogger sets the logger for the provider.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithEntries appends entry specs at construction, in order.
func WithEntries(specs ...EntrySpec) Option {
	return func(p *Provider) {
		for _, s := range specs {
			p.add(s)
		}
	}
}

// WithOverrides sets the initial query state overrides.
func WithOverrides(o Overrides) Option {
	return func(p *Provider) {
		p.overrides = o
	}
}

// New creates a Provider. Without options it holds no entries and no
// overrides: plugged into a pipeline it substitutes an empty result
// set and leaves the query state alone.
func New(opts ...Option) *Provider {
	p := &Provider{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add finalizes one spec against the defaults and appends it.
// The finalized entry is returned so callers can inspect the derived
// ID, slug and GUID.
func (p *Provider) Add(spec EntrySpec) core.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.add(spec)
}

// add is the lock-free core of Add, shared with WithEntries.
func (p *Provider) add(spec EntrySpec) core.Entry {
	e := finalize(spec, p.siteURL, p.clock(), len(p.entries))
	p.entries = append(p.entries, e)

	if p.logger != nil {
		p.logger.Debug("virtual entry added", "id", e.ID, "slug", e.Slug)
	}
	return e
}

// SetFlag assigns a single query state override by name.
func (p *Provider) SetFlag(name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.overrides.Set(name, value)
}

// SetOverrides replaces the override set wholesale.
func (p *Provider) SetOverrides(o Overrides) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overrides = o
}

// Entries returns a copy of the finalized entries, in insertion order.
func (p *Provider) Entries() []core.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]core.Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of held entries.
func (p *Provider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Provide implements core.ResultProvider.
//
// It applies the overrides to the query state, then returns the held
// entries, discarding the repository results entirely. The input list
// is only used for logging.
func (p *Provider) Provide(ctx context.Context, q core.Query, state *core.QueryState, in []core.Entry) ([]core.Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.overrides.Apply(state)

	if p.logger != nil {
		p.logger.Debug("substituting query results",
			"discarded", len(in),
			"provided", len(p.entries),
		)
	}

	out := make([]core.Entry, len(p.entries))
	copy(out, p.entries)
	return out, nil
}

var _ core.ResultProvider = (*Provider)(nil)
