package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Service runs the query pipeline: repository scan, criteria filter,
// state construction, then the registered result providers.
type Service struct {
	mu        sync.RWMutex
	repo      Repository
	providers []ResultProvider
}

// NewService creates a new Service. Providers may be registered at
// construction or later via Use.
func NewService(repo Repository, providers ...ResultProvider) *Service {
	return &Service{repo: repo, providers: providers}
}

// Use appends a result provider to the pipeline. Providers run in
// registration order.
func (s *Service) Use(p ResultProvider) {
	if p == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append(s.providers, p)
}

// Query executes the full pipeline for the given criteria.
//
// Workflow:
//  1. List all entries from the repository.
//  2. Filter by the query criteria, sort (newest first), apply the limit.
//  3. Build the QueryState from the real results.
//  4. Run each provider: it may mutate the state and replace the list.
func (s *Service) Query(ctx context.Context, q Query) (*Result, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	var entries []Entry
	for _, e := range all {
		if q.Matches(e) {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}

	state := buildState(q, entries)

	s.mu.RLock()
	providers := make([]ResultProvider, len(s.providers))
	copy(providers, s.providers)
	s.mu.RUnlock()

	for _, p := range providers {
		entries, err = p.Provide(ctx, q, &state, entries)
		if err != nil {
			return nil, fmt.Errorf("result provider failed: %w", err)
		}
	}

	return &Result{Entries: entries, State: state}, nil
}

// Get retrieves a single entry by slug, running the full pipeline so
// providers can substitute it.
func (s *Service) Get(ctx context.Context, slug string) (Entry, error) {
	res, err := s.Query(ctx, Query{Slug: slug})
	if err != nil {
		return Entry{}, err
	}
	if len(res.Entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return res.Entries[0], nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrNoWatch
	}
	return w.Watch(ctx, pattern)
}

// buildState derives the query state from the repository-backed results.
// Providers may override any of it afterwards.
func buildState(q Query, entries []Entry) QueryState {
	found := len(entries) > 0

	state := QueryState{
		Found:      found,
		Is404:      !found,
		TotalFound: len(entries),
	}

	if q.Singular() {
		state.IsSingular = found
		state.IsPage = found && entries[0].Type == DefaultType
	} else {
		state.IsArchive = found
	}

	return state
}
