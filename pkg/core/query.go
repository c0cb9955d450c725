package core

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Query describes the criteria for a single pipeline run.
// The zero value matches every published entry.
type Query struct {
	Type     string   // Entry type, e.g. "page". Empty matches all types.
	Slug     string   // Exact slug match. Implies a singular query.
	Pattern  string   // Doublestar glob matched against slugs (e.g. "docs/**").
	Statuses []Status // Allowed statuses. Empty means published only.
	Limit    int      // Maximum number of entries. Zero means unbounded.
}

// Singular reports whether the query targets one specific entry.
func (q Query) Singular() bool {
	return q.Slug != ""
}

// Matches checks an entry against the query criteria.
// Invalid glob patterns simply never match; the pipeline treats the
// pattern as advisory rather than failing the whole query.
func (q Query) Matches(e Entry) bool {
	if q.Type != "" && e.Type != q.Type {
		return false
	}

	if q.Slug != "" && e.Slug != q.Slug {
		return false
	}

	if q.Pattern != "" {
		ok, err := doublestar.Match(q.Pattern, e.Slug)
		if err != nil || !ok {
			return false
		}
	}

	if len(q.Statuses) == 0 {
		return e.Status == StatusPublished
	}
	for _, s := range q.Statuses {
		if e.Status == s {
			return true
		}
	}
	return false
}

// QueryState is the runtime flag object the templating layer consults
// after a query ran. Fields are named and typed on purpose: providers
// override them through an explicit struct instead of injecting
// arbitrary attributes.
type QueryState struct {
	Found      bool `json:"found"`
	IsSingular bool `json:"is_singular"`
	IsPage     bool `json:"is_page"`
	IsArchive  bool `json:"is_archive"`
	Is404      bool `json:"is_404"`
	TotalFound int  `json:"total_found"`
}

// Result bundles the final entry list with the query state that
// describes it.
type Result struct {
	Entries []Entry
	State   QueryState
}
