package virtual

import (
	"fmt"

	"github.com/phantomcms/phantom/pkg/core"
)

// Overrides describes the query state fields a provider wants to force
// after substitution. Nil fields are left untouched, set fields
// overwrite the state unconditionally.
//
// This replaces the classic "copy arbitrary keys onto the query object"
// plugin trick with an explicit, typed contract: every flag that can be
// overridden is a named field here, and name-based access (Set) is
// validated against this list.
type Overrides struct {
	Found      *bool `yaml:"found,omitempty"`
	IsSingular *bool `yaml:"is_singular,omitempty"`
	IsPage     *bool `yaml:"is_page,omitempty"`
	IsArchive  *bool `yaml:"is_archive,omitempty"`
	Is404      *bool `yaml:"is_404,omitempty"`
	TotalFound *int  `yaml:"total_found,omitempty"`
}

// Flag names accepted by Set.
const (
	FlagFound      = "found"
	FlagIsSingular = "is_singular"
	FlagIsPage     = "is_page"
	FlagIsArchive  = "is_archive"
	FlagIs404      = "is_404"
	FlagTotalFound = "total_found"
)

// Bool returns a pointer to v, for building Overrides literals.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for building Overrides literals.
func Int(v int) *int { return &v }

// Apply copies every set field onto the query state, overwriting
// whatever the pipeline derived. An empty Overrides mutates nothing.
func (o Overrides) Apply(state *core.QueryState) {
	if state == nil {
		return
	}
	if o.Found != nil {
		state.Found = *o.Found
	}
	if o.IsSingular != nil {
		state.IsSingular = *o.IsSingular
	}
	if o.IsPage != nil {
		state.IsPage = *o.IsPage
	}
	if o.IsArchive != nil {
		state.IsArchive = *o.IsArchive
	}
	if o.Is404 != nil {
		state.Is404 = *o.Is404
	}
	if o.TotalFound != nil {
		state.TotalFound = *o.TotalFound
	}
}

// IsZero reports whether no field is set.
func (o Overrides) IsZero() bool {
	return o.Found == nil && o.IsSingular == nil && o.IsPage == nil &&
		o.IsArchive == nil && o.Is404 == nil && o.TotalFound == nil
}

// Set assigns a flag by name. Unknown names and mistyped values are
// rejected instead of being forwarded blindly to the query state.
func (o *Overrides) Set(name string, value any) error {
	switch name {
	case FlagTotalFound:
		n, ok := toInt(value)
		if !ok {
			return fmt.Errorf("flag %q expects an int, got %T", name, value)
		}
		o.TotalFound = &n
		return nil
	case FlagFound, FlagIsSingular, FlagIsPage, FlagIsArchive, FlagIs404:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("flag %q expects a bool, got %T", name, value)
		}
		switch name {
		case FlagFound:
			o.Found = &b
		case FlagIsSingular:
			o.IsSingular = &b
		case FlagIsPage:
			o.IsPage = &b
		case FlagIsArchive:
			o.IsArchive = &b
		case FlagIs404:
			o.Is404 = &b
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", core.ErrUnknownFlag, name)
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}
