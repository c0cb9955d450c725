package virtual

import (
	"github.com/aretw0/introspection"
)

// ProviderState exposes internal state for observability.
type ProviderState struct {
	Entries      int    `json:"entries"`
	SiteURL      string `json:"site_url,omitempty"`
	HasOverrides bool   `json:"has_overrides"`
}

// State implements introspection.Introspectable.
func (p *Provider) State() any {
	p.mu.Lock()
	defer p.mu.Unlock()

	return ProviderState{
		Entries:      len(p.entries),
		SiteURL:      p.siteURL,
		HasOverrides: !p.overrides.IsZero(),
	}
}

// ComponentType implements introspection.Component.
func (p *Provider) ComponentType() string {
	return "virtual-provider"
}

var _ introspection.Introspectable = (*Provider)(nil)
var _ introspection.Component = (*Provider)(nil)
