package platform

import (
	"github.com/phantomcms/phantom/pkg/core"
	"github.com/phantomcms/phantom/pkg/virtual"
)

// New creates a fully wired query service for the given content root.
// The URI argument is adapter-specific (e.g., directory path for 'fs').
func New(uri string, opts ...Option) (*core.Service, error) {
	// 1. Initialize environment (path, directories)
	// We pass the opts down to Init, which parses them itself.
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get providers and logger for wiring
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// Initialize Domain Service
	service := core.NewService(repo, o.providers...)

	// Spec-file provider goes last so explicitly registered providers
	// see the repository results first.
	if path, ok := o.config["spec_file"].(string); ok && path != "" {
		var vopts []virtual.Option
		if siteURL, ok := o.config["site_url"].(string); ok && siteURL != "" {
			vopts = append(vopts, virtual.WithSiteURL(siteURL))
		}
		if o.logger != nil {
			vopts = append(vopts, virtual.WithLogger(o.logger))
		}

		provider, err := virtual.LoadSpecFile(path, vopts...)
		if err != nil {
			return nil, err
		}
		service.Use(provider)
	}

	return service, nil
}
