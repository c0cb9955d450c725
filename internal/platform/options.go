package platform

import (
	"log/slog"

	"github.com/phantomcms/phantom/pkg/core"
)

// options holds the internal configuration for the Phantom service.
type options struct {
	repository core.Repository
	providers  []core.ResultProvider
	logger     *slog.Logger
	adapter    string
	config     map[string]interface{}
}

// Option defines a functional option for configuring Phantom.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		repository: nil,
		logger:     nil,
		adapter:    "fs",
		config:     make(map[string]interface{}),
	}
}

// WithMustExist ensures the content directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock, s3).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name (e.g. "fs").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".phantom").
// Defaults to ".phantom" if not set (handled by adapter).
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithProvider registers a result provider on the pipeline. May be
// given multiple times; providers run in registration order.
func WithProvider(p core.ResultProvider) Option {
	return func(o *options) {
		if p != nil {
			o.providers = append(o.providers, p)
		}
	}
}

// WithSiteURL sets the site base URL used when deriving GUIDs for
// virtual entries loaded from a spec file.
func WithSiteURL(url string) Option {
	return func(o *options) {
		o.config["site_url"] = url
	}
}

// WithSpecFile loads a virtual entry spec file and registers the
// resulting provider after any providers given via WithProvider.
func WithSpecFile(path string) Option {
	return func(o *options) {
		o.config["spec_file"] = path
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring
// during the Watch loop. This allows applications to log or react to runtime
// watcher failures (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
