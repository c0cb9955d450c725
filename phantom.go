package phantom

import (
	"log/slog"

	"github.com/phantomcms/phantom/internal/platform"
	"github.com/phantomcms/phantom/pkg/core"
	"github.com/phantomcms/phantom/pkg/virtual"
)

// --- Types ---

// Entry is a public alias for the content entry record.
type Entry = core.Entry

// Query is a public alias for the repository query.
type Query = core.Query

// QueryState is a public alias for the query outcome flags.
type QueryState = core.QueryState

// Result is a public alias for a resolved query result.
type Result = core.Result

// ResultProvider is a public alias for the result substitution port.
type ResultProvider = core.ResultProvider

// EntrySpec is a public alias for the partial virtual entry definition.
type EntrySpec = virtual.EntrySpec

// Overrides is a public alias for the query state override set.
type Overrides = virtual.Overrides

// Provider is a public alias for the virtual entry provider.
type Provider = virtual.Provider

// --- Configuration ---

// Option defines a functional option for configuring Phantom.
type Option = platform.Option

// WithMustExist ensures the content directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".phantom").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithProvider registers a result provider on the query pipeline.
func WithProvider(p core.ResultProvider) Option {
	return platform.WithProvider(p)
}

// WithSiteURL sets the site base URL used to derive virtual entry GUIDs.
func WithSiteURL(url string) Option {
	return platform.WithSiteURL(url)
}

// WithSpecFile loads virtual entries and overrides from a spec file.
func WithSpecFile(path string) Option {
	return platform.WithSpecFile(path)
}

// WithWatcherErrorHandler registers a callback for watcher runtime errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new Phantom Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// NewProvider creates a standalone virtual entry provider.
func NewProvider(opts ...virtual.Option) *virtual.Provider {
	return virtual.New(opts...)
}

// LoadSpecFile builds a provider from a YAML spec file.
func LoadSpecFile(path string, opts ...virtual.Option) (*virtual.Provider, error) {
	return virtual.LoadSpecFile(path, opts...)
}

// --- Utils ---

// FindSiteRoot recursively looks upwards for a site root indicator.
func FindSiteRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	return core.Slugify(title)
}
