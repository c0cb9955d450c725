package platform

import (
	"context"
	"fmt"

	"github.com/phantomcms/phantom/pkg/adapters/fs"
	"github.com/phantomcms/phantom/pkg/core"
)

// Init initializes a repository for the given content root.
// The 'uri' argument is adapter-specific (e.g. directory path for 'fs').
//
// It returns the configured core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on Adapter
	var repo core.Repository
	var err error

	switch o.adapter {
	case "fs":
		repo, err = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS handles the initialization logic for the Filesystem adapter
func initFS(path string, o *options) (core.Repository, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	if systemDir == "" {
		systemDir = ".phantom"
	}

	repoConfig := fs.Config{
		Path:         path,
		MustExist:    mustExist,
		Logger:       o.logger,
		SystemDir:    systemDir,
		ErrorHandler: errorHandler,
	}

	return fs.NewRepository(repoConfig), nil
}
