package platform

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env carries process-level defaults for the CLI. Flags take
// precedence; the environment fills the gaps.
type Env struct {
	SiteURL    string `env:"PHANTOM_SITE_URL"`
	ContentDir string `env:"PHANTOM_CONTENT_DIR" envDefault:"."`
	SpecFile   string `env:"PHANTOM_SPEC_FILE"`
}

// LoadEnv parses the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}
