package virtual

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpecFile is the YAML document describing a set of virtual entries.
//
//	site_url: https://example.org
//	overrides:
//	  found: true
//	  is_404: false
//	entries:
//	  - title: Hello
//	    content: This entry does not exist on disk.
type SpecFile struct {
	SiteURL   string      `yaml:"site_url"`
	Overrides Overrides   `yaml:"overrides"`
	Entries   []EntrySpec `yaml:"entries"`
}

// ParseSpecFile decodes a spec document. Decoding is strict: unknown
// keys are an error, so a typo in a flag name surfaces immediately
// instead of silently doing nothing.
func ParseSpecFile(data []byte) (*SpecFile, error) {
	var sf SpecFile

	dec := newStrictDecoder(data)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("invalid spec file: %w", err)
	}
	return &sf, nil
}

// LoadSpecFile reads a spec document from disk and builds a configured
// Provider from it. Options are applied after the file contents, so
// e.g. WithSiteURL takes precedence over site_url in the file.
func LoadSpecFile(path string, opts ...Option) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	sf, err := ParseSpecFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	combined := []Option{
		WithSiteURL(sf.SiteURL),
		WithOverrides(sf.Overrides),
	}
	combined = append(combined, opts...)
	// Entries are finalized last so option-provided site URL and clock
	// are already in effect.
	combined = append(combined, WithEntries(sf.Entries...))

	return New(combined...), nil
}

func newStrictDecoder(data []byte) *yaml.Decoder {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec
}
