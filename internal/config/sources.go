package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes one scraped campus site.
type Source struct {
	Name      string `yaml:"name"`      // campus name as stored in the database
	Homepage  string `yaml:"homepage"`  // page the link discovery starts from
	Feed      string `yaml:"feed"`      // optional RSS feed for extra link discovery
	Extractor string `yaml:"extractor"` // which extractor variant handles the site
}

// SourcesConfig is YAML config structure
// sources:
//   - name: ...
//     homepage: https://...
type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the scraped-sites list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no sources defined in %s", path)
	}
	for i, s := range cfg.Sources {
		if s.Name == "" || s.Homepage == "" || s.Extractor == "" {
			return nil, fmt.Errorf("source %d: name, homepage and extractor are required", i)
		}
	}
	return cfg.Sources, nil
}
