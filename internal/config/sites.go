package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/sitesmoke/internal/domain"
)

// LoadSites reads the YAML site list and validates every entry before a
// single browser session is spent on it.
func LoadSites(path string) ([]domain.Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sites file: %w", err)
	}

	var sites []domain.Site
	if err := yaml.Unmarshal(data, &sites); err != nil {
		return nil, fmt.Errorf("parse sites file: %w", err)
	}
	if len(sites) == 0 {
		return nil, fmt.Errorf("sites file %s lists no sites", path)
	}

	seen := make(map[string]bool, len(sites))
	for i, s := range sites {
		if s.Name == "" {
			return nil, fmt.Errorf("site %d has no name", i+1)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate site name %q", s.Name)
		}
		seen[s.Name] = true

		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("site %q has invalid url %q", s.Name, s.URL)
		}
	}
	return sites, nil
}
