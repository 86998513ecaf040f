package resource

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML form of a service's resource catalog.
//
//	service: L3_ROUTER_NAT
//	overrides:
//	  policies: policy
//	actions:
//	  router:
//	    add_router_interface: PUT
//	resources:
//	  routers:
//	    id: {allow_post: false}
//	  floating_ips: {}
type Manifest struct {
	Service   string        `yaml:"service"`
	Overrides NameOverrides `yaml:"overrides,omitempty"`
	Actions   ActionMap     `yaml:"actions,omitempty"`
	Resources Catalog       `yaml:"resources"`
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if m.Service == "" {
		return nil, errors.New("manifest has no service")
	}
	return &m, nil
}

// LoadManifest reads and decodes a YAML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// PluralMappings builds the plural mapping for the manifest's resources.
func (m *Manifest) PluralMappings() PluralMapping {
	return BuildPluralMappings(m.Overrides, &m.Resources)
}
