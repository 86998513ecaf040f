package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Unlimited is the quota limit meaning "no limit".
const Unlimited = -1

// Config holds the process-wide settings consulted at registration time.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Quota QuotaConfig `yaml:"quota"`
}

// APIConfig holds the API feature toggles applied to every registered collection.
type APIConfig struct {
	// AllowPagination enables pagination on list requests.
	AllowPagination bool `yaml:"allow_pagination"`

	// AllowSorting enables sorting on list requests.
	AllowSorting bool `yaml:"allow_sorting"`
}

// QuotaConfig holds default quota limits for registered resources.
type QuotaConfig struct {
	// Default is the limit applied to resources without an explicit entry in Limits.
	Default int `yaml:"default"`

	// Limits maps singular resource names to their default limit.
	Limits map[string]int `yaml:"limits"`
}

// Default returns a Config with pagination and sorting disabled and unlimited quotas.
func Default() *Config {
	return &Config{
		Quota: QuotaConfig{Default: Unlimited},
	}
}

// AllowPagination reports whether pagination is enabled.
func (c *Config) AllowPagination() bool { return c.API.AllowPagination }

// AllowSorting reports whether sorting is enabled.
func (c *Config) AllowSorting() bool { return c.API.AllowSorting }

// LimitFor returns the default quota limit for a resource.
func (q QuotaConfig) LimitFor(resource string) int {
	if limit, ok := q.Limits[resource]; ok {
		return limit
	}
	return q.Default
}

// Parse decodes a YAML document on top of Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data)
}

// Validate checks that every quota limit is either Unlimited or non-negative.
func (c *Config) Validate() error {
	if c.Quota.Default < Unlimited {
		return fmt.Errorf("quota default %d must be >= %d", c.Quota.Default, Unlimited)
	}
	for name, limit := range c.Quota.Limits {
		if limit < Unlimited {
			return fmt.Errorf("quota limit for %q is %d, must be >= %d", name, limit, Unlimited)
		}
	}
	return nil
}
