package quota

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/omniviewdev/netsvc-sdk/pkg/config"
)

// Resource is a countable resource known to the quota subsystem.
type Resource struct {
	// Name is the singular resource name (e.g., "router").
	Name string

	// DefaultLimit is the limit applied when a tenant has no explicit quota.
	// config.Unlimited means no limit.
	DefaultLimit int
}

// Registry tracks the resources quotas can be set on.
// Thread-safe; registration is idempotent.
type Registry struct {
	mu        sync.RWMutex
	resources map[string]Resource
	defaults  config.QuotaConfig
	logger    *zap.Logger
}

// NewRegistry creates a Registry whose resources take their default limits from defaults.
func NewRegistry(defaults config.QuotaConfig, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		resources: make(map[string]Resource),
		defaults:  defaults,
		logger:    logger,
	}
}

// RegisterResource adds a resource by name. Registering a known resource is a no-op.
func (r *Registry) RegisterResource(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[name]; ok {
		return
	}
	res := Resource{Name: name, DefaultLimit: r.defaults.LimitFor(name)}
	r.resources[name] = res
	r.logger.Debug("registered quota resource",
		zap.String("resource", name),
		zap.Int("default_limit", res.DefaultLimit),
	)
}

// IsRegistered returns true if the resource has been registered.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resources[name]
	return ok
}

// Resource returns a registered resource.
func (r *Registry) Resource(name string) (Resource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[name]
	return res, ok
}

// Resources returns all registered resources sorted by name.
func (r *Registry) Resources() []Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Resource, 0, len(r.resources))
	for _, res := range r.resources {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
