package manager

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrServiceNotFound is returned when no plugin is registered for a service.
var ErrServiceNotFound = errors.New("service plugin not found")

// Manager holds the loaded service plugins, one per service.
// Thread-safe for concurrent reads; writes happen at plugin load time.
type Manager[PluginT any] struct {
	mu      sync.RWMutex
	plugins map[string]PluginT
	logger  *zap.Logger
}

// New creates an empty Manager.
func New[PluginT any](logger *zap.Logger) *Manager[PluginT] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager[PluginT]{
		plugins: make(map[string]PluginT),
		logger:  logger,
	}
}

// RegisterServicePlugin binds a plugin to a service. Each service may have
// only one plugin.
func (m *Manager[PluginT]) RegisterServicePlugin(service string, plugin PluginT) error {
	if service == "" {
		return errors.New("service name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[service]; ok {
		return fmt.Errorf("multiple plugins for service %q were configured", service)
	}
	m.plugins[service] = plugin
	m.logger.Info("loaded service plugin", zap.String("service", service))
	return nil
}

// GetServicePlugin returns the plugin for a service.
func (m *Manager[PluginT]) GetServicePlugin(service string) (PluginT, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugin, ok := m.plugins[service]
	if !ok {
		var zero PluginT
		return zero, fmt.Errorf("%w: %q", ErrServiceNotFound, service)
	}
	return plugin, nil
}

// ServicePlugins returns the names of all services with a plugin, sorted.
func (m *Manager[PluginT]) ServicePlugins() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	services := make([]string, 0, len(m.plugins))
	for service := range m.plugins {
		services = append(services, service)
	}
	sort.Strings(services)
	return services
}
