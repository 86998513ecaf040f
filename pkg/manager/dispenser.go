package manager

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"
)

// Dispenser resolves service plugins by dispensing them from a running plugin
// process. Each service is dispensed once and cached.
type Dispenser[PluginT any] struct {
	mu     sync.Mutex
	client goplugin.ClientProtocol
	names  map[string]string
	cache  map[string]PluginT
	logger hclog.Logger
}

// NewDispenser creates a Dispenser on top of client.
//
// names maps a service to the plugin name it is dispensed under. A nil map
// dispenses every service under its own name; a non-nil map restricts
// resolution to the services it lists.
func NewDispenser[PluginT any](client goplugin.ClientProtocol, names map[string]string, logger hclog.Logger) *Dispenser[PluginT] {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispenser[PluginT]{
		client: client,
		names:  names,
		cache:  make(map[string]PluginT),
		logger: logger.Named("dispenser"),
	}
}

// GetServicePlugin returns the plugin for a service, dispensing it on first use.
func (d *Dispenser[PluginT]) GetServicePlugin(service string) (PluginT, error) {
	var zero PluginT

	d.mu.Lock()
	defer d.mu.Unlock()

	if plugin, ok := d.cache[service]; ok {
		return plugin, nil
	}

	name := service
	if d.names != nil {
		mapped, ok := d.names[service]
		if !ok {
			return zero, fmt.Errorf("%w: %q", ErrServiceNotFound, service)
		}
		name = mapped
	}

	raw, err := d.client.Dispense(name)
	if err != nil {
		d.logger.Error("failed to dispense service plugin", "service", service, "plugin", name, "error", err)
		return zero, fmt.Errorf("%w: %q: %w", ErrServiceNotFound, service, err)
	}
	plugin, ok := raw.(PluginT)
	if !ok {
		return zero, fmt.Errorf("plugin %q for service %q has unexpected type %T", name, service, raw)
	}

	d.cache[service] = plugin
	d.logger.Debug("dispensed service plugin", "service", service, "plugin", name)
	return plugin, nil
}

// Ping checks that the plugin process is still reachable.
func (d *Dispenser[PluginT]) Ping() error {
	return d.client.Ping()
}

// LaunchConfig describes a plugin process to start.
type LaunchConfig struct {
	// Cmd is the plugin binary to run.
	Cmd *exec.Cmd

	// Handshake must match the handshake the plugin serves with.
	Handshake goplugin.HandshakeConfig

	// Plugins lists the plugins the process may dispense, keyed by name.
	Plugins goplugin.PluginSet

	// Logger receives plugin process output. nil means a null logger.
	Logger hclog.Logger
}

// Launch starts the plugin process and connects to it. The returned client
// must be killed by the caller when the plugins are no longer needed.
func Launch(cfg LaunchConfig) (*goplugin.Client, goplugin.ClientProtocol, error) {
	if cfg.Cmd == nil {
		return nil, nil, errors.New("plugin command is required")
	}
	if len(cfg.Plugins) == 0 {
		return nil, nil, errors.New("at least one plugin must be declared")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  cfg.Handshake,
		Plugins:          cfg.Plugins,
		Cmd:              cfg.Cmd,
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolGRPC},
		Logger:           logger,
	})
	protocol, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("failed to connect to plugin %q: %w", cfg.Cmd.Path, err)
	}
	return client, protocol, nil
}
