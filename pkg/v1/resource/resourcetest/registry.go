package resourcetest

import (
	"errors"
	"sync"
	"sync/atomic"

	resource "github.com/omniviewdev/netsvc-sdk/pkg/v1/resource"
)

// ErrNoPlugin is returned by StubPluginRegistry for services it does not know.
var ErrNoPlugin = errors.New("no plugin for service")

// StubPluginRegistry is a configurable test double for PluginRegistry[PluginT].
// GetFunc wins when set; otherwise Plugins is consulted.
type StubPluginRegistry[PluginT any] struct {
	Plugins map[string]PluginT
	GetFunc func(service string) (PluginT, error)

	Calls atomic.Int32
}

// GetServicePlugin counts the call, then resolves through GetFunc or Plugins.
// Unknown services return ErrNoPlugin.
func (s *StubPluginRegistry[PluginT]) GetServicePlugin(service string) (PluginT, error) {
	s.Calls.Add(1)
	if s.GetFunc != nil {
		return s.GetFunc(service)
	}
	p, ok := s.Plugins[service]
	if !ok {
		var zero PluginT
		return zero, ErrNoPlugin
	}
	return p, nil
}

// RecordingControllerFactory wraps a ControllerFactory and records the params
// of every Create call. Delegates to resource.NewController when Next is nil.
type RecordingControllerFactory[PluginT any] struct {
	Next resource.ControllerFactory[PluginT]

	mu     sync.Mutex
	params []resource.ControllerParams[PluginT]
}

// Create records p and returns the controller built by Next.
func (f *RecordingControllerFactory[PluginT]) Create(p resource.ControllerParams[PluginT]) resource.Controller {
	f.mu.Lock()
	f.params = append(f.params, p)
	f.mu.Unlock()
	if f.Next != nil {
		return f.Next.Create(p)
	}
	return resource.NewController(p)
}

// Params returns the recorded params in call order.
func (f *RecordingControllerFactory[PluginT]) Params() []resource.ControllerParams[PluginT] {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]resource.ControllerParams[PluginT], len(f.params))
	copy(out, f.params)
	return out
}

// StubController is a minimal Controller without routes.
type StubController struct {
	CollectionName string
	ResourceName   string
}

func (c *StubController) Collection() string { return c.CollectionName }
func (c *StubController) Resource() string { return c.ResourceName }
