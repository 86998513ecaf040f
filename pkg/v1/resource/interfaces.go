package resource

// PluginRegistry resolves a service name to its running plugin.
// Implementations must be safe for concurrent use if services register concurrently.
type PluginRegistry[PluginT any] interface {
	// GetServicePlugin returns the plugin serving the named service, or an
	// error if no plugin is registered for it.
	GetServicePlugin(service string) (PluginT, error)
}

// QuotaRegistrar registers resources with the quota subsystem.
// Registering the same resource twice must be a no-op.
type QuotaRegistrar interface {
	RegisterResource(resource string)
}

// ControllerParams carries everything a ControllerFactory needs to build a controller.
type ControllerParams[PluginT any] struct {
	// Collection is the internal (untranslated) collection name.
	Collection string

	// Resource is the singular resource name.
	Resource string

	// Plugin is the service plugin that handles requests for this collection.
	Plugin PluginT

	// Params is the attribute definition for the collection.
	Params ParamSpec

	// MemberActions are the extra actions available on each member.
	MemberActions MemberActions

	AllowBulk       bool
	AllowPagination bool
	AllowSorting    bool
}

// Controller is the opaque handle a ControllerFactory produces.
type Controller interface {
	// Collection returns the collection the controller serves.
	Collection() string

	// Resource returns the singular resource name.
	Resource() string
}

// RouteProvider lists the REST routes a controller answers.
// Optional: type-asserted on Controller implementations.
type RouteProvider interface {
	// Routes returns the routes for the given outward collection path segment.
	Routes(collection string) []Route
}

// ControllerFactory builds a controller for a collection.
type ControllerFactory[PluginT any] interface {
	Create(params ControllerParams[PluginT]) Controller
}

// ControllerFactoryFunc adapts a function to a ControllerFactory.
type ControllerFactoryFunc[PluginT any] func(params ControllerParams[PluginT]) Controller

// Create calls f(params).
func (f ControllerFactoryFunc[PluginT]) Create(params ControllerParams[PluginT]) Controller {
	return f(params)
}

// ExtensionFactory builds the final resource descriptor handed to the
// extension-mounting layer.
type ExtensionFactory interface {
	Create(collection string, controller Controller, pathPrefix string, memberActions MemberActions, params ParamSpec) *ResourceExtension
}

// ExtensionFactoryFunc adapts a function to an ExtensionFactory.
type ExtensionFactoryFunc func(collection string, controller Controller, pathPrefix string, memberActions MemberActions, params ParamSpec) *ResourceExtension

// Create calls f.
func (f ExtensionFactoryFunc) Create(collection string, controller Controller, pathPrefix string, memberActions MemberActions, params ParamSpec) *ResourceExtension {
	return f(collection, controller, pathPrefix, memberActions, params)
}

// PathPrefixResolver maps a service name to the URL prefix its resources are mounted under.
type PathPrefixResolver interface {
	PathPrefix(service string) string
}

// PathPrefixFunc adapts a function to a PathPrefixResolver.
type PathPrefixFunc func(service string) string

// PathPrefix calls f(service).
func (f PathPrefixFunc) PathPrefix(service string) string {
	return f(service)
}

// APISettings exposes the process-wide API toggles.
type APISettings interface {
	AllowPagination() bool
	AllowSorting() bool
}
