package resource

import "go.uber.org/zap"

// BuilderConfig holds the collaborators of a Builder.
// Passed to NewBuilder.
type BuilderConfig[PluginT any] struct {
	// Plugins is the required plugin registry.
	// Every registration pass resolves its service through it.
	Plugins PluginRegistry[PluginT]

	// Quotas is the quota registrar used when BuildOptions.RegisterQuota is set.
	// nil is allowed as long as no pass asks for quota registration.
	Quotas QuotaRegistrar

	// Controllers builds the controller for each collection.
	// nil means NewControllerFactory.
	Controllers ControllerFactory[PluginT]

	// Extensions builds the final descriptor for each collection.
	// nil means NewResourceExtension.
	Extensions ExtensionFactory

	// Prefixes resolves the path prefix of a service.
	// nil means types.PathPrefix.
	Prefixes PathPrefixResolver

	// Settings supplies the pagination and sorting toggles.
	// nil means both disabled.
	Settings APISettings

	// Logger receives registration logs. nil means zap.NewNop().
	Logger *zap.Logger
}

type staticSettings struct {
	pagination bool
	sorting    bool
}

func (s staticSettings) AllowPagination() bool { return s.pagination }
func (s staticSettings) AllowSorting() bool { return s.sorting }

// StaticSettings returns APISettings with fixed values.
func StaticSettings(pagination, sorting bool) APISettings {
	return staticSettings{pagination: pagination, sorting: sorting}
}
