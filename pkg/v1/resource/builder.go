package resource

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omniviewdev/netsvc-sdk/pkg/types"
)

// Builder turns a service's catalog into the resource extensions the API
// layer mounts. It holds no state between passes and is safe for concurrent
// use as long as its collaborators are.
type Builder[PluginT any] struct {
	plugins     PluginRegistry[PluginT]
	quotas      QuotaRegistrar
	controllers ControllerFactory[PluginT]
	extensions  ExtensionFactory
	prefixes    PathPrefixResolver
	settings    APISettings
	logger      *zap.Logger
}

// NewBuilder creates a Builder from config, filling in defaults for the
// optional collaborators.
func NewBuilder[PluginT any](cfg BuilderConfig[PluginT]) (*Builder[PluginT], error) {
	if cfg.Plugins == nil {
		return nil, errors.New("plugin registry is required")
	}

	b := &Builder[PluginT]{
		plugins:     cfg.Plugins,
		quotas:      cfg.Quotas,
		controllers: cfg.Controllers,
		extensions:  cfg.Extensions,
		prefixes:    cfg.Prefixes,
		settings:    cfg.Settings,
		logger:      cfg.Logger,
	}
	if b.controllers == nil {
		b.controllers = NewControllerFactory[PluginT]()
	}
	if b.extensions == nil {
		b.extensions = ExtensionFactoryFunc(NewResourceExtension)
	}
	if b.prefixes == nil {
		b.prefixes = PathPrefixFunc(types.PathPrefix)
	}
	if b.settings == nil {
		b.settings = StaticSettings(false, false)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b, nil
}

// Build creates one ResourceExtension per catalog collection, in catalog order.
//
// Every collection must have an entry in mapping and no member action may
// reuse a CRUD action name. The service plugin is resolved once, before
// anything is registered. Any failure aborts the pass and returns no
// extensions.
func (b *Builder[PluginT]) Build(
	mapping PluralMapping,
	catalog *Catalog,
	service string,
	actions ActionMap,
	opts BuildOptions,
) ([]*ResourceExtension, error) {
	log := b.logger.With(
		zap.String("pass", uuid.NewString()),
		zap.String("service", service),
	)

	entries := catalog.Entries()
	resources := make([]string, len(entries))
	for i, entry := range entries {
		name, ok := mapping[entry.Collection]
		if !ok {
			return nil, &UnmappedResourceError{Collection: entry.Collection}
		}
		for _, action := range actions.For(name).Names() {
			if IsCRUDAction(action) {
				return nil, &ReservedActionError{Resource: name, Action: action}
			}
		}
		resources[i] = name
	}

	plugin, err := b.plugins.GetServicePlugin(service)
	if err != nil {
		return nil, &UnknownServiceError{Service: service, Err: err}
	}

	if opts.RegisterQuota && b.quotas == nil {
		return nil, fmt.Errorf("quota registration requested for service %q but no quota registrar is configured", service)
	}

	var (
		prefix     = b.prefixes.PathPrefix(service)
		pagination = b.settings.AllowPagination()
		sorting    = b.settings.AllowSorting()
	)

	extensions := make([]*ResourceExtension, 0, len(entries))
	for i, entry := range entries {
		resource := resources[i]
		outward := TranslateCollection(entry.Collection, opts.TranslateName)

		if opts.RegisterQuota {
			b.quotas.RegisterResource(resource)
		}

		memberActions := actions.For(resource)
		controller := b.controllers.Create(ControllerParams[PluginT]{
			Collection:      entry.Collection,
			Resource:        resource,
			Plugin:          plugin,
			Params:          entry.Params,
			MemberActions:   memberActions,
			AllowBulk:       opts.AllowBulk,
			AllowPagination: pagination,
			AllowSorting:    sorting,
		})

		ext := b.extensions.Create(outward, controller, prefix, memberActions, entry.Params)
		extensions = append(extensions, ext)

		log.Debug("built resource extension",
			zap.String("collection", outward),
			zap.String("resource", resource),
			zap.Int("member_actions", len(memberActions)),
		)
	}

	log.Info("built resource extensions",
		zap.Int("count", len(extensions)),
		zap.String("path_prefix", prefix),
		zap.Bool("quota", opts.RegisterQuota),
	)
	return extensions, nil
}

// BuildResourceInfo derives the plural mapping from overrides and builds the
// extensions in one call. Mapping entries that disagree with English
// singularization are logged as warnings.
func (b *Builder[PluginT]) BuildResourceInfo(
	overrides NameOverrides,
	catalog *Catalog,
	service string,
	actions ActionMap,
	opts BuildOptions,
) ([]*ResourceExtension, error) {
	mapping := BuildPluralMappings(overrides, catalog)
	for _, w := range CheckPluralMappings(mapping, overrides, catalog.Collections()) {
		b.logger.Warn("singular name derived by suffix stripping looks wrong, consider an override",
			zap.String("service", service),
			zap.String("collection", w.Collection),
			zap.String("derived", w.Derived),
			zap.String("suggested", w.Suggested),
		)
	}
	return b.Build(mapping, catalog, service, actions, opts)
}
