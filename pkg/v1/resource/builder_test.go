package resource_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	resource "github.com/omniviewdev/netsvc-sdk/pkg/v1/resource"
	"github.com/omniviewdev/netsvc-sdk/pkg/v1/resource/resourcetest"
)

type l3Plugin struct{ name string }

const l3Service = "L3_ROUTER_NAT"

func newL3Registry() (*resourcetest.StubPluginRegistry[*l3Plugin], *l3Plugin) {
	p := &l3Plugin{name: "l3"}
	return &resourcetest.StubPluginRegistry[*l3Plugin]{
		Plugins: map[string]*l3Plugin{
			l3Service:  p,
			"FIREWALL": {name: "fw"},
		},
	}, p
}

func newTestBuilder(t *testing.T, cfg resource.BuilderConfig[*l3Plugin]) *resource.Builder[*l3Plugin] {
	t.Helper()
	if cfg.Plugins == nil {
		cfg.Plugins, _ = newL3Registry()
	}
	b, err := resource.NewBuilder(cfg)
	require.NoError(t, err)
	return b
}

func collections(exts []*resource.ResourceExtension) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = e.Collection
	}
	return out
}

// ---------------------------------------------------------------------------
// NewBuilder
// ---------------------------------------------------------------------------

func TestNewBuilder_RequiresPluginRegistry(t *testing.T) {
	_, err := resource.NewBuilder(resource.BuilderConfig[*l3Plugin]{})
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

func TestBuild_SingleRouter(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resource.NewCatalog(resource.CatalogEntry{Collection: "routers", Params: resourcetest.RouterParams})
	mapping := resource.BuildPluralMappings(nil, cat)
	require.Equal(t, resource.PluralMapping{"routers": "router"}, mapping)

	exts, err := b.Build(mapping, cat, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)
	require.Len(t, exts, 1)

	ext := exts[0]
	assert.Equal(t, "routers", ext.Collection)
	assert.Equal(t, "router", ext.Resource())
	assert.Equal(t, "", ext.PathPrefix)
	assert.Equal(t, resource.MemberActions{}, ext.MemberActions)
	assert.Equal(t, resourcetest.RouterParams, ext.Params)
}

func TestBuild_PreservesCatalogOrder(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resource.NewCatalog()
	for _, n := range []string{"zones", "apples", "middles", "bananas"} {
		cat.Add(n, nil)
	}

	exts, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"zones", "apples", "middles", "bananas"}, collections(exts))
}

func TestBuild_TranslateName(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resourcetest.L3Catalog()
	mapping := resource.BuildPluralMappings(nil, cat)

	exts, err := b.Build(mapping, cat, l3Service, nil, resource.BuildOptions{TranslateName: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"routers", "floating-ips"}, collections(exts))
	assert.Equal(t, "floating_ip", exts[1].Resource(), "singular name is derived from the untranslated key")

	exts, err = b.Build(mapping, cat, l3Service, nil, resource.BuildOptions{TranslateName: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"routers", "floating_ips"}, collections(exts))
}

func TestBuild_ControllerGetsUntranslatedCollection(t *testing.T) {
	rec := &resourcetest.RecordingControllerFactory[*l3Plugin]{}
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Controllers: rec})
	cat := resourcetest.L3Catalog()

	_, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{TranslateName: true})
	require.NoError(t, err)

	params := rec.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "floating_ips", params[1].Collection)
	assert.Equal(t, "floating_ip", params[1].Resource)
}

func TestBuild_RegisterQuotaOncePerEntry(t *testing.T) {
	quotas := &resourcetest.RecordingQuotaRegistrar{}
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Quotas: quotas})
	cat := resourcetest.FirewallCatalog()
	mapping := resource.BuildPluralMappings(resourcetest.FirewallOverrides, cat)

	_, err := b.Build(mapping, cat, "FIREWALL", nil, resource.BuildOptions{RegisterQuota: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"firewall", "firewall_policy", "firewall_rule"}, quotas.Calls())
	assert.Equal(t, cat.Len(), quotas.CallCount())
}

func TestBuild_NoQuotaWhenDisabled(t *testing.T) {
	quotas := &resourcetest.RecordingQuotaRegistrar{}
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Quotas: quotas})
	cat := resourcetest.L3Catalog()

	_, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)
	assert.Zero(t, quotas.CallCount())
}

func TestBuild_RegisterQuotaWithoutRegistrar(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resourcetest.L3Catalog()

	exts, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{RegisterQuota: true})
	require.Error(t, err)
	assert.Nil(t, exts)
	assert.Contains(t, err.Error(), "no quota registrar")
}

func TestBuild_MemberActions(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resourcetest.L3Catalog()

	exts, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, resourcetest.RouterActions, resource.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, resourcetest.RouterActions["router"], exts[0].MemberActions)
	assert.Equal(t, resource.MemberActions{}, exts[1].MemberActions)
}

func TestBuild_MemberActionsDetachedFromCaller(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resource.NewCatalog(resource.CatalogEntry{Collection: "routers"})
	actions := resource.ActionMap{"router": {"add_router_interface": "PUT"}}

	exts, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, actions, resource.BuildOptions{})
	require.NoError(t, err)
	require.Len(t, exts, 1)

	actions["router"]["remove_router_interface"] = "PUT"

	ext := exts[0]
	assert.Equal(t, resource.MemberActions{"add_router_interface": "PUT"}, ext.MemberActions)
	assert.Len(t, ext.Routes(), 6)
}

func TestBuild_ReservedMemberAction(t *testing.T) {
	quotas := &resourcetest.RecordingQuotaRegistrar{}
	registry, _ := newL3Registry()
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Plugins: registry, Quotas: quotas})
	cat := resourcetest.L3Catalog()
	actions := resource.ActionMap{"floating_ip": {"show": "GET"}}

	exts, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, actions, resource.BuildOptions{RegisterQuota: true})
	require.Error(t, err)
	assert.Nil(t, exts)
	assert.ErrorIs(t, err, resource.ErrReservedAction)

	var rae *resource.ReservedActionError
	require.ErrorAs(t, err, &rae)
	assert.Equal(t, "floating_ip", rae.Resource)
	assert.Equal(t, "show", rae.Action)
	assert.Zero(t, quotas.CallCount())
	assert.Zero(t, registry.Calls.Load())
}

func TestBuild_FeatureFlagsReachController(t *testing.T) {
	rec := &resourcetest.RecordingControllerFactory[*l3Plugin]{}
	registry, plugin := newL3Registry()
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{
		Plugins:     registry,
		Controllers: rec,
		Settings:    resource.StaticSettings(true, false),
	})
	cat := resource.NewCatalog(resource.CatalogEntry{Collection: "routers", Params: resourcetest.RouterParams})

	_, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, resourcetest.RouterActions, resource.BuildOptions{AllowBulk: true})
	require.NoError(t, err)

	params := rec.Params()
	require.Len(t, params, 1)
	p := params[0]
	assert.Same(t, plugin, p.Plugin)
	assert.Equal(t, "routers", p.Collection)
	assert.Equal(t, "router", p.Resource)
	assert.Equal(t, resourcetest.RouterParams, p.Params)
	assert.Equal(t, resourcetest.RouterActions["router"], p.MemberActions)
	assert.True(t, p.AllowBulk)
	assert.True(t, p.AllowPagination)
	assert.False(t, p.AllowSorting)
}

func TestBuild_PathPrefixFromResolver(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resourcetest.FirewallCatalog()

	exts, err := b.Build(resource.BuildPluralMappings(resourcetest.FirewallOverrides, cat), cat, "FIREWALL", nil, resource.BuildOptions{})
	require.NoError(t, err)
	for _, e := range exts {
		assert.Equal(t, "/fw", e.PathPrefix, e.Collection)
	}
}

func TestBuild_CustomPrefixResolver(t *testing.T) {
	var asked []string
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{
		Prefixes: resource.PathPrefixFunc(func(service string) string {
			asked = append(asked, service)
			return "/custom"
		}),
	})
	cat := resourcetest.L3Catalog()

	exts, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/custom", exts[0].PathPrefix)
	assert.Equal(t, []string{l3Service}, asked, "prefix is resolved once per pass")
}

func TestBuild_CustomExtensionFactory(t *testing.T) {
	type call struct {
		collection string
		prefix     string
	}
	var calls []call
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{
		Extensions: resource.ExtensionFactoryFunc(func(collection string, c resource.Controller, prefix string, actions resource.MemberActions, params resource.ParamSpec) *resource.ResourceExtension {
			calls = append(calls, call{collection, prefix})
			return resource.NewResourceExtension(collection, c, prefix, actions, params)
		}),
	})
	cat := resourcetest.L3Catalog()

	_, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{TranslateName: true})
	require.NoError(t, err)

	want := []call{{"routers", ""}, {"floating-ips", ""}}
	if diff := cmp.Diff(want, calls, cmp.AllowUnexported(call{})); diff != "" {
		t.Errorf("extension factory calls: -want, +got:\n%s", diff)
	}
}

func TestBuild_EmptyCatalog(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})

	exts, err := b.Build(resource.PluralMapping{}, &resource.Catalog{}, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)
	assert.Empty(t, exts)
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestBuild_UnknownServiceIsAllOrNothing(t *testing.T) {
	quotas := &resourcetest.RecordingQuotaRegistrar{}
	rec := &resourcetest.RecordingControllerFactory[*l3Plugin]{}
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Quotas: quotas, Controllers: rec})
	cat := resourcetest.L3Catalog()

	exts, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, "VPN", nil, resource.BuildOptions{RegisterQuota: true})
	require.Error(t, err)
	assert.Nil(t, exts)
	assert.ErrorIs(t, err, resource.ErrUnknownService)
	assert.ErrorIs(t, err, resourcetest.ErrNoPlugin)

	var use *resource.UnknownServiceError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, "VPN", use.Service)

	assert.Zero(t, quotas.CallCount(), "no quota registered on failure")
	assert.Empty(t, rec.Params(), "no controller built on failure")
}

func TestBuild_UnknownServiceWithEmptyCatalog(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})

	_, err := b.Build(resource.PluralMapping{}, &resource.Catalog{}, "VPN", nil, resource.BuildOptions{})
	assert.ErrorIs(t, err, resource.ErrUnknownService)
}

func TestBuild_PluginLookedUpOncePerPass(t *testing.T) {
	registry, _ := newL3Registry()
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Plugins: registry})
	cat := resourcetest.L3Catalog()

	_, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, registry.Calls.Load())
}

func TestBuild_UnmappedResource(t *testing.T) {
	quotas := &resourcetest.RecordingQuotaRegistrar{}
	registry, _ := newL3Registry()
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Plugins: registry, Quotas: quotas})
	cat := resourcetest.L3Catalog()

	// Mapping built from a different catalog: floating_ips is missing.
	mapping := resource.PluralMapping{"routers": "router"}

	exts, err := b.Build(mapping, cat, l3Service, nil, resource.BuildOptions{RegisterQuota: true})
	require.Error(t, err)
	assert.Nil(t, exts)
	assert.ErrorIs(t, err, resource.ErrUnmappedResource)
	assert.NotErrorIs(t, err, resource.ErrUnknownService)

	var ure *resource.UnmappedResourceError
	require.ErrorAs(t, err, &ure)
	assert.Equal(t, "floating_ips", ure.Collection)
	assert.Zero(t, quotas.CallCount(), "router must not be registered before the failure is found")
}

func TestBuild_RegistryErrorIsWrapped(t *testing.T) {
	cause := errors.New("plugin process crashed")
	registry := &resourcetest.StubPluginRegistry[*l3Plugin]{
		GetFunc: func(string) (*l3Plugin, error) { return nil, cause },
	}
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Plugins: registry})
	cat := resourcetest.L3Catalog()

	_, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), l3Service)
}

// ---------------------------------------------------------------------------
// BuildResourceInfo
// ---------------------------------------------------------------------------

func TestBuildResourceInfo_Overrides(t *testing.T) {
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{})
	cat := resourcetest.FirewallCatalog()

	exts, err := b.BuildResourceInfo(resourcetest.FirewallOverrides, cat, "FIREWALL", nil, resource.BuildOptions{TranslateName: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"firewalls", "firewall-policies", "firewall-rules"}, collections(exts))
	assert.Equal(t, "firewall_policy", exts[1].Resource())
}

func TestBuildResourceInfo_WarnsOnSuspiciousSingular(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Logger: zap.New(core)})
	cat := resource.NewCatalog(
		resource.CatalogEntry{Collection: "routers"},
		resource.CatalogEntry{Collection: "policies"},
	)

	exts, err := b.BuildResourceInfo(nil, cat, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, "policie", exts[1].Resource(), "warning does not change the derived name")

	entries := logs.FilterField(zap.String("collection", "policies")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestBuild_LogsPassSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	b := newTestBuilder(t, resource.BuilderConfig[*l3Plugin]{Logger: zap.New(core)})
	cat := resourcetest.L3Catalog()

	_, err := b.Build(resource.BuildPluralMappings(nil, cat), cat, l3Service, nil, resource.BuildOptions{})
	require.NoError(t, err)

	entries := logs.FilterMessage("built resource extensions").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["count"])
	assert.Equal(t, l3Service, fields["service"])
	assert.NotEmpty(t, fields["pass"])
}
