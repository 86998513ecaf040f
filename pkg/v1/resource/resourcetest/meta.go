package resourcetest

import resource "github.com/omniviewdev/netsvc-sdk/pkg/v1/resource"

// Common test attribute maps for networking-style collections.

var RouterParams = resource.ParamSpec{
	"id":                    map[string]any{"allow_post": false, "allow_put": false, "is_visible": true},
	"name":                  map[string]any{"allow_post": true, "allow_put": true, "default": ""},
	"external_gateway_info": map[string]any{"allow_post": true, "allow_put": true, "default": nil},
}

var FloatingIPParams = resource.ParamSpec{
	"id":                  map[string]any{"allow_post": false, "allow_put": false, "is_visible": true},
	"floating_network_id": map[string]any{"allow_post": true, "allow_put": false},
	"port_id":             map[string]any{"allow_post": true, "allow_put": true, "default": nil},
}

var PolicyParams = resource.ParamSpec{
	"id":    map[string]any{"allow_post": false, "allow_put": false, "is_visible": true},
	"rules": map[string]any{"allow_post": true, "allow_put": true, "default": []any{}},
}

var HealthMonitorParams = resource.ParamSpec{
	"delay":   map[string]any{"allow_post": true, "allow_put": true},
	"timeout": map[string]any{"allow_post": true, "allow_put": true},
}

// L3Catalog returns the router service catalog: routers, then floating_ips.
func L3Catalog() *resource.Catalog {
	return resource.NewCatalog(
		resource.CatalogEntry{Collection: "routers", Params: RouterParams},
		resource.CatalogEntry{Collection: "floating_ips", Params: FloatingIPParams},
	)
}

// FirewallCatalog returns a catalog with an irregular plural ("firewall_policies").
func FirewallCatalog() *resource.Catalog {
	return resource.NewCatalog(
		resource.CatalogEntry{Collection: "firewalls", Params: resource.ParamSpec{}},
		resource.CatalogEntry{Collection: "firewall_policies", Params: PolicyParams},
		resource.CatalogEntry{Collection: "firewall_rules", Params: resource.ParamSpec{}},
	)
}

// FirewallOverrides fixes the irregular plural in FirewallCatalog.
var FirewallOverrides = resource.NameOverrides{"firewall_policies": "firewall_policy"}

// RouterActions declares the router interface member actions.
var RouterActions = resource.ActionMap{
	"router": {
		"add_router_interface":    "PUT",
		"remove_router_interface": "PUT",
	},
}
