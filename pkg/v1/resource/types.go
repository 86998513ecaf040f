package resource

import (
	"sort"
	"strings"
)

// ============================================================================
// Member actions
// ============================================================================

// MemberActions maps an action name to the HTTP method it is served with
// (e.g., "add_router_interface" -> "PUT"). Actions operate on a single member
// of a collection.
type MemberActions map[string]string

// Names returns the action names sorted alphabetically.
func (m MemberActions) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the actions. A nil receiver yields an empty map.
func (m MemberActions) Clone() MemberActions {
	out := make(MemberActions, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ActionMap maps a singular resource name to its member actions.
type ActionMap map[string]MemberActions

// For returns the member actions for a resource, or an empty set.
func (a ActionMap) For(resource string) MemberActions {
	if actions, ok := a[resource]; ok && actions != nil {
		return actions
	}
	return MemberActions{}
}

// ============================================================================
// Build options
// ============================================================================

// BuildOptions toggles the optional steps of a registration pass.
type BuildOptions struct {
	// RegisterQuota registers every resource with the quota registrar.
	RegisterQuota bool `yaml:"register_quota"`

	// TranslateName exposes collections with hyphens instead of underscores
	// (e.g., "floating_ips" -> "floating-ips").
	TranslateName bool `yaml:"translate_name"`

	// AllowBulk enables bulk create on every collection.
	AllowBulk bool `yaml:"allow_bulk"`
}

// TranslateCollection returns the externally visible collection name.
func TranslateCollection(collection string, translate bool) string {
	if !translate {
		return collection
	}
	return strings.ReplaceAll(collection, "_", "-")
}

// ============================================================================
// Routes
// ============================================================================

// RouteAction identifies what a route does.
type RouteAction string

const (
	RouteIndex  RouteAction = "index"
	RouteCreate RouteAction = "create"
	RouteShow   RouteAction = "show"
	RouteUpdate RouteAction = "update"
	RouteDelete RouteAction = "delete"
)

// IsCRUDAction reports whether name is one of the CRUD route actions. Member
// actions may not use these names.
func IsCRUDAction(name string) bool {
	switch RouteAction(name) {
	case RouteIndex, RouteCreate, RouteShow, RouteUpdate, RouteDelete:
		return true
	}
	return false
}

// Route is one REST endpoint a controller answers.
type Route struct {
	// Action is the CRUD action, or the member action name.
	Action RouteAction `yaml:"action" json:"action"`

	// Method is the HTTP method.
	Method string `yaml:"method" json:"method"`

	// Path is the URL path template (e.g., "/routers/{id}").
	Path string `yaml:"path" json:"path"`

	// Member is true for routes addressing a single member.
	Member bool `yaml:"member,omitempty" json:"member,omitempty"`

	// Bulk is true when the route accepts a list of members.
	Bulk bool `yaml:"bulk,omitempty" json:"bulk,omitempty"`
}
