package resource

// ResourceExtension describes one collection to mount on the API.
// Built fresh by each registration pass and not modified afterwards.
type ResourceExtension struct {
	// Collection is the externally visible collection name.
	Collection string `yaml:"collection" json:"collection"`

	// Controller handles requests for the collection.
	Controller Controller `yaml:"-" json:"-"`

	// PathPrefix is the URL prefix of the owning service (may be empty).
	PathPrefix string `yaml:"path_prefix" json:"path_prefix"`

	// MemberActions are the extra actions available on each member.
	MemberActions MemberActions `yaml:"member_actions,omitempty" json:"member_actions,omitempty"`

	// Params is the attribute definition for the collection.
	Params ParamSpec `yaml:"params,omitempty" json:"params,omitempty"`
}

// NewResourceExtension builds a ResourceExtension. It satisfies ExtensionFactory
// when wrapped in ExtensionFactoryFunc. memberActions is copied.
func NewResourceExtension(
	collection string,
	controller Controller,
	pathPrefix string,
	memberActions MemberActions,
	params ParamSpec,
) *ResourceExtension {
	return &ResourceExtension{
		Collection:    collection,
		Controller:    controller,
		PathPrefix:    pathPrefix,
		MemberActions: memberActions.Clone(),
		Params:        params,
	}
}

// Resource returns the singular resource name from the controller.
func (e *ResourceExtension) Resource() string {
	if e.Controller == nil {
		return ""
	}
	return e.Controller.Resource()
}

// Routes returns the controller's routes for the outward collection name,
// prefixed with PathPrefix. Returns nil if the controller does not implement
// RouteProvider.
func (e *ResourceExtension) Routes() []Route {
	rp, ok := e.Controller.(RouteProvider)
	if !ok {
		return nil
	}
	routes := rp.Routes(e.Collection)
	for i := range routes {
		routes[i].Path = e.PathPrefix + routes[i].Path
	}
	return routes
}
