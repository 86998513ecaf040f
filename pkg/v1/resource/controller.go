package resource

import (
	"net/http"
	"strings"
)

// ResourceController is the default controller handle. It records how a
// collection should be served; dispatching requests is left to the API layer
// that mounts it.
type ResourceController[PluginT any] struct {
	collection      string
	resource        string
	plugin          PluginT
	params          ParamSpec
	memberActions   MemberActions
	allowBulk       bool
	allowPagination bool
	allowSorting    bool
}

// NewController creates a ResourceController from params. The member actions
// are copied so later changes by the caller do not leak in.
func NewController[PluginT any](p ControllerParams[PluginT]) *ResourceController[PluginT] {
	return &ResourceController[PluginT]{
		collection:      p.Collection,
		resource:        p.Resource,
		plugin:          p.Plugin,
		params:          p.Params,
		memberActions:   p.MemberActions.Clone(),
		allowBulk:       p.AllowBulk,
		allowPagination: p.AllowPagination,
		allowSorting:    p.AllowSorting,
	}
}

// NewControllerFactory returns a ControllerFactory producing ResourceControllers.
func NewControllerFactory[PluginT any]() ControllerFactory[PluginT] {
	return ControllerFactoryFunc[PluginT](func(p ControllerParams[PluginT]) Controller {
		return NewController(p)
	})
}

func (c *ResourceController[PluginT]) Collection() string { return c.collection }
func (c *ResourceController[PluginT]) Resource() string { return c.resource }
func (c *ResourceController[PluginT]) Plugin() PluginT { return c.plugin }
func (c *ResourceController[PluginT]) Params() ParamSpec { return c.params }

// MemberActions returns a copy of the controller's member actions.
func (c *ResourceController[PluginT]) MemberActions() MemberActions {
	return c.memberActions.Clone()
}

func (c *ResourceController[PluginT]) AllowBulk() bool { return c.allowBulk }
func (c *ResourceController[PluginT]) AllowPagination() bool { return c.allowPagination }
func (c *ResourceController[PluginT]) AllowSorting() bool { return c.allowSorting }

// Routes returns the CRUD routes followed by one route per member action,
// sorted by action name. Member actions named after a CRUD action are
// skipped. An empty collection argument uses the controller's own collection
// name.
func (c *ResourceController[PluginT]) Routes(collection string) []Route {
	if collection == "" {
		collection = c.collection
	}
	base := "/" + collection
	member := base + "/{id}"

	routes := []Route{
		{Action: RouteIndex, Method: http.MethodGet, Path: base},
		{Action: RouteCreate, Method: http.MethodPost, Path: base, Bulk: c.allowBulk},
		{Action: RouteShow, Method: http.MethodGet, Path: member, Member: true},
		{Action: RouteUpdate, Method: http.MethodPut, Path: member, Member: true},
		{Action: RouteDelete, Method: http.MethodDelete, Path: member, Member: true},
	}
	for _, name := range c.memberActions.Names() {
		if IsCRUDAction(name) {
			continue
		}
		routes = append(routes, Route{
			Action: RouteAction(name),
			Method: strings.ToUpper(c.memberActions[name]),
			Path:   member + "/" + name,
			Member: true,
		})
	}
	return routes
}
