package manager

import (
	"context"
	"errors"

	goplugin "github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
)

// Handshake is the handshake service plugin processes serve with.
var Handshake = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "NETSVC_PLUGIN",
	MagicCookieValue: "network-service",
}

// ServicePlugin implements hashicorp/go-plugin.GRPCPlugin for a service
// plugin. The client side dispenses the raw *grpc.ClientConn; callers wrap it
// in the service's generated client.
type ServicePlugin struct {
	goplugin.Plugin

	// Register installs the service implementation on the plugin's gRPC
	// server. Only needed in the plugin process.
	Register func(s *grpc.Server) error
}

// GRPCServer registers the service plugin on the given gRPC server.
func (p *ServicePlugin) GRPCServer(_ *goplugin.GRPCBroker, s *grpc.Server) error {
	if p.Register == nil {
		return errors.New("service plugin has no server registration")
	}
	return p.Register(s)
}

// GRPCClient returns the connection to the plugin process.
func (p *ServicePlugin) GRPCClient(_ context.Context, _ *goplugin.GRPCBroker, c *grpc.ClientConn) (interface{}, error) {
	return c, nil
}
