package types

// ServiceType identifies a service plugin. Using strings allows direct matching
// with YAML/JSON config values and makes adding new services non-breaking.
type ServiceType string

const (
	ServiceCore           ServiceType = "CORE"
	ServiceDummy          ServiceType = "DUMMY"
	ServiceLoadBalancer   ServiceType = "LOADBALANCER"
	ServiceLoadBalancerV2 ServiceType = "LOADBALANCERV2"
	ServiceFirewall       ServiceType = "FIREWALL"
	ServiceVPN            ServiceType = "VPN"
	ServiceMetering       ServiceType = "METERING"
	ServiceL3RouterNAT    ServiceType = "L3_ROUTER_NAT"
)

// commonPrefixes maps each service to the URL prefix its resources are mounted under.
var commonPrefixes = map[ServiceType]string{
	ServiceCore:           "",
	ServiceDummy:          "/dummy_svc",
	ServiceLoadBalancer:   "/lb",
	ServiceLoadBalancerV2: "/lbaas",
	ServiceFirewall:       "/fw",
	ServiceVPN:            "/vpn",
	ServiceMetering:       "/metering",
	ServiceL3RouterNAT:    "",
}

// PathPrefix returns the path prefix for a service. Unknown services have no prefix.
func PathPrefix(service string) string {
	return commonPrefixes[ServiceType(service)]
}

// HasPrefix returns true if the service mounts its resources under a non-empty prefix.
func (s ServiceType) HasPrefix() bool {
	return commonPrefixes[s] != ""
}

// String implements the Stringer interface.
func (s ServiceType) String() string {
	return string(s)
}

// AllServiceTypes returns all known service types.
func AllServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceCore,
		ServiceDummy,
		ServiceLoadBalancer,
		ServiceLoadBalancerV2,
		ServiceFirewall,
		ServiceVPN,
		ServiceMetering,
		ServiceL3RouterNAT,
	}
}

// ParseServiceType converts a string to a ServiceType.
// Returns the ServiceType and true if known, or empty and false if unknown.
func ParseServiceType(s string) (ServiceType, bool) {
	st := ServiceType(s)
	if _, ok := commonPrefixes[st]; ok {
		return st, true
	}
	return "", false
}
