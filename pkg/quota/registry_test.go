package quota

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniviewdev/netsvc-sdk/pkg/config"
)

func newTestRegistry() *Registry {
	return NewRegistry(config.QuotaConfig{
		Default: config.Unlimited,
		Limits:  map[string]int{"router": 10},
	}, nil)
}

func TestRegistry_RegisterResource(t *testing.T) {
	r := newTestRegistry()
	r.RegisterResource("router")

	res, ok := r.Resource("router")
	require.True(t, ok)
	assert.Equal(t, Resource{Name: "router", DefaultLimit: 10}, res)
	assert.True(t, r.IsRegistered("router"))
}

func TestRegistry_DefaultLimitFallback(t *testing.T) {
	r := newTestRegistry()
	r.RegisterResource("floatingip")

	res, ok := r.Resource("floatingip")
	require.True(t, ok)
	assert.Equal(t, config.Unlimited, res.DefaultLimit)
}

func TestRegistry_RegisterIsIdempotent(t *testing.T) {
	r := newTestRegistry()
	r.RegisterResource("router")
	r.RegisterResource("router")

	assert.Len(t, r.Resources(), 1)
}

func TestRegistry_UnknownResource(t *testing.T) {
	r := newTestRegistry()
	_, ok := r.Resource("network")
	assert.False(t, ok)
	assert.False(t, r.IsRegistered("network"))
}

func TestRegistry_ResourcesSorted(t *testing.T) {
	r := newTestRegistry()
	for _, name := range []string{"vip", "pool", "member", "health_monitor"} {
		r.RegisterResource(name)
	}

	var names []string
	for _, res := range r.Resources() {
		names = append(names, res.Name)
	}
	assert.Equal(t, []string{"health_monitor", "member", "pool", "vip"}, names)
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	r := newTestRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.RegisterResource(fmt.Sprintf("res%d", j%10))
				_ = r.IsRegistered("router")
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.Resources(), 10)
}
