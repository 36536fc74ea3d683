package envplan

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kubelab/internal/config"
)

func vm(name string, role config.NodeRole, ip string) config.VMConfig {
	return config.VMConfig{
		Name: config.MustVMName(name),
		Role: role,
		IP:   netip.MustParseAddr(ip),
		Size: config.SizeMedium,
	}
}

func prodCluster() (config.ClusterSpec, []config.VMConfig) {
	spec := config.ClusterSpec{
		Name:    "prod",
		Engine:  config.EngineKubeadm,
		Masters: 2,
		Workers: 1,
		Size:    config.SizeMedium,
		CNI:     config.CNIFlannel,
	}
	vms := []config.VMConfig{
		vm("prod-master-1", config.RoleMaster, "10.0.0.10"),
		vm("prod-master-2", config.RoleMaster, "10.0.0.11"),
		vm("prod-worker-1", config.RoleWorker, "10.0.0.12"),
	}
	return spec, vms
}

func TestPlan_MultiNodeGlobal(t *testing.T) {
	spec, vms := prodCluster()
	set, err := Plan(spec, vms, OptionsFromSettings(*config.DefaultSettings()))
	require.NoError(t, err)

	assert.Equal(t, []string{
		KeyClusterName, KeyDefaultNamespace, KeyEngineType,
		KeyCNIPlugin, KeyAPIServerPort, KeyControlPlaneEndpoint,
		KeyPodCIDR, KeyServiceCIDR,
	}, set.Global.Keys())
	assert.Equal(t, map[string]string{
		KeyClusterName:          "prod",
		KeyDefaultNamespace:     "prod",
		KeyEngineType:           "kubeadm",
		KeyCNIPlugin:            "flannel",
		KeyAPIServerPort:        "6443",
		KeyControlPlaneEndpoint: "10.0.0.10:6443",
		KeyPodCIDR:              config.DefaultPodCIDR,
		KeyServiceCIDR:          config.DefaultServiceCIDR,
	}, set.Global.Map())
}

func TestPlan_ControlPlaneMarker(t *testing.T) {
	spec, vms := prodCluster()
	set, err := Plan(spec, vms, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"prod-master-1", "prod-master-2", "prod-worker-1"}, set.VMNames())

	for _, name := range []string{"prod-master-1", "prod-master-2"} {
		env, ok := set.VM(name)
		require.True(t, ok)
		v, _ := env.Get(KeyControlPlane)
		assert.Equal(t, "true", v, name)
	}

	worker, ok := set.VM("prod-worker-1")
	require.True(t, ok)
	assert.False(t, worker.Has(KeyControlPlane))
	assert.Equal(t, map[string]string{
		KeyVMName: "prod-worker-1",
		KeyVMRole: "worker",
		KeyVMIP:   "10.0.0.12",
	}, worker.Map())
}

func TestPlan_SingleNodeHasNoMultiNodeKeys(t *testing.T) {
	for _, engine := range []config.EngineType{config.EngineKind, config.EngineMinikube, config.EngineNone} {
		t.Run(string(engine), func(t *testing.T) {
			role := config.RoleCluster
			if engine.IsManagement() {
				role = config.RoleManagement
			}
			spec := config.ClusterSpec{Name: "lab", Engine: engine, Size: config.SizeSmall}
			set, err := Plan(spec, []config.VMConfig{vm("lab", role, "192.168.56.10")}, OptionsFromSettings(*config.DefaultSettings()))
			require.NoError(t, err)

			assert.Equal(t, []string{KeyClusterName, KeyDefaultNamespace, KeyEngineType}, set.Global.Keys())
			assert.False(t, set.Global.Has(KeyCNIPlugin))
			assert.False(t, set.Global.Has(KeyPodCIDR))

			env, _ := set.VM("lab")
			assert.False(t, env.Has(KeyControlPlane))
			v, _ := env.Get(KeyVMRole)
			assert.Equal(t, role.Tag(), v)
		})
	}
}

func TestPlan_CloudProvider(t *testing.T) {
	spec := config.ClusterSpec{Name: "lab", Engine: config.EngineKind}
	vms := []config.VMConfig{vm("lab", config.RoleCluster, "10.0.0.10")}

	set, err := Plan(spec, vms, Options{CloudProvider: config.CloudProviderAWS})
	require.NoError(t, err)
	v, _ := set.Global.Get(KeyCloudProvider)
	assert.Equal(t, "aws", v)
	v, _ = set.Global.Get("AWS_REGION")
	assert.Equal(t, "${AWS_REGION}", v)
	assert.True(t, set.Global.Has("AWS_SECRET_ACCESS_KEY"))

	_, err = Plan(spec, vms, Options{CloudProvider: "gcp"})
	assert.ErrorIs(t, err, ErrUnknownCloudProvider)
}

func TestPlan_Errors(t *testing.T) {
	spec, vms := prodCluster()

	_, err := Plan(spec, nil, Options{})
	assert.ErrorIs(t, err, ErrNoVMs)

	_, err = Plan(spec, append(vms, vms[0]), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate VM")
}

func TestPlan_Deterministic(t *testing.T) {
	spec, vms := prodCluster()
	opts := Options{PodCIDR: "10.244.0.0/16", CloudProvider: config.CloudProviderAWS}

	a, err := Plan(spec, vms, opts)
	require.NoError(t, err)
	b, err := Plan(spec, vms, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEnv(t *testing.T) {
	e := NewEnv("B", "2", "A", "1")
	e.set("B", "3")

	assert.Equal(t, []string{"B", "A"}, e.Keys())
	assert.Equal(t, 2, e.Len())

	var pairs []string
	for k, v := range e.All() {
		pairs = append(pairs, k+"="+v)
	}
	assert.Equal(t, []string{"B=3", "A=1"}, pairs)

	var zero Env
	assert.Empty(t, zero.Map())
	assert.False(t, zero.Has("A"))

	assert.Panics(t, func() { NewEnv("odd") })
}
