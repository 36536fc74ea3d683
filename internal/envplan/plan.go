package envplan

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/util/naming"
)

// Global environment keys.
const (
	KeyClusterName          = "CLUSTER_NAME"
	KeyDefaultNamespace     = "DEFAULT_NAMESPACE"
	KeyEngineType           = "ENGINE_TYPE"
	KeyCNIPlugin            = "CNI_PLUGIN"
	KeyAPIServerPort        = "API_SERVER_PORT"
	KeyControlPlaneEndpoint = "CONTROL_PLANE_ENDPOINT"
	KeyPodCIDR              = "POD_CIDR"
	KeyServiceCIDR          = "SERVICE_CIDR"
	KeyCloudProvider        = "CLOUD_PROVIDER"
)

// Per-VM environment keys.
const (
	KeyVMName       = "VM_NAME"
	KeyVMRole       = "VM_ROLE"
	KeyVMIP         = "VM_IP"
	KeyControlPlane = "CONTROL_PLANE"
)

// awsPlaceholders are resolved by the shell when the scripts run.
var awsPlaceholders = []string{"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"}

// Planning errors.
var (
	ErrNoVMs                = errors.New("cluster has no VMs")
	ErrUnknownCloudProvider = errors.New("unknown cloud provider")
)

// Options carry the settings that shape the environment.
type Options struct {
	// PodCIDR and ServiceCIDR are emitted for kubeadm clusters when non-empty.
	PodCIDR     string
	ServiceCIDR string
	// CloudProvider enables provider placeholders; empty disables them.
	CloudProvider string
}

// OptionsFromSettings maps settings to planner options.
func OptionsFromSettings(s config.Settings) Options {
	return Options{
		PodCIDR:       s.Network.PodCIDR,
		ServiceCIDR:   s.Network.ServiceCIDR,
		CloudProvider: s.CloudProvider,
	}
}

// VMEnv is the environment of one VM.
type VMEnv struct {
	Name string `json:"name"`
	Env  Env    `json:"env"`
}

// EnvSet is the complete environment of a cluster.
type EnvSet struct {
	Global Env     `json:"global"`
	PerVM  []VMEnv `json:"vms"`
}

// VM returns the environment of the named VM.
func (s EnvSet) VM(name string) (Env, bool) {
	for _, v := range s.PerVM {
		if v.Name == name {
			return v.Env, true
		}
	}
	return Env{}, false
}

// VMNames returns the VM names in plan order.
func (s EnvSet) VMNames() []string {
	names := make([]string, len(s.PerVM))
	for i, v := range s.PerVM {
		names[i] = v.Name
	}
	return names
}

// Plan derives the environment of spec running on vms.
// VM environments follow the order of vms.
func Plan(spec config.ClusterSpec, vms []config.VMConfig, opts Options) (EnvSet, error) {
	if len(vms) == 0 {
		return EnvSet{}, fmt.Errorf("cluster %q: %w", spec.Name, ErrNoVMs)
	}

	global, err := globalEnv(spec, vms, opts)
	if err != nil {
		return EnvSet{}, fmt.Errorf("cluster %q: %w", spec.Name, err)
	}

	seen := make(map[string]struct{}, len(vms))
	perVM := make([]VMEnv, 0, len(vms))
	for _, vm := range vms {
		name := vm.Name.String()
		if _, dup := seen[name]; dup {
			return EnvSet{}, fmt.Errorf("cluster %q: duplicate VM %q", spec.Name, name)
		}
		seen[name] = struct{}{}
		perVM = append(perVM, VMEnv{Name: name, Env: vmEnv(spec, vm)})
	}

	return EnvSet{Global: global, PerVM: perVM}, nil
}

func globalEnv(spec config.ClusterSpec, vms []config.VMConfig, opts Options) (Env, error) {
	var env Env
	env.set(KeyClusterName, spec.Name)
	env.set(KeyDefaultNamespace, naming.Namespace(spec.Name))
	env.set(KeyEngineType, spec.Engine.Tag())

	if spec.Engine.IsMultiNode() {
		if spec.CNI.IsSet() {
			env.set(KeyCNIPlugin, string(spec.CNI))
		}
		env.set(KeyAPIServerPort, strconv.Itoa(config.KubeAPIPort))
		if ip, ok := firstMaster(vms); ok {
			env.set(KeyControlPlaneEndpoint, netip.AddrPortFrom(ip, config.KubeAPIPort).String())
		}
		if opts.PodCIDR != "" {
			env.set(KeyPodCIDR, opts.PodCIDR)
		}
		if opts.ServiceCIDR != "" {
			env.set(KeyServiceCIDR, opts.ServiceCIDR)
		}
	}

	switch opts.CloudProvider {
	case "":
	case config.CloudProviderAWS:
		env.set(KeyCloudProvider, config.CloudProviderAWS)
		for _, k := range awsPlaceholders {
			env.set(k, "${"+k+"}")
		}
	default:
		return Env{}, fmt.Errorf("%w: %q", ErrUnknownCloudProvider, opts.CloudProvider)
	}
	return env, nil
}

func vmEnv(spec config.ClusterSpec, vm config.VMConfig) Env {
	var env Env
	env.set(KeyVMName, vm.Name.String())
	env.set(KeyVMRole, vm.Role.Tag())
	env.set(KeyVMIP, vm.IP.String())
	if spec.Engine.IsMultiNode() && vm.Role == config.RoleMaster {
		env.set(KeyControlPlane, "true")
	}
	return env
}

func firstMaster(vms []config.VMConfig) (netip.Addr, bool) {
	for _, vm := range vms {
		if vm.Role == config.RoleMaster {
			return vm.IP, true
		}
	}
	return netip.Addr{}, false
}
