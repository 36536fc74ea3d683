package config

import (
	"math"
	"net/netip"
	"slices"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/imamik/kubelab/internal/util/naming"
	"github.com/imamik/kubelab/internal/util/ptr"
)

// ClusterSpec is the desired shape of one cluster.
//
// It arrives sparse (counts and engine only) and is replaced by an enriched
// copy carrying explicit VMs once the orchestrator resolves it. Stages never
// mutate a ClusterSpec they receive; use Clone or WithVMs.
type ClusterSpec struct {
	// Name is the cluster name, used as prefix for every VM name.
	// Must be a DNS-1035 label: lowercase alphanumeric and hyphens, starting with a letter.
	Name string `yaml:"name" json:"name"`

	// Engine selects the Kubernetes runtime.
	Engine EngineType `yaml:"engine" json:"engine"`

	// FirstIP is the optional explicit first IPv4 address.
	// Required when more than one cluster is compiled together.
	FirstIP string `yaml:"first_ip,omitempty" json:"firstIP,omitempty"`

	// Masters is the control plane count. Zero for single-node and management engines.
	Masters int `yaml:"masters" json:"masters"`

	// Workers is the worker count. Zero for single-node and management engines.
	Workers int `yaml:"workers" json:"workers"`

	// Size is the CPU/memory profile applied to every VM.
	Size SizeProfile `yaml:"size" json:"size"`

	// CNI is the networking plugin. Required for kubeadm, forbidden otherwise.
	CNI CNIType `yaml:"cni,omitempty" json:"cni,omitempty"`

	// Tools lists extra management-side tools to install (engine none only).
	Tools []string `yaml:"tools,omitempty" json:"tools,omitempty"`

	// VMs holds the explicit machines; empty until resolved.
	VMs []VMConfig `yaml:"-" json:"vms,omitempty"`
}

// VMConfig is one resolved machine.
type VMConfig struct {
	Name VMName      `json:"name"`
	Role NodeRole    `json:"role"`
	IP   netip.Addr  `json:"ip"`
	Size SizeProfile `json:"size"`

	// CPUs and Memory override the size profile when set.
	CPUs   *int               `json:"cpus,omitempty"`
	Memory *resource.Quantity `json:"memory,omitempty"`
}

// Resources returns the effective CPU and memory of the VM.
func (v VMConfig) Resources() Resources {
	r := v.Size.Resources()
	r.CPUs = ptr.Deref(v.CPUs, r.CPUs)
	if v.Memory != nil {
		r.Memory = v.Memory.DeepCopy()
	}
	return r
}

// HasExplicitVMs reports whether the VMs have already been resolved.
func (c *ClusterSpec) HasExplicitVMs() bool {
	return len(c.VMs) > 0
}

// HasFirstIP reports whether an explicit first IP was given.
func (c *ClusterSpec) HasFirstIP() bool {
	return c.FirstIP != ""
}

// ExpectedVMCount returns the number of VMs implied by engine and counts.
// Negative counts contribute nothing and the sum saturates at math.MaxInt.
func (c *ClusterSpec) ExpectedVMCount() int {
	if !c.Engine.IsMultiNode() {
		return 1
	}
	masters, workers := max(c.Masters, 0), max(c.Workers, 0)
	if workers > math.MaxInt-masters {
		return math.MaxInt
	}
	return masters + workers
}

// VMCount returns the explicit VM count if resolved, else the expected one.
func (c *ClusterSpec) VMCount() int {
	if c.HasExplicitVMs() {
		return len(c.VMs)
	}
	return c.ExpectedVMCount()
}

// PlannedVMNames returns the explicit VM names if resolved, otherwise the
// names the generator will produce, in generation order. The result holds
// VMCount names, so callers bound the counts first.
func (c *ClusterSpec) PlannedVMNames() []string {
	if c.HasExplicitVMs() {
		names := make([]string, 0, len(c.VMs))
		for _, vm := range c.VMs {
			names = append(names, vm.Name.String())
		}
		return names
	}
	if !c.Engine.IsMultiNode() {
		return []string{naming.SingleNode(c.Name)}
	}
	names := make([]string, 0, c.ExpectedVMCount())
	for i := 1; i <= c.Masters; i++ {
		names = append(names, naming.Master(c.Name, i))
	}
	for i := 1; i <= c.Workers; i++ {
		names = append(names, naming.Worker(c.Name, i))
	}
	return names
}

// Clone returns a deep copy of the spec.
func (c ClusterSpec) Clone() ClusterSpec {
	out := c
	out.Tools = slices.Clone(c.Tools)
	out.VMs = cloneVMs(c.VMs)
	return out
}

// WithVMs returns a copy of the spec carrying the given VMs.
func (c ClusterSpec) WithVMs(vms []VMConfig) ClusterSpec {
	out := c.Clone()
	out.VMs = cloneVMs(vms)
	return out
}

func cloneVMs(vms []VMConfig) []VMConfig {
	if vms == nil {
		return nil
	}
	out := make([]VMConfig, len(vms))
	for i, vm := range vms {
		out[i] = vm
		if vm.CPUs != nil {
			cpus := *vm.CPUs
			out[i].CPUs = &cpus
		}
		if vm.Memory != nil {
			mem := vm.Memory.DeepCopy()
			out[i].Memory = &mem
		}
	}
	return out
}
