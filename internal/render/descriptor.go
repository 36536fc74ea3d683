package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/util/labels"
	"github.com/imamik/kubelab/internal/util/naming"
)

// Descriptor identification.
const (
	APIVersion     = "kubelab.io/v1"
	DescriptorKind = "Topology"
)

// vmNamespace seeds the name-based VM UUIDs.
var vmNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("vm.kubelab.io"))

// Descriptor is the provisioning descriptor of one cluster.
type Descriptor struct {
	APIVersion string      `json:"apiVersion"`
	Kind       string      `json:"kind"`
	Cluster    ClusterInfo `json:"cluster"`
	VMs        []VM        `json:"vms"`
	Installers []string    `json:"installers,omitempty"`
}

// ClusterInfo describes the cluster as a whole.
type ClusterInfo struct {
	Name      string `json:"name"`
	Engine    string `json:"engine"`
	Namespace string `json:"namespace"`
	Size      string `json:"size,omitempty"`
	CNI       string `json:"cni,omitempty"`
}

// VM is one machine of the descriptor.
type VM struct {
	Name      string            `json:"name"`
	UUID      string            `json:"uuid"`
	Role      string            `json:"role"`
	IP        string            `json:"ip"`
	CPUs      int               `json:"cpus"`
	MemoryMiB int64             `json:"memoryMiB"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// VMUUID returns the stable UUID of a VM, derived from cluster and VM name.
func VMUUID(cluster, vm string) string {
	return uuid.NewSHA1(vmNamespace, []byte(cluster+"/"+vm)).String()
}

// NewDescriptor builds the descriptor of a resolved cluster.
func NewDescriptor(spec config.ClusterSpec, installers []string) Descriptor {
	d := Descriptor{
		APIVersion: APIVersion,
		Kind:       DescriptorKind,
		Cluster: ClusterInfo{
			Name:      spec.Name,
			Engine:    spec.Engine.Tag(),
			Namespace: naming.Namespace(spec.Name),
			Size:      string(spec.Size),
			CNI:       string(spec.CNI),
		},
		VMs:        make([]VM, 0, len(spec.VMs)),
		Installers: installers,
	}

	for _, vm := range spec.VMs {
		res := vm.Resources()
		d.VMs = append(d.VMs, VM{
			Name:      vm.Name.String(),
			UUID:      VMUUID(spec.Name, vm.Name.String()),
			Role:      vm.Role.Tag(),
			IP:        vm.IP.String(),
			CPUs:      res.CPUs,
			MemoryMiB: res.MemoryMiB(),
			Labels: labels.NewLabelBuilder(spec.Name).
				WithRole(vm.Role.Tag()).
				WithEngine(spec.Engine.Tag()).
				WithSize(string(vm.Size)).
				WithControlPlaneIf(vm.Role == config.RoleMaster).
				Build(),
		})
	}
	return d
}

// MarshalYAML renders descriptors as a multi-document YAML stream.
func MarshalYAML(descs ...Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	for i, d := range descs {
		out, err := sigsyaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal descriptor %q: %w", d.Cluster.Name, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(out)
	}
	return buf.Bytes(), nil
}

// MarshalJSON renders descriptors as an indented JSON array.
func MarshalJSON(descs ...Descriptor) ([]byte, error) {
	if descs == nil {
		descs = []Descriptor{}
	}
	out, err := json.MarshalIndent(descs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal descriptors: %w", err)
	}
	return append(out, '\n'), nil
}

