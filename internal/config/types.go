package config

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

// EngineType is the local Kubernetes runtime a cluster targets.
type EngineType string

const (
	// EngineKind is a single-node cluster running inside containers.
	EngineKind EngineType = "kind"
	// EngineMinikube is a single-node cluster running in a VM.
	EngineMinikube EngineType = "minikube"
	// EngineKubeadm is a full multi-node control-plane/worker cluster.
	EngineKubeadm EngineType = "kubeadm"
	// EngineNone is a management-only machine without Kubernetes.
	EngineNone EngineType = "none"
)

// ValidEngineTypes returns all valid engine types.
func ValidEngineTypes() []EngineType {
	return []EngineType{EngineKind, EngineMinikube, EngineKubeadm, EngineNone}
}

// ParseEngineType converts user input to an EngineType.
// Matching is case-insensitive; "management" is accepted as an alias for none.
func ParseEngineType(s string) (EngineType, error) {
	e := EngineType(strings.ToLower(strings.TrimSpace(s)))
	if e == "management" {
		e = EngineNone
	}
	if !e.IsValid() {
		return "", fmt.Errorf("unknown engine %q: must be one of %v", s, ValidEngineTypes())
	}
	return e, nil
}

// IsValid returns true if the engine type is known.
func (e EngineType) IsValid() bool {
	switch e {
	case EngineKind, EngineMinikube, EngineKubeadm, EngineNone:
		return true
	default:
		return false
	}
}

// IsSingleNode reports whether the engine runs the whole cluster on one VM.
func (e EngineType) IsSingleNode() bool {
	return e == EngineKind || e == EngineMinikube
}

// IsMultiNode reports whether the engine has separate masters and workers.
func (e EngineType) IsMultiNode() bool {
	return e == EngineKubeadm
}

// IsManagement reports whether the engine provisions a management-only VM.
func (e EngineType) IsManagement() bool {
	return e == EngineNone
}

// RequiresCNI reports whether a CNI plugin must be selected.
func (e EngineType) RequiresCNI() bool {
	return e.IsMultiNode()
}

// Tag returns the lower-cased engine identifier used in scripts.
func (e EngineType) Tag() string {
	return strings.ToLower(string(e))
}

// NodeRole is the function a VM has within its cluster.
type NodeRole string

const (
	// RoleCluster is the single VM of a kind or minikube cluster.
	RoleCluster NodeRole = "cluster"
	// RoleMaster is a control-plane node of a kubeadm cluster.
	RoleMaster NodeRole = "master"
	// RoleWorker is a worker node of a kubeadm cluster.
	RoleWorker NodeRole = "worker"
	// RoleManagement is the VM of a management-only cluster.
	RoleManagement NodeRole = "management"
)

// IsValid returns true if the role is known.
func (r NodeRole) IsValid() bool {
	switch r {
	case RoleCluster, RoleMaster, RoleWorker, RoleManagement:
		return true
	default:
		return false
	}
}

// Tag returns the lower-cased role identifier used in scripts.
func (r NodeRole) Tag() string {
	return strings.ToLower(string(r))
}

// SizeProfile is a named CPU and memory preset.
type SizeProfile string

const (
	// SizeSmall is 1 vCPU, 2Gi memory.
	SizeSmall SizeProfile = "small"
	// SizeMedium is 2 vCPU, 4Gi memory.
	SizeMedium SizeProfile = "medium"
	// SizeLarge is 4 vCPU, 8Gi memory.
	SizeLarge SizeProfile = "large"
)

// ValidSizeProfiles returns all valid size profiles.
func ValidSizeProfiles() []SizeProfile {
	return []SizeProfile{SizeSmall, SizeMedium, SizeLarge}
}

// IsValid returns true if the size profile is known.
func (s SizeProfile) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// Resources is the CPU and memory assigned to a VM.
type Resources struct {
	CPUs   int
	Memory resource.Quantity
}

// MemoryMiB returns the memory in mebibytes, the unit hypervisors expect.
func (r Resources) MemoryMiB() int64 {
	return r.Memory.Value() / (1024 * 1024)
}

// Resources returns the defaults for this profile.
// Unknown profiles return zero resources.
func (s SizeProfile) Resources() Resources {
	switch s {
	case SizeSmall:
		return Resources{CPUs: 1, Memory: resource.MustParse("2Gi")}
	case SizeMedium:
		return Resources{CPUs: 2, Memory: resource.MustParse("4Gi")}
	case SizeLarge:
		return Resources{CPUs: 4, Memory: resource.MustParse("8Gi")}
	default:
		return Resources{}
	}
}

// String returns a human-readable description of the size profile.
func (s SizeProfile) String() string {
	if !s.IsValid() {
		return string(s)
	}
	r := s.Resources()
	return fmt.Sprintf("%s (%d vCPU, %s)", string(s), r.CPUs, r.Memory.String())
}

// CNIType is the container networking plugin of a multi-node cluster.
type CNIType string

const (
	// CNINone means no plugin is selected.
	CNINone CNIType = ""
	// CNICalico is Project Calico.
	CNICalico CNIType = "calico"
	// CNIFlannel is Flannel.
	CNIFlannel CNIType = "flannel"
	// CNICilium is Cilium.
	CNICilium CNIType = "cilium"
)

// ValidCNITypes returns all selectable CNI plugins.
func ValidCNITypes() []CNIType {
	return []CNIType{CNICalico, CNIFlannel, CNICilium}
}

// IsValid returns true if the CNI is a known plugin.
// CNINone is not a plugin and returns false.
func (c CNIType) IsValid() bool {
	switch c {
	case CNICalico, CNIFlannel, CNICilium:
		return true
	default:
		return false
	}
}

// IsSet reports whether a plugin was selected.
func (c CNIType) IsSet() bool {
	return c != CNINone
}
