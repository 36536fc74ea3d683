package labels

import "maps"

// Standard label keys.
const (
	// KeyCluster identifies which cluster a VM belongs to
	KeyCluster = "kubelab.io/cluster"

	// KeyRole identifies the node role (cluster, master, worker, management)
	KeyRole = "kubelab.io/role"

	// KeyEngine identifies the Kubernetes engine of the cluster
	KeyEngine = "kubelab.io/engine"

	// KeySize identifies the size profile
	KeySize = "kubelab.io/size"

	// KeyManagedBy identifies the tool that produced the descriptor
	KeyManagedBy = "kubelab.io/managed-by"

	// KeyControlPlane marks control plane VMs
	KeyControlPlane = "kubelab.io/control-plane"
)

// ManagedByKubelab is the value of KeyManagedBy.
const ManagedByKubelab = "kubelab"

// LabelBuilder provides a fluent interface for building VM labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the cluster name pre-set.
func NewLabelBuilder(clusterName string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyCluster:   clusterName,
			KeyManagedBy: ManagedByKubelab,
		},
	}
}

// WithRole adds a role label.
func (lb *LabelBuilder) WithRole(role string) *LabelBuilder {
	lb.labels[KeyRole] = role
	return lb
}

// WithEngine adds an engine label.
func (lb *LabelBuilder) WithEngine(engine string) *LabelBuilder {
	lb.labels[KeyEngine] = engine
	return lb
}

// WithSize adds a size profile label when size is non-empty.
func (lb *LabelBuilder) WithSize(size string) *LabelBuilder {
	if size != "" {
		lb.labels[KeySize] = size
	}
	return lb
}

// WithControlPlaneIf marks the VM as control plane when cp is true.
func (lb *LabelBuilder) WithControlPlaneIf(cp bool) *LabelBuilder {
	if cp {
		lb.labels[KeyControlPlane] = "true"
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	return maps.Clone(lb.labels)
}

