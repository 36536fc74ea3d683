package config

// Common port numbers used throughout the application.
const (
	// KubeAPIPort is the standard Kubernetes API server port.
	KubeAPIPort = 6443
)

// Network defaults.
const (
	// DefaultFirstIP is the first address of an ordinary cluster.
	DefaultFirstIP = "192.168.56.10"
	// DefaultManagementIP is the address of a management-only cluster.
	DefaultManagementIP = "192.168.56.5"
	// DefaultPodCIDR is the pod network of kubeadm clusters.
	DefaultPodCIDR = "10.244.0.0/16"
	// DefaultServiceCIDR is the service network of kubeadm clusters.
	DefaultServiceCIDR = "10.96.0.0/12"
)

// Policy defaults.
const (
	// DefaultMaxTotalVMs caps the VM count of a whole compilation.
	DefaultMaxTotalVMs = 50
	// DefaultMaxClusterVMs caps the VM count of one cluster.
	DefaultMaxClusterVMs = 20
	// DefaultMaxWorkers is the soft worker count above which a warning is raised.
	DefaultMaxWorkers = 100
	// DefaultWarnRatio is the share of DefaultMaxTotalVMs that triggers an early warning.
	DefaultWarnRatio = 0.8
)

// Topology defaults applied when converting CLI options.
const (
	DefaultSize           = SizeMedium
	DefaultKubeadmMasters = 1
	DefaultKubeadmWorkers = 2
	DefaultCNI            = CNICalico
)

// CloudProviderAWS is the only supported cloud-provider integration.
const CloudProviderAWS = "aws"
