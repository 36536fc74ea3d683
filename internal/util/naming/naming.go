package naming

import "fmt"

// Naming functions for cluster VMs and the namespaces derived from them.

func SingleNode(cluster string) string {
	return cluster
}

func Master(cluster string, index int) string {
	return fmt.Sprintf("%s-master-%d", cluster, index)
}

func Worker(cluster string, index int) string {
	return fmt.Sprintf("%s-worker-%d", cluster, index)
}

// Namespace returns the default Kubernetes namespace for workloads of a cluster.
func Namespace(cluster string) string {
	return cluster
}

// EnvFile returns the file name of a VM or cluster environment file.
func EnvFile(name string) string {
	return name + ".env"
}

// Descriptor returns the file name of a cluster provisioning descriptor.
func Descriptor(cluster string) string {
	return cluster + ".yaml"
}
