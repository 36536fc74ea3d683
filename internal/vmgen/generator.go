package vmgen

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/util/naming"
)

// ErrTopologyMismatch means the allocator and the generator disagree on the
// VM count of a cluster. It signals a composition bug, not bad input.
var ErrTopologyMismatch = errors.New("allocated address count does not match cluster topology")

// Generate builds the VMs of spec, assigning ips in order.
// len(ips) must equal spec.ExpectedVMCount().
func Generate(spec config.ClusterSpec, ips []netip.Addr) ([]config.VMConfig, error) {
	want := spec.ExpectedVMCount()
	if len(ips) != want {
		return nil, fmt.Errorf("cluster %q: %w: %d addresses for %d VMs", spec.Name, ErrTopologyMismatch, len(ips), want)
	}

	cluster, err := config.ParseClusterName(spec.Name)
	if err != nil {
		return nil, err
	}

	switch {
	case spec.Engine.IsSingleNode():
		return single(cluster, config.RoleCluster, ips[0], spec.Size)
	case spec.Engine.IsManagement():
		return single(cluster, config.RoleManagement, ips[0], spec.Size)
	case spec.Engine.IsMultiNode():
		return multi(cluster, spec, ips)
	default:
		return nil, fmt.Errorf("cluster %q: unknown engine %q", spec.Name, spec.Engine)
	}
}

func single(cluster config.ClusterName, role config.NodeRole, ip netip.Addr, size config.SizeProfile) ([]config.VMConfig, error) {
	vm, err := newVM(naming.SingleNode(cluster.String()), role, ip, size)
	if err != nil {
		return nil, err
	}
	return []config.VMConfig{vm}, nil
}

func multi(cluster config.ClusterName, spec config.ClusterSpec, ips []netip.Addr) ([]config.VMConfig, error) {
	if spec.Masters < 0 || spec.Workers < 0 {
		return nil, fmt.Errorf("cluster %q: %w: negative node counts %d/%d", spec.Name, ErrTopologyMismatch, spec.Masters, spec.Workers)
	}
	vms := make([]config.VMConfig, 0, len(ips))
	next := 0

	for i := 1; i <= spec.Masters; i++ {
		vm, err := newVM(naming.Master(cluster.String(), i), config.RoleMaster, ips[next], spec.Size)
		if err != nil {
			return nil, err
		}
		vms = append(vms, vm)
		next++
	}
	for i := 1; i <= spec.Workers; i++ {
		vm, err := newVM(naming.Worker(cluster.String(), i), config.RoleWorker, ips[next], spec.Size)
		if err != nil {
			return nil, err
		}
		vms = append(vms, vm)
		next++
	}
	return vms, nil
}

func newVM(name string, role config.NodeRole, ip netip.Addr, size config.SizeProfile) (config.VMConfig, error) {
	vmName, err := config.ParseVMName(name)
	if err != nil {
		return config.VMConfig{}, err
	}
	return config.VMConfig{Name: vmName, Role: role, IP: ip, Size: size}, nil
}
