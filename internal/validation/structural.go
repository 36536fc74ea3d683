package validation

import (
	"fmt"

	"github.com/imamik/kubelab/internal/config"
)

// Structural checks the internal consistency of explicit VM lists.
// Specs without explicit VMs have nothing to check here. A nil spec is
// reported rather than dereferenced.
func Structural(b Batch, _ Options) []Error {
	var errs []Error
	for i, spec := range b.Specs {
		p := b.path(i)
		if spec == nil {
			errs = append(errs, structural(p, "cluster spec is nil", "provide a cluster definition"))
			continue
		}
		if !spec.HasExplicitVMs() {
			continue
		}

		vmsPath := p.Child("vms")
		var masters, workers int
		names := make(map[string]int, len(spec.VMs))
		ips := make(map[string]int, len(spec.VMs))

		for j, vm := range spec.VMs {
			vp := vmsPath.Index(j)

			switch vm.Role {
			case config.RoleMaster:
				masters++
			case config.RoleWorker:
				workers++
			}
			if allowed := allowedRole(spec.Engine); allowed != nil && !allowed(vm.Role) {
				errs = append(errs, structural(vp.Child("role"),
					fmt.Sprintf("role %q is not valid for engine %q", vm.Role, spec.Engine),
					"use cluster for kind/minikube, management for none, master or worker for kubeadm"))
			}

			if vm.Name.IsZero() {
				errs = append(errs, structural(vp.Child("name"), "vm name is required", "name every explicit VM"))
			} else if first, dup := names[vm.Name.String()]; dup {
				errs = append(errs, structural(vp.Child("name"),
					fmt.Sprintf("duplicate vm name %q (first used by vms[%d])", vm.Name, first),
					"give every VM in a cluster a unique name"))
			} else {
				names[vm.Name.String()] = j
			}

			if !vm.IP.IsValid() {
				errs = append(errs, structural(vp.Child("ip"), "vm ip is required", "assign an IPv4 address"))
			} else if err := config.CheckHostAddr(vm.IP); err != nil {
				errs = append(errs, structural(vp.Child("ip"), err.Error(), "assign a private IPv4 host address"))
			} else if first, dup := ips[vm.IP.String()]; dup {
				errs = append(errs, structural(vp.Child("ip"),
					fmt.Sprintf("duplicate vm ip %s (first used by vms[%d])", vm.IP, first),
					"give every VM in a cluster a unique address"))
			} else {
				ips[vm.IP.String()] = j
			}
		}

		if masters != spec.Masters {
			errs = append(errs, structural(vmsPath,
				fmt.Sprintf("found %d master VMs but masters is %d", masters, spec.Masters),
				"make the masters count match the explicit VM list"))
		}
		if workers != spec.Workers {
			errs = append(errs, structural(vmsPath,
				fmt.Sprintf("found %d worker VMs but workers is %d", workers, spec.Workers),
				"make the workers count match the explicit VM list"))
		}
		if spec.Engine.IsValid() && !spec.Engine.IsMultiNode() && len(spec.VMs) != 1 {
			errs = append(errs, structural(vmsPath,
				fmt.Sprintf("engine %q takes exactly one VM, found %d", spec.Engine, len(spec.VMs)),
				"list a single VM"))
		}
	}
	return errs
}

func allowedRole(engine config.EngineType) func(config.NodeRole) bool {
	switch {
	case engine.IsSingleNode():
		return func(r config.NodeRole) bool { return r == config.RoleCluster }
	case engine.IsManagement():
		return func(r config.NodeRole) bool { return r == config.RoleManagement }
	case engine.IsMultiNode():
		return func(r config.NodeRole) bool { return r == config.RoleMaster || r == config.RoleWorker }
	default:
		return nil
	}
}
