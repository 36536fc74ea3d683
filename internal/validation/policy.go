package validation

import (
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/imamik/kubelab/internal/config"
)

// Policy enforces topology-wide rules over the whole batch.
// It runs regardless of what the other layers found.
func Policy(b Batch, opts Options) []Error {
	var errs []Error
	total := 0
	clusterNames := make(map[string]int, len(b.Specs))
	vmOwners := make(map[string]int)

	for i, spec := range b.Specs {
		if spec == nil {
			continue
		}
		p := b.path(i)

		errs = append(errs, validateCNIPolicy(p, spec)...)

		count := spec.VMCount()
		total = addCapped(total, count)
		if count > opts.MaxClusterVMs {
			errs = append(errs, policy(p,
				fmt.Sprintf("cluster has %d VMs, the per-cluster limit is %d", count, opts.MaxClusterVMs),
				"reduce node counts or split the cluster"))
		}

		if spec.Name != "" {
			if first, dup := clusterNames[spec.Name]; dup {
				errs = append(errs, policy(p.Child("name"),
					fmt.Sprintf("duplicate cluster name %q (first used by clusters[%d])", spec.Name, first),
					"give every cluster a unique name"))
			} else {
				clusterNames[spec.Name] = i
			}
		}

		if count > opts.MaxClusterVMs {
			continue
		}
		seen := make(map[string]bool)
		for _, name := range spec.PlannedVMNames() {
			if seen[name] {
				// duplicates inside one cluster are structural
				continue
			}
			seen[name] = true
			if owner, taken := vmOwners[name]; taken {
				errs = append(errs, policy(p,
					fmt.Sprintf("vm name %q collides with a VM of clusters[%d]", name, owner),
					"rename one of the clusters"))
				continue
			}
			vmOwners[name] = i
		}
	}

	root := field.NewPath("clusters")
	switch {
	case total > opts.MaxTotalVMs:
		errs = append(errs, policy(root,
			fmt.Sprintf("%d VMs in total exceed the limit of %d", total, opts.MaxTotalVMs),
			"compile fewer or smaller clusters"))
	case total > 0 && float64(total) >= opts.WarnRatio*float64(opts.MaxTotalVMs):
		errs = append(errs, policyWarning(root,
			fmt.Sprintf("%d VMs in total is close to the limit of %d", total, opts.MaxTotalVMs),
			"check host capacity before provisioning"))
	}

	return errs
}

func validateCNIPolicy(p *field.Path, spec *config.ClusterSpec) []Error {
	if !spec.Engine.IsValid() {
		return nil
	}
	cp := p.Child("cni")
	if spec.Engine.RequiresCNI() && !spec.CNI.IsSet() {
		return []Error{policy(cp,
			fmt.Sprintf("engine %q requires a CNI plugin", spec.Engine),
			fmt.Sprintf("select one of %v", config.ValidCNITypes()))}
	}
	if !spec.Engine.RequiresCNI() && spec.CNI.IsSet() {
		return []Error{policy(cp,
			fmt.Sprintf("engine %q does not accept a CNI plugin, got %q", spec.Engine, spec.CNI),
			"remove the cni setting")}
	}
	return nil
}

// addCapped adds two non-negative counts, saturating at math.MaxInt.
func addCapped(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
