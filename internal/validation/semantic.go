package validation

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/installers"
)

// HA master counts above this draw an "unusually high" warning.
const maxRecommendedMasters = 7

// Semantic enforces per-field business rules on every non-nil spec.
func Semantic(b Batch, opts Options) []Error {
	var errs []Error
	for i, spec := range b.Specs {
		if spec == nil {
			continue
		}
		p := b.path(i)
		errs = append(errs, validateName(p, spec)...)
		errs = append(errs, validateCounts(p, spec, opts)...)
		errs = append(errs, validateFirstIP(p, spec, b.Multi)...)
		errs = append(errs, validateSizeAndCNI(p, spec)...)
		errs = append(errs, validateTools(p, spec)...)
	}
	return errs
}

func validateName(p *field.Path, spec *config.ClusterSpec) []Error {
	if _, err := config.ParseClusterName(spec.Name); err != nil {
		return []Error{semantic(p.Child("name"),
			"invalid "+err.Error(),
			"use lowercase letters, digits and hyphens, start with a letter, at most 63 characters")}
	}
	return nil
}

func validateCounts(p *field.Path, spec *config.ClusterSpec, opts Options) []Error {
	var errs []Error
	engine := spec.Engine

	switch {
	case !engine.IsValid():
		errs = append(errs, semantic(p.Child("engine"),
			fmt.Sprintf("unknown engine %q", engine),
			fmt.Sprintf("use one of %v", config.ValidEngineTypes())))

	case engine.IsSingleNode() || engine.IsManagement():
		if spec.Masters != 0 {
			errs = append(errs, semantic(p.Child("masters"),
				fmt.Sprintf("engine %q does not take masters, got %d", engine, spec.Masters),
				"set masters to 0"))
		}
		if spec.Workers != 0 {
			errs = append(errs, semantic(p.Child("workers"),
				fmt.Sprintf("engine %q does not take workers, got %d", engine, spec.Workers),
				"set workers to 0"))
		}

	case engine.IsMultiNode():
		if spec.Masters < 1 {
			errs = append(errs, semantic(p.Child("masters"),
				fmt.Sprintf("kubeadm needs at least 1 master, got %d", spec.Masters),
				"set masters to 1 or 3"))
		}
		if spec.Workers < 0 {
			errs = append(errs, semantic(p.Child("workers"),
				fmt.Sprintf("workers cannot be negative, got %d", spec.Workers),
				"set workers to 0 or more"))
		}
		if spec.Workers > opts.MaxWorkers {
			errs = append(errs, semanticWarning(p.Child("workers"),
				fmt.Sprintf("%d workers is above the recommended maximum of %d", spec.Workers, opts.MaxWorkers),
				"split the workload across clusters"))
		}
		if spec.Masters > 1 && spec.Masters%2 == 0 {
			errs = append(errs, semanticWarning(p.Child("masters"),
				fmt.Sprintf("even master count %d risks etcd quorum loss", spec.Masters),
				fmt.Sprintf("use %d or %d masters", spec.Masters-1, spec.Masters+1)))
		}
		if spec.Masters > maxRecommendedMasters {
			errs = append(errs, semanticWarning(p.Child("masters"),
				fmt.Sprintf("%d masters is unusually high", spec.Masters),
				fmt.Sprintf("use at most %d masters", maxRecommendedMasters)))
		}
	}
	return errs
}

func validateFirstIP(p *field.Path, spec *config.ClusterSpec, multi bool) []Error {
	fp := p.Child("firstIP")
	if !spec.HasFirstIP() {
		// explicit VMs carry their own addresses
		if multi && !spec.HasExplicitVMs() {
			return []Error{semantic(fp,
				"an explicit first IP is required when compiling several clusters without explicit VMs",
				"give every cluster a first_ip in a distinct range")}
		}
		return nil
	}

	if _, err := config.ParseFirstIP(spec.FirstIP); err != nil {
		fix := "use a private IPv4 host address such as 192.168.56.10"
		if errors.Is(err, config.ErrNotIPv4) {
			fix = "IPv6 is not supported; use an IPv4 address"
		}
		return []Error{semantic(fp, err.Error(), fix)}
	}
	return nil
}

func validateSizeAndCNI(p *field.Path, spec *config.ClusterSpec) []Error {
	var errs []Error
	if !spec.Size.IsValid() {
		errs = append(errs, semantic(p.Child("size"),
			fmt.Sprintf("unknown size profile %q", spec.Size),
			fmt.Sprintf("use one of %v", config.ValidSizeProfiles())))
	}
	if spec.CNI.IsSet() && !spec.CNI.IsValid() {
		errs = append(errs, semantic(p.Child("cni"),
			fmt.Sprintf("unknown CNI plugin %q", spec.CNI),
			fmt.Sprintf("use one of %v", config.ValidCNITypes())))
	}
	return errs
}

func validateTools(p *field.Path, spec *config.ClusterSpec) []Error {
	if len(spec.Tools) == 0 {
		return nil
	}
	tp := p.Child("tools")
	if !spec.Engine.IsManagement() {
		return []Error{semanticWarning(tp,
			fmt.Sprintf("tools are only installed on management clusters, engine %q ignores them", spec.Engine),
			"remove tools or use engine none")}
	}

	var errs []Error
	for i, tool := range spec.Tools {
		name := strings.ToLower(strings.TrimSpace(tool))
		if _, ok := installers.Lookup(name); !ok {
			errs = append(errs, semantic(tp.Index(i),
				fmt.Sprintf("unknown tool %q", tool),
				"run 'kubelab tools' to list installable tools"))
		}
	}
	return errs
}
