package orchestration

import (
	"fmt"
	"net/netip"

	"github.com/go-logr/logr"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/vmgen"
)

// Allocator is the address source of an Orchestrator.
type Allocator interface {
	Allocate(spec config.ClusterSpec) ([]netip.Addr, error)
	AllocateMulti(specs []config.ClusterSpec) (map[string][]netip.Addr, error)
}

// Orchestrator composes allocation and generation.
type Orchestrator struct {
	alloc Allocator
	log   logr.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for per-cluster progress at V(1).
func WithLogger(l logr.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New creates an Orchestrator.
func New(alloc Allocator, opts ...Option) *Orchestrator {
	o := &Orchestrator{alloc: alloc, log: logr.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Resolve returns a copy of spec carrying explicit VMs.
// A spec that already has VMs is returned as an unchanged copy.
func (o *Orchestrator) Resolve(spec config.ClusterSpec) (config.ClusterSpec, error) {
	if spec.HasExplicitVMs() {
		return o.generate(spec, nil)
	}

	addrs, err := o.alloc.Allocate(spec)
	if err != nil {
		return config.ClusterSpec{}, fmt.Errorf("allocation failed: %w", err)
	}
	return o.generate(spec, addrs)
}

// ResolveAll resolves specs in input order.
//
// A batch of more than one spec is allocated as a whole: every cluster that
// still needs addresses must carry an explicit first IP, and no address may
// be used twice across the batch, whether allocated or explicit. The first
// failure aborts the batch and no partial result is returned.
func (o *Orchestrator) ResolveAll(specs []config.ClusterSpec) ([]config.ClusterSpec, error) {
	out := make([]config.ClusterSpec, 0, len(specs))

	if len(specs) <= 1 {
		for i, spec := range specs {
			resolved, err := o.Resolve(spec)
			if err != nil {
				return nil, fmt.Errorf("clusters[%d]: %w", i, err)
			}
			out = append(out, resolved)
		}
		return out, nil
	}

	addrs, err := o.alloc.AllocateMulti(specs)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}
	for i, spec := range specs {
		resolved, err := o.generate(spec, addrs[spec.Name])
		if err != nil {
			return nil, fmt.Errorf("clusters[%d]: %w", i, err)
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (o *Orchestrator) generate(spec config.ClusterSpec, addrs []netip.Addr) (config.ClusterSpec, error) {
	if spec.HasExplicitVMs() {
		o.log.V(1).Info("cluster already resolved", "cluster", spec.Name, "vms", len(spec.VMs))
		return spec.Clone(), nil
	}

	vms, err := vmgen.Generate(spec, addrs)
	if err != nil {
		return config.ClusterSpec{}, fmt.Errorf("generation failed: %w", err)
	}

	o.log.V(1).Info("cluster resolved", "cluster", spec.Name, "engine", spec.Engine, "vms", len(vms))
	return spec.WithVMs(vms), nil
}
