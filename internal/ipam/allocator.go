package ipam

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"

	"github.com/imamik/kubelab/internal/config"
)

// MaxHostID is the last usable host id of a /24; 255 is broadcast.
const MaxHostID = 254

// Reserved host ids within the final octet.
const (
	GatewayHostID    = 1
	DNSHostID        = 2
	ManagementHostID = 5
)

// safetyMargin bounds the walk beyond count + reserved ids.
const safetyMargin = 10

// Allocation errors.
var (
	ErrSubnetBoundary    = errors.New("address range exceeds the /24 subnet boundary")
	ErrMissingFirstIP    = errors.New("explicit first IP is required in multi-cluster mode")
	ErrOverlap           = errors.New("address overlap between clusters")
	ErrDuplicateCluster  = errors.New("cluster name used twice in one batch")
	ErrAttemptsExhausted = errors.New("address allocation attempts exhausted")
)

// Options configure an Allocator.
type Options struct {
	// DefaultFirstIP is used by clusters without an explicit first IP.
	DefaultFirstIP string
	// ManagementFirstIP is used by management clusters without an explicit first IP.
	ManagementFirstIP string
	// ReservedHostIDs are final-octet values never handed out.
	ReservedHostIDs []int
}

// DefaultOptions returns the built-in allocation defaults.
func DefaultOptions() Options {
	return Options{
		DefaultFirstIP:    config.DefaultFirstIP,
		ManagementFirstIP: config.DefaultManagementIP,
		ReservedHostIDs:   []int{GatewayHostID, DNSHostID, ManagementHostID},
	}
}

// OptionsFromSettings maps network settings to allocator options.
func OptionsFromSettings(n config.NetworkSettings) Options {
	opts := DefaultOptions()
	if n.DefaultFirstIP != "" {
		opts.DefaultFirstIP = n.DefaultFirstIP
	}
	if n.ManagementFirstIP != "" {
		opts.ManagementFirstIP = n.ManagementFirstIP
	}
	return opts
}

// Allocator hands out sequential IPv4 addresses for clusters.
// It holds no state between calls; the same spec always yields the same list.
type Allocator struct {
	opts Options
}

// New creates an Allocator.
func New(opts Options) *Allocator {
	return &Allocator{opts: opts}
}

// Allocate returns the ordered addresses for the VMs of spec.
func (a *Allocator) Allocate(spec config.ClusterSpec) ([]netip.Addr, error) {
	start, err := a.startAddress(spec)
	if err != nil {
		return nil, fmt.Errorf("cluster %q: %w", spec.Name, err)
	}
	addrs, err := a.walk(start, spec.ExpectedVMCount(), spec.Engine.IsManagement())
	if err != nil {
		return nil, fmt.Errorf("cluster %q: %w", spec.Name, err)
	}
	return addrs, nil
}

// AllocateMulti assigns addresses to every cluster of a batch in input order
// and fails on the first address seen twice. The result is keyed by cluster
// name.
//
// A cluster that already lists explicit VMs keeps their addresses, which
// still take part in the overlap check. Every other cluster must carry an
// explicit first IP.
func (a *Allocator) AllocateMulti(specs []config.ClusterSpec) (map[string][]netip.Addr, error) {
	out := make(map[string][]netip.Addr, len(specs))
	ledger := NewLedger()
	for i, spec := range specs {
		if _, dup := out[spec.Name]; dup {
			return nil, fmt.Errorf("clusters[%d]: %w: %q", i, ErrDuplicateCluster, spec.Name)
		}

		var addrs []netip.Addr
		switch {
		case spec.HasExplicitVMs():
			addrs = make([]netip.Addr, len(spec.VMs))
			for j, vm := range spec.VMs {
				addrs[j] = vm.IP
			}
		case !spec.HasFirstIP():
			return nil, fmt.Errorf("clusters[%d] %q: %w", i, spec.Name, ErrMissingFirstIP)
		default:
			var err error
			if addrs, err = a.Allocate(spec); err != nil {
				return nil, fmt.Errorf("clusters[%d]: %w", i, err)
			}
		}

		if err := ledger.Claim(spec.Name, addrs); err != nil {
			return nil, fmt.Errorf("clusters[%d]: %w", i, err)
		}
		out[spec.Name] = addrs
	}
	return out, nil
}

func (a *Allocator) startAddress(spec config.ClusterSpec) (netip.Addr, error) {
	raw := spec.FirstIP
	if raw == "" {
		raw = a.opts.DefaultFirstIP
		if spec.Engine.IsManagement() {
			raw = a.opts.ManagementFirstIP
		}
	}
	addr, err := config.ParseIPv4(raw)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid first IP: %w", err)
	}
	return addr, nil
}

// walk steps forward from start one host id at a time, skipping reserved
// ids, until count addresses are collected.
func (a *Allocator) walk(start netip.Addr, count int, management bool) ([]netip.Addr, error) {
	if count <= 0 {
		return []netip.Addr{}, nil
	}

	base := start.As4()
	host := int(base[3])
	if count > MaxHostID-host+1 {
		return nil, fmt.Errorf("%w: %d addresses from %s need host ids beyond .%d",
			ErrSubnetBoundary, count, start, MaxHostID)
	}

	reserved := a.reservedFor(management)
	maxAttempts := count + len(reserved) + safetyMargin

	out := make([]netip.Addr, 0, count)
	for attempt := 0; len(out) < count; attempt++ {
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("%w after %d attempts (allocated %d of %d)", ErrAttemptsExhausted, attempt, len(out), count)
		}
		if host > MaxHostID {
			return nil, fmt.Errorf("%w: %d addresses from %s need host ids beyond .%d",
				ErrSubnetBoundary, count, start, MaxHostID)
		}
		if slices.Contains(reserved, host) {
			host++
			continue
		}
		b := base
		b[3] = byte(host)
		out = append(out, netip.AddrFrom4(b))
		host++
	}
	return out, nil
}

func (a *Allocator) reservedFor(management bool) []int {
	if !management {
		return a.opts.ReservedHostIDs
	}
	return slices.DeleteFunc(slices.Clone(a.opts.ReservedHostIDs), func(id int) bool {
		return id == ManagementHostID
	})
}
