package orchestration

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/ipam"
	"github.com/imamik/kubelab/internal/vmgen"
)

func newOrchestrator() *Orchestrator {
	return New(ipam.New(ipam.DefaultOptions()))
}

func kubeadm(name, firstIP string, masters, workers int) config.ClusterSpec {
	return config.ClusterSpec{
		Name:    name,
		Engine:  config.EngineKubeadm,
		FirstIP: firstIP,
		Masters: masters,
		Workers: workers,
		Size:    config.SizeMedium,
		CNI:     config.CNICalico,
	}
}

func vmNames(vms []config.VMConfig) []string {
	out := make([]string, len(vms))
	for i, vm := range vms {
		out[i] = vm.Name.String()
	}
	return out
}

func explicitKind(name, ip string) config.ClusterSpec {
	return config.ClusterSpec{
		Name:   name,
		Engine: config.EngineKind,
		Size:   config.SizeSmall,
		VMs: []config.VMConfig{{
			Name: config.MustVMName(name),
			Role: config.RoleCluster,
			IP:   netip.MustParseAddr(ip),
			Size: config.SizeSmall,
		}},
	}
}

type stubAllocator struct {
	addrs []netip.Addr
	err   error
	calls int
}

func (s *stubAllocator) Allocate(config.ClusterSpec) ([]netip.Addr, error) {
	s.calls++
	return s.addrs, s.err
}

func (s *stubAllocator) AllocateMulti(specs []config.ClusterSpec) (map[string][]netip.Addr, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string][]netip.Addr, len(specs))
	for _, spec := range specs {
		out[spec.Name] = s.addrs
	}
	return out, nil
}

func TestResolve_MultiNodeNaming(t *testing.T) {
	got, err := newOrchestrator().Resolve(kubeadm("prod", "10.0.0.10", 2, 3))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"prod-master-1", "prod-master-2",
		"prod-worker-1", "prod-worker-2", "prod-worker-3",
	}, vmNames(got.VMs))
	assert.Equal(t, "10.0.0.10", got.VMs[0].IP.String())
	assert.Equal(t, "10.0.0.14", got.VMs[4].IP.String())
	assert.Equal(t, config.RoleMaster, got.VMs[1].Role)
	assert.Equal(t, config.RoleWorker, got.VMs[2].Role)
}

func TestResolve_SingleNode(t *testing.T) {
	got, err := newOrchestrator().Resolve(config.ClusterSpec{Name: "m1-pt", Engine: config.EngineKind, Size: config.SizeSmall})
	require.NoError(t, err)
	require.Len(t, got.VMs, 1)
	assert.Equal(t, "m1-pt", got.VMs[0].Name.String())
	assert.Equal(t, config.RoleCluster, got.VMs[0].Role)
	assert.Equal(t, config.DefaultFirstIP, got.VMs[0].IP.String())
	assert.Equal(t, config.SizeSmall, got.VMs[0].Size)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	spec := kubeadm("prod", "10.0.0.10", 1, 1)
	_, err := newOrchestrator().Resolve(spec)
	require.NoError(t, err)
	assert.Empty(t, spec.VMs)
}

func TestResolve_ExplicitVMsPassThrough(t *testing.T) {
	stub := &stubAllocator{}
	o := New(stub)

	spec := kubeadm("prod", "", 1, 0)
	spec.VMs = []config.VMConfig{{
		Name: config.MustVMName("prod-master-1"),
		Role: config.RoleMaster,
		IP:   netip.MustParseAddr("10.9.9.9"),
		Size: config.SizeLarge,
	}}

	got, err := o.Resolve(spec)
	require.NoError(t, err)
	assert.Equal(t, spec, got)
	assert.Zero(t, stub.calls, "resolved specs are not re-allocated")
}

func TestResolve_AllocationFailure(t *testing.T) {
	_, err := newOrchestrator().Resolve(kubeadm("edge", "10.0.0.253", 1, 2))
	assert.ErrorIs(t, err, ipam.ErrSubnetBoundary)
}

func TestResolve_TopologyMismatch(t *testing.T) {
	stub := &stubAllocator{addrs: []netip.Addr{netip.MustParseAddr("10.0.0.10")}}
	_, err := New(stub).Resolve(kubeadm("prod", "10.0.0.10", 1, 1))
	assert.ErrorIs(t, err, vmgen.ErrTopologyMismatch)
}

func TestResolve_AllocatorError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(&stubAllocator{err: boom}).Resolve(kubeadm("prod", "10.0.0.10", 1, 1))
	assert.ErrorIs(t, err, boom)
}

func TestResolveAll(t *testing.T) {
	tests := []struct {
		name    string
		specs   []config.ClusterSpec
		wantErr error
		want    [][]string
	}{
		{
			name:  "empty batch",
			specs: nil,
			want:  [][]string{},
		},
		{
			name:  "single cluster uses defaults",
			specs: []config.ClusterSpec{{Name: "lab", Engine: config.EngineMinikube}},
			want:  [][]string{{"lab"}},
		},
		{
			name: "disjoint clusters",
			specs: []config.ClusterSpec{
				kubeadm("a", "10.0.0.10", 1, 1),
				{Name: "b", Engine: config.EngineKind, FirstIP: "10.0.0.20"},
			},
			want: [][]string{{"a-master-1", "a-worker-1"}, {"b"}},
		},
		{
			name: "overlapping ranges",
			specs: []config.ClusterSpec{
				kubeadm("a", "10.0.0.10", 1, 2),
				kubeadm("b", "10.0.0.12", 1, 0),
			},
			wantErr: ipam.ErrOverlap,
		},
		{
			name: "missing first IP in batch",
			specs: []config.ClusterSpec{
				kubeadm("a", "10.0.0.10", 1, 0),
				{Name: "b", Engine: config.EngineKind},
			},
			wantErr: ipam.ErrMissingFirstIP,
		},
		{
			name: "explicit VMs need no first IP",
			specs: []config.ClusterSpec{
				kubeadm("a", "10.0.0.10", 1, 1),
				explicitKind("b", "10.0.1.10"),
			},
			want: [][]string{{"a-master-1", "a-worker-1"}, {"b"}},
		},
		{
			name: "duplicate cluster names",
			specs: []config.ClusterSpec{
				kubeadm("a", "10.0.0.10", 1, 0),
				kubeadm("a", "10.0.1.10", 1, 0),
			},
			wantErr: ipam.ErrDuplicateCluster,
		},
		{
			name: "later failure discards earlier results",
			specs: []config.ClusterSpec{
				kubeadm("a", "10.0.0.10", 1, 0),
				kubeadm("b", "10.0.0.254", 1, 1),
			},
			wantErr: ipam.ErrSubnetBoundary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newOrchestrator().ResolveAll(tt.specs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			names := make([][]string, 0, len(got))
			for _, spec := range got {
				names = append(names, vmNames(spec.VMs))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestResolveAll_ExplicitVMsJoinOverlapCheck(t *testing.T) {
	explicit := kubeadm("a", "", 1, 0)
	explicit.VMs = []config.VMConfig{{
		Name: config.MustVMName("a-master-1"),
		Role: config.RoleMaster,
		IP:   netip.MustParseAddr("10.0.0.11"),
		Size: config.SizeMedium,
	}}

	_, err := newOrchestrator().ResolveAll([]config.ClusterSpec{explicit, kubeadm("b", "10.0.0.10", 1, 1)})
	require.ErrorIs(t, err, ipam.ErrOverlap)
	assert.Contains(t, err.Error(), "10.0.0.11")
}
