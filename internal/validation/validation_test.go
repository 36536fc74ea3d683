package validation

import (
	"fmt"
	"math"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kubelab/internal/config"
)

func kindSpec(name string) *config.ClusterSpec {
	return &config.ClusterSpec{Name: name, Engine: config.EngineKind, Size: config.SizeMedium}
}

func kubeadmSpec(name string, masters, workers int) *config.ClusterSpec {
	return &config.ClusterSpec{
		Name:    name,
		Engine:  config.EngineKubeadm,
		Masters: masters,
		Workers: workers,
		Size:    config.SizeMedium,
		CNI:     config.CNICalico,
	}
}

func findingsAt(r Result, path string) []Error {
	var out []Error
	for _, e := range r.All() {
		if e.Field != nil && e.Field.String() == path {
			out = append(out, e)
		}
	}
	return out
}

func TestValidate_ValidSpecs(t *testing.T) {
	v := New(DefaultOptions())
	specs := map[string]*config.ClusterSpec{
		"kind":     kindSpec("m1-pt"),
		"minikube": {Name: "mini", Engine: config.EngineMinikube, Size: config.SizeSmall},
		"none":     {Name: "ops", Engine: config.EngineNone, Size: config.SizeSmall},
		"kubeadm":  kubeadmSpec("prod", 3, 2),
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			res := v.Validate(spec)
			assert.True(t, res.IsValid(), "unexpected findings: %v", res.All())
			assert.Zero(t, res.Len())
		})
	}
}

func TestSemantic_ValidNamesHaveNoNameErrors(t *testing.T) {
	v := New(DefaultOptions())
	for _, name := range []string{"a", "lab", "m1-pt", "k8s-01", "a1b2", strings.Repeat("x", 63)} {
		t.Run(name, func(t *testing.T) {
			res := v.Validate(kindSpec(name))
			assert.Empty(t, findingsAt(res, "cluster.name"))
		})
	}
}

func TestSemantic_InvalidNamesHaveExactlyOneNameError(t *testing.T) {
	v := New(DefaultOptions())
	invalid := []string{"Prod", "my_lab", "1lab", "-lab", "lab-", "my lab", "lab\t", "UPPER_and-1", strings.Repeat("x", 64), ""}
	for _, name := range invalid {
		t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
			res := v.Validate(kindSpec(name))
			nameErrs := findingsAt(res, "cluster.name")
			require.Len(t, nameErrs, 1)
			assert.Equal(t, SeveritySemantic, nameErrs[0].Severity)
			assert.Equal(t, LevelError, nameErrs[0].Level)
			assert.NotEmpty(t, nameErrs[0].Suggestion)
			assert.Contains(t, nameErrs[0].Message, "invalid cluster name")
		})
	}
}

func TestSemantic_SingleNodeCounts(t *testing.T) {
	v := New(DefaultOptions())
	for _, engine := range []config.EngineType{config.EngineKind, config.EngineMinikube, config.EngineNone} {
		t.Run(string(engine), func(t *testing.T) {
			spec := &config.ClusterSpec{Name: "lab", Engine: engine, Size: config.SizeSmall}

			spec.Masters, spec.Workers = 1, 0
			res := v.Validate(spec)
			assert.Len(t, findingsAt(res, "cluster.masters"), 1)
			assert.Empty(t, findingsAt(res, "cluster.workers"))
			assert.Len(t, res.BySeverity(SeveritySemantic), 1)

			spec.Masters, spec.Workers = 2, 3
			res = v.Validate(spec)
			assert.Len(t, findingsAt(res, "cluster.masters"), 1)
			assert.Len(t, findingsAt(res, "cluster.workers"), 1)
			assert.Len(t, res.BySeverity(SeveritySemantic), 2)
		})
	}
}

func TestSemantic_KubeadmCounts(t *testing.T) {
	v := New(DefaultOptions())

	res := v.Validate(kubeadmSpec("prod", 0, 2))
	require.True(t, res.HasErrors())
	assert.Len(t, findingsAt(res, "cluster.masters"), 1)

	res = v.Validate(kubeadmSpec("prod", 1, -1))
	assert.Len(t, findingsAt(res, "cluster.workers"), 1)
}

func TestSemantic_HAMasterWarnings(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxClusterVMs = 100
	opts.MaxTotalVMs = 1000
	v := New(opts)

	tests := []struct {
		masters  int
		warnings int
	}{
		{1, 0},
		{2, 1},
		{3, 0},
		{4, 1},
		{7, 0},
		{8, 2},
		{9, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("masters=%d", tt.masters), func(t *testing.T) {
			res := v.Validate(kubeadmSpec("ha", tt.masters, 0))
			assert.True(t, res.IsValid(), "HA findings must not block: %v", res.Errors())
			assert.Len(t, findingsAt(res, "cluster.masters"), tt.warnings)
			for _, w := range res.Warnings() {
				assert.True(t, w.IsWarning())
			}
		})
	}
}

func TestSemantic_WorkerSoftLimit(t *testing.T) {
	opts := Options{MaxTotalVMs: 1000, MaxClusterVMs: 1000, MaxWorkers: 100, WarnRatio: 0.8}
	res := New(opts).Validate(kubeadmSpec("big", 1, 101))
	assert.True(t, res.IsValid())
	ws := findingsAt(res, "cluster.workers")
	require.Len(t, ws, 1)
	assert.Equal(t, LevelWarning, ws[0].Level)
}

func TestSemantic_FirstIP(t *testing.T) {
	v := New(DefaultOptions())
	tests := []struct {
		ip      string
		wantErr bool
	}{
		{"192.168.56.10", false},
		{"10.0.0.0", false},
		{"127.0.0.1", true},
		{"169.254.1.10", true},
		{"255.255.255.255", true},
		{"10.0.0.255", true},
		{"2001:db8::1", true},
		{"192.168.56", true},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			spec := kindSpec("lab")
			spec.FirstIP = tt.ip
			res := v.Validate(spec)
			assert.Equal(t, tt.wantErr, len(findingsAt(res, "cluster.firstIP")) == 1)
		})
	}
}

func TestSemantic_MultiClusterRequiresFirstIP(t *testing.T) {
	a := kindSpec("a")
	a.FirstIP = "192.168.56.10"
	b := kindSpec("b")

	res := New(DefaultOptions()).ValidateAll([]*config.ClusterSpec{a, b})
	require.True(t, res.HasErrors())
	assert.Empty(t, findingsAt(res, "clusters[0].firstIP"))
	assert.Len(t, findingsAt(res, "clusters[1].firstIP"), 1)

	// a single cluster may rely on defaults
	res = New(DefaultOptions()).ValidateAll([]*config.ClusterSpec{b})
	assert.True(t, res.IsValid())

	// explicit VMs carry their own addresses
	c := kindSpec("c")
	c.VMs = []config.VMConfig{{Name: config.MustVMName("c"), Role: config.RoleCluster, IP: netip.MustParseAddr("192.168.56.20")}}
	res = New(DefaultOptions()).ValidateAll([]*config.ClusterSpec{a, c})
	assert.Empty(t, findingsAt(res, "clusters[1].firstIP"))
	assert.True(t, res.IsValid(), "unexpected findings: %v", res.All())
}

func TestSemantic_SizeAndCNI(t *testing.T) {
	spec := kubeadmSpec("prod", 1, 1)
	spec.Size = "huge"
	spec.CNI = "weave"
	res := New(DefaultOptions()).Validate(spec)
	assert.Len(t, findingsAt(res, "cluster.size"), 1)
	assert.Len(t, findingsAt(res, "cluster.cni"), 1)
}

func TestSemantic_Tools(t *testing.T) {
	v := New(DefaultOptions())

	ops := &config.ClusterSpec{Name: "ops", Engine: config.EngineNone, Size: config.SizeSmall, Tools: []string{"helm", "emacs", " K9S "}}
	res := v.Validate(ops)
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, "cluster.tools[1]", res.Errors()[0].Field.String())

	lab := kindSpec("lab")
	lab.Tools = []string{"helm"}
	res = v.Validate(lab)
	assert.True(t, res.IsValid())
	assert.Len(t, findingsAt(res, "cluster.tools"), 1)
	assert.True(t, res.HasWarnings())
}

func TestStructural_NilSpec(t *testing.T) {
	res := New(DefaultOptions()).Validate(nil)
	require.True(t, res.HasErrors())
	errs := res.BySeverity(SeverityStructural)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "nil")
}

func TestStructural_ExplicitVMs(t *testing.T) {
	spec := kubeadmSpec("prod", 1, 2)
	spec.VMs = []config.VMConfig{
		{Name: config.MustVMName("prod-master-1"), Role: config.RoleMaster, IP: netip.MustParseAddr("10.0.0.10")},
		{Name: config.MustVMName("prod-worker-1"), Role: config.RoleWorker, IP: netip.MustParseAddr("10.0.0.11")},
		{Name: config.MustVMName("prod-worker-1"), Role: config.RoleWorker, IP: netip.MustParseAddr("10.0.0.11")},
	}
	res := New(DefaultOptions()).Validate(spec)
	assert.Len(t, findingsAt(res, "cluster.vms[2].name"), 1)
	assert.Len(t, findingsAt(res, "cluster.vms[2].ip"), 1)
	assert.Empty(t, findingsAt(res, "cluster.vms"))

	spec.Workers = 3
	res = New(DefaultOptions()).Validate(spec)
	assert.Len(t, findingsAt(res, "cluster.vms"), 1)
}

func TestStructural_ExplicitVMReservedIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"loopback", "127.0.0.1"},
		{"broadcast", "10.0.0.255"},
		{"unspecified", "0.0.0.0"},
		{"ipv6", "fd00::10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := kindSpec("lab")
			spec.VMs = []config.VMConfig{{Name: config.MustVMName("lab"), Role: config.RoleCluster, IP: netip.MustParseAddr(tt.ip)}}
			res := New(DefaultOptions()).Validate(spec)
			errs := findingsAt(res, "cluster.vms[0].ip")
			require.Len(t, errs, 1)
			assert.Equal(t, SeverityStructural, errs[0].Severity)
			assert.NotEmpty(t, errs[0].Suggestion)
		})
	}
}

func TestStructural_RoleNotAllowed(t *testing.T) {
	spec := kindSpec("lab")
	spec.VMs = []config.VMConfig{
		{Name: config.MustVMName("lab"), Role: config.RoleMaster, IP: netip.MustParseAddr("10.0.0.10")},
	}
	res := New(DefaultOptions()).Validate(spec)
	assert.Len(t, findingsAt(res, "cluster.vms[0].role"), 1)
	// one master VM against masters=0
	assert.Len(t, findingsAt(res, "cluster.vms"), 1)
}

func TestPipeline_SemanticGatedByStructural(t *testing.T) {
	spec := kindSpec("Bad_Name")
	spec.CNI = config.CNICalico
	spec.VMs = []config.VMConfig{
		{Name: config.MustVMName("a"), Role: config.RoleCluster, IP: netip.MustParseAddr("10.0.0.10")},
		{Name: config.MustVMName("a"), Role: config.RoleCluster, IP: netip.MustParseAddr("10.0.0.11")},
	}
	res := New(DefaultOptions()).Validate(spec)

	assert.NotEmpty(t, res.BySeverity(SeverityStructural))
	assert.Empty(t, res.BySeverity(SeveritySemantic), "semantic layer must be skipped")
	assert.NotEmpty(t, res.BySeverity(SeverityPolicy), "policy layer always runs")
}

func TestPolicy_CNI(t *testing.T) {
	v := New(DefaultOptions())

	spec := kubeadmSpec("prod", 1, 1)
	spec.CNI = config.CNINone
	res := v.Validate(spec)
	cniErrs := findingsAt(res, "cluster.cni")
	require.Len(t, cniErrs, 1)
	assert.Equal(t, SeverityPolicy, cniErrs[0].Severity)

	k := kindSpec("lab")
	k.CNI = config.CNIFlannel
	res = v.Validate(k)
	assert.Len(t, findingsAt(res, "cluster.cni"), 1)
}

func TestPolicy_DuplicateClusterNames(t *testing.T) {
	a := kindSpec("lab")
	a.FirstIP = "10.0.0.10"
	b := kindSpec("lab")
	b.FirstIP = "10.0.1.10"

	res := New(DefaultOptions()).ValidateAll([]*config.ClusterSpec{a, b})
	require.True(t, res.HasErrors())
	assert.Len(t, findingsAt(res, "clusters[1].name"), 1)
	// the single VM of each cluster is named after it
	assert.Len(t, findingsAt(res, "clusters[1]"), 1)
}

func TestPolicy_VMNameCollision(t *testing.T) {
	// a kind cluster named like a kubeadm master
	a := kubeadmSpec("prod", 1, 0)
	a.FirstIP = "10.0.0.10"
	b := kindSpec("prod-master-1")
	b.FirstIP = "10.0.1.10"

	res := New(DefaultOptions()).ValidateAll([]*config.ClusterSpec{a, b})
	errs := findingsAt(res, "clusters[1]")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "prod-master-1")
}

func TestPolicy_PerClusterCeiling(t *testing.T) {
	res := New(DefaultOptions()).Validate(kubeadmSpec("big", 1, 20))
	errs := findingsAt(res, "cluster")
	require.Len(t, errs, 1)
	assert.Equal(t, SeverityPolicy, errs[0].Severity)

	res = New(DefaultOptions()).Validate(kubeadmSpec("ok", 1, 19))
	assert.Empty(t, findingsAt(res, "cluster"))
}

func TestPolicy_HugeCountsDoNotOverflow(t *testing.T) {
	v := New(DefaultOptions())

	var res Result
	require.NotPanics(t, func() { res = v.Validate(kubeadmSpec("huge", 1, math.MaxInt)) })
	errs := findingsAt(res, "cluster")
	require.Len(t, errs, 1)
	assert.Equal(t, SeverityPolicy, errs[0].Severity)
	assert.False(t, res.IsValid())

	a := kubeadmSpec("a", 1, math.MaxInt-1)
	a.FirstIP = "10.0.0.10"
	b := kubeadmSpec("b", 1, math.MaxInt-1)
	b.FirstIP = "10.0.1.10"
	require.NotPanics(t, func() { res = v.ValidateAll([]*config.ClusterSpec{a, b}) })
	total := findingsAt(res, "clusters")
	require.Len(t, total, 1)
	assert.Equal(t, LevelError, total[0].Level)
	assert.Contains(t, total[0].Message, fmt.Sprintf("%d VMs in total", math.MaxInt))
}

func TestPolicy_TotalCeiling(t *testing.T) {
	mk := func(n int, workers int) []*config.ClusterSpec {
		var specs []*config.ClusterSpec
		for i := 0; i < n; i++ {
			s := kubeadmSpec(fmt.Sprintf("c%d", i), 1, workers)
			s.FirstIP = fmt.Sprintf("10.0.%d.10", i)
			specs = append(specs, s)
		}
		return specs
	}
	v := New(DefaultOptions())

	// 3 x 10 = 30 VMs: no total finding
	res := v.ValidateAll(mk(3, 9))
	assert.Empty(t, findingsAt(res, "clusters"))

	// 4 x 10 = 40 VMs: 80% warning
	res = v.ValidateAll(mk(4, 9))
	ws := findingsAt(res, "clusters")
	require.Len(t, ws, 1)
	assert.Equal(t, LevelWarning, ws[0].Level)
	assert.True(t, res.IsValid())

	// 6 x 10 = 60 VMs: error
	res = v.ValidateAll(mk(6, 9))
	es := findingsAt(res, "clusters")
	require.Len(t, es, 1)
	assert.Equal(t, LevelError, es[0].Level)
	assert.False(t, res.IsValid())
}

func TestResult_ErrAndMerge(t *testing.T) {
	warn := Error{Severity: SeveritySemantic, Level: LevelWarning, Message: "w"}
	hard := Error{Severity: SeverityPolicy, Level: LevelError, Message: "e", Suggestion: "fix it"}

	r := NewResult(warn)
	assert.True(t, r.IsValid())
	assert.NoError(t, r.Err(false))
	assert.Error(t, r.Err(true))

	merged := r.Merge(NewResult(hard))
	assert.Equal(t, 2, merged.Len())
	assert.True(t, merged.HasErrors())
	assert.True(t, merged.HasWarnings())
	assert.Len(t, merged.Errors(), 1)
	assert.Equal(t, "e (fix it)", merged.Err(false).Error())
	assert.Equal(t, 1, r.Len(), "merge must not modify the receiver")
}

func TestSeverityAndLevelStrings(t *testing.T) {
	assert.Equal(t, "structural", SeverityStructural.String())
	assert.Equal(t, "semantic", SeveritySemantic.String())
	assert.Equal(t, "policy", SeverityPolicy.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
}
