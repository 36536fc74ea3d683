package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kubelab/internal/util/ptr"
)

func TestDeriveClusterName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		module, typ, want string
	}{
		{"m1", "pt", "m1-pt"},
		{"m1/pt", "", "m1-pt"},
		{"M1", "PT", "m1-pt"},
		{"mod_a", "x.y", "mod-a-x-y"},
		{"", "", ""},
		{"/lab/", "", "lab"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DeriveClusterName(tt.module, tt.typ))
		})
	}
}

func TestOptions_ToClusterSpec_Kind(t *testing.T) {
	spec, err := Options{Engine: "kind", Module: "m1", Type: "pt"}.ToClusterSpec()
	require.NoError(t, err)

	assert.Equal(t, "m1-pt", spec.Name)
	assert.Equal(t, EngineKind, spec.Engine)
	assert.Equal(t, 0, spec.Masters)
	assert.Equal(t, 0, spec.Workers)
	assert.Equal(t, SizeMedium, spec.Size)
	assert.Equal(t, CNINone, spec.CNI)
	assert.Empty(t, spec.VMs)
}

func TestOptions_ToClusterSpec_KubeadmDefaults(t *testing.T) {
	spec, err := Options{Engine: "kubeadm", Name: "prod"}.ToClusterSpec()
	require.NoError(t, err)

	assert.Equal(t, DefaultKubeadmMasters, spec.Masters)
	assert.Equal(t, DefaultKubeadmWorkers, spec.Workers)
	assert.Equal(t, CNICalico, spec.CNI)
}

func TestOptions_ToClusterSpec_Overrides(t *testing.T) {
	spec, err := Options{
		Engine:  "kubeadm",
		Name:    "prod",
		FirstIP: "10.0.0.10",
		Masters: ptr.Int(3),
		Workers: ptr.Int(0),
		CNI:     "Flannel",
		Size:    "large",
	}.ToClusterSpec()
	require.NoError(t, err)

	assert.Equal(t, 3, spec.Masters)
	assert.Equal(t, 0, spec.Workers)
	assert.Equal(t, CNIFlannel, spec.CNI)
	assert.Equal(t, SizeLarge, spec.Size)
	assert.Equal(t, "10.0.0.10", spec.FirstIP)
}

func TestOptions_ToClusterSpec_Errors(t *testing.T) {
	_, err := Options{Engine: "k3s", Name: "x"}.ToClusterSpec()
	assert.Error(t, err)

	_, err = Options{Engine: "kind"}.ToClusterSpec()
	assert.Error(t, err)
}
