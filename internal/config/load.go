package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/api/resource"
)

// DefaultRequestFilename is the request file looked up when none is given.
const DefaultRequestFilename = "kubelab-request.yaml"

// Request is the on-disk list of clusters to compile.
type Request struct {
	Clusters []ClusterRequest `yaml:"clusters"`
}

// ClusterRequest is one cluster entry of a request file.
// Counts are pointers so that omitted fields pick up engine defaults.
type ClusterRequest struct {
	Name    string      `yaml:"name,omitempty"`
	Module  string      `yaml:"module,omitempty"`
	Type    string      `yaml:"type,omitempty"`
	Engine  string      `yaml:"engine"`
	FirstIP string      `yaml:"first_ip,omitempty"`
	Masters *int        `yaml:"masters,omitempty"`
	Workers *int        `yaml:"workers,omitempty"`
	Size    string      `yaml:"size,omitempty"`
	CNI     string      `yaml:"cni,omitempty"`
	Tools   []string    `yaml:"tools,omitempty"`
	VMs     []VMRequest `yaml:"vms,omitempty"`
}

// VMRequest is an explicitly listed VM in a request file.
type VMRequest struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
	IP   string `yaml:"ip"`
	Size string `yaml:"size,omitempty"`
	CPUs *int   `yaml:"cpus,omitempty"`
	// Memory is a Kubernetes quantity such as "6Gi".
	Memory string `yaml:"memory,omitempty"`
}

// LoadRequest reads a request file and converts every entry to a ClusterSpec.
func LoadRequest(path string) ([]ClusterSpec, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return ParseRequest(data)
}

// ParseRequest parses YAML request data.
// Unknown fields are rejected so that typos do not silently fall back to defaults.
func ParseRequest(data []byte) ([]ClusterSpec, error) {
	var req Request
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(req.Clusters) == 0 {
		return nil, errors.New("request contains no clusters")
	}

	specs := make([]ClusterSpec, 0, len(req.Clusters))
	for i, cr := range req.Clusters {
		spec, err := cr.ToClusterSpec()
		if err != nil {
			return nil, fmt.Errorf("clusters[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ToClusterSpec converts the entry, applying the same defaults as CLI options.
func (r ClusterRequest) ToClusterSpec() (ClusterSpec, error) {
	spec, err := Options{
		Engine:  r.Engine,
		Module:  r.Module,
		Type:    r.Type,
		Name:    r.Name,
		FirstIP: r.FirstIP,
		Masters: r.Masters,
		Workers: r.Workers,
		CNI:     r.CNI,
		Size:    r.Size,
		Tools:   r.Tools,
	}.ToClusterSpec()
	if err != nil {
		return ClusterSpec{}, err
	}

	for j, vr := range r.VMs {
		vm, err := vr.toVMConfig(spec.Size)
		if err != nil {
			return ClusterSpec{}, fmt.Errorf("vms[%d]: %w", j, err)
		}
		spec.VMs = append(spec.VMs, vm)
	}
	return spec, nil
}

func (r VMRequest) toVMConfig(clusterSize SizeProfile) (VMConfig, error) {
	name, err := ParseVMName(r.Name)
	if err != nil {
		return VMConfig{}, err
	}
	role := NodeRole(strings.ToLower(r.Role))
	if !role.IsValid() {
		return VMConfig{}, fmt.Errorf("unknown role %q", r.Role)
	}
	ip, err := ParseIPv4(r.IP)
	if err != nil {
		return VMConfig{}, err
	}
	size := SizeProfile(strings.ToLower(r.Size))
	if size == "" {
		size = clusterSize
	}
	vm := VMConfig{Name: name, Role: role, IP: ip, Size: size, CPUs: r.CPUs}
	if r.Memory != "" {
		mem, err := resource.ParseQuantity(r.Memory)
		if err != nil {
			return VMConfig{}, fmt.Errorf("invalid memory %q: %w", r.Memory, err)
		}
		vm.Memory = &mem
	}
	return vm, nil
}

// WriteRequest serialises a request to path. A non-empty header is written
// verbatim ahead of the YAML body.
func WriteRequest(req *Request, path, header string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	if header != "" {
		data = append([]byte(header), data...)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write request file: %w", err)
	}
	return nil
}
