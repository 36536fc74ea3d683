package config

import (
	"fmt"
	"strings"
)

// Options are the user-facing flags describing one cluster.
// Zero values mean "use the default".
type Options struct {
	Engine  string
	Module  string
	Type    string
	Name    string
	FirstIP string
	Masters *int
	Workers *int
	CNI     string
	Size    string
	Tools   []string
}

// ToClusterSpec applies defaults and returns the resulting spec.
//
// The spec is not validated here; values the validator would reject (an
// out-of-range count, an unknown CNI) are passed through unchanged so the
// validator can report them all at once.
func (o Options) ToClusterSpec() (ClusterSpec, error) {
	engine, err := ParseEngineType(o.Engine)
	if err != nil {
		return ClusterSpec{}, err
	}

	name := o.Name
	if name == "" {
		name = DeriveClusterName(o.Module, o.Type)
	}
	if name == "" {
		return ClusterSpec{}, fmt.Errorf("either a cluster name or module/type identifiers are required")
	}

	spec := ClusterSpec{
		Name:    name,
		Engine:  engine,
		FirstIP: strings.TrimSpace(o.FirstIP),
		Size:    SizeProfile(strings.ToLower(o.Size)),
		CNI:     CNIType(strings.ToLower(o.CNI)),
		Tools:   o.Tools,
	}
	if spec.Size == "" {
		spec.Size = DefaultSize
	}

	if engine.IsMultiNode() {
		spec.Masters = DefaultKubeadmMasters
		spec.Workers = DefaultKubeadmWorkers
		if spec.CNI == CNINone {
			spec.CNI = DefaultCNI
		}
	}
	if o.Masters != nil {
		spec.Masters = *o.Masters
	}
	if o.Workers != nil {
		spec.Workers = *o.Workers
	}

	return spec, nil
}

// DeriveClusterName builds "<module>-<type>" from lab identifiers.
// Separators such as "/", "_", "." and spaces become hyphens.
func DeriveClusterName(module, typ string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{module, typ} {
		if p = normalizeIdentifier(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

func normalizeIdentifier(s string) string {
	r := strings.NewReplacer("/", "-", "_", "-", ".", "-", " ", "-")
	s = r.Replace(strings.ToLower(strings.TrimSpace(s)))
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
