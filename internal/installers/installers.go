package installers

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/imamik/kubelab/internal/config"
)

// ErrUnknownTool is returned for a tool without an installer script.
var ErrUnknownTool = errors.New("unknown tool")

// Tool is an installable component.
type Tool struct {
	// Name is the tool identifier used in requests and script names.
	Name string

	// Description explains what the tool is used for.
	Description string

	// InstallURL points to upstream installation instructions.
	InstallURL string
}

var catalog = []Tool{
	{Name: "docker", Description: "Container runtime for kind and minikube", InstallURL: "https://docs.docker.com/engine/install/"},
	{Name: "containerd", Description: "Container runtime for kubeadm nodes", InstallURL: "https://containerd.io/downloads/"},
	{Name: "kubectl", Description: "Kubernetes command-line client", InstallURL: "https://kubernetes.io/docs/tasks/tools/"},
	{Name: "kubeadm", Description: "Cluster bootstrapper for multi-node clusters", InstallURL: "https://kubernetes.io/docs/setup/production-environment/tools/kubeadm/install-kubeadm/"},
	{Name: "kind", Description: "Kubernetes in Docker", InstallURL: "https://kind.sigs.k8s.io/docs/user/quick-start/#installation"},
	{Name: "minikube", Description: "Local single-node Kubernetes", InstallURL: "https://minikube.sigs.k8s.io/docs/start/"},
	{Name: "helm", Description: "Kubernetes package manager", InstallURL: "https://helm.sh/docs/intro/install/"},
	{Name: "k9s", Description: "Terminal UI for Kubernetes", InstallURL: "https://k9scli.io/topics/install/"},
	{Name: "terraform", Description: "Infrastructure as code", InstallURL: "https://developer.hashicorp.com/terraform/install"},
	{Name: "ansible", Description: "Configuration management", InstallURL: "https://docs.ansible.com/ansible/latest/installation_guide/"},
	{Name: "cni-calico", Description: "Calico pod network", InstallURL: "https://docs.tigera.io/calico/latest/getting-started/kubernetes/"},
	{Name: "cni-flannel", Description: "Flannel pod network", InstallURL: "https://github.com/flannel-io/flannel"},
	{Name: "cni-cilium", Description: "Cilium pod network", InstallURL: "https://docs.cilium.io/en/stable/gettingstarted/k8s-install-default/"},
}

// Known returns every tool with an installer script.
func Known() []Tool {
	out := make([]Tool, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry of name.
func Lookup(name string) (Tool, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// ScriptName returns the installer script file name of a tool.
func ScriptName(tool string) string {
	return "install-" + tool + ".sh"
}

// CNITool returns the tool name of a CNI plugin.
func CNITool(cni config.CNIType) string {
	return "cni-" + string(cni)
}

// BaseTools returns the tools every cluster of engine needs.
func BaseTools(engine config.EngineType) []string {
	switch engine {
	case config.EngineKind:
		return []string{"docker", "kubectl", "kind"}
	case config.EngineMinikube:
		return []string{"docker", "kubectl", "minikube"}
	case config.EngineKubeadm:
		return []string{"containerd", "kubeadm", "kubectl"}
	default:
		return nil
	}
}

// Tools returns the ordered, duplicate-free tool list of spec.
func Tools(spec config.ClusterSpec) ([]string, error) {
	names := BaseTools(spec.Engine)
	if spec.Engine.IsMultiNode() && spec.CNI.IsSet() {
		names = append(names, CNITool(spec.CNI))
	}
	if spec.Engine.IsManagement() {
		names = append(names, spec.Tools...)
	}

	seen := sets.New[string]()
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if seen.Has(name) {
			continue
		}
		if _, ok := Lookup(name); !ok {
			return nil, fmt.Errorf("cluster %q: %w %q (known: %s)", spec.Name, ErrUnknownTool, raw, strings.Join(knownNames(), ", "))
		}
		seen.Insert(name)
		out = append(out, name)
	}
	return out, nil
}

// Scripts returns the ordered installer script names of spec.
func Scripts(spec config.ClusterSpec) ([]string, error) {
	tools, err := Tools(spec)
	if err != nil {
		return nil, err
	}
	scripts := make([]string, len(tools))
	for i, t := range tools {
		scripts[i] = ScriptName(t)
	}
	return scripts, nil
}

func knownNames() []string {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}
	return names
}
