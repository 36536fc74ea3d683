package wizard

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/installers"
)

// EngineOption describes an engine choice.
type EngineOption struct {
	Value       config.EngineType
	Label       string
	Description string
}

// Engines contains every engine offered by the wizard.
var Engines = []EngineOption{
	{Value: config.EngineKind, Label: "kind", Description: "Single node, Kubernetes in Docker"},
	{Value: config.EngineMinikube, Label: "minikube", Description: "Single node, VM based"},
	{Value: config.EngineKubeadm, Label: "kubeadm", Description: "Multi node, masters and workers"},
	{Value: config.EngineNone, Label: "none", Description: "Management machine without Kubernetes"},
}

// CNIOptions contains the CNI plugins for kubeadm clusters.
var CNIOptions = []huh.Option[string]{
	huh.NewOption("Calico (default)", string(config.CNICalico)),
	huh.NewOption("Flannel", string(config.CNIFlannel)),
	huh.NewOption("Cilium", string(config.CNICilium)),
}

// MasterCountOptions contains the offered control plane sizes.
var MasterCountOptions = []huh.Option[int]{
	huh.NewOption("1 (Development)", 1),
	huh.NewOption("3 (HA)", 3),
	huh.NewOption("5 (Large HA)", 5),
}

// EnginesToOptions converts engines to huh select options.
func EnginesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Engines))
	for i, e := range Engines {
		opts[i] = huh.NewOption(fmt.Sprintf("%s - %s", e.Label, e.Description), string(e.Value))
	}
	return opts
}

// SizeOptions returns the size profiles as huh select options.
func SizeOptions() []huh.Option[string] {
	profiles := config.ValidSizeProfiles()
	opts := make([]huh.Option[string], len(profiles))
	for i, p := range profiles {
		opts[i] = huh.NewOption(p.String(), string(p))
	}
	return opts
}

// ToolOptions returns the management tools as huh multi-select options.
// Container runtimes, bootstrappers and CNI plugins are engine managed and
// left out.
func ToolOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, t := range installers.Known() {
		if isEngineManaged(t.Name) {
			continue
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s - %s", t.Name, t.Description), t.Name))
	}
	return opts
}

func isEngineManaged(tool string) bool {
	for _, e := range config.ValidEngineTypes() {
		for _, base := range installers.BaseTools(e) {
			if base == tool && tool != "kubectl" {
				return true
			}
		}
	}
	for _, cni := range config.ValidCNITypes() {
		if installers.CNITool(cni) == tool {
			return true
		}
	}
	return false
}
