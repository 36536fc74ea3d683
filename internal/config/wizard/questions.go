package wizard

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/kubelab/internal/config"
)

// runIdentityGroup prompts for engine and lab identifiers.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.Engine = string(config.EngineKind) // default

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Engine").
				Description("Kubernetes runtime of the cluster").
				Options(EnginesToOptions()...).
				Value(&result.Engine),
			huh.NewInput().
				Title("Module").
				Description("Course or project module, e.g. m1").
				Placeholder("m1").
				Value(&result.Module).
				Validate(validateModule),
			huh.NewInput().
				Title("Type (Optional)").
				Description("Lab type within the module, e.g. pt").
				Placeholder("pt").
				Value(&result.Type),
		).Title("Cluster Identity"),
	).RunWithContext(ctx)
}

// runTopologyGroup prompts for kubeadm node counts and CNI.
func runTopologyGroup(ctx context.Context, result *WizardResult) error {
	result.Masters = config.DefaultKubeadmMasters
	result.CNI = string(config.DefaultCNI)
	workers := strconv.Itoa(config.DefaultKubeadmWorkers)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Masters").
				Description("Odd numbers keep etcd quorum").
				Options(MasterCountOptions...).
				Value(&result.Masters),
			huh.NewInput().
				Title("Workers").
				Description("Number of worker nodes").
				Value(&workers).
				Validate(validateCount),
			huh.NewSelect[string]().
				Title("Container Network Interface (CNI)").
				Description("Pod networking plugin").
				Options(CNIOptions...).
				Value(&result.CNI),
		).Title("Topology"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.Workers, _ = strconv.Atoi(strings.TrimSpace(workers))
	return nil
}

// runResourcesGroup prompts for size profile and first IP.
func runResourcesGroup(ctx context.Context, result *WizardResult) error {
	result.Size = string(config.DefaultSize)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Size").
				Description("CPU and memory of every VM").
				Options(SizeOptions()...).
				Value(&result.Size),
			huh.NewInput().
				Title("First IP (Optional)").
				Description("First IPv4 address of the cluster. Leave empty for the default.").
				Placeholder(config.DefaultFirstIP).
				Value(&result.FirstIP).
				Validate(validateFirstIP),
		).Title("Resources"),
	).RunWithContext(ctx)
}

// runToolsGroup prompts for management tools.
func runToolsGroup(ctx context.Context, result *WizardResult) error {
	result.Tools = []string{"kubectl"}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tools").
				Description("Installed on the management machine").
				Options(ToolOptions()...).
				Value(&result.Tools),
		).Title("Management Tools"),
	).RunWithContext(ctx)
}

func validateModule(s string) error {
	if strings.TrimSpace(s) == "" {
		return errModuleRequired
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errCountInvalid
	}
	if n < 0 {
		return errCountNegative
	}
	return nil
}

// validateFirstIP accepts an empty value or a usable IPv4 host address.
func validateFirstIP(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := config.ParseFirstIP(s); err != nil {
		return errIPInvalid
	}
	return nil
}
