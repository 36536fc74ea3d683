package wizard

import (
	"context"
	"fmt"

	"github.com/imamik/kubelab/internal/config"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Identity
	Engine string
	Module string
	Type   string

	// Topology (kubeadm only)
	Masters int
	Workers int
	CNI     string

	// Resources
	Size    string
	FirstIP string

	// Management tools (engine none only)
	Tools []string
}

// RunWizard runs the interactive request wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	engine, err := config.ParseEngineType(result.Engine)
	if err != nil {
		return nil, err
	}

	if engine.IsMultiNode() {
		if err := runTopologyGroup(ctx, result); err != nil {
			return nil, fmt.Errorf("topology: %w", err)
		}
	}

	if err := runResourcesGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}

	if engine.IsManagement() {
		if err := runToolsGroup(ctx, result); err != nil {
			return nil, fmt.Errorf("tools: %w", err)
		}
	}

	return result, nil
}
