package wizard

import (
	"strings"

	"github.com/imamik/kubelab/internal/config"
)

// BuildRequest creates a request holding the cluster described by result.
func BuildRequest(result *WizardResult) *config.Request {
	cr := config.ClusterRequest{
		Module:  strings.TrimSpace(result.Module),
		Type:    strings.TrimSpace(result.Type),
		Engine:  result.Engine,
		FirstIP: strings.TrimSpace(result.FirstIP),
		Size:    result.Size,
	}

	engine, _ := config.ParseEngineType(result.Engine)
	if engine.IsMultiNode() {
		masters, workers := result.Masters, result.Workers
		cr.Masters = &masters
		cr.Workers = &workers
		cr.CNI = result.CNI
	}
	if engine.IsManagement() && len(result.Tools) > 0 {
		cr.Tools = append([]string(nil), result.Tools...)
	}

	return &config.Request{Clusters: []config.ClusterRequest{cr}}
}
