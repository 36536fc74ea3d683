package handlers

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/imamik/kubelab/internal/installers"
)

// ToolInfo is the JSON form of an installable tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Script      string `json:"script"`
	Description string `json:"description"`
	InstallURL  string `json:"installURL"`
}

// Tools lists every tool with an installer script.
func Tools(jsonOutput bool) error {
	known := installers.Known()

	if jsonOutput {
		infos := make([]ToolInfo, len(known))
		for i, t := range known {
			infos[i] = ToolInfo{Name: t.Name, Script: installers.ScriptName(t.Name), Description: t.Description, InstallURL: t.InstallURL}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSCRIPT\tDESCRIPTION")
	for _, t := range known {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, installers.ScriptName(t.Name), t.Description)
	}
	return tw.Flush()
}
