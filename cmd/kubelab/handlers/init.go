package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	fileExists       = wizard.FileExists
	confirmOverwrite = wizard.ConfirmOverwrite
	runWizard        = wizard.RunWizard
	writeRequest     = wizard.WriteRequest
)

// Init runs the request wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if outputPath == "" {
		outputPath = config.DefaultRequestFilename
	}
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	req := wizard.BuildRequest(result)
	spec, err := req.Clusters[0].ToClusterSpec()
	if err != nil {
		return err
	}

	if err := writeRequest(req, outputPath); err != nil {
		return fmt.Errorf("failed to write request: %w", err)
	}

	printInitSuccess(outputPath, spec)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "kubelab - lab cluster topologies")
	fmt.Fprintln(stdout, "================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates a request for one cluster.")
	fmt.Fprintln(stdout, "Add more clusters by editing the file; each then needs a first_ip.")
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, spec config.ClusterSpec) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Request saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Cluster Summary")
	fmt.Fprintln(stdout, "---------------")
	fmt.Fprintf(stdout, "  Name:    %s\n", spec.Name)
	fmt.Fprintf(stdout, "  Engine:  %s\n", spec.Engine)
	if spec.Engine.IsMultiNode() {
		fmt.Fprintf(stdout, "  Masters: %d\n", spec.Masters)
		fmt.Fprintf(stdout, "  Workers: %d\n", spec.Workers)
		fmt.Fprintf(stdout, "  CNI:     %s\n", spec.CNI)
	}
	fmt.Fprintf(stdout, "  Size:    %s\n", spec.Size)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintf(stdout, "  1. kubelab validate -f %s\n", outputPath)
	fmt.Fprintf(stdout, "  2. kubelab compile -f %s -o out/\n", outputPath)
	fmt.Fprintln(stdout)
}
