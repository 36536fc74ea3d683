package wizard

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/imamik/kubelab/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// now is replaced in tests.
var now = time.Now

// WriteRequest writes req to a YAML file with a descriptive header.
func WriteRequest(req *config.Request, outputPath string) error {
	return config.WriteRequest(req, outputPath, generateHeader(outputPath)+"\n")
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# kubelab request
# Generated by: kubelab init
# Generated at: %s
#
# Usage:
#   kubelab validate -f %s
#   kubelab compile -f %s -o out/
`, now().Format(time.RFC3339), outputPath, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

func defaultConfirmOverwrite(path string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("File already exists: %s", path)).
		Description("Overwrite?").
		Value(&ok).
		Run()
	return ok, err
}
