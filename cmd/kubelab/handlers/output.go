package handlers

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/kubelab/internal/plan"
	"github.com/imamik/kubelab/internal/render"
	"github.com/imamik/kubelab/internal/util/naming"
)

// vmEnvDir is the subdirectory holding per-VM environment files.
const vmEnvDir = "vms"

// marshalDescriptor can be replaced in tests.
var marshalDescriptor = render.MarshalYAML

// planFile is one rendered file, relative to the output directory.
type planFile struct {
	Path string
	Data []byte
}

// planFiles lays out the plan as
//
//	<cluster>/<cluster>.yaml
//	<cluster>/<cluster>.env
//	<cluster>/vms/<vm>.env
func planFiles(p *plan.Plan) ([]planFile, error) {
	var files []planFile
	for i, desc := range p.Descriptors() {
		c := p.Clusters[i]
		name := c.Spec.Name

		data, err := marshalDescriptor(desc)
		if err != nil {
			return nil, err
		}
		files = append(files,
			planFile{Path: filepath.Join(name, naming.Descriptor(name)), Data: data},
			planFile{Path: filepath.Join(name, naming.EnvFile(name)), Data: render.EnvFile(c.Env.Global)},
		)
		for _, vm := range c.Env.PerVM {
			files = append(files, planFile{
				Path: filepath.Join(name, vmEnvDir, naming.EnvFile(vm.Name)),
				Data: render.EnvFile(vm.Env),
			})
		}
	}
	return files, nil
}

// writePlan writes every plan file below dir and returns the written paths.
func writePlan(dir string, p *plan.Plan) ([]string, error) {
	files, err := planFiles(p)
	if err != nil {
		return nil, err
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := writeFileAtomic(path, f.Data, 0o644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kubelab-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}

// envListing concatenates every env file, each under a "# <path>" header.
func envListing(p *plan.Plan) ([]byte, error) {
	files, err := planFiles(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, f := range files {
		if filepath.Ext(f.Path) != ".env" {
			continue
		}
		fmt.Fprintf(&buf, "# %s\n", filepath.ToSlash(f.Path))
		buf.Write(f.Data)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
