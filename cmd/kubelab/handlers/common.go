// Package handlers implements the business logic of the CLI commands.
//
// Commands in the commands package parse flags and delegate here. Handlers
// load the request and settings, run the compiler and present the result.
package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/imamik/kubelab/internal/config"
)

// Global holds the flags shared by every command.
type Global struct {
	// SettingsPath is an explicit settings file; empty searches the defaults.
	SettingsPath string
	Verbose      bool
}

// Input selects where cluster specs come from.
// With Options.Engine set the specs come from flags, otherwise from RequestPath.
type Input struct {
	RequestPath string
	Options     config.Options
}

// FromFlags reports whether the cluster is described by flags.
func (in Input) FromFlags() bool {
	return in.Options.Engine != ""
}

// Factory function variables - can be replaced in tests.
var (
	loadSettings = config.LoadSettings
	loadRequest  = config.LoadRequest

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func loadSpecs(in Input) ([]config.ClusterSpec, error) {
	if in.FromFlags() {
		spec, err := in.Options.ToClusterSpec()
		if err != nil {
			return nil, err
		}
		return []config.ClusterSpec{spec}, nil
	}

	path := in.RequestPath
	if path == "" {
		path = config.DefaultRequestFilename
	}
	specs, err := loadRequest(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}
	return specs, nil
}

// newLogger builds the CLI logger. Logs go to stderr so stdout stays
// reserved for rendered output.
func newLogger(verbose bool) (logr.Logger, func(), error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		// zapr maps V(n) to zap level -n
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-2))
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("failed to create logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

// isInteractiveTTY reports whether stdout is a terminal.
func isInteractiveTTY() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
