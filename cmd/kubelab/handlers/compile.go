package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/imamik/kubelab/internal/plan"
	"github.com/imamik/kubelab/internal/render"
)

// Output formats of the compile command.
const (
	FormatYAML    = "yaml"
	FormatJSON    = "json"
	FormatEnv     = "env"
	FormatSummary = "summary"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatYAML, FormatJSON, FormatEnv, FormatSummary}

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// CompileOptions are the flags of the compile command.
type CompileOptions struct {
	// OutDir receives the rendered files; empty prints to stdout in Format.
	OutDir  string
	Format  string
	Strict  bool
	Metrics bool
}

// Compile builds the plan and renders it.
func Compile(ctx context.Context, g Global, in Input, opts CompileOptions) error {
	if opts.Format == "" {
		opts.Format = FormatYAML
	}
	if !slices.Contains(Formats, opts.Format) {
		return fmt.Errorf("%w %q (use one of %v)", ErrUnknownFormat, opts.Format, Formats)
	}

	settings, err := loadSettings(g.SettingsPath)
	if err != nil {
		return err
	}
	log, sync, err := newLogger(g.Verbose)
	if err != nil {
		return err
	}
	defer sync()

	specs, err := loadSpecs(in)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	builder, err := plan.NewBuilder(settings,
		plan.WithLogger(log),
		plan.WithStrict(opts.Strict),
		plan.WithRegisterer(reg),
	)
	if err != nil {
		return err
	}
	if opts.Metrics {
		defer func() {
			if err := dumpMetrics(stderr, reg); err != nil {
				log.Error(err, "failed to dump metrics")
			}
		}()
	}

	p, res, err := builder.Build(ctx, specs)
	if res.Len() > 0 {
		fmt.Fprint(stderr, renderFindings(res, opts.Strict, isInteractiveTTY()))
	}
	if err != nil {
		return err
	}

	if opts.OutDir != "" {
		files, err := writePlan(opts.OutDir, p)
		if err != nil {
			return err
		}
		log.Info("plan written", "dir", opts.OutDir, "files", len(files))
		fmt.Fprint(stdout, renderSummary(p, isInteractiveTTY()))
		return nil
	}
	return printPlan(stdout, p, opts.Format)
}

func printPlan(w io.Writer, p *plan.Plan, format string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = render.MarshalYAML(p.Descriptors()...)
	case FormatJSON:
		out, err = render.MarshalJSON(p.Descriptors()...)
	case FormatEnv:
		out, err = envListing(p)
	case FormatSummary:
		out = []byte(renderSummary(p, false))
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	return nil
}
