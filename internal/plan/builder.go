package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/envplan"
	"github.com/imamik/kubelab/internal/installers"
	"github.com/imamik/kubelab/internal/ipam"
	"github.com/imamik/kubelab/internal/orchestration"
	"github.com/imamik/kubelab/internal/render"
	"github.com/imamik/kubelab/internal/util/async"
	"github.com/imamik/kubelab/internal/validation"
)

// Build errors.
var (
	ErrInvalid    = errors.New("cluster specification is invalid")
	ErrNoClusters = errors.New("no clusters to compile")
)

// Plan is the render-ready result of a compilation.
type Plan struct {
	Clusters []ClusterPlan
}

// ClusterPlan is one resolved cluster with everything its scripts need.
type ClusterPlan struct {
	// Spec is the resolved spec; Spec.VMs is populated.
	Spec       config.ClusterSpec
	Env        envplan.EnvSet
	Installers []string
}

// VMs returns every VM of the plan in cluster order.
func (p *Plan) VMs() []config.VMConfig {
	var out []config.VMConfig
	for _, c := range p.Clusters {
		out = append(out, c.Spec.VMs...)
	}
	return out
}

// Descriptors returns the provisioning descriptor of every cluster.
func (p *Plan) Descriptors() []render.Descriptor {
	out := make([]render.Descriptor, len(p.Clusters))
	for i, c := range p.Clusters {
		out[i] = render.NewDescriptor(c.Spec, c.Installers)
	}
	return out
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// WithRegisterer registers the compile metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(b *Builder) { b.registerer = reg }
}

// WithStrict makes validation warnings block compilation.
func WithStrict(strict bool) Option {
	return func(b *Builder) { b.strict = strict }
}

// WithConcurrency bounds the number of clusters planned at once.
// Zero or less means unbounded.
func WithConcurrency(n int) Option {
	return func(b *Builder) { b.concurrency = n }
}

// Builder compiles cluster specs into a Plan.
// A Builder is safe for concurrent use.
type Builder struct {
	validator    *validation.Validator
	orchestrator *orchestration.Orchestrator
	envOpts      envplan.Options

	log         logr.Logger
	registerer  prometheus.Registerer
	metrics     *metrics
	strict      bool
	concurrency int
}

// NewBuilder creates a Builder from settings. Nil settings use the defaults.
func NewBuilder(settings *config.Settings, opts ...Option) (*Builder, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	b := &Builder{
		log:     logr.Discard(),
		metrics: newMetrics(),
		envOpts: envplan.OptionsFromSettings(*settings),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.validator = validation.New(validation.OptionsFromSettings(settings.Policy))
	b.orchestrator = orchestration.New(
		ipam.New(ipam.OptionsFromSettings(settings.Network)),
		orchestration.WithLogger(b.log.WithName("orchestration")),
	)

	if b.registerer != nil {
		if err := b.metrics.register(b.registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return b, nil
}

// Validate runs the validation pipeline only.
func (b *Builder) Validate(specs []config.ClusterSpec) validation.Result {
	res := b.validator.ValidateAll(validation.Pointers(specs))
	b.metrics.observeFindings(res)
	return res
}

// Build validates, resolves and plans specs. The validation result is
// returned in every case except an empty batch.
func (b *Builder) Build(ctx context.Context, specs []config.ClusterSpec) (*Plan, validation.Result, error) {
	if len(specs) == 0 {
		return nil, validation.Result{}, ErrNoClusters
	}
	start := time.Now()

	res := b.Validate(specs)
	if err := res.Err(b.strict); err != nil {
		b.metrics.observeResult(ResultInvalid, time.Since(start).Seconds())
		return nil, res, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if res.HasWarnings() {
		b.log.Info("validation reported warnings", "count", len(res.Warnings()))
	}

	resolved, err := b.orchestrator.ResolveAll(specs)
	if err != nil {
		b.metrics.observeResult(ResultFailed, time.Since(start).Seconds())
		return nil, res, err
	}

	clusters, err := async.Map(ctx, resolved, b.concurrency, func(_ context.Context, _ int, spec config.ClusterSpec) (ClusterPlan, error) {
		return b.planCluster(spec)
	})
	if err != nil {
		b.metrics.observeResult(ResultFailed, time.Since(start).Seconds())
		return nil, res, err
	}

	p := &Plan{Clusters: clusters}
	b.metrics.observeVMs(p.VMs())
	b.metrics.observeResult(ResultSuccess, time.Since(start).Seconds())
	b.log.V(1).Info("plan built", "clusters", len(clusters), "vms", len(p.VMs()), "duration", time.Since(start))
	return p, res, nil
}

func (b *Builder) planCluster(spec config.ClusterSpec) (ClusterPlan, error) {
	env, err := envplan.Plan(spec, spec.VMs, b.envOpts)
	if err != nil {
		return ClusterPlan{}, err
	}
	scripts, err := installers.Scripts(spec)
	if err != nil {
		return ClusterPlan{}, err
	}
	b.log.V(1).Info("cluster planned", "cluster", spec.Name, "globalKeys", env.Global.Len(), "installers", len(scripts))
	return ClusterPlan{Spec: spec, Env: env, Installers: scripts}, nil
}
