package validation

import (
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/imamik/kubelab/internal/config"
)

// Options are the ceilings enforced by the semantic and policy layers.
type Options struct {
	MaxTotalVMs   int
	MaxClusterVMs int
	MaxWorkers    int
	WarnRatio     float64
}

// DefaultOptions returns the built-in ceilings.
func DefaultOptions() Options {
	return OptionsFromSettings(config.DefaultSettings().Policy)
}

// OptionsFromSettings maps policy settings to validation options.
func OptionsFromSettings(p config.PolicySettings) Options {
	return Options{
		MaxTotalVMs:   p.MaxTotalVMs,
		MaxClusterVMs: p.MaxClusterVMs,
		MaxWorkers:    p.MaxWorkers,
		WarnRatio:     p.WarnRatio,
	}
}

// Batch is the input of one validation run.
// Multi is set when the specs are compiled together; it enables the
// cross-cluster rules and changes field paths to clusters[i].
type Batch struct {
	Specs []*config.ClusterSpec
	Multi bool
}

func (b Batch) path(i int) *field.Path {
	if b.Multi {
		return field.NewPath("clusters").Index(i)
	}
	return field.NewPath("cluster")
}

// Layer is one pure validation step.
type Layer func(Batch, Options) []Error

type stage struct {
	layer Layer
	// gated stages are skipped once an earlier stage produced an error.
	gated bool
}

var pipeline = []stage{
	{layer: Structural},
	{layer: Semantic, gated: true},
	{layer: Policy},
}

// Run executes the pipeline over b and merges every finding.
func Run(b Batch, opts Options) Result {
	var acc []Error
	for _, st := range pipeline {
		if st.gated && hasBlocking(acc) {
			continue
		}
		acc = append(acc, st.layer(b, opts)...)
	}
	return Result{errs: acc}
}

func hasBlocking(errs []Error) bool {
	for _, e := range errs {
		if e.Level == LevelError {
			return true
		}
	}
	return false
}

// Validator runs the pipeline with fixed options.
type Validator struct {
	opts Options
}

// New creates a Validator.
func New(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Validate checks a single cluster.
func (v *Validator) Validate(spec *config.ClusterSpec) Result {
	return Run(Batch{Specs: []*config.ClusterSpec{spec}}, v.opts)
}

// ValidateAll checks a batch. More than one spec switches on multi-cluster rules.
func (v *Validator) ValidateAll(specs []*config.ClusterSpec) Result {
	return Run(Batch{Specs: specs, Multi: len(specs) > 1}, v.opts)
}

// Pointers returns pointers to the elements of specs, for ValidateAll.
func Pointers(specs []config.ClusterSpec) []*config.ClusterSpec {
	out := make([]*config.ClusterSpec, len(specs))
	for i := range specs {
		out[i] = &specs[i]
	}
	return out
}

func structural(p *field.Path, msg, fix string) Error {
	return Error{Field: p, Severity: SeverityStructural, Level: LevelError, Message: msg, Suggestion: fix}
}

func semantic(p *field.Path, msg, fix string) Error {
	return Error{Field: p, Severity: SeveritySemantic, Level: LevelError, Message: msg, Suggestion: fix}
}

func semanticWarning(p *field.Path, msg, fix string) Error {
	return Error{Field: p, Severity: SeveritySemantic, Level: LevelWarning, Message: msg, Suggestion: fix}
}

func policy(p *field.Path, msg, fix string) Error {
	return Error{Field: p, Severity: SeverityPolicy, Level: LevelError, Message: msg, Suggestion: fix}
}

func policyWarning(p *field.Path, msg, fix string) Error {
	return Error{Field: p, Severity: SeverityPolicy, Level: LevelWarning, Message: msg, Suggestion: fix}
}
